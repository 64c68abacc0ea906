package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

type HashAlgorithm string

const (
	MD5    HashAlgorithm = "md5"
	SHA1   HashAlgorithm = "sha1"
	SHA256 HashAlgorithm = "sha256"
	SHA512 HashAlgorithm = "sha512"
)

// Digest accumulates bytes written through it and reports their checksum.
type Digest struct {
	h       hash.Hash
	written int64
}

func (d *Digest) Write(p []byte) (int, error) {
	n, err := d.h.Write(p)
	d.written += int64(n)
	return n, err
}

func (d *Digest) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

func (d *Digest) Size() int64 {
	return d.written
}

type FileHasher struct {
	algorithm HashAlgorithm
}

func NewFileHasher(algorithm string) (*FileHasher, error) {
	h := &FileHasher{algorithm: HashAlgorithm(strings.ToLower(algorithm))}
	if _, err := h.getHasher(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *FileHasher) Algorithm() HashAlgorithm {
	return h.algorithm
}

func (h *FileHasher) NewDigest() *Digest {
	hasher, _ := h.getHasher()
	return &Digest{h: hasher}
}

func (h *FileHasher) getHasher() (hash.Hash, error) {
	switch h.algorithm {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", h.algorithm)
	}
}
