package hash

import (
	"testing"
)

func TestDigestSum(t *testing.T) {
	tests := []struct {
		algorithm string
		want      HashAlgorithm
		sum       string
	}{
		{"sha256", SHA256, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{"SHA1", SHA1, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{"md5", MD5, "5d41402abc4b2a76b9719d911017c592"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			h, err := NewFileHasher(tt.algorithm)
			if err != nil {
				t.Fatalf("NewFileHasher(%q) error = %v", tt.algorithm, err)
			}
			if h.Algorithm() != tt.want {
				t.Errorf("Algorithm() = %s, want %s", h.Algorithm(), tt.want)
			}
			d := h.NewDigest()
			d.Write([]byte("hel"))
			d.Write([]byte("lo"))
			if got := d.Sum(); got != tt.sum {
				t.Errorf("Sum() = %s, want %s", got, tt.sum)
			}
		})
	}
}

func TestDigestCountsBytes(t *testing.T) {
	h, _ := NewFileHasher("sha512")
	d := h.NewDigest()
	d.Write([]byte("abc"))
	d.Write([]byte("de"))
	if d.Size() != 5 {
		t.Errorf("Size() = %d, want 5", d.Size())
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	if _, err := NewFileHasher("crc32"); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}
