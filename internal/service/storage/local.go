package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
)

// LocalStorage writes files into one directory. All access goes through an
// os.Root, so names can never resolve outside that directory.
type LocalStorage struct {
	root   *os.Root
	dir    string
	logger zerolog.Logger
}

func NewLocalStorage(dir string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload directory: %w", err)
	}

	logger.Info().Str("dir", dir).Msg("Using local file storage")

	return &LocalStorage{
		root:   root,
		dir:    dir,
		logger: logger,
	}, nil
}

func (s *LocalStorage) Provider() string {
	return "local"
}

func (s *LocalStorage) Save(ctx context.Context, name string, data io.Reader, size int64, contentType string) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid object name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := s.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(f, data)
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.root.Remove(name)
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug().
		Str("file", name).
		Int64("size", written).
		Msg("File written to local storage")

	return nil
}

func (s *LocalStorage) Open(ctx context.Context, name string) (*Object, error) {
	if !ValidName(name) {
		return nil, ErrObjectNotFound
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrObjectNotFound
	}

	return &Object{
		Content:     f,
		Size:        info.Size(),
		ContentType: DetectContentType(name),
		ModTime:     info.ModTime(),
	}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return ErrObjectNotFound
	}

	if err := s.root.Remove(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Close() error {
	return s.root.Close()
}
