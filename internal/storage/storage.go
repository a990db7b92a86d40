package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// ReportStore persists generated report files. Put returns the location of
// the stored object.
type ReportStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// LocalStore writes reports below a root directory.
type LocalStore struct {
	root string
}

func NewLocal(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Trim(clean, "/") == "" {
		return "", fmt.Errorf("invalid report key %q", key)
	}
	path := filepath.Join(s.root, clean)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write report file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}
	return path, nil
}
