package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes files beneath a root directory.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	dest := filepath.Join(s.root, filepath.FromSlash(key))
	if rel, err := filepath.Rel(s.root, dest); err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("storage key %q escapes the storage root", key)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	slog.Info("File stored locally", "key", key, "size", written, "content_type", contentType)
	return dest, nil
}
