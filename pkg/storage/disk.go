package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes images under a local directory served at /uploads
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the directory if needed
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir root directory, mounted by the router as /uploads
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) Name() string { return "disk" }

func (s *DiskStore) Save(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := obj.Key()
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	// write to a temp file first so a half-written image is never served
	tmp := path + ".part"
	if err := os.WriteFile(tmp, obj.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write image: %w", err)
	}

	return s.baseURL + "/uploads/" + key, nil
}
