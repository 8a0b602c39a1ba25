package filestorage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalFileStorage keeps objects under baseDir and serves them below publicPrefix.
type LocalFileStorage struct {
	baseDir      string // e.g. "./media_storage"
	publicPrefix string // e.g. "/media_storage"
}

func NewLocalFileStorage(baseDir, publicPrefix string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir:      baseDir,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
	}, nil
}

func (s *LocalFileStorage) Name() string {
	return BackendLocal
}

func (s *LocalFileStorage) Put(ctx context.Context, name string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.URL(name), nil
}

// Remove deletes the object. A missing file counts as removed.
func (s *LocalFileStorage) Remove(_ context.Context, name string) error {
	fullPath, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (s *LocalFileStorage) URL(name string) string {
	return path.Join(s.publicPrefix, path.Clean("/"+filepath.ToSlash(name)))
}

// has reports whether name is present on disk.
func (s *LocalFileStorage) has(name string) bool {
	fullPath, err := s.resolve(name)
	if err != nil {
		return false
	}

	_, err = os.Stat(fullPath)
	return err == nil
}

func (s *LocalFileStorage) resolve(name string) (string, error) {
	clean := filepath.Clean("/" + name)
	if clean == "/" {
		return "", fmt.Errorf("invalid object name %q", name)
	}

	return filepath.Join(s.baseDir, clean), nil
}
