package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBridge stores documents as files under a fixed base directory. The
// base directory is an explicit constructor argument, not a lazily resolved
// global.
type FileBridge struct {
	base string
}

func NewFileBridge(base string) (*FileBridge, error) {
	if base == "" {
		return nil, errors.New("empty base directory")
	}
	if err := os.MkdirAll(base, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBridge{base: base}, nil
}

func (b *FileBridge) resolve(rel string) string {
	return filepath.Join(b.base, filepath.FromSlash(rel))
}

func (b *FileBridge) ReadDocument(rel string) ([]byte, error) {
	data, err := os.ReadFile(b.resolve(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return data, nil
}

// WriteDocument performs a full overwrite. The temp-file-and-rename dance
// guarantees no reader ever observes a partially written document.
func (b *FileBridge) WriteDocument(rel string, data []byte) error {
	path := b.resolve(rel)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	tmp, err := os.CreateTemp(dir, ".doc-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", rel, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

func (b *FileBridge) DeleteDocument(rel string) error {
	err := os.Remove(b.resolve(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s: %w", rel, err)
	}
	return nil
}

func (b *FileBridge) ListDirectory(rel string) ([]string, error) {
	entries, err := os.ReadDir(b.resolve(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to list %s: %w", rel, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (b *FileBridge) BaseDirectory() string {
	return b.base
}
