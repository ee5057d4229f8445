package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/umputun/autoreply/pkg/domain"
)

// FileBackend keeps config documents as config_{post_id}.json files in a directory
type FileBackend struct {
	dir string
}

// NewFileBackend makes file backend, creating dir if missing
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("make config dir %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

// Name of the backend
func (f *FileBackend) Name() string { return "file" }

// Load reads raw document or returns domain.ErrNotFound
func (f *FileBackend) Load(_ context.Context, postID string) ([]byte, error) {
	data, err := os.ReadFile(f.path(postID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return data, nil
}

// Save writes document to a temp file and renames it in place
func (f *FileBackend) Save(_ context.Context, postID string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, "config_*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(postID)); err != nil {
		return fmt.Errorf("rename config file: %w", err)
	}
	return nil
}

// Keys lists post ids with config files
func (f *FileBackend) Keys(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, "config_*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob config files: %w", err)
	}
	res := make([]string, 0, len(matches))
	for _, m := range matches {
		id := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), "config_"), ".json")
		if id == "global" || !domain.ValidPostID(id) {
			continue
		}
		res = append(res, id)
	}
	return res, nil
}

func (f *FileBackend) path(postID string) string {
	return filepath.Join(f.dir, "config_"+postID+".json")
}
