package drafts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
)

// FileStore writes one file per draft key under a root directory.
type FileStore struct {
	root   string
	logger *slog.Logger
}

func NewFileStore(root string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("failed to create drafts directory: %w", err)
	}

	return &FileStore{
		root:   root,
		logger: logger.With("module", "drafts_file"),
	}, nil
}

func (s *FileStore) path(key Key) string {
	return filepath.Join(s.root, url.PathEscape(string(key))+".json")
}

func (s *FileStore) Get(_ context.Context, key Key) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read draft %s: %w", key, err)
	}

	return data, nil
}

func (s *FileStore) Set(_ context.Context, key Key, value []byte) error {
	tmp, err := os.CreateTemp(s.root, ".draft-*")
	if err != nil {
		return fmt.Errorf("failed to write draft %s: %w", key, err)
	}

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write draft %s: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write draft %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write draft %s: %w", key, err)
	}

	s.logger.Debug("draft written", "key", key, "bytes", len(value))

	return nil
}

func (s *FileStore) Delete(_ context.Context, key Key) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete draft %s: %w", key, err)
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}
