package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"hackathon-ideas/internal/domain"
)

// FileStore keeps the snapshot as one JSON file named after its key.
type FileStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

func NewFileStore(dir, key string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, key+".json"),
		logger: logger,
	}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(_ context.Context) ([]domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var ideas []domain.Idea
	if err := json.Unmarshal(data, &ideas); err != nil {
		f.logger.Warn("removing corrupt snapshot", "path", f.path, "error", err)
		if rmErr := os.Remove(f.path); rmErr != nil {
			f.logger.Error("removing snapshot", "path", f.path, "error", rmErr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}

	return ideas, nil
}

func (f *FileStore) Save(_ context.Context, ideas []domain.Idea) error {
	data, err := json.Marshal(ideas)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
