package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errEmptyPayload = errors.New("empty payload")

// LocalStorage persists objects to the local filesystem.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a LocalStorage instance. The directory is created if
// it does not exist.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "datas/exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save writes the bytes under baseDir and returns the slash-separated key relative to it.
func (s *LocalStorage) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	if err := checkPayload(data); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	key := ObjectKey(opts)
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if opts.SkipIfExists {
		if _, err := os.Stat(absPath); err == nil {
			return key, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat file: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return key, nil
}

var _ Storage = (*LocalStorage)(nil)
