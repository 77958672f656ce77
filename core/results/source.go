package results

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileNotFound is returned when a result file does not exist.
var ErrFileNotFound = errors.New("result file not found")

// Source abstracts where result files are read from.
type Source interface {
	// IsDir reports whether name refers to a directory (or directory-like prefix).
	// Any lookup failure counts as "not a directory".
	IsDir(ctx context.Context, name string) bool
	// List returns the full names of the files directly inside dir.
	List(ctx context.Context, dir string) ([]string, error)
	// Open opens a file for reading. A missing file yields ErrFileNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// LocalSource reads result files from the local filesystem.
type LocalSource struct{}

// NewLocalSource creates a filesystem backed source.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

func (s *LocalSource) IsDir(_ context.Context, name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}

func (s *LocalSource) List(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, filepath.Join(dir, entry.Name()))
	}
	return names, nil
}

func (s *LocalSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	info, err := os.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a result file", name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}
