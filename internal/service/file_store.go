package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var (
	ErrFileExists      = errors.New("file already exists")
	ErrInvalidFilename = errors.New("invalid filename")
)

// FileStore keeps uploaded files in a single flat directory and never
// overwrites an existing name.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the upload directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) Dir() string { return s.dir }

// Save writes data under the base name of filename and returns the full path.
func (s *FileStore) Save(filename string, data []byte) (string, error) {
	name := filepath.Base(filename)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	path := filepath.Join(s.dir, name)

	// O_EXCL makes check-and-create one step
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrFileExists, name)
		}
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	s.logger.Info("File saved", zap.String("path", path), zap.Int("size", len(data)))
	return path, nil
}
