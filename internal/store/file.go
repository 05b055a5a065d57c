package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"catalog/internal/catalog"
	"catalog/internal/codec"
	"catalog/internal/fileutil"
)

// FileStore persists a collection as a single serialized file.
type FileStore struct {
	codec codec.Codec
}

// NewFileStore wraps c.
func NewFileStore(c codec.Codec) *FileStore {
	return &FileStore{codec: c}
}

// Format reports the codec's format name.
func (s *FileStore) Format() string { return s.codec.Format() }

// Read decodes the whole file at path.
func (s *FileStore) Read(_ context.Context, path string) (catalog.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("stat data file: %w", err)
	}
	if info.IsDir() {
		return catalog.Snapshot{}, fmt.Errorf("data file %s is a directory", path)
	}

	snap, err := s.codec.Decode(file)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	return snap, nil
}

// Write encodes records and replaces path.
func (s *FileStore) Write(_ context.Context, path string, records []catalog.Record) error {
	err := fileutil.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		return s.codec.Encode(w, records)
	})
	if err != nil {
		return fmt.Errorf("write %s file: %w", s.Format(), err)
	}
	return nil
}
