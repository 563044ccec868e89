package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iho/finplan/internal/ledger"
)

// FileStore keeps the snapshot in a single file. Writes go through a
// temp file in the same directory followed by a rename, so a crash
// mid-write never leaves a half-written snapshot behind.
type FileStore struct {
	path  string
	codec *Codec
}

// NewFileStore creates a store writing to path. The parent directory is
// created if missing.
func NewFileStore(path string, codec *Codec) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create directory: %w", err)
	}
	return &FileStore{path: path, codec: codec}, nil
}

func (s *FileStore) Save(_ context.Context, blob []byte) error {
	sealed, err := s.codec.Seal(blob)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("snapshot: rename: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	sealed, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ledger.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}
	return s.codec.Open(sealed)
}
