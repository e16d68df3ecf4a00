package journal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// Store loads and saves a ledger as a single journal file.
type Store struct {
	path string
}

// NewStore creates a Store for the journal file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the journal file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the journal file. A file that cannot be opened is not fatal: Load
// returns an empty ledger together with a *StorageError so the caller can warn
// and start fresh. Malformed lines are skipped and returned.
func (s *Store) Load() (*ledger.Ledger, []*RecordError, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return ledger.New(), nil, &StorageError{Op: "open", Path: s.path, Err: err}
	}
	defer f.Close()

	l, skipped, err := ReadLedger(f)
	if err != nil {
		return ledger.New(), nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}
	return l, skipped, nil
}

// Save replaces the journal file with txns. The data is written to a temporary
// file in the same directory and renamed over the target, so on failure the
// previous file is left as it was.
func (s *Store) Save(txns []model.Transaction) error {
	var buf bytes.Buffer
	if err := WriteTransactions(&buf, txns); err != nil {
		return fmt.Errorf("encoding journal: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Chmod(tmpName, s.fileMode()); err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// fileMode keeps the permissions of an existing journal file; new files get 0644.
func (s *Store) fileMode() os.FileMode {
	if info, err := os.Stat(s.path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
