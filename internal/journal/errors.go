package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a journal line that could not be decoded.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrStorageUnavailable marks a journal file that could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnencodableField marks a value that would corrupt the comma-delimited format.
	ErrUnencodableField = errors.New("field cannot be stored")
)

// RecordError describes one skipped journal line.
type RecordError struct {
	Line   int // 1-based line number in the file
	Text   string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

// StorageError wraps an I/O failure on the journal file.
type StorageError struct {
	Op   string // "open", "read", "write"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the storage sentinel and the underlying cause.
func (e *StorageError) Unwrap() []error { return []error{ErrStorageUnavailable, e.Err} }
