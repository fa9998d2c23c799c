package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNotFound indicates that a referenced note, label or block does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAnchorNotFound indicates that an ordering operation referenced a sibling
	// that is not part of the list. Callers inserting blocks should treat it as
	// "append at end" rather than failing the whole operation.
	ErrAnchorNotFound = errors.New("anchor sibling not found")
)

// ValidationError signals a recoverable domain rule violation
// (content too long, too many blocks, duplicate label name).
// It is meant to be surfaced to the user, never treated as fatal.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError signals a persistence I/O failure (quota exceeded, corrupted
// read, broken connection). It always wraps the underlying cause and must
// propagate to the caller; the core never retries and never swallows it.
type StorageError struct {
	Op  string // e.g. "put notes/abc123"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storagef wraps err in a StorageError with a formatted operation description.
func Storagef(err error, format string, args ...any) error {
	return &StorageError{Op: fmt.Sprintf(format, args...), Err: err}
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
