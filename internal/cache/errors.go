package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a required document does not exist
	ErrNotFound = errors.New("document not found")

	// ErrLocked is returned when another session holds the document lock
	ErrLocked = errors.New("document is locked by another session")
)

// CorruptDataError reports a document that exists but cannot be used
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt document %s: %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

func corrupt(path string, format string, args ...any) error {
	return &CorruptDataError{Path: path, Err: fmt.Errorf(format, args...)}
}
