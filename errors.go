package rendercache

import (
	"errors"
	"fmt"
)

var errMissingAfterWrite = errors.New("artifact missing after write")

// RenderError reports a failed renderer invocation: nonzero exit, timeout,
// cancellation, missing output, or an artifact that could not be encoded.
// The wrapped error carries renderer-specific detail (e.g. *execrender.Error
// with exit code and captured stderr).
type RenderError struct {
	Key string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q failed: %v", e.Key, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// StorageError reports a failed store operation. Op is one of
// "get", "put", "exists", or "read_back".
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
