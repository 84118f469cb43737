// Package errors provides an API for errors across the application.
package errors

import (
	goerrors "errors"
	"fmt"
	"io/fs"
)

// InputError is returned when a user supplied value fails validation.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failure to read or write persisted bank state.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err was caused by invalid user input.
func IsInputError(err error) bool {
	var ie *InputError
	return goerrors.As(err, &ie)
}

// IsStorageError reports whether err was raised by a storage backend.
func IsStorageError(err error) bool {
	var se *StorageError
	return goerrors.As(err, &se)
}

// IsNotExist reports whether err means there is no previously persisted data.
func IsNotExist(err error) bool {
	return goerrors.Is(err, fs.ErrNotExist)
}
