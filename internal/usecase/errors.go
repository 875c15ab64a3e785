package usecase

import (
	"errors"
	"fmt"
)

// NotFoundError reports an unknown id. It is distinct from validation
// failures so callers can answer 404 instead of 400.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// BackingStoreError wraps an I/O failure of the primary store.
type BackingStoreError struct {
	Op  string
	Err error
}

func (e *BackingStoreError) Error() string {
	return fmt.Sprintf("backing store %s: %v", e.Op, e.Err)
}

func (e *BackingStoreError) Unwrap() error {
	return e.Err
}

func IsBackingStoreError(err error) bool {
	var bs *BackingStoreError
	return errors.As(err, &bs)
}
