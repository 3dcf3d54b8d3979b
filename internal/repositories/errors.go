package repositories

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when no product matches the requested id.
var ErrProductNotFound = errors.New("product not found")

// StorageError wraps a failure of the backing store, including ids the
// store cannot interpret.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func invalidIDError(op, id string) error {
	return storageError(op, fmt.Errorf("invalid product id %q", id))
}
