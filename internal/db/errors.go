package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an operation targets a row that does not exist.
// Single-row reads that may legitimately find nothing return nil instead.
var ErrNotFound = errors.New("record not found")

// StoreError wraps any failure reported by the database (connectivity,
// constraint violation, bad query) with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeErr wraps err as a StoreError. nil stays nil.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err came from the database.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
