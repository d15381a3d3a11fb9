package repositories

import (
	"errors"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a uniqueness constraint is violated.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnavailable wraps store/driver failures after the driver's own
	// retry policy is exhausted.
	ErrUnavailable = errors.New("store unavailable")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
