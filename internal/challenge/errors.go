package challenge

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned when an amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be > 0")

	// ErrUnknownID is returned when no slot carries the requested id.
	ErrUnknownID = errors.New("unknown deposit id")

	// ErrNotCompleted is returned when updating a pending slot.
	ErrNotCompleted = errors.New("deposit is not completed")

	// ErrInvalidFile is returned when imported text fails to parse or validate.
	ErrInvalidFile = errors.New("invalid file")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// ValidationError describes why a decoded value is not a valid state.
type ValidationError struct {
	Path   string // e.g. "deposits[4].amount"
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func invalid(path, reason string) *ValidationError {
	return &ValidationError{Path: path, Reason: reason}
}
