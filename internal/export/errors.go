package export

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned when a payload matches none of the
// supported export shapes.
var ErrUnknownFormat = errors.New("export: unrecognized format")

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Value)
}

type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s", e.Field, e.Value)
}

// EntryError ties a per-entry failure to its position in the source
// list. One bad entry never aborts the batch.
type EntryError struct {
	Index int
	Err   error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("entry #%d: %v", e.Index+1, e.Err)
}

func (e EntryError) Unwrap() error {
	return e.Err
}
