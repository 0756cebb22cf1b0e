// Package errors provides error helpers used across the project:
// simple constructors, wrapping with a message prefix and a multi-error
// container that renders sub-errors as a bullet list.
package errors

import (
	"errors"
	"fmt"
)

func New(text string) error {
	return errors.New(text)
}

func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap adds a message prefix to the error.
func Wrap(err error, msg string) error {
	return PrefixError(err, msg)
}

// Wrapf adds a formatted message prefix to the error.
func Wrapf(err error, format string, a ...any) error {
	return PrefixErrorf(err, format, a...)
}

// Format renders the error, including sub-errors of a MultiError.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
