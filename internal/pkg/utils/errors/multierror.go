package errors

import (
	"fmt"
	"strings"
)

// MultiError collects zero or more errors.
// The zero value returned by NewMultiError is ready to use,
// ErrorOrNil converts an empty container back to nil.
type MultiError interface {
	error
	Append(errs ...error)
	AppendWithPrefix(err error, prefix string)
	AppendWithPrefixf(err error, format string, a ...any)
	ErrorOrNil() error
	Len() int
	WrappedErrors() []error
}

type multiError struct {
	errs []error
}

func NewMultiError() MultiError {
	return &multiError{}
}

func (e *multiError) Append(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		// Flatten nested multi-errors
		if sub, ok := err.(MultiError); ok {
			e.errs = append(e.errs, sub.WrappedErrors()...)
		} else {
			e.errs = append(e.errs, err)
		}
	}
}

func (e *multiError) AppendWithPrefix(err error, prefix string) {
	if err != nil {
		e.errs = append(e.errs, PrefixError(err, prefix))
	}
}

func (e *multiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.AppendWithPrefix(err, fmt.Sprintf(format, a...))
}

func (e *multiError) ErrorOrNil() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e
}

func (e *multiError) Len() int {
	return len(e.errs)
}

func (e *multiError) WrappedErrors() []error {
	out := make([]error, len(e.errs))
	copy(out, e.errs)
	return out
}

func (e *multiError) Unwrap() []error {
	return e.WrappedErrors()
}

func (e *multiError) Error() string {
	switch len(e.errs) {
	case 0:
		return ""
	case 1:
		return e.errs[0].Error()
	default:
		lines := make([]string, 0, len(e.errs))
		for _, err := range e.errs {
			lines = append(lines, "- "+indentTail(err.Error()))
		}
		return strings.Join(lines, "\n")
	}
}

// PrefixError adds a message prefix, multi-line errors are indented under it.
func PrefixError(err error, prefix string) error {
	if err == nil {
		return nil
	}
	return &prefixError{err: err, prefix: strings.TrimRight(prefix, ".,:")}
}

func PrefixErrorf(err error, format string, a ...any) error {
	return PrefixError(err, fmt.Sprintf(format, a...))
}

type prefixError struct {
	err    error
	prefix string
}

func (e *prefixError) Unwrap() error {
	return e.err
}

func (e *prefixError) Error() string {
	msg := e.err.Error()
	if strings.Contains(msg, "\n") {
		return e.prefix + ":\n" + indent(msg)
	}
	return e.prefix + ": " + msg
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

func indentTail(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
