package analysis

import (
	"errors"
	"fmt"
)

// Error kinds returned by the calculators. Callers match them with errors.Is.
var (
	ErrEmptyInput       = errors.New("empty input")
	ErrNoValidData      = errors.New("no valid data")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidRange     = errors.New("invalid range")
	ErrNotImplemented   = errors.New("method not implemented")
	ErrLengthMismatch   = errors.New("curve length mismatch")
)

// CalcError records which operation failed and on what subject (a curve,
// a parameter or a method name).
type CalcError struct {
	Op      string
	Subject string
	Detail  string
	Err     error
}

func (e *CalcError) Error() string {
	msg := e.Op
	if e.Subject != "" {
		msg += " " + e.Subject
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *CalcError) Unwrap() error {
	return e.Err
}

// NewError wraps kind with the operation and subject that produced it.
func NewError(op, subject string, kind error, format string, args ...any) error {
	detail := ""
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	return &CalcError{Op: op, Subject: subject, Detail: detail, Err: kind}
}

// IsNotImplemented reports whether err comes from a declared but unbuilt method.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// CheckSameLength fails with ErrLengthMismatch if any named curve differs in
// length from the first one. Nil curves are skipped.
func CheckSameLength(op string, names []string, curves ...[]float64) error {
	ref := -1
	refName := ""
	for i, c := range curves {
		if c == nil {
			continue
		}
		name := ""
		if i < len(names) {
			name = names[i]
		}
		if ref < 0 {
			ref = len(c)
			refName = name
			continue
		}
		if len(c) != ref {
			return NewError(op, name, ErrLengthMismatch, "%s has %d samples, %s has %d", name, len(c), refName, ref)
		}
	}
	return nil
}
