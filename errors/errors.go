package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal is the root internal error classification.
	ErrInternal = New("internal")
	// ErrInvalidArgument is the root classification for invalid input arguments.
	ErrInvalidArgument = New("invalid argument")
)

type classified struct {
	parent error
	msg    string
}

// Error implements error interface.
func (c *classified) Error() string {
	if c.parent == nil {
		return c.msg
	}
	return c.parent.Error() + ": " + c.msg
}

// Unwrap returns the parent classification.
func (c *classified) Unwrap() error {
	return c.parent
}

// New creates new root error classification with provided message.
func New(msg string) error {
	return &classified{msg: msg}
}

// Wrap creates new error classification that is a child of the 'err'.
func Wrap(err error, msg string) error {
	return &classified{parent: err, msg: msg}
}

// Wrapf creates new child error classification of the 'err' with formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return &classified{parent: err, msg: fmt.Sprintf(format, args...)}
}

// Is checks if any error in the 'err' chain matches the 'target'.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in the 'err' chain that matches the 'target'.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
