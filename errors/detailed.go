package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/google/uuid"
)

// DetailedError is the classified error definition with a trackable instance ID.
// It matches its Class and every ancestor of the Class with the Is function.
type DetailedError struct {
	// ID is a unique error instance identification number.
	ID uuid.UUID
	// Class defines the error classification.
	Class error
	// Details contains the detailed information.
	Details string
	// Message is a message used as a string for the golang error interface implementation.
	Message string
	// Operation is the operation name when the error occurred.
	Operation string
	// Cause is the optional error that caused this one.
	Cause error
}

// NewDet creates DetailedError with given 'class' and message 'message'.
func NewDet(c error, message string) *DetailedError {
	err := newDetailed(c)
	err.Message = message
	return err
}

// NewDetf creates DetailedError instance with provided 'class' with formatted message.
func NewDetf(c error, format string, args ...interface{}) *DetailedError {
	err := newDetailed(c)
	err.Message = fmt.Sprintf(format, args...)
	return err
}

// WrapDet creates DetailedError of given 'class' caused by the 'cause' error.
func WrapDet(cause error, c error) *DetailedError {
	err := newDetailed(c)
	err.Cause = cause
	if cause != nil {
		err.Message = cause.Error()
	}
	return err
}

// Error implements error interface.
func (e *DetailedError) Error() string {
	if e.Class == nil {
		return e.Message
	}
	return e.Class.Error() + ": " + e.Message
}

// Unwrap returns the error classification.
func (e *DetailedError) Unwrap() error {
	return e.Class
}

// WithDetail sets the error 'detail' and returns itself.
func (e *DetailedError) WithDetail(detail string) *DetailedError {
	e.Details = detail
	return e
}

// WithDetailf sets the error's formatted detail with provided and returns itself.
func (e *DetailedError) WithDetailf(format string, args ...interface{}) *DetailedError {
	e.Details = fmt.Sprintf(format, args...)
	return e
}

// WrapDetail wraps the 'detail' for given error. Wrapping appends the new detail
// to the front of error detail message.
func (e *DetailedError) WrapDetail(detail string) *DetailedError {
	if e.Details == "" {
		e.Details = detail
	} else {
		e.Details = detail + " " + e.Details
	}
	return e
}

// WrapDetailf wraps the detail with provided formatting for given error.
func (e *DetailedError) WrapDetailf(format string, args ...interface{}) *DetailedError {
	return e.WrapDetail(fmt.Sprintf(format, args...))
}

func newDetailed(c error) *DetailedError {
	err := &DetailedError{
		ID:    uuid.New(),
		Class: c,
	}
	pc, _, _, ok := runtime.Caller(2)
	details := runtime.FuncForPC(pc)
	if ok && details != nil {
		file, line := details.FileLine(pc)
		_, singleFile := filepath.Split(file)
		err.Operation = details.Name() + "#" + singleFile + ":" + strconv.Itoa(line)
	}
	return err
}
