// Package errors carries the pipeline's error taxonomy.
//
// Only INVALID_INPUT and NOT_FOUND abort a run. UNAVAILABLE is raised by the
// text-generation layer and is absorbed by the stage runners.
package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	ErrTypeInvalidInput ErrorType = "INVALID_INPUT"
	ErrTypeInternal     ErrorType = "INTERNAL"
	ErrTypeUnavailable  ErrorType = "UNAVAILABLE"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func NotFound(message string, err error) *DomainError {
	return New(ErrTypeNotFound, message, err)
}

func InvalidInput(message string, err error) *DomainError {
	return New(ErrTypeInvalidInput, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

func Unavailable(message string, err error) *DomainError {
	return New(ErrTypeUnavailable, message, err)
}

// IsType reports whether any DomainError in err's chain has the given type.
func IsType(err error, t ErrorType) bool {
	var de *DomainError
	for err != nil {
		if !stderrors.As(err, &de) {
			return false
		}
		if de.Type == t {
			return true
		}
		err = de.Err
	}
	return false
}

// IsFatal reports whether err should abort a stage with a non-zero exit.
func IsFatal(err error) bool {
	return IsType(err, ErrTypeInvalidInput) || IsType(err, ErrTypeNotFound)
}

// ExitMessage renders the stderr line for an error that ends a stage. Input
// errors are labelled so the operator knows to fix the file, not retry.
func ExitMessage(msg string, err error) string {
	if IsFatal(err) {
		return fmt.Sprintf("input error: %s: %v", msg, err)
	}
	return fmt.Sprintf("error: %s: %v", msg, err)
}
