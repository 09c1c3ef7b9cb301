package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a generation failure
type ErrorType string

const (
	// ErrorTypeValidation is an invalid argument or input file; the run cannot
	// succeed without changing it
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	// ErrorTypeConflict means another run holds the seed
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeExternal is a failure of the persistence sink or lock service
	ErrorTypeExternal ErrorType = "external"
	ErrorTypeInternal ErrorType = "internal"
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newf(t ErrorType, format string, args ...interface{}) error {
	return &AppError{Type: t, Message: fmt.Sprintf(format, args...)}
}

func wrap(t ErrorType, message string, err error) error {
	return &AppError{Type: t, Message: message, Err: err}
}

func Validation(message string) error {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

func Validationf(format string, args ...interface{}) error {
	return newf(ErrorTypeValidation, format, args...)
}

// WrapValidation marks a decoding or parsing failure as bad input
func WrapValidation(message string, err error) error {
	return wrap(ErrorTypeValidation, message, err)
}

func NotFoundf(format string, args ...interface{}) error {
	return newf(ErrorTypeNotFound, format, args...)
}

func Conflictf(format string, args ...interface{}) error {
	return newf(ErrorTypeConflict, format, args...)
}

// WrapExternal marks err as a sink or lock failure. A run that fails this
// way can be retried with the same seed.
func WrapExternal(message string, err error) error {
	return wrap(ErrorTypeExternal, message, err)
}

// GetType returns the type of the outermost AppError in err's chain.
// Errors that carry no type are internal.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

func IsValidation(err error) bool {
	return err != nil && GetType(err) == ErrorTypeValidation
}

// IsRetryable reports whether running again with the same seed may succeed
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch GetType(err) {
	case ErrorTypeExternal, ErrorTypeConflict:
		return true
	}
	return false
}
