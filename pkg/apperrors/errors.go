package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error that knows how it should be rendered to HTTP callers.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}

	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As compatibility.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// Is matches on Code so copies made by WithInternal still compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithInternal returns a copy of the AppError with an attached internal error.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Internal = err
	return &cpy
}

var (
	ErrInvalidArgument = &AppError{
		Code:       "INVALID_ARGUMENT",
		Message:    "Invalid argument",
		StatusCode: http.StatusBadRequest,
	}

	// ErrInvalidCity carries the exact message returned by both forecast routes.
	ErrInvalidCity = &AppError{
		Code:       "INVALID_CITY",
		Message:    "Please provide a valid city.",
		StatusCode: http.StatusBadRequest,
	}

	// ErrConfig is fatal at startup; it never reaches an HTTP caller.
	ErrConfig = &AppError{
		Code:       "CONFIGURATION_ERROR",
		Message:    "Invalid configuration",
		StatusCode: http.StatusInternalServerError,
	}

	ErrInternalServer = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// FromError converts a generic error into an AppError, defaulting to ErrInternalServer.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return ErrInternalServer.WithInternal(err)
}
