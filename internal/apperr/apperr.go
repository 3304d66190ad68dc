// Package apperr carries the error taxonomy the request layer maps to HTTP:
// validation failures and uniqueness conflicts are recoverable and reported,
// authentication failures carry no detail about which factor failed, and
// everything else is fatal for the current operation.
package apperr

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Validation(msg string) error {
	return New(CodeValidation, msg)
}

// Unauthenticated deliberately uses one fixed message for credential
// failures so responses don't reveal which factor was wrong.
func Unauthenticated() error {
	return New(CodeUnauthenticated, "invalid credentials or token")
}

func Forbidden(msg string) error {
	return New(CodeForbidden, msg)
}

func NotFound(msg string) error {
	return New(CodeNotFound, msg)
}

func Conflict(msg string) error {
	return New(CodeConflict, msg)
}

func Internal(cause error) error {
	return Wrap(CodeInternal, "internal error", cause)
}

// CodeOf extracts the machine code, defaulting unknown errors to internal.
func CodeOf(err error) Code {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
