// Package error defines domain-specific errors for the Wallet application.
package error

import "errors"

// Email errors.
var (
	// ErrTemplateRenderFailed is returned when email template rendering fails.
	ErrTemplateRenderFailed = errors.New("failed to render email template")

	// ErrPermanentEmailFailure is returned when an email fails with a permanent error.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure is returned when an email fails with a temporary error.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode defines error codes for email errors.
// Email failures never reach API clients; they are all external-dependency failures.
type EmailErrorCode string

const (
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-050001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-050002"
	ErrCodeTemplateRenderFailed  EmailErrorCode = "EMAIL-050003"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error code.
func (e *EmailError) Is(target error) bool {
	switch e.Code {
	case ErrCodeTemporaryEmailFailure:
		return target == ErrTemporaryEmailFailure
	case ErrCodePermanentEmailFailure:
		return target == ErrPermanentEmailFailure
	case ErrCodeTemplateRenderFailed:
		return target == ErrTemplateRenderFailed
	}
	return false
}

// ErrorCode returns the error code as a string.
func (e *EmailError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the human readable message.
func (e *EmailError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *EmailError) Kind() ErrorKind { return kindFromCode(string(e.Code)) }

// IsPermanent reports whether retrying cannot help.
func (e *EmailError) IsPermanent() bool {
	return e.Code == ErrCodePermanentEmailFailure || e.Code == ErrCodeTemplateRenderFailed
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
