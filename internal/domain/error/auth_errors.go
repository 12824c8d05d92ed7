// Package error defines domain-specific errors for the Wallet application.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register with an existing email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrWeakPassword is returned when the provided password does not meet requirements.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrInvalidEmail is returned when the provided email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrMissingName is returned when registering without a name.
	ErrMissingName = errors.New("name is required")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is the error kind and YYYY is specific error.
type AuthErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010002"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010003"

	// Conflict errors (03XXXX)
	ErrCodeEmailExists AuthErrorCode = "AUTH-030001"

	// Credential and token errors (04XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-040001"
	ErrCodeInvalidToken       AuthErrorCode = "AUTH-040002"
	ErrCodeExpiredToken       AuthErrorCode = "AUTH-040003"
	ErrCodeMissingToken       AuthErrorCode = "AUTH-040004"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-040005"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *AuthError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the human readable message.
func (e *AuthError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *AuthError) Kind() ErrorKind { return kindFromCode(string(e.Code)) }

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
