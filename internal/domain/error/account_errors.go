// Package error defines domain-specific errors for the Wallet application.
package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the user's scope.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountArchived is returned when an archived account is used for a new movement.
	ErrAccountArchived = errors.New("account is archived")

	// ErrInvalidAccountName is returned when the account name is empty or too long.
	ErrInvalidAccountName = errors.New("invalid account name")

	// ErrInvalidOpeningBalance is returned when the opening balance has more than two decimal places.
	ErrInvalidOpeningBalance = errors.New("invalid opening balance")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is the error kind and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAccountName    AccountErrorCode = "ACC-010001"
	ErrCodeAccountArchived       AccountErrorCode = "ACC-010002"
	ErrCodeMissingAccountFields  AccountErrorCode = "ACC-010003"
	ErrCodeInvalidOpeningBalance AccountErrorCode = "ACC-010004"

	// Not found errors (02XXXX)
	ErrCodeAccountNotFound AccountErrorCode = "ACC-020001"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *AccountError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the human readable message.
func (e *AccountError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *AccountError) Kind() ErrorKind { return kindFromCode(string(e.Code)) }

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
