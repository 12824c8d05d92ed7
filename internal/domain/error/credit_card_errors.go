// Package error defines domain-specific errors for the Wallet application.
package error

import "errors"

// Credit card domain errors.
var (
	// ErrCreditCardNotFound is returned when a card is not found in the user's scope.
	ErrCreditCardNotFound = errors.New("credit card not found")

	// ErrCreditCardArchived is returned when an archived card is used for a new charge.
	ErrCreditCardArchived = errors.New("credit card is archived")

	// ErrInvalidCreditLimit is returned when the credit limit is negative.
	ErrInvalidCreditLimit = errors.New("invalid credit limit")

	// ErrInvalidCardName is returned when the card name is empty or too long.
	ErrInvalidCardName = errors.New("invalid credit card name")
)

// CreditCardErrorCode defines error codes for credit card errors.
// Format: CRD-XXYYYY where XX is the error kind and YYYY is specific error.
type CreditCardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCardName    CreditCardErrorCode = "CRD-010001"
	ErrCodeInvalidCreditLimit CreditCardErrorCode = "CRD-010002"
	ErrCodeCreditCardArchived CreditCardErrorCode = "CRD-010004"
	ErrCodeMissingCardFields  CreditCardErrorCode = "CRD-010005"
	ErrCodeCardPaymentAccount CreditCardErrorCode = "CRD-010006"

	// Not found errors (02XXXX)
	ErrCodeCreditCardNotFound CreditCardErrorCode = "CRD-020001"
)

// CreditCardError represents a credit card error with code and message.
type CreditCardError struct {
	Code    CreditCardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CreditCardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CreditCardError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *CreditCardError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the human readable message.
func (e *CreditCardError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *CreditCardError) Kind() ErrorKind { return kindFromCode(string(e.Code)) }

// NewCreditCardError creates a new CreditCardError with the given code and message.
func NewCreditCardError(code CreditCardErrorCode, message string, err error) *CreditCardError {
	return &CreditCardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
