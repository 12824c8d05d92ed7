// Package error defines domain-specific errors for the Wallet application.
package error

import "errors"

// Billing domain errors.
var (
	// ErrInvalidClosingDay is returned when a closing day is outside 1-31.
	ErrInvalidClosingDay = errors.New("closing day must be between 1 and 31")

	// ErrInvalidDueDay is returned when a due day is outside 1-31.
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrInvalidBillingPeriod is returned when a billing period is malformed.
	ErrInvalidBillingPeriod = errors.New("invalid billing period")

	// ErrBillNotFound is returned when a bill does not exist or belongs to another user.
	ErrBillNotFound = errors.New("bill not found")

	// ErrBillAlreadyPaid is returned when paying a bill that is already paid.
	ErrBillAlreadyPaid = errors.New("bill is already paid")

	// ErrBillNotPaid is returned when reversing a payment on an unpaid bill.
	ErrBillNotPaid = errors.New("bill is not paid")

	// ErrBillAmountMismatch is returned when the supplied amount differs from the bill net total.
	ErrBillAmountMismatch = errors.New("payment amount does not match bill total")

	// ErrNothingToPay is returned when the bill net total is zero or negative.
	ErrNothingToPay = errors.New("bill has nothing to pay")

	// ErrInvalidPaymentAmount is returned when a payment amount has more than two decimal places.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrBillOperationInProgress is returned when another pay/unpay holds the bill lock.
	ErrBillOperationInProgress = errors.New("another operation on this bill is in progress")

	// ErrBillChanged is returned when the bill totals changed while a payment was prepared.
	ErrBillChanged = errors.New("bill changed while processing the request")

	// ErrPaymentAccountRequired is returned when no payment account was given and the card has none.
	ErrPaymentAccountRequired = errors.New("payment account is required")
)

// BillingErrorCode defines error codes for billing errors.
// Format: BIL-XXYYYY where XX is the error kind and YYYY is specific error.
type BillingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidClosingDay      BillingErrorCode = "BIL-010001"
	ErrCodeInvalidDueDay          BillingErrorCode = "BIL-010002"
	ErrCodeInvalidBillingPeriod   BillingErrorCode = "BIL-010003"
	ErrCodeBillAmountMismatch     BillingErrorCode = "BIL-010004"
	ErrCodePaymentAccountRequired BillingErrorCode = "BIL-010005"
	ErrCodeInvalidBillDate        BillingErrorCode = "BIL-010006"
	ErrCodeInvalidPaymentAmount   BillingErrorCode = "BIL-010007"

	// Not found errors (02XXXX)
	ErrCodeBillNotFound BillingErrorCode = "BIL-020001"

	// Invalid state errors (03XXXX)
	ErrCodeBillAlreadyPaid         BillingErrorCode = "BIL-030001"
	ErrCodeBillNotPaid             BillingErrorCode = "BIL-030002"
	ErrCodeNothingToPay            BillingErrorCode = "BIL-030003"
	ErrCodeBillOperationInProgress BillingErrorCode = "BIL-030004"
	ErrCodeBillChanged             BillingErrorCode = "BIL-030005"
)

// BillingError represents a billing error with code and message.
type BillingError struct {
	Code    BillingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillingError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *BillingError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the human readable message.
func (e *BillingError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *BillingError) Kind() ErrorKind { return kindFromCode(string(e.Code)) }

// NewBillingError creates a new BillingError with the given code and message.
func NewBillingError(code BillingErrorCode, message string, err error) *BillingError {
	return &BillingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
