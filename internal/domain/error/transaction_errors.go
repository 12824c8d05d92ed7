// Package error defines domain-specific errors for the Wallet application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the user's scope.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is zero or negative.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionStatus is returned when the transaction status is invalid.
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")

	// ErrInvalidTransactionSource is returned when an expense or income does not name
	// exactly one account or credit card.
	ErrInvalidTransactionSource = errors.New("transaction must reference exactly one account or credit card")

	// ErrSameTransferAccounts is returned when a transfer moves money to the same account.
	ErrSameTransferAccounts = errors.New("transfer accounts must be different")

	// ErrGoalRequiresAccount is returned when a goal movement is not tied to an account.
	ErrGoalRequiresAccount = errors.New("goal movements must use an account")

	// ErrTransactionChanged is returned when the transaction was modified concurrently.
	ErrTransactionChanged = errors.New("transaction was changed by another request")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrDescriptionRequired is returned when a description is needed but empty.
	ErrDescriptionRequired = errors.New("description is required")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is the error kind and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionStatus TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionSource TransactionErrorCode = "TXN-010005"
	ErrCodeSameTransferAccounts     TransactionErrorCode = "TXN-010006"
	ErrCodeGoalRequiresAccount      TransactionErrorCode = "TXN-010007"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010008"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010009"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010010"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnCategoryNotFound TransactionErrorCode = "TXN-020002"
	ErrCodeTxnAccountNotFound  TransactionErrorCode = "TXN-020003"
	ErrCodeTxnCardNotFound     TransactionErrorCode = "TXN-020004"
	ErrCodeTxnGoalNotFound     TransactionErrorCode = "TXN-020005"

	// Invalid state errors (03XXXX)
	ErrCodeTransactionChanged TransactionErrorCode = "TXN-030001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *TransactionError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the human readable message.
func (e *TransactionError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *TransactionError) Kind() ErrorKind { return kindFromCode(string(e.Code)) }

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
