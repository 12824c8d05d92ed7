// Package error defines domain-specific errors for the Wallet application.
package error

// ErrCodeStoreFailure is the single code used for store failures.
const ErrCodeStoreFailure = "STO-050001"

// StoreError wraps a failure of the underlying data store.
// No partial effect has been applied when a use case returns it.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError creates a new StoreError for the given operation.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return "store failure during " + e.Op + ": " + e.Err.Error()
	}
	return "store failure during " + e.Op
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code.
func (e *StoreError) ErrorCode() string { return ErrCodeStoreFailure }

// ErrorMessage returns a message safe to show to API clients.
func (e *StoreError) ErrorMessage() string { return "the data store is unavailable, try again" }

// Kind returns KindStore.
func (e *StoreError) Kind() ErrorKind { return KindStore }
