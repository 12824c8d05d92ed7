// Package error defines domain-specific errors for the Wallet application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the user's scope.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidGoalName is returned when the goal name is empty or too long.
	ErrInvalidGoalName = errors.New("invalid goal name")

	// ErrInvalidGoalMovement is returned when a contribution or withdrawal amount is not positive.
	ErrInvalidGoalMovement = errors.New("invalid goal movement amount")

	// ErrInsufficientGoalBalance is returned when withdrawing more than the goal holds.
	ErrInsufficientGoalBalance = errors.New("goal does not hold enough to withdraw")

	// ErrGoalArchived is returned when moving money into or out of an archived goal.
	ErrGoalArchived = errors.New("goal is archived")

	// ErrGoalAccountRequired is returned when no funding account was given and the goal has none.
	ErrGoalAccountRequired = errors.New("funding account is required")

	// ErrInvalidGoalDeadline is returned when a deadline lies in the past.
	ErrInvalidGoalDeadline = errors.New("goal deadline must not be in the past")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is the error kind and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTargetAmount GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalName     GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalMovement GoalErrorCode = "GOL-010003"
	ErrCodeGoalAccountRequired GoalErrorCode = "GOL-010004"
	ErrCodeMissingGoalFields   GoalErrorCode = "GOL-010005"
	ErrCodeInvalidGoalDeadline GoalErrorCode = "GOL-010006"

	// Not found errors (02XXXX)
	ErrCodeGoalNotFound GoalErrorCode = "GOL-020001"

	// Invalid state errors (03XXXX)
	ErrCodeInsufficientGoalBalance GoalErrorCode = "GOL-030001"
	ErrCodeGoalArchived            GoalErrorCode = "GOL-030002"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code as a string.
func (e *GoalError) ErrorCode() string { return string(e.Code) }

// ErrorMessage returns the human readable message.
func (e *GoalError) ErrorMessage() string { return e.Message }

// Kind returns the error kind encoded in the code.
func (e *GoalError) Kind() ErrorKind { return kindFromCode(string(e.Code)) }

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
