// Package error defines domain-specific errors for the Wallet application.
package error

import (
	"errors"
	"strings"
)

// ErrorKind classifies a domain error for callers that need to react to it.
// Every error code has the shape PFX-XXYYYY where XX is the kind below.
type ErrorKind string

const (
	KindUnknown      ErrorKind = "unknown"
	KindValidation   ErrorKind = "validation"    // 01
	KindNotFound     ErrorKind = "not_found"     // 02
	KindInvalidState ErrorKind = "invalid_state" // 03
	KindUnauthorized ErrorKind = "unauthorized"  // 04
	KindStore        ErrorKind = "store"         // 05
)

// Coded is implemented by every domain error that carries a code.
type Coded interface {
	error
	ErrorCode() string
	ErrorMessage() string
	Kind() ErrorKind
}

// kindFromCode extracts the kind digits from a PFX-XXYYYY code.
func kindFromCode(code string) ErrorKind {
	dash := strings.IndexByte(code, '-')
	if dash < 0 || len(code) < dash+3 {
		return KindUnknown
	}

	switch code[dash+1 : dash+3] {
	case "01":
		return KindValidation
	case "02":
		return KindNotFound
	case "03":
		return KindInvalidState
	case "04":
		return KindUnauthorized
	case "05":
		return KindStore
	default:
		return KindUnknown
	}
}

// KindOf returns the kind of the first coded error in err's chain.
func KindOf(err error) ErrorKind {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.Kind()
	}
	return KindUnknown
}

// AsCoded returns the first coded error in err's chain.
func AsCoded(err error) (Coded, bool) {
	var coded Coded
	if errors.As(err, &coded) {
		return coded, true
	}
	return nil, false
}
