// Package account contains account-related use cases.
package account

import (
	"errors"
	"strings"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// MaxNameLength is the maximum length of an account name.
const MaxNameLength = 100

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountName,
			"name must be between 1 and 100 characters",
			domainerror.ErrInvalidAccountName,
		)
	}
	return name, nil
}

func lookupError(err error) error {
	if errors.Is(err, domainerror.ErrAccountNotFound) {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			err,
		)
	}
	return domainerror.NewStoreError("load account", err)
}
