// Package creditcard contains credit card use cases.
package creditcard

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// MaxNameLength is the maximum length of a card name.
const MaxNameLength = 100

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidCardName,
			"name must be between 1 and 100 characters",
			domainerror.ErrInvalidCardName,
		)
	}
	return name, nil
}

func validateLimit(limit decimal.Decimal) error {
	if limit.IsNegative() || !valueobject.HasMoneyScale(limit) {
		return domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidCreditLimit,
			"credit limit must not be negative and must have at most 2 decimal places",
			domainerror.ErrInvalidCreditLimit,
		)
	}
	return nil
}

func validateDays(closingDay, dueDay int) error {
	if err := valueobject.ValidateClosingDay(closingDay); err != nil {
		return err
	}
	return valueobject.ValidateDueDay(dueDay)
}

// checkPaymentAccount ensures the default payment account belongs to the user and is active.
func checkPaymentAccount(ctx context.Context, accountRepo adapter.AccountRepository, userID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	account, err := accountRepo.FindByID(ctx, userID, *id)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return domainerror.NewCreditCardError(
				domainerror.ErrCodeCardPaymentAccount,
				"payment account not found",
				err,
			)
		}
		return domainerror.NewStoreError("load account", err)
	}
	if account.IsArchived {
		return domainerror.NewCreditCardError(
			domainerror.ErrCodeCardPaymentAccount,
			"payment account is archived",
			domainerror.ErrAccountArchived,
		)
	}
	return nil
}

func lookupError(err error) error {
	if errors.Is(err, domainerror.ErrCreditCardNotFound) {
		return domainerror.NewCreditCardError(
			domainerror.ErrCodeCreditCardNotFound,
			"credit card not found",
			err,
		)
	}
	return domainerror.NewStoreError("load credit card", err)
}
