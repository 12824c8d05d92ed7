// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// MaxNameLength is the maximum length of a goal name.
const MaxNameLength = 100

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalName,
			"name must be between 1 and 100 characters",
			domainerror.ErrInvalidGoalName,
		)
	}
	return name, nil
}

func validateTarget(target decimal.Decimal) error {
	if !target.IsPositive() || !valueobject.HasMoneyScale(target) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero with at most 2 decimal places",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	return nil
}

// normalizeDeadline drops the time of day and rejects dates before today.
func normalizeDeadline(deadline *time.Time, now time.Time) (*time.Time, error) {
	if deadline == nil {
		return nil, nil
	}
	d := valueobject.DateOf(*deadline)
	if d.Before(valueobject.DateOf(now)) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalDeadline,
			"deadline must not be in the past",
			domainerror.ErrInvalidGoalDeadline,
		)
	}
	return &d, nil
}

func lookupError(err error) error {
	if errors.Is(err, domainerror.ErrGoalNotFound) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			err,
		)
	}
	return domainerror.NewStoreError("load goal", err)
}

func checkAccount(ctx context.Context, accountRepo adapter.AccountRepository, userID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	account, err := accountRepo.FindByID(ctx, userID, *id)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return domainerror.NewAccountError(domainerror.ErrCodeAccountNotFound, "funding account not found", err)
		}
		return domainerror.NewStoreError("load account", err)
	}
	if account.IsArchived {
		return domainerror.NewAccountError(domainerror.ErrCodeAccountArchived, "funding account is archived", domainerror.ErrAccountArchived)
	}
	return nil
}
