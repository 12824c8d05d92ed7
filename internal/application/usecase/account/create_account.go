// Package account contains account-related use cases.
package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID          uuid.UUID
	Name            string
	OpeningBalance  decimal.Decimal
	IncludeInTotals *bool // Optional, defaults to true
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	if !valueobject.HasMoneyScale(input.OpeningBalance) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidOpeningBalance,
			"opening balance must have at most 2 decimal places",
			domainerror.ErrInvalidOpeningBalance,
		)
	}

	include := true
	if input.IncludeInTotals != nil {
		include = *input.IncludeInTotals
	}

	account := entity.NewAccount(input.UserID, name, input.OpeningBalance, include)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, domainerror.NewStoreError("create account", err)
	}

	return &CreateAccountOutput{Account: account}, nil
}
