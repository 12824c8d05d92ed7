// Package account contains account-related use cases.
package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID          uuid.UUID
	IncludeArchived bool
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts     []*entity.Account
	TotalBalance decimal.Decimal // Sum over active accounts included in totals
}

// ListAccountsUseCase handles listing accounts logic.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo}
}

// Execute lists the user's accounts.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewStoreError("list accounts", err)
	}

	output := &ListAccountsOutput{TotalBalance: entity.TotalBalance(accounts)}
	for _, a := range accounts {
		if a.IsArchived && !input.IncludeArchived {
			continue
		}
		output.Accounts = append(output.Accounts, a)
	}
	return output, nil
}
