// Package account contains account-related use cases.
package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// GetAccountInput represents the input for fetching one account.
type GetAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// GetAccountOutput represents the output of fetching one account.
type GetAccountOutput struct {
	Account *entity.Account
}

// GetAccountUseCase handles fetching a single account.
type GetAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(accountRepo adapter.AccountRepository) *GetAccountUseCase {
	return &GetAccountUseCase{accountRepo: accountRepo}
}

// Execute loads the account.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*GetAccountOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, lookupError(err)
	}
	return &GetAccountOutput{Account: account}, nil
}
