// Package account contains account-related use cases.
package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// UpdateAccountInput represents the input for account update.
// The balance is not editable; it follows the account's transactions.
type UpdateAccountInput struct {
	UserID          uuid.UUID
	AccountID       uuid.UUID
	Name            *string
	IsArchived      *bool
	IncludeInTotals *bool
}

// UpdateAccountOutput represents the output of account update.
type UpdateAccountOutput struct {
	Account *entity.Account
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
	publisher   adapter.EventPublisher
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository, publisher adapter.EventPublisher) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, lookupError(err)
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		account.Name = name
	}
	if input.IsArchived != nil {
		account.IsArchived = *input.IsArchived
	}
	if input.IncludeInTotals != nil {
		account.IncludeInTotals = *input.IncludeInTotals
	}
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, domainerror.NewStoreError("update account", err)
	}

	notify(ctx, uc.publisher, account)
	return &UpdateAccountOutput{Account: account}, nil
}
