// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update.
// Fields replace every user-supplied field of the transaction.
type UpdateTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Fields        Fields
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refs            references
	refresher       BillRefresher
	publisher       adapter.EventPublisher
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	cardRepo adapter.CreditCardRepository,
	goalRepo adapter.GoalRepository,
	categoryRepo adapter.CategoryRepository,
	refresher BillRefresher,
	publisher adapter.EventPublisher,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		refs: references{
			accountRepo:  accountRepo,
			cardRepo:     cardRepo,
			goalRepo:     goalRepo,
			categoryRepo: categoryRepo,
		},
		refresher: refresher,
		publisher: publisher,
	}
}

// Execute revises the transaction and moves its balance effects from the old to the new values.
// Bills of both the old and the new card period are refreshed.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	before, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID)
	if err != nil {
		return nil, lookupError(err)
	}

	draft, err := input.Fields.Draft()
	if err != nil {
		return nil, err
	}
	if err := uc.refs.check(ctx, input.UserID, draft, before); err != nil {
		return nil, err
	}

	after := before.Clone()
	if err := after.Revise(draft); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Update(ctx, before, after); err != nil {
		return nil, writeError("update transaction", err)
	}
	after.Version = before.Version + 1

	afterWrite(ctx, uc.refresher, uc.publisher, entity.ChangeTransactionUpdated, before, after)

	return &UpdateTransactionOutput{Transaction: after}, nil
}
