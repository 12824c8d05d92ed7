// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refresher       BillRefresher
	publisher       adapter.EventPublisher
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	refresher BillRefresher,
	publisher adapter.EventPublisher,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		refresher:       refresher,
		publisher:       publisher,
	}
}

// Execute soft-deletes the transaction and reverses its balance effects.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	txn, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID)
	if err != nil {
		return lookupError(err)
	}

	if err := uc.transactionRepo.Delete(ctx, txn); err != nil {
		return writeError("delete transaction", err)
	}

	afterWrite(ctx, uc.refresher, uc.publisher, entity.ChangeTransactionDeleted, txn, nil)
	return nil
}
