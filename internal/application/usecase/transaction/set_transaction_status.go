// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// SetTransactionStatusInput represents the input for cancelling or restoring a transaction.
type SetTransactionStatusInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Status        entity.TransactionStatus
}

// SetTransactionStatusOutput represents the output of a status change.
type SetTransactionStatusOutput struct {
	Transaction *entity.Transaction
}

// SetTransactionStatusUseCase cancels or restores a transaction.
// A cancelled transaction keeps its row but has no balance effects and leaves its bill.
type SetTransactionStatusUseCase struct {
	transactionRepo adapter.TransactionRepository
	refresher       BillRefresher
	publisher       adapter.EventPublisher
}

// NewSetTransactionStatusUseCase creates a new SetTransactionStatusUseCase instance.
func NewSetTransactionStatusUseCase(
	transactionRepo adapter.TransactionRepository,
	refresher BillRefresher,
	publisher adapter.EventPublisher,
) *SetTransactionStatusUseCase {
	return &SetTransactionStatusUseCase{
		transactionRepo: transactionRepo,
		refresher:       refresher,
		publisher:       publisher,
	}
}

// Execute applies the status. Setting the current status again is a no-op.
func (uc *SetTransactionStatusUseCase) Execute(ctx context.Context, input SetTransactionStatusInput) (*SetTransactionStatusOutput, error) {
	if !input.Status.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionStatus,
			"status must be 'completed' or 'cancelled'",
			domainerror.ErrInvalidTransactionStatus,
		)
	}

	before, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID)
	if err != nil {
		return nil, lookupError(err)
	}
	if before.Status == input.Status {
		return &SetTransactionStatusOutput{Transaction: before}, nil
	}

	after := before.Clone()
	after.Status = input.Status
	after.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, before, after); err != nil {
		return nil, writeError("update transaction status", err)
	}
	after.Version = before.Version + 1

	afterWrite(ctx, uc.refresher, uc.publisher, entity.ChangeTransactionUpdated, before, after)

	return &SetTransactionStatusOutput{Transaction: after}, nil
}
