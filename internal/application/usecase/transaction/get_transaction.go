// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// GetTransactionInput represents the input for fetching one transaction.
type GetTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// GetTransactionOutput represents the output of fetching one transaction.
type GetTransactionOutput struct {
	Transaction *entity.Transaction
	Category    *entity.Category
}

// GetTransactionUseCase handles fetching a transaction with its category.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute loads the transaction.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	txn, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID)
	if err != nil {
		return nil, lookupError(err)
	}

	output := &GetTransactionOutput{Transaction: txn}
	if txn.CategoryID != nil {
		// A missing category only leaves the response without one.
		if category, err := uc.categoryRepo.FindByID(ctx, input.UserID, *txn.CategoryID); err == nil {
			output.Category = category
		}
	}
	return output, nil
}
