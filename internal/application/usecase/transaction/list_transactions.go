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

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID           uuid.UUID
	AccountID        *uuid.UUID
	CreditCardID     *uuid.UUID
	GoalID           *uuid.UUID
	StartDate        *time.Time
	EndDate          *time.Time
	CategoryIDs      []uuid.UUID
	Type             *entity.TransactionType
	ExcludeCancelled bool
	Search           string
	Page             int
	Limit            int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Result *entity.TransactionListResult
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	if input.Type != nil {
		switch *input.Type {
		case entity.TransactionTypeExpense, entity.TransactionTypeIncome, entity.TransactionTypeTransfer:
		default:
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"type must be 'expense', 'income' or 'transfer'",
				domainerror.ErrInvalidTransactionType,
			)
		}
	}

	filter := adapter.TransactionFilter{
		UserID:           input.UserID,
		AccountID:        input.AccountID,
		CreditCardID:     input.CreditCardID,
		GoalID:           input.GoalID,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		CategoryIDs:      input.CategoryIDs,
		Type:             input.Type,
		ExcludeCancelled: input.ExcludeCancelled,
		Search:           input.Search,
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.TransactionPagination{Page: page, Limit: limit})
	if err != nil {
		return nil, domainerror.NewStoreError("list transactions", err)
	}

	return &ListTransactionsOutput{Result: result}, nil
}
