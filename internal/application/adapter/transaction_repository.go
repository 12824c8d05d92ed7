// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID           uuid.UUID
	CreditCardID     *uuid.UUID
	AccountID        *uuid.UUID // Matches the source account and both sides of a transfer
	GoalID           *uuid.UUID
	StartDate        *time.Time // Inclusive calendar date
	EndDate          *time.Time // Inclusive calendar date
	CategoryIDs      []uuid.UUID
	Type             *entity.TransactionType
	ExcludeCancelled bool
	Search           string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// CategoryTotal is the sum of expenses booked under one category.
type CategoryTotal struct {
	CategoryID       *uuid.UUID // nil for uncategorized
	Total            decimal.Decimal
	TransactionCount int
}

// TransactionRepository defines the interface for transaction persistence operations.
// Writes apply the balance effects of the change in the same database transaction.
type TransactionRepository interface {
	// Create stores the transaction and applies its balance effects.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID within the user's scope.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error)

	// List retrieves every transaction matching the filter, oldest first.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// Update stores after and applies entity.Change(before, after).
	// Fails with domainerror.ErrTransactionChanged if before is no longer the stored version.
	Update(ctx context.Context, before, after *entity.Transaction) error

	// Delete soft-deletes the transaction and reverses its balance effects.
	Delete(ctx context.Context, transaction *entity.Transaction) error

	// SumExpensesByCategory totals completed expenses dated within [start, end] per category.
	SumExpensesByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategoryTotal, error)
}
