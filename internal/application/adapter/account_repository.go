// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
// Every read is scoped to userID; a row owned by another user is reported as not found.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// Update updates name and flags. The balance column is never written here.
	Update(ctx context.Context, account *entity.Account) error

	// Delete soft-deletes an account.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// AdjustBalance applies a signed delta to the balance.
	AdjustBalance(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error
}
