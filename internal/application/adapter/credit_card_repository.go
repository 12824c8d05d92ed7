// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CreditCardRepository defines the interface for credit card persistence operations.
type CreditCardRepository interface {
	// Create creates a new credit card in the database.
	Create(ctx context.Context, card *entity.CreditCard) error

	// FindByID retrieves a card by its ID within the user's scope.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.CreditCard, error)

	// FindByUser retrieves all cards for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CreditCard, error)

	// Update updates the card settings. current_used is never written here.
	Update(ctx context.Context, card *entity.CreditCard) error

	// Delete soft-deletes a card.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
