// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID within the user's scope.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories of a user, optionally filtered by type.
	FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// ExistsByName checks if the user already has a category with the given name.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category and detaches it from the user's transactions.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
