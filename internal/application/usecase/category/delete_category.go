// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
// Transactions in the category become uncategorized.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, publisher adapter.EventPublisher) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := uc.categoryRepo.FindByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return lookupError(err)
	}

	if err := uc.categoryRepo.Delete(ctx, input.UserID, input.CategoryID); err != nil {
		return domainerror.NewStoreError("delete category", err)
	}

	notify(ctx, uc.publisher, category)
	return nil
}
