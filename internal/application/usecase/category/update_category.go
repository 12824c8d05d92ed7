// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update. Nil fields are left unchanged.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       *string
	Color      *string
	Icon       *string
	Keywords   *[]string // Replaces the whole keyword list
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, publisher adapter.EventPublisher) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, lookupError(err)
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(name, category.Name) {
			exists, err := uc.categoryRepo.ExistsByName(ctx, input.UserID, name)
			if err != nil {
				return nil, domainerror.NewStoreError("check category name", err)
			}
			if exists {
				return nil, nameExists()
			}
		}
		category.Name = name
	}

	if input.Color != nil {
		if !isValidHexColor(*input.Color) {
			return nil, invalidColor()
		}
		category.Color = *input.Color
	}

	if input.Icon != nil && *input.Icon != "" {
		icon := *input.Icon
		if len(icon) > MaxIconLength {
			icon = icon[:MaxIconLength]
		}
		category.Icon = icon
	}

	if input.Keywords != nil {
		keywords, err := validateKeywords(*input.Keywords)
		if err != nil {
			return nil, err
		}
		category.Keywords = keywords
	}

	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, domainerror.NewStoreError("update category", err)
	}

	notify(ctx, uc.publisher, category)
	return &UpdateCategoryOutput{Category: category}, nil
}

func lookupError(err error) error {
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			err,
		)
	}
	return domainerror.NewStoreError("load category", err)
}

func notify(ctx context.Context, publisher adapter.EventPublisher, category *entity.Category) {
	if publisher == nil {
		return
	}
	event := entity.NewChangeEvent(category.UserID, entity.ChangeCategoryUpdated, category.ID)
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish change event", "event_type", event.Type, "entity_id", event.EntityID, "error", err)
	}
}
