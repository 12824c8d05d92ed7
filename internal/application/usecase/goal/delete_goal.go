// Package goal contains savings goal use cases.
package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// DeleteGoalUseCase soft-deletes a goal. Its movements stay on their accounts.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) error {
	if _, err := uc.goalRepo.FindByID(ctx, input.UserID, input.GoalID); err != nil {
		return lookupError(err)
	}
	if err := uc.goalRepo.Delete(ctx, input.UserID, input.GoalID); err != nil {
		return domainerror.NewStoreError("delete goal", err)
	}
	return nil
}
