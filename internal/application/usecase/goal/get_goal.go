// Package goal contains savings goal use cases.
package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// GetGoalInput represents the input for fetching one goal.
type GetGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// GetGoalOutput represents the output of fetching one goal.
type GetGoalOutput struct {
	Goal *entity.Goal
}

// GetGoalUseCase handles fetching a single goal.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{goalRepo: goalRepo}
}

// Execute loads the goal.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.UserID, input.GoalID)
	if err != nil {
		return nil, lookupError(err)
	}
	return &GetGoalOutput{Goal: goal}, nil
}
