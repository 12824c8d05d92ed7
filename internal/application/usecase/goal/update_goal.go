// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update. Nil fields are left unchanged.
type UpdateGoalInput struct {
	UserID        uuid.UUID
	GoalID        uuid.UUID
	Name          *string
	TargetAmount  *decimal.Decimal
	Deadline      *time.Time
	ClearDeadline bool
	AccountID     *uuid.UUID
	ClearAccount  bool
	IsArchived    *bool
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic. The saved amount is not editable.
type UpdateGoalUseCase struct {
	goalRepo    adapter.GoalRepository
	accountRepo adapter.AccountRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, accountRepo adapter.AccountRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo:    goalRepo,
		accountRepo: accountRepo,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.UserID, input.GoalID)
	if err != nil {
		return nil, lookupError(err)
	}

	now := time.Now().UTC()

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		goal.Name = name
	}
	if input.TargetAmount != nil {
		if err := validateTarget(*input.TargetAmount); err != nil {
			return nil, err
		}
		goal.TargetAmount = *input.TargetAmount
	}
	switch {
	case input.ClearDeadline:
		goal.Deadline = nil
	case input.Deadline != nil:
		deadline, err := normalizeDeadline(input.Deadline, now)
		if err != nil {
			return nil, err
		}
		goal.Deadline = deadline
	}
	switch {
	case input.ClearAccount:
		goal.AccountID = nil
	case input.AccountID != nil:
		if err := checkAccount(ctx, uc.accountRepo, input.UserID, input.AccountID); err != nil {
			return nil, err
		}
		goal.AccountID = input.AccountID
	}
	if input.IsArchived != nil {
		goal.IsArchived = *input.IsArchived
	}
	goal.UpdatedAt = now

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, domainerror.NewStoreError("update goal", err)
	}

	return &UpdateGoalOutput{Goal: goal}, nil
}
