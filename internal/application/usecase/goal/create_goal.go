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

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Deadline     *time.Time // Optional
	AccountID    *uuid.UUID // Optional default funding account
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo    adapter.GoalRepository
	accountRepo adapter.AccountRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, accountRepo adapter.AccountRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo:    goalRepo,
		accountRepo: accountRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateTarget(input.TargetAmount); err != nil {
		return nil, err
	}
	deadline, err := normalizeDeadline(input.Deadline, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := checkAccount(ctx, uc.accountRepo, input.UserID, input.AccountID); err != nil {
		return nil, err
	}

	goal := entity.NewGoal(input.UserID, name, input.TargetAmount, deadline, input.AccountID)
	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, domainerror.NewStoreError("create goal", err)
	}

	return &CreateGoalOutput{Goal: goal}, nil
}
