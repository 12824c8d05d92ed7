// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// MoveMoneyInput represents a contribution to or a withdrawal from a goal.
type MoveMoneyInput struct {
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	AccountID   *uuid.UUID // Optional, defaults to the goal's funding account
	Date        *time.Time // Optional, defaults to today
	Description string
}

// MoveMoneyOutput represents the output of a goal movement.
type MoveMoneyOutput struct {
	Goal        *entity.Goal
	Transaction *entity.Transaction
}

// TransactionCreator books the transaction that carries a goal movement.
type TransactionCreator interface {
	Execute(ctx context.Context, input transaction.CreateTransactionInput) (*transaction.CreateTransactionOutput, error)
}

// ContributeUseCase moves money from an account into a goal.
type ContributeUseCase struct {
	goalRepo adapter.GoalRepository
	creator  TransactionCreator
}

// NewContributeUseCase creates a new ContributeUseCase instance.
func NewContributeUseCase(goalRepo adapter.GoalRepository, creator TransactionCreator) *ContributeUseCase {
	return &ContributeUseCase{goalRepo: goalRepo, creator: creator}
}

// Execute books an expense on the account tagged with the goal.
func (uc *ContributeUseCase) Execute(ctx context.Context, input MoveMoneyInput) (*MoveMoneyOutput, error) {
	return move(ctx, uc.goalRepo, uc.creator, input, entity.TransactionTypeExpense)
}

// WithdrawUseCase moves money from a goal back to an account.
type WithdrawUseCase struct {
	goalRepo adapter.GoalRepository
	creator  TransactionCreator
}

// NewWithdrawUseCase creates a new WithdrawUseCase instance.
func NewWithdrawUseCase(goalRepo adapter.GoalRepository, creator TransactionCreator) *WithdrawUseCase {
	return &WithdrawUseCase{goalRepo: goalRepo, creator: creator}
}

// Execute books an income on the account tagged with the goal.
func (uc *WithdrawUseCase) Execute(ctx context.Context, input MoveMoneyInput) (*MoveMoneyOutput, error) {
	return move(ctx, uc.goalRepo, uc.creator, input, entity.TransactionTypeIncome)
}

func move(
	ctx context.Context,
	goalRepo adapter.GoalRepository,
	creator TransactionCreator,
	input MoveMoneyInput,
	txnType entity.TransactionType,
) (*MoveMoneyOutput, error) {
	if !input.Amount.IsPositive() || !valueobject.HasMoneyScale(input.Amount) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalMovement,
			"amount must be greater than zero with at most 2 decimal places",
			domainerror.ErrInvalidGoalMovement,
		)
	}

	goal, err := goalRepo.FindByID(ctx, input.UserID, input.GoalID)
	if err != nil {
		return nil, lookupError(err)
	}
	if goal.IsArchived {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalArchived,
			"goal is archived",
			domainerror.ErrGoalArchived,
		)
	}

	accountID := input.AccountID
	if accountID == nil {
		accountID = goal.AccountID
	}
	if accountID == nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalAccountRequired,
			"account_id is required when the goal has no funding account",
			domainerror.ErrGoalAccountRequired,
		)
	}

	if txnType == entity.TransactionTypeIncome && input.Amount.GreaterThan(goal.SavedAmount) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInsufficientGoalBalance,
			"goal does not hold enough to withdraw",
			domainerror.ErrInsufficientGoalBalance,
		)
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}
	description := input.Description
	if description == "" {
		if txnType == entity.TransactionTypeExpense {
			description = "Contribution to " + goal.Name
		} else {
			description = "Withdrawal from " + goal.Name
		}
	}

	out, err := creator.Execute(ctx, transaction.CreateTransactionInput{
		UserID: input.UserID,
		Fields: transaction.Fields{
			Type:        txnType,
			Amount:      input.Amount,
			Description: description,
			Date:        date,
			AccountID:   accountID,
			GoalID:      &goal.ID,
		},
	})
	if err != nil {
		return nil, err
	}

	// The transaction write moved saved_amount; read it back.
	updated, err := goalRepo.FindByID(ctx, input.UserID, input.GoalID)
	if err != nil {
		return nil, lookupError(err)
	}

	return &MoveMoneyOutput{Goal: updated, Transaction: out.Transaction}, nil
}
