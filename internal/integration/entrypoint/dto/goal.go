// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     *string         `json:"deadline,omitempty"`
	AccountID    *string         `json:"account_id,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
// Empty deadline or account_id strings clear the field.
type UpdateGoalRequest struct {
	Name         *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
	Deadline     *string          `json:"deadline,omitempty"`
	AccountID    *string          `json:"account_id,omitempty"`
	IsArchived   *bool            `json:"is_archived,omitempty"`
}

// MoveGoalMoneyRequest represents the request body for a contribution or a withdrawal.
type MoveGoalMoneyRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	AccountID   *string         `json:"account_id,omitempty"`
	Date        *string         `json:"date,omitempty"`
	Description string          `json:"description,omitempty" binding:"max=255"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	SavedAmount  decimal.Decimal `json:"saved_amount"`
	Remaining    decimal.Decimal `json:"remaining"`
	Progress     decimal.Decimal `json:"progress"`
	IsReached    bool            `json:"is_reached"`
	Deadline     *string         `json:"deadline,omitempty"`
	AccountID    *string         `json:"account_id,omitempty"`
	IsArchived   bool            `json:"is_archived"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// GoalMovementResponse represents a goal after a contribution or withdrawal.
type GoalMovementResponse struct {
	Goal        GoalResponse        `json:"goal"`
	Transaction TransactionResponse `json:"transaction"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:           g.ID.String(),
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		SavedAmount:  g.SavedAmount,
		Remaining:    g.Remaining(),
		Progress:     g.Progress(),
		IsReached:    g.IsReached(),
		Deadline:     formatOptionalDate(g.Deadline),
		AccountID:    optionalUUIDString(g.AccountID),
		IsArchived:   g.IsArchived,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// ToGoalListResponse converts goals to a GoalListResponse.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	items := make([]GoalResponse, len(goals))
	for i, g := range goals {
		items[i] = ToGoalResponse(g)
	}
	return GoalListResponse{Goals: items}
}
