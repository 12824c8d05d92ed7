// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a savings goal in the Wallet system.
// SavedAmount moves only through contribution and withdrawal transactions.
type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	Deadline     *time.Time
	AccountID    *uuid.UUID // Default funding account
	IsArchived   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity with nothing saved.
func NewGoal(userID uuid.UUID, name string, targetAmount decimal.Decimal, deadline *time.Time, accountID *uuid.UUID) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		SavedAmount:  decimal.Zero,
		Deadline:     deadline,
		AccountID:    accountID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

var hundred = decimal.NewFromInt(100)

// Progress returns the saved share of the target in percent, capped at 100.
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() || g.SavedAmount.IsNegative() {
		return decimal.Zero
	}
	p := g.SavedAmount.Div(g.TargetAmount).Mul(hundred).Round(2)
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// Remaining returns how much is still missing to reach the target.
func (g *Goal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.SavedAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// IsReached reports whether the target has been met.
func (g *Goal) IsReached() bool {
	return g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
}
