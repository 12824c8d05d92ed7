// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a bank or cash account holding money.
// Balance is never written directly after creation; it moves only by signed deltas.
type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Balance         decimal.Decimal
	IsArchived      bool
	IncludeInTotals bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time // Soft-delete support
}

// NewAccount creates a new Account entity with an opening balance.
func NewAccount(userID uuid.UUID, name string, openingBalance decimal.Decimal, includeInTotals bool) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Balance:         openingBalance,
		IncludeInTotals: includeInTotals,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// TotalBalance sums the balances of accounts flagged to be included in totals.
func TotalBalance(accounts []*Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.IncludeInTotals && !a.IsArchived {
			total = total.Add(a.Balance)
		}
	}
	return total
}
