// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// CreditCard represents a credit card with a monthly billing cycle.
type CreditCard struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	CreditLimit      decimal.Decimal
	ClosingDay       int // 1-31, clamped to the month length when resolving periods
	DueDay           int // 1-31
	PaymentAccountID *uuid.UUID
	CurrentUsed      decimal.Decimal
	IsArchived       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time // Soft-delete support
}

// NewCreditCard creates a new CreditCard entity.
// Day validation is done by the caller with valueobject.ValidateClosingDay and ValidateDueDay.
func NewCreditCard(
	userID uuid.UUID,
	name string,
	creditLimit decimal.Decimal,
	closingDay, dueDay int,
	paymentAccountID *uuid.UUID,
) *CreditCard {
	now := time.Now().UTC()

	return &CreditCard{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		CreditLimit:      creditLimit,
		ClosingDay:       closingDay,
		DueDay:           dueDay,
		PaymentAccountID: paymentAccountID,
		CurrentUsed:      decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// AvailableLimit returns the credit still available on the card.
func (c *CreditCard) AvailableLimit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CurrentUsed)
}

// PeriodOf returns the billing period a charge on date lands in.
func (c *CreditCard) PeriodOf(date time.Time) (valueobject.BillingPeriod, error) {
	return valueobject.ResolveBillingPeriod(date, c.ClosingDay)
}

// DueDateOf returns the due date of the bill for the given period.
func (c *CreditCard) DueDateOf(period valueobject.BillingPeriod, policy valueobject.DueDatePolicy) time.Time {
	return period.DueDate(c.ClosingDay, c.DueDay, policy)
}
