// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/entity"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// PayBillCommand carries everything the store needs to mark a bill paid.
type PayBillCommand struct {
	UserID          uuid.UUID
	BillID          uuid.UUID
	CreditCardID    uuid.UUID
	AccountID       uuid.UUID
	Amount          decimal.Decimal
	PaidAt          time.Time
	ExpectedVersion int
}

// UnpayBillCommand carries everything the store needs to reverse a payment.
type UnpayBillCommand struct {
	UserID          uuid.UUID
	BillID          uuid.UUID
	CreditCardID    uuid.UUID
	AccountID       uuid.UUID
	Amount          decimal.Decimal // the amount recorded at payment time
	ExpectedVersion int
}

// BillRepository defines the interface for bill persistence operations.
// Bills cache the aggregate of their transactions; the payment fields are the only
// state a bill owns.
type BillRepository interface {
	// FindByID retrieves a bill by its ID within the user's scope.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Bill, error)

	// FindByPeriod retrieves the bill of a card for a period.
	// Returns domainerror.ErrBillNotFound if it was never materialized.
	FindByPeriod(ctx context.Context, userID, cardID uuid.UUID, period valueobject.BillingPeriod) (*entity.Bill, error)

	// FindByCard lists the materialized bills of a card, newest period first.
	FindByCard(ctx context.Context, userID, cardID uuid.UUID) ([]*entity.Bill, error)

	// Upsert inserts the bill or rewrites the derived fields of the existing row for
	// the same card and period. Payment fields of an existing row are kept.
	// The stored row is returned.
	Upsert(ctx context.Context, bill *entity.Bill) (*entity.Bill, error)

	// MarkPaid marks the bill paid, debits the account and releases the card limit
	// in a single database transaction.
	MarkPaid(ctx context.Context, cmd PayBillCommand) error

	// MarkUnpaid clears the payment, credits the account and re-applies the card
	// usage in a single database transaction.
	MarkUnpaid(ctx context.Context, cmd UnpayBillCommand) error

	// FindUnpaidDueBetween lists unpaid bills with a positive total due in [from, to]
	// that have no reminder recorded.
	FindUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Bill, error)

	// MarkReminderSent records that the due reminder of a bill went out.
	MarkReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}
