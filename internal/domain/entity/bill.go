// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// BillStatus is the display status of a bill.
type BillStatus string

const (
	BillStatusOpen    BillStatus = "open"    // period not closed yet
	BillStatusClosed  BillStatus = "closed"  // closed, waiting for payment
	BillStatusOverdue BillStatus = "overdue" // past due and unpaid
	BillStatusPaid    BillStatus = "paid"
)

// BillAggregate holds the totals derived from a period's transactions.
// It is the authoritative view of a bill; the Bill row caches it.
type BillAggregate struct {
	CreditCardID     uuid.UUID
	Period           valueobject.BillingPeriod
	PeriodStart      time.Time
	ClosingDate      time.Time
	DueDate          time.Time
	ExpenseTotal     decimal.Decimal
	RefundTotal      decimal.Decimal
	NetTotal         decimal.Decimal
	TransactionCount int
}

// AggregateBill derives a bill's totals from the card transactions of one period.
// Cancelled transactions and anything not booked on a card are ignored.
func AggregateBill(
	card *CreditCard,
	period valueobject.BillingPeriod,
	policy valueobject.DueDatePolicy,
	transactions []*Transaction,
) *BillAggregate {
	start, end := period.DateRange(card.ClosingDay)
	agg := &BillAggregate{
		CreditCardID: card.ID,
		Period:       period,
		PeriodStart:  start,
		ClosingDate:  end,
		DueDate:      card.DueDateOf(period, policy),
		ExpenseTotal: decimal.Zero,
		RefundTotal:  decimal.Zero,
	}

	for _, t := range transactions {
		if t.IsCancelled() {
			continue
		}
		cardID := t.CreditCardID()
		if cardID == nil || *cardID != card.ID {
			continue
		}

		switch t.Type() {
		case TransactionTypeExpense:
			agg.ExpenseTotal = agg.ExpenseTotal.Add(t.Amount)
		case TransactionTypeIncome:
			agg.RefundTotal = agg.RefundTotal.Add(t.Amount)
		default:
			continue
		}
		agg.TransactionCount++
	}

	agg.NetTotal = agg.ExpenseTotal.Sub(agg.RefundTotal)
	return agg
}

// Bill is the materialized statement of one card for one billing period.
type Bill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CreditCardID     uuid.UUID
	Month            time.Month
	Year             int
	DueDate          time.Time
	ExpenseTotal     decimal.Decimal
	RefundTotal      decimal.Decimal
	NetTotal         decimal.Decimal
	TransactionCount int
	IsPaid           bool
	PaidAmount       decimal.Decimal
	PaymentAccountID *uuid.UUID
	PaymentDate      *time.Time
	ReminderSentAt   *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewBill creates an unpaid bill from an aggregate.
func NewBill(userID uuid.UUID, agg *BillAggregate) *Bill {
	now := time.Now().UTC()

	b := &Bill{
		ID:           uuid.New(),
		UserID:       userID,
		CreditCardID: agg.CreditCardID,
		Month:        agg.Period.Month,
		Year:         agg.Period.Year,
		PaidAmount:   decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.ApplyAggregate(agg)
	return b
}

// ApplyAggregate overwrites the derived fields. Payment fields are left untouched.
func (b *Bill) ApplyAggregate(agg *BillAggregate) {
	b.DueDate = agg.DueDate
	b.ExpenseTotal = agg.ExpenseTotal
	b.RefundTotal = agg.RefundTotal
	b.NetTotal = agg.NetTotal
	b.TransactionCount = agg.TransactionCount
}

// Period returns the bill's billing period.
func (b *Bill) Period() valueobject.BillingPeriod {
	return valueobject.BillingPeriod{Month: b.Month, Year: b.Year}
}

// DisplayStatus computes the status shown for a bill on the given day.
// bill may be nil when the period was never materialized.
func DisplayStatus(bill *Bill, agg *BillAggregate, today time.Time) BillStatus {
	if bill != nil && bill.IsPaid {
		return BillStatusPaid
	}

	day := valueobject.DateOf(today)
	switch {
	case !day.After(agg.ClosingDate):
		return BillStatusOpen
	case !day.After(agg.DueDate):
		return BillStatusClosed
	default:
		return BillStatusOverdue
	}
}

// BillWithTransactions is the full view of one bill.
type BillWithTransactions struct {
	Card         *CreditCard
	Aggregate    *BillAggregate
	Bill         *Bill // nil when not materialized
	Transactions []*Transaction
	Status       BillStatus
}
