// Package billing contains the credit card bill use cases.
package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// PeriodSnapshot is everything read to derive one bill.
type PeriodSnapshot struct {
	Card         *entity.CreditCard
	Transactions []*entity.Transaction
	Aggregate    *entity.BillAggregate
}

// BillAggregator derives bill totals from the transactions of a billing period.
// It only reads; transactions are the source of truth for every total it returns.
type BillAggregator struct {
	cardRepo        adapter.CreditCardRepository
	transactionRepo adapter.TransactionRepository
	policy          valueobject.DueDatePolicy
}

// NewBillAggregator creates a new BillAggregator instance.
func NewBillAggregator(
	cardRepo adapter.CreditCardRepository,
	transactionRepo adapter.TransactionRepository,
	policy valueobject.DueDatePolicy,
) *BillAggregator {
	return &BillAggregator{
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
		policy:          policy,
	}
}

// Aggregate returns the totals of the card's bill for the period.
func (a *BillAggregator) Aggregate(ctx context.Context, userID, cardID uuid.UUID, period valueobject.BillingPeriod) (*entity.BillAggregate, error) {
	snapshot, err := a.Snapshot(ctx, userID, cardID, period)
	if err != nil {
		return nil, err
	}
	return snapshot.Aggregate, nil
}

// Snapshot loads the card and the period's transactions and derives the aggregate.
func (a *BillAggregator) Snapshot(ctx context.Context, userID, cardID uuid.UUID, period valueobject.BillingPeriod) (*PeriodSnapshot, error) {
	card, err := a.cardRepo.FindByID(ctx, userID, cardID)
	if err != nil {
		return nil, cardLookupError(err)
	}
	return a.snapshotFor(ctx, card, period)
}

func (a *BillAggregator) snapshotFor(ctx context.Context, card *entity.CreditCard, period valueobject.BillingPeriod) (*PeriodSnapshot, error) {
	if err := valueobject.ValidateClosingDay(card.ClosingDay); err != nil {
		return nil, err
	}

	start, end := period.DateRange(card.ClosingDay)
	transactions, err := a.transactionRepo.List(ctx, adapter.TransactionFilter{
		UserID:           card.UserID,
		CreditCardID:     &card.ID,
		StartDate:        &start,
		EndDate:          &end,
		ExcludeCancelled: true,
	})
	if err != nil {
		return nil, domainerror.NewStoreError("list bill transactions", err)
	}

	return &PeriodSnapshot{
		Card:         card,
		Transactions: transactions,
		Aggregate:    entity.AggregateBill(card, period, a.policy, transactions),
	}, nil
}

// Policy returns the due date policy in use.
func (a *BillAggregator) Policy() valueobject.DueDatePolicy {
	return a.policy
}
