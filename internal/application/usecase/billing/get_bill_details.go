// Package billing contains the credit card bill use cases.
package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// GetBillDetailsInput represents the input for reading one bill.
type GetBillDetailsInput struct {
	UserID       uuid.UUID
	CreditCardID uuid.UUID
	Month        time.Month
	Year         int
}

// GetBillDetailsOutput represents the output of reading one bill.
type GetBillDetailsOutput struct {
	Details *entity.BillWithTransactions
}

// GetBillDetailsUseCase reads a bill live from its transactions. It never writes.
type GetBillDetailsUseCase struct {
	aggregator *BillAggregator
	billRepo   adapter.BillRepository
	clock      adapter.Clock
}

// NewGetBillDetailsUseCase creates a new GetBillDetailsUseCase instance.
func NewGetBillDetailsUseCase(aggregator *BillAggregator, billRepo adapter.BillRepository, clock adapter.Clock) *GetBillDetailsUseCase {
	return &GetBillDetailsUseCase{
		aggregator: aggregator,
		billRepo:   billRepo,
		clock:      clock,
	}
}

// Execute returns the aggregate, the transactions and the stored payment state of the bill.
func (uc *GetBillDetailsUseCase) Execute(ctx context.Context, input GetBillDetailsInput) (*GetBillDetailsOutput, error) {
	period, err := valueobject.NewBillingPeriod(input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.aggregator.Snapshot(ctx, input.UserID, input.CreditCardID, period)
	if err != nil {
		return nil, err
	}

	return uc.detailsFor(ctx, snapshot)
}

func (uc *GetBillDetailsUseCase) detailsFor(ctx context.Context, snapshot *PeriodSnapshot) (*GetBillDetailsOutput, error) {
	card := snapshot.Card
	bill, err := uc.billRepo.FindByPeriod(ctx, card.UserID, card.ID, snapshot.Aggregate.Period)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBillNotFound) {
			return nil, domainerror.NewStoreError("load bill", err)
		}
		bill = nil
	}

	return &GetBillDetailsOutput{
		Details: &entity.BillWithTransactions{
			Card:         card,
			Aggregate:    snapshot.Aggregate,
			Bill:         bill,
			Transactions: snapshot.Transactions,
			Status:       entity.DisplayStatus(bill, snapshot.Aggregate, uc.clock.Now()),
		},
	}, nil
}
