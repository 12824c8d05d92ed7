// Package billing contains the credit card bill use cases.
package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
)

// GetCurrentBillInput represents the input for reading the open bill of a card.
type GetCurrentBillInput struct {
	UserID       uuid.UUID
	CreditCardID uuid.UUID
}

// GetCurrentBillUseCase reads the bill today's charges land in.
type GetCurrentBillUseCase struct {
	details *GetBillDetailsUseCase
	clock   adapter.Clock
}

// NewGetCurrentBillUseCase creates a new GetCurrentBillUseCase instance.
func NewGetCurrentBillUseCase(details *GetBillDetailsUseCase, clock adapter.Clock) *GetCurrentBillUseCase {
	return &GetCurrentBillUseCase{
		details: details,
		clock:   clock,
	}
}

// Execute resolves today's period for the card and returns its details.
func (uc *GetCurrentBillUseCase) Execute(ctx context.Context, input GetCurrentBillInput) (*GetBillDetailsOutput, error) {
	card, err := uc.details.aggregator.cardRepo.FindByID(ctx, input.UserID, input.CreditCardID)
	if err != nil {
		return nil, cardLookupError(err)
	}

	period, err := card.PeriodOf(uc.clock.Now())
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.details.aggregator.snapshotFor(ctx, card, period)
	if err != nil {
		return nil, err
	}
	return uc.details.detailsFor(ctx, snapshot)
}
