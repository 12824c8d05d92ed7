// Package billing contains the credit card bill use cases.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// ResolvePeriodInput represents the input for resolving the period of a charge date.
// When CreditCardID is set the card's days are used, otherwise ClosingDay and DueDay.
type ResolvePeriodInput struct {
	UserID       uuid.UUID
	CreditCardID *uuid.UUID
	ClosingDay   int
	DueDay       int
	Date         time.Time
}

// ResolvePeriodOutput describes the billing period a charge date lands in.
type ResolvePeriodOutput struct {
	Period      valueobject.BillingPeriod
	PeriodStart time.Time
	ClosingDate time.Time
	DueDate     time.Time
}

// ResolvePeriodUseCase answers which bill a charge on a given date belongs to.
type ResolvePeriodUseCase struct {
	cardRepo adapter.CreditCardRepository
	policy   valueobject.DueDatePolicy
}

// NewResolvePeriodUseCase creates a new ResolvePeriodUseCase instance.
func NewResolvePeriodUseCase(cardRepo adapter.CreditCardRepository, policy valueobject.DueDatePolicy) *ResolvePeriodUseCase {
	return &ResolvePeriodUseCase{
		cardRepo: cardRepo,
		policy:   policy,
	}
}

// Execute resolves the period.
func (uc *ResolvePeriodUseCase) Execute(ctx context.Context, input ResolvePeriodInput) (*ResolvePeriodOutput, error) {
	closingDay, dueDay := input.ClosingDay, input.DueDay
	if input.CreditCardID != nil {
		card, err := uc.cardRepo.FindByID(ctx, input.UserID, *input.CreditCardID)
		if err != nil {
			return nil, cardLookupError(err)
		}
		closingDay, dueDay = card.ClosingDay, card.DueDay
	}

	period, err := valueobject.ResolveBillingPeriod(input.Date, closingDay)
	if err != nil {
		return nil, err
	}
	if err := valueobject.ValidateDueDay(dueDay); err != nil {
		return nil, err
	}

	start, closing := period.DateRange(closingDay)
	return &ResolvePeriodOutput{
		Period:      period,
		PeriodStart: start,
		ClosingDate: closing,
		DueDate:     period.DueDate(closingDay, dueDay, uc.policy),
	}, nil
}
