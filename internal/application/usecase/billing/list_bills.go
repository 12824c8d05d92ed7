// Package billing contains the credit card bill use cases.
package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// ListBillsInput represents the input for listing the bills of a card.
type ListBillsInput struct {
	UserID       uuid.UUID
	CreditCardID uuid.UUID
}

// BillSummary is a materialized bill with its display status.
type BillSummary struct {
	Bill   *entity.Bill
	Status entity.BillStatus
}

// ListBillsOutput represents the output of listing bills.
type ListBillsOutput struct {
	Card  *entity.CreditCard
	Bills []BillSummary
}

// ListBillsUseCase lists the cached bills of a card, newest first.
type ListBillsUseCase struct {
	cardRepo adapter.CreditCardRepository
	billRepo adapter.BillRepository
	clock    adapter.Clock
}

// NewListBillsUseCase creates a new ListBillsUseCase instance.
func NewListBillsUseCase(cardRepo adapter.CreditCardRepository, billRepo adapter.BillRepository, clock adapter.Clock) *ListBillsUseCase {
	return &ListBillsUseCase{
		cardRepo: cardRepo,
		billRepo: billRepo,
		clock:    clock,
	}
}

// Execute lists the bills. Totals come from the cache and may lag a write that just failed to refresh it.
func (uc *ListBillsUseCase) Execute(ctx context.Context, input ListBillsInput) (*ListBillsOutput, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.UserID, input.CreditCardID)
	if err != nil {
		return nil, cardLookupError(err)
	}

	bills, err := uc.billRepo.FindByCard(ctx, input.UserID, input.CreditCardID)
	if err != nil {
		return nil, domainerror.NewStoreError("list bills", err)
	}

	now := uc.clock.Now()
	summaries := make([]BillSummary, len(bills))
	for i, bill := range bills {
		window := &entity.BillAggregate{
			ClosingDate: bill.Period().ClosingDate(card.ClosingDay),
			DueDate:     bill.DueDate,
		}
		summaries[i] = BillSummary{
			Bill:   bill,
			Status: entity.DisplayStatus(bill, window, now),
		}
	}

	return &ListBillsOutput{
		Card:  card,
		Bills: summaries,
	}, nil
}
