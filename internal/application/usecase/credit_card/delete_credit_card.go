// Package creditcard contains credit card use cases.
package creditcard

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// DeleteCreditCardInput represents the input for card deletion.
type DeleteCreditCardInput struct {
	UserID       uuid.UUID
	CreditCardID uuid.UUID
}

// DeleteCreditCardUseCase soft-deletes a card. Its transactions and bills are kept.
type DeleteCreditCardUseCase struct {
	cardRepo  adapter.CreditCardRepository
	publisher adapter.EventPublisher
}

// NewDeleteCreditCardUseCase creates a new DeleteCreditCardUseCase instance.
func NewDeleteCreditCardUseCase(cardRepo adapter.CreditCardRepository, publisher adapter.EventPublisher) *DeleteCreditCardUseCase {
	return &DeleteCreditCardUseCase{
		cardRepo:  cardRepo,
		publisher: publisher,
	}
}

// Execute performs the card deletion.
func (uc *DeleteCreditCardUseCase) Execute(ctx context.Context, input DeleteCreditCardInput) error {
	card, err := uc.cardRepo.FindByID(ctx, input.UserID, input.CreditCardID)
	if err != nil {
		return lookupError(err)
	}

	if err := uc.cardRepo.Delete(ctx, input.UserID, input.CreditCardID); err != nil {
		return domainerror.NewStoreError("delete credit card", err)
	}

	notify(ctx, uc.publisher, card)
	return nil
}
