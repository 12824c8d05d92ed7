// Package creditcard contains credit card use cases.
package creditcard

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// GetCreditCardInput represents the input for fetching one card.
type GetCreditCardInput struct {
	UserID       uuid.UUID
	CreditCardID uuid.UUID
}

// GetCreditCardOutput represents the output of fetching one card.
type GetCreditCardOutput struct {
	CreditCard *entity.CreditCard
}

// GetCreditCardUseCase handles fetching a single card.
type GetCreditCardUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewGetCreditCardUseCase creates a new GetCreditCardUseCase instance.
func NewGetCreditCardUseCase(cardRepo adapter.CreditCardRepository) *GetCreditCardUseCase {
	return &GetCreditCardUseCase{cardRepo: cardRepo}
}

// Execute loads the card.
func (uc *GetCreditCardUseCase) Execute(ctx context.Context, input GetCreditCardInput) (*GetCreditCardOutput, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.UserID, input.CreditCardID)
	if err != nil {
		return nil, lookupError(err)
	}
	return &GetCreditCardOutput{CreditCard: card}, nil
}
