// Package creditcard contains credit card use cases.
package creditcard

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// ListCreditCardsInput represents the input for listing cards.
type ListCreditCardsInput struct {
	UserID          uuid.UUID
	IncludeArchived bool
}

// ListCreditCardsOutput represents the output of listing cards.
type ListCreditCardsOutput struct {
	CreditCards []*entity.CreditCard
}

// ListCreditCardsUseCase handles listing cards logic.
type ListCreditCardsUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewListCreditCardsUseCase creates a new ListCreditCardsUseCase instance.
func NewListCreditCardsUseCase(cardRepo adapter.CreditCardRepository) *ListCreditCardsUseCase {
	return &ListCreditCardsUseCase{cardRepo: cardRepo}
}

// Execute lists the user's cards.
func (uc *ListCreditCardsUseCase) Execute(ctx context.Context, input ListCreditCardsInput) (*ListCreditCardsOutput, error) {
	cards, err := uc.cardRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewStoreError("list credit cards", err)
	}

	output := &ListCreditCardsOutput{CreditCards: make([]*entity.CreditCard, 0, len(cards))}
	for _, c := range cards {
		if c.IsArchived && !input.IncludeArchived {
			continue
		}
		output.CreditCards = append(output.CreditCards, c)
	}
	return output, nil
}
