// Package creditcard contains credit card use cases.
package creditcard

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// CreateCreditCardInput represents the input for card creation.
type CreateCreditCardInput struct {
	UserID           uuid.UUID
	Name             string
	CreditLimit      decimal.Decimal
	ClosingDay       int
	DueDay           int
	PaymentAccountID *uuid.UUID
}

// CreateCreditCardOutput represents the output of card creation.
type CreateCreditCardOutput struct {
	CreditCard *entity.CreditCard
}

// CreateCreditCardUseCase handles card creation logic.
type CreateCreditCardUseCase struct {
	cardRepo    adapter.CreditCardRepository
	accountRepo adapter.AccountRepository
}

// NewCreateCreditCardUseCase creates a new CreateCreditCardUseCase instance.
func NewCreateCreditCardUseCase(cardRepo adapter.CreditCardRepository, accountRepo adapter.AccountRepository) *CreateCreditCardUseCase {
	return &CreateCreditCardUseCase{
		cardRepo:    cardRepo,
		accountRepo: accountRepo,
	}
}

// Execute performs the card creation.
func (uc *CreateCreditCardUseCase) Execute(ctx context.Context, input CreateCreditCardInput) (*CreateCreditCardOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateLimit(input.CreditLimit); err != nil {
		return nil, err
	}
	if err := validateDays(input.ClosingDay, input.DueDay); err != nil {
		return nil, err
	}
	if err := checkPaymentAccount(ctx, uc.accountRepo, input.UserID, input.PaymentAccountID); err != nil {
		return nil, err
	}

	card := entity.NewCreditCard(input.UserID, name, input.CreditLimit, input.ClosingDay, input.DueDay, input.PaymentAccountID)
	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, domainerror.NewStoreError("create credit card", err)
	}

	slog.Info("Credit card created",
		"credit_card_id", card.ID,
		"user_id", card.UserID,
		"closing_day", card.ClosingDay,
		"due_day", card.DueDay,
	)

	return &CreateCreditCardOutput{CreditCard: card}, nil
}
