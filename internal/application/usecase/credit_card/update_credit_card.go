// Package creditcard contains credit card use cases.
package creditcard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// UpdateCreditCardInput represents the input for card update. Nil fields are left unchanged.
type UpdateCreditCardInput struct {
	UserID              uuid.UUID
	CreditCardID        uuid.UUID
	Name                *string
	CreditLimit         *decimal.Decimal
	ClosingDay          *int
	DueDay              *int
	PaymentAccountID    *uuid.UUID
	ClearPaymentAccount bool
	IsArchived          *bool
}

// UpdateCreditCardOutput represents the output of card update.
type UpdateCreditCardOutput struct {
	CreditCard *entity.CreditCard
}

// UpdateCreditCardUseCase handles card update logic.
// Changing the closing day affects periods resolved from now on; stored bills are
// rewritten the next time their period is materialized.
type UpdateCreditCardUseCase struct {
	cardRepo    adapter.CreditCardRepository
	accountRepo adapter.AccountRepository
	publisher   adapter.EventPublisher
}

// NewUpdateCreditCardUseCase creates a new UpdateCreditCardUseCase instance.
func NewUpdateCreditCardUseCase(
	cardRepo adapter.CreditCardRepository,
	accountRepo adapter.AccountRepository,
	publisher adapter.EventPublisher,
) *UpdateCreditCardUseCase {
	return &UpdateCreditCardUseCase{
		cardRepo:    cardRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

// Execute performs the card update.
func (uc *UpdateCreditCardUseCase) Execute(ctx context.Context, input UpdateCreditCardInput) (*UpdateCreditCardOutput, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.UserID, input.CreditCardID)
	if err != nil {
		return nil, lookupError(err)
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		card.Name = name
	}
	if input.CreditLimit != nil {
		if err := validateLimit(*input.CreditLimit); err != nil {
			return nil, err
		}
		card.CreditLimit = *input.CreditLimit
	}
	if input.ClosingDay != nil {
		card.ClosingDay = *input.ClosingDay
	}
	if input.DueDay != nil {
		card.DueDay = *input.DueDay
	}
	if err := validateDays(card.ClosingDay, card.DueDay); err != nil {
		return nil, err
	}
	switch {
	case input.ClearPaymentAccount:
		card.PaymentAccountID = nil
	case input.PaymentAccountID != nil:
		if err := checkPaymentAccount(ctx, uc.accountRepo, input.UserID, input.PaymentAccountID); err != nil {
			return nil, err
		}
		card.PaymentAccountID = input.PaymentAccountID
	}
	if input.IsArchived != nil {
		card.IsArchived = *input.IsArchived
	}
	card.UpdatedAt = time.Now().UTC()

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, domainerror.NewStoreError("update credit card", err)
	}

	notify(ctx, uc.publisher, card)
	return &UpdateCreditCardOutput{CreditCard: card}, nil
}

func notify(ctx context.Context, publisher adapter.EventPublisher, card *entity.CreditCard) {
	if publisher == nil {
		return
	}
	event := entity.NewChangeEvent(card.UserID, entity.ChangeCreditCardUpdated, card.ID)
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish change event", "event_type", event.Type, "entity_id", event.EntityID, "error", err)
	}
}
