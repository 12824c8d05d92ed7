// Package account contains account-related use cases.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// DeleteAccountUseCase soft-deletes an account.
// Its transactions and past bill payments keep pointing at it.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
	publisher   adapter.EventPublisher
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository, publisher adapter.EventPublisher) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	account, err := uc.accountRepo.FindByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return lookupError(err)
	}

	if err := uc.accountRepo.Delete(ctx, input.UserID, input.AccountID); err != nil {
		return domainerror.NewStoreError("delete account", err)
	}

	notify(ctx, uc.publisher, account)
	return nil
}

func notify(ctx context.Context, publisher adapter.EventPublisher, account *entity.Account) {
	if publisher == nil {
		return
	}
	event := entity.NewChangeEvent(account.UserID, entity.ChangeAccountUpdated, account.ID)
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish change event", "event_type", event.Type, "entity_id", event.EntityID, "error", err)
	}
}
