// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID uuid.UUID
	Fields Fields
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refs            references
	refresher       BillRefresher
	publisher       adapter.EventPublisher
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	cardRepo adapter.CreditCardRepository,
	goalRepo adapter.GoalRepository,
	categoryRepo adapter.CategoryRepository,
	refresher BillRefresher,
	publisher adapter.EventPublisher,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		refs: references{
			accountRepo:  accountRepo,
			cardRepo:     cardRepo,
			goalRepo:     goalRepo,
			categoryRepo: categoryRepo,
		},
		refresher: refresher,
		publisher: publisher,
	}
}

// Execute stores the transaction and posts its balance effects.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	draft, err := input.Fields.Draft()
	if err != nil {
		return nil, err
	}

	if err := uc.refs.check(ctx, input.UserID, draft, nil); err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(input.UserID, draft)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, writeError("create transaction", err)
	}

	slog.Info("Transaction created",
		"transaction_id", txn.ID,
		"user_id", txn.UserID,
		"type", txn.Type(),
	)

	afterWrite(ctx, uc.refresher, uc.publisher, entity.ChangeTransactionCreated, nil, txn)

	return &CreateTransactionOutput{Transaction: txn}, nil
}
