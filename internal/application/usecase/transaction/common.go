// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// BillRefresher re-materializes the bills that charges on the given dates land in.
type BillRefresher interface {
	RefreshForDates(ctx context.Context, userID, cardID uuid.UUID, dates ...time.Time)
}

// Fields carries the user-supplied fields of a transaction.
// For transfers AccountID is the source and ToAccountID the destination.
type Fields struct {
	Type         entity.TransactionType
	Amount       decimal.Decimal
	Description  string
	Date         time.Time
	AccountID    *uuid.UUID
	CreditCardID *uuid.UUID
	ToAccountID  *uuid.UUID
	CategoryID   *uuid.UUID
	GoalID       *uuid.UUID
	Notes        string
}

// Draft converts the fields into a validated entity draft.
func (f Fields) Draft() (entity.TransactionDraft, error) {
	draft := entity.TransactionDraft{
		Amount:      f.Amount,
		Description: f.Description,
		Date:        f.Date,
		CategoryID:  f.CategoryID,
		GoalID:      f.GoalID,
		Notes:       f.Notes,
	}

	source := entity.Source{AccountID: f.AccountID, CreditCardID: f.CreditCardID}
	switch f.Type {
	case entity.TransactionTypeExpense:
		draft.Details = entity.ExpenseDetails{Source: source}
	case entity.TransactionTypeIncome:
		draft.Details = entity.IncomeDetails{Source: source}
	case entity.TransactionTypeTransfer:
		if f.AccountID == nil || f.ToAccountID == nil || f.CreditCardID != nil {
			return draft, domainerror.NewTransactionError(
				domainerror.ErrCodeMissingTransactionFields,
				"transfer requires account_id and to_account_id",
				domainerror.ErrInvalidTransactionSource,
			)
		}
		draft.Details = entity.TransferDetails{FromAccountID: *f.AccountID, ToAccountID: *f.ToAccountID}
	}

	if err := draft.Validate(); err != nil {
		return draft, err
	}
	return draft, nil
}

// references checks that everything a draft points at belongs to the user and accepts writes.
type references struct {
	accountRepo  adapter.AccountRepository
	cardRepo     adapter.CreditCardRepository
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
}

// check validates the draft's references. Ids already referenced by previous
// are allowed to point at archived rows so old transactions stay editable.
func (r references) check(ctx context.Context, userID uuid.UUID, draft entity.TransactionDraft, previous *entity.Transaction) error {
	kept := make(map[uuid.UUID]bool)
	if previous != nil {
		if id := previous.AccountID(); id != nil {
			kept[*id] = true
		}
		if id := previous.CreditCardID(); id != nil {
			kept[*id] = true
		}
		if d, ok := previous.Details.(entity.TransferDetails); ok {
			kept[d.FromAccountID] = true
			kept[d.ToAccountID] = true
		}
		if previous.GoalID != nil {
			kept[*previous.GoalID] = true
		}
	}

	var accounts []uuid.UUID
	var cardID *uuid.UUID
	switch d := draft.Details.(type) {
	case entity.ExpenseDetails:
		if d.Source.IsCard() {
			cardID = d.Source.CreditCardID
		} else {
			accounts = append(accounts, *d.Source.AccountID)
		}
	case entity.IncomeDetails:
		if d.Source.IsCard() {
			cardID = d.Source.CreditCardID
		} else {
			accounts = append(accounts, *d.Source.AccountID)
		}
	case entity.TransferDetails:
		accounts = append(accounts, d.FromAccountID, d.ToAccountID)
	}

	for _, id := range accounts {
		account, err := r.accountRepo.FindByID(ctx, userID, id)
		if err != nil {
			if errors.Is(err, domainerror.ErrAccountNotFound) {
				return domainerror.NewTransactionError(domainerror.ErrCodeTxnAccountNotFound, "account not found", err)
			}
			return domainerror.NewStoreError("load account", err)
		}
		if account.IsArchived && !kept[id] {
			return domainerror.NewAccountError(domainerror.ErrCodeAccountArchived, "account is archived", domainerror.ErrAccountArchived)
		}
	}

	if cardID != nil {
		card, err := r.cardRepo.FindByID(ctx, userID, *cardID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCreditCardNotFound) {
				return domainerror.NewTransactionError(domainerror.ErrCodeTxnCardNotFound, "credit card not found", err)
			}
			return domainerror.NewStoreError("load credit card", err)
		}
		if card.IsArchived && !kept[*cardID] {
			return domainerror.NewCreditCardError(domainerror.ErrCodeCreditCardArchived, "credit card is archived", domainerror.ErrCreditCardArchived)
		}
	}

	if draft.GoalID != nil {
		goal, err := r.goalRepo.FindByID(ctx, userID, *draft.GoalID)
		if err != nil {
			if errors.Is(err, domainerror.ErrGoalNotFound) {
				return domainerror.NewTransactionError(domainerror.ErrCodeTxnGoalNotFound, "goal not found", err)
			}
			return domainerror.NewStoreError("load goal", err)
		}
		if goal.IsArchived && !kept[goal.ID] {
			return domainerror.NewGoalError(domainerror.ErrCodeGoalArchived, "goal is archived", domainerror.ErrGoalArchived)
		}
	}

	if draft.CategoryID != nil {
		if _, err := r.categoryRepo.FindByID(ctx, userID, *draft.CategoryID); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeTxnCategoryNotFound,
					"category not found",
					domainerror.ErrCategoryNotFoundForTransaction,
				)
			}
			return domainerror.NewStoreError("load category", err)
		}
	}

	return nil
}

func lookupError(err error) error {
	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			err,
		)
	}
	return domainerror.NewStoreError("load transaction", err)
}

func writeError(op string, err error) error {
	switch {
	case errors.Is(err, domainerror.ErrTransactionChanged):
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionChanged,
			"transaction changed, reload it and try again",
			err,
		)
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return lookupError(err)
	default:
		return domainerror.NewStoreError(op, err)
	}
}

// afterWrite refreshes the bills touched by the change and notifies subscribers.
// It runs after commit; failures are logged by the collaborators.
func afterWrite(
	ctx context.Context,
	refresher BillRefresher,
	publisher adapter.EventPublisher,
	eventType entity.ChangeEventType,
	before, after *entity.Transaction,
) {
	txn := after
	if txn == nil {
		txn = before
	}

	cards := make(map[uuid.UUID][]time.Time)
	for _, t := range []*entity.Transaction{before, after} {
		if t == nil {
			continue
		}
		if id := t.CreditCardID(); id != nil {
			cards[*id] = append(cards[*id], t.Date)
		}
	}
	if refresher != nil {
		for cardID, dates := range cards {
			refresher.RefreshForDates(ctx, txn.UserID, cardID, dates...)
		}
	}

	if publisher == nil {
		return
	}
	events := []entity.ChangeEvent{entity.NewChangeEvent(txn.UserID, eventType, txn.ID)}
	for _, effect := range entity.Change(before, after) {
		switch effect.Target {
		case entity.EffectTargetAccount:
			events = append(events, entity.NewChangeEvent(txn.UserID, entity.ChangeAccountUpdated, effect.ID))
		case entity.EffectTargetCreditCard:
			events = append(events, entity.NewChangeEvent(txn.UserID, entity.ChangeCreditCardUpdated, effect.ID))
		case entity.EffectTargetGoal:
			events = append(events, entity.NewChangeEvent(txn.UserID, entity.ChangeGoalUpdated, effect.ID))
		}
	}
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish change event",
				"event_type", event.Type,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	}
}
