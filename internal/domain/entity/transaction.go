// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionStatus represents whether a transaction counts towards balances.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// IsValid reports whether the status is known.
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusCancelled
}

// MaxDescriptionLength is the maximum length of a transaction description.
const MaxDescriptionLength = 255

// MaxNotesLength is the maximum length of transaction notes.
const MaxNotesLength = 1000

// Source is where an expense or income is booked: exactly one of an account or a credit card.
type Source struct {
	AccountID    *uuid.UUID
	CreditCardID *uuid.UUID
}

// AccountSource books a movement on an account.
func AccountSource(id uuid.UUID) Source {
	return Source{AccountID: &id}
}

// CardSource books a movement on a credit card.
func CardSource(id uuid.UUID) Source {
	return Source{CreditCardID: &id}
}

// IsCard reports whether the source is a credit card.
func (s Source) IsCard() bool {
	return s.CreditCardID != nil
}

func (s Source) validate() error {
	if (s.AccountID == nil) == (s.CreditCardID == nil) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionSource,
			"expense and income must reference exactly one account or credit card",
			domainerror.ErrInvalidTransactionSource,
		)
	}
	return nil
}

// TransactionDetails is the variant payload of a transaction.
// It is implemented only by ExpenseDetails, IncomeDetails and TransferDetails.
type TransactionDetails interface {
	Type() TransactionType
	validate() error
}

// ExpenseDetails is an outgoing payment from an account or a charge on a card.
type ExpenseDetails struct {
	Source Source
}

// Type returns TransactionTypeExpense.
func (ExpenseDetails) Type() TransactionType { return TransactionTypeExpense }

func (d ExpenseDetails) validate() error { return d.Source.validate() }

// IncomeDetails is money received on an account, or a refund when booked on a card.
type IncomeDetails struct {
	Source Source
}

// Type returns TransactionTypeIncome.
func (IncomeDetails) Type() TransactionType { return TransactionTypeIncome }

func (d IncomeDetails) validate() error { return d.Source.validate() }

// TransferDetails moves money between two different accounts.
type TransferDetails struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
}

// Type returns TransactionTypeTransfer.
func (TransferDetails) Type() TransactionType { return TransactionTypeTransfer }

func (d TransferDetails) validate() error {
	if d.FromAccountID == uuid.Nil || d.ToAccountID == uuid.Nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"transfer requires both accounts",
			domainerror.ErrInvalidTransactionSource,
		)
	}
	if d.FromAccountID == d.ToAccountID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeSameTransferAccounts,
			"transfer accounts must be different",
			domainerror.ErrSameTransferAccounts,
		)
	}
	return nil
}

// TransactionDraft holds the user-supplied fields of a transaction.
type TransactionDraft struct {
	Details     TransactionDetails
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  *uuid.UUID
	GoalID      *uuid.UUID
	Notes       string
}

// Validate checks the draft's invariants.
func (d TransactionDraft) Validate() error {
	if d.Details == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense', 'income' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if err := d.Details.validate(); err != nil {
		return err
	}
	if !d.Amount.IsPositive() || !valueobject.HasMoneyScale(d.Amount) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero with at most 2 decimal places",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if d.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	if len(d.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			"description must not exceed 255 characters",
			domainerror.ErrDescriptionTooLong,
		)
	}
	if len(d.Notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			"notes must not exceed 1000 characters",
			domainerror.ErrNotesTooLong,
		)
	}
	if d.GoalID != nil {
		src, ok := sourceOf(d.Details)
		if !ok || src.IsCard() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeGoalRequiresAccount,
				"goal contributions and withdrawals must be expenses or incomes on an account",
				domainerror.ErrGoalRequiresAccount,
			)
		}
	}
	return nil
}

// Transaction represents a financial transaction in the Wallet system.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Details     TransactionDetails
	Amount      decimal.Decimal // Always positive; the variant decides the sign of its effects
	Description string
	Date        time.Time // Calendar date at UTC midnight
	Status      TransactionStatus
	CategoryID  *uuid.UUID
	GoalID      *uuid.UUID
	Notes       string
	Version     int // Incremented on every write; guards balance reversal on update
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction validates the draft and creates a completed transaction.
func NewTransaction(userID uuid.UUID, draft TransactionDraft) (*Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    TransactionStatusCompleted,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.apply(draft)
	return t, nil
}

// Revise replaces the user-supplied fields after validating the draft.
func (t *Transaction) Revise(draft TransactionDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	t.apply(draft)
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (t *Transaction) apply(draft TransactionDraft) {
	t.Details = draft.Details
	t.Amount = draft.Amount
	t.Description = draft.Description
	t.Date = valueobject.DateOf(draft.Date)
	t.CategoryID = draft.CategoryID
	t.GoalID = draft.GoalID
	t.Notes = draft.Notes
}

// Draft returns the user-supplied fields of the transaction.
func (t *Transaction) Draft() TransactionDraft {
	return TransactionDraft{
		Details:     t.Details,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		CategoryID:  t.CategoryID,
		GoalID:      t.GoalID,
		Notes:       t.Notes,
	}
}

// Clone returns a copy of the transaction.
func (t *Transaction) Clone() *Transaction {
	c := *t
	return &c
}

// Type returns the variant type.
func (t *Transaction) Type() TransactionType {
	if t.Details == nil {
		return ""
	}
	return t.Details.Type()
}

// IsCancelled reports whether the transaction is excluded from balances and bills.
func (t *Transaction) IsCancelled() bool {
	return t.Status == TransactionStatusCancelled
}

// AccountID returns the account an expense or income is booked on.
func (t *Transaction) AccountID() *uuid.UUID {
	if src, ok := sourceOf(t.Details); ok {
		return src.AccountID
	}
	return nil
}

// CreditCardID returns the card an expense or refund is booked on.
func (t *Transaction) CreditCardID() *uuid.UUID {
	if src, ok := sourceOf(t.Details); ok {
		return src.CreditCardID
	}
	return nil
}

// IsCardRefund reports whether the transaction is an income booked on a card.
func (t *Transaction) IsCardRefund() bool {
	return t.Type() == TransactionTypeIncome && t.CreditCardID() != nil
}

// BalanceEffects returns the signed deltas this transaction applies.
// Cancelled transactions have none.
func (t *Transaction) BalanceEffects() BalanceEffects {
	if t.IsCancelled() || t.Details == nil {
		return nil
	}

	var effects BalanceEffects
	switch d := t.Details.(type) {
	case ExpenseDetails:
		if d.Source.IsCard() {
			effects = append(effects, BalanceEffect{Target: EffectTargetCreditCard, ID: *d.Source.CreditCardID, Delta: t.Amount})
		} else {
			effects = append(effects, BalanceEffect{Target: EffectTargetAccount, ID: *d.Source.AccountID, Delta: t.Amount.Neg()})
			if t.GoalID != nil {
				effects = append(effects, BalanceEffect{Target: EffectTargetGoal, ID: *t.GoalID, Delta: t.Amount})
			}
		}
	case IncomeDetails:
		if d.Source.IsCard() {
			effects = append(effects, BalanceEffect{Target: EffectTargetCreditCard, ID: *d.Source.CreditCardID, Delta: t.Amount.Neg()})
		} else {
			effects = append(effects, BalanceEffect{Target: EffectTargetAccount, ID: *d.Source.AccountID, Delta: t.Amount})
			if t.GoalID != nil {
				effects = append(effects, BalanceEffect{Target: EffectTargetGoal, ID: *t.GoalID, Delta: t.Amount.Neg()})
			}
		}
	case TransferDetails:
		effects = append(effects,
			BalanceEffect{Target: EffectTargetAccount, ID: d.FromAccountID, Delta: t.Amount.Neg()},
			BalanceEffect{Target: EffectTargetAccount, ID: d.ToAccountID, Delta: t.Amount},
		)
	}
	return effects
}

func sourceOf(details TransactionDetails) (Source, bool) {
	switch d := details.(type) {
	case ExpenseDetails:
		return d.Source, true
	case IncomeDetails:
		return d.Source, true
	default:
		return Source{}, false
	}
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
