package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func expenseDraft(src Source, v string) TransactionDraft {
	return TransactionDraft{
		Details:     ExpenseDetails{Source: src},
		Amount:      amount(v),
		Description: "Coffee",
		Date:        time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewTransaction_Validation(t *testing.T) {
	accountID := uuid.New()
	cardID := uuid.New()
	goalID := uuid.New()

	tests := []struct {
		name    string
		draft   TransactionDraft
		wantErr error
	}{
		{
			name:    "missing variant",
			draft:   TransactionDraft{Amount: amount("10"), Date: time.Now()},
			wantErr: domainerror.ErrInvalidTransactionType,
		},
		{
			name:    "no source",
			draft:   expenseDraft(Source{}, "10"),
			wantErr: domainerror.ErrInvalidTransactionSource,
		},
		{
			name:    "both sources",
			draft:   expenseDraft(Source{AccountID: &accountID, CreditCardID: &cardID}, "10"),
			wantErr: domainerror.ErrInvalidTransactionSource,
		},
		{
			name:    "zero amount",
			draft:   expenseDraft(AccountSource(accountID), "0"),
			wantErr: domainerror.ErrInvalidTransactionAmount,
		},
		{
			name:    "negative amount",
			draft:   expenseDraft(AccountSource(accountID), "-5"),
			wantErr: domainerror.ErrInvalidTransactionAmount,
		},
		{
			name:    "sub-cent amount",
			draft:   expenseDraft(AccountSource(accountID), "10.005"),
			wantErr: domainerror.ErrInvalidTransactionAmount,
		},
		{
			name:    "half-cent amount",
			draft:   expenseDraft(CardSource(cardID), "0.005"),
			wantErr: domainerror.ErrInvalidTransactionAmount,
		},
		{
			name: "transfer to same account",
			draft: TransactionDraft{
				Details: TransferDetails{FromAccountID: accountID, ToAccountID: accountID},
				Amount:  amount("10"),
				Date:    time.Now(),
			},
			wantErr: domainerror.ErrSameTransferAccounts,
		},
		{
			name: "goal on card",
			draft: func() TransactionDraft {
				d := expenseDraft(CardSource(cardID), "10")
				d.GoalID = &goalID
				return d
			}(),
			wantErr: domainerror.ErrGoalRequiresAccount,
		},
		{
			name:  "valid card expense",
			draft: expenseDraft(CardSource(cardID), "10"),
		},
		{
			name:  "trailing zeros beyond cents",
			draft: expenseDraft(AccountSource(accountID), "10.500"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := NewTransaction(uuid.New(), tt.draft)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if txn.Status != TransactionStatusCompleted {
					t.Errorf("expected completed status, got %s", txn.Status)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if domainerror.KindOf(err) != domainerror.KindValidation {
				t.Errorf("expected validation kind, got %s", domainerror.KindOf(err))
			}
		})
	}
}

func TestNewTransaction_DropsTimeOfDay(t *testing.T) {
	d := expenseDraft(AccountSource(uuid.New()), "10")
	d.Date = time.Date(2025, time.March, 15, 22, 30, 0, 0, time.FixedZone("X", 5*3600))

	txn, err := NewTransaction(uuid.New(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !txn.Date.Equal(want) {
		t.Errorf("expected %s, got %s", want, txn.Date)
	}
}

func TestTransaction_BalanceEffects(t *testing.T) {
	accountID := uuid.New()
	otherID := uuid.New()
	cardID := uuid.New()
	goalID := uuid.New()

	build := func(details TransactionDetails, goal *uuid.UUID) *Transaction {
		txn, err := NewTransaction(uuid.New(), TransactionDraft{
			Details: details,
			Amount:  amount("40"),
			Date:    time.Now(),
			GoalID:  goal,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return txn
	}

	tests := []struct {
		name string
		txn  *Transaction
		want map[EffectTarget]map[uuid.UUID]string
	}{
		{
			name: "expense on account",
			txn:  build(ExpenseDetails{Source: AccountSource(accountID)}, nil),
			want: map[EffectTarget]map[uuid.UUID]string{EffectTargetAccount: {accountID: "-40"}},
		},
		{
			name: "expense on card",
			txn:  build(ExpenseDetails{Source: CardSource(cardID)}, nil),
			want: map[EffectTarget]map[uuid.UUID]string{EffectTargetCreditCard: {cardID: "40"}},
		},
		{
			name: "income on account",
			txn:  build(IncomeDetails{Source: AccountSource(accountID)}, nil),
			want: map[EffectTarget]map[uuid.UUID]string{EffectTargetAccount: {accountID: "40"}},
		},
		{
			name: "refund on card",
			txn:  build(IncomeDetails{Source: CardSource(cardID)}, nil),
			want: map[EffectTarget]map[uuid.UUID]string{EffectTargetCreditCard: {cardID: "-40"}},
		},
		{
			name: "transfer",
			txn:  build(TransferDetails{FromAccountID: accountID, ToAccountID: otherID}, nil),
			want: map[EffectTarget]map[uuid.UUID]string{EffectTargetAccount: {accountID: "-40", otherID: "40"}},
		},
		{
			name: "goal contribution",
			txn:  build(ExpenseDetails{Source: AccountSource(accountID)}, &goalID),
			want: map[EffectTarget]map[uuid.UUID]string{
				EffectTargetAccount: {accountID: "-40"},
				EffectTargetGoal:    {goalID: "40"},
			},
		},
		{
			name: "goal withdrawal",
			txn:  build(IncomeDetails{Source: AccountSource(accountID)}, &goalID),
			want: map[EffectTarget]map[uuid.UUID]string{
				EffectTargetAccount: {accountID: "40"},
				EffectTargetGoal:    {goalID: "-40"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.txn.BalanceEffects()
			count := 0
			for _, byID := range tt.want {
				count += len(byID)
			}
			if len(got) != count {
				t.Fatalf("expected %d effects, got %d", count, len(got))
			}
			for _, e := range got {
				want, ok := tt.want[e.Target][e.ID]
				if !ok {
					t.Fatalf("unexpected effect on %s %s", e.Target, e.ID)
				}
				if !e.Delta.Equal(amount(want)) {
					t.Errorf("%s: expected %s, got %s", e.Target, want, e.Delta)
				}
			}
		})
	}
}

func TestTransaction_CancelledHasNoEffects(t *testing.T) {
	txn, _ := NewTransaction(uuid.New(), expenseDraft(AccountSource(uuid.New()), "10"))
	txn.Status = TransactionStatusCancelled

	if effects := txn.BalanceEffects(); len(effects) != 0 {
		t.Errorf("expected no effects, got %d", len(effects))
	}
}

func TestChange(t *testing.T) {
	accountID := uuid.New()
	cardID := uuid.New()

	before, _ := NewTransaction(uuid.New(), expenseDraft(AccountSource(accountID), "30"))

	t.Run("same source nets the difference", func(t *testing.T) {
		after := before.Clone()
		after.Amount = amount("50")

		got := Change(before, after)
		if len(got) != 1 || !got[0].Delta.Equal(amount("-20")) {
			t.Fatalf("expected single -20 delta, got %+v", got)
		}
	})

	t.Run("moving to a card reverses the account", func(t *testing.T) {
		after := before.Clone()
		after.Details = ExpenseDetails{Source: CardSource(cardID)}

		got := Change(before, after)
		if len(got) != 2 {
			t.Fatalf("expected 2 effects, got %d", len(got))
		}
		for _, e := range got {
			switch e.Target {
			case EffectTargetAccount:
				if !e.Delta.Equal(amount("30")) {
					t.Errorf("expected account +30, got %s", e.Delta)
				}
			case EffectTargetCreditCard:
				if !e.Delta.Equal(amount("30")) {
					t.Errorf("expected card +30, got %s", e.Delta)
				}
			}
		}
	})

	t.Run("unchanged nets to nothing", func(t *testing.T) {
		if got := Change(before, before.Clone()); len(got) != 0 {
			t.Errorf("expected no effects, got %+v", got)
		}
	})

	t.Run("delete reverses", func(t *testing.T) {
		got := Change(before, nil)
		if len(got) != 1 || !got[0].Delta.Equal(amount("30")) {
			t.Fatalf("expected +30, got %+v", got)
		}
	})
}
