package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

type fixture struct {
	ledger    *ledger
	refresher *recordingRefresher
	publisher *recordingPublisher
	userID    uuid.UUID
	checking  uuid.UUID
	savings   uuid.UUID
	archived  uuid.UUID
	cardID    uuid.UUID
	goalID    uuid.UUID
	create    *CreateTransactionUseCase
	update    *UpdateTransactionUseCase
	remove    *DeleteTransactionUseCase
	status    *SetTransactionStatusUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	l := newLedger()
	f := &fixture{
		ledger:    l,
		refresher: &recordingRefresher{},
		publisher: &recordingPublisher{},
		userID:    uuid.New(),
	}

	checking := entity.NewAccount(f.userID, "Checking", decimal.NewFromInt(1000), true)
	savings := entity.NewAccount(f.userID, "Savings", decimal.NewFromInt(500), true)
	archived := entity.NewAccount(f.userID, "Old", decimal.Zero, false)
	archived.IsArchived = true
	card := entity.NewCreditCard(f.userID, "Visa", decimal.NewFromInt(5000), 10, 20, &checking.ID)
	goal := entity.NewGoal(f.userID, "Trip", decimal.NewFromInt(2000), nil, &savings.ID)

	for _, a := range []*entity.Account{checking, savings, archived} {
		l.accounts[a.ID] = a
	}
	l.cards[card.ID] = card
	l.goals[goal.ID] = goal
	f.checking, f.savings, f.archived = checking.ID, savings.ID, archived.ID
	f.cardID, f.goalID = card.ID, goal.ID

	repo := fakeTransactionRepo{l: l}
	accounts, cards, goals, categories := fakeAccountRepo{l: l}, fakeCardRepo{l: l}, fakeGoalRepo{l: l}, fakeCategoryRepo{l: l}
	f.create = NewCreateTransactionUseCase(repo, accounts, cards, goals, categories, f.refresher, f.publisher)
	f.update = NewUpdateTransactionUseCase(repo, accounts, cards, goals, categories, f.refresher, f.publisher)
	f.remove = NewDeleteTransactionUseCase(repo, f.refresher, f.publisher)
	f.status = NewSetTransactionStatusUseCase(repo, f.refresher, f.publisher)
	return f
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) mustCreate(t *testing.T, fields Fields) *entity.Transaction {
	t.Helper()
	out, err := f.create.Execute(context.Background(), CreateTransactionInput{UserID: f.userID, Fields: fields})
	if err != nil {
		t.Fatalf("create: unexpected error: %v", err)
	}
	return out.Transaction
}

func TestCreateTransaction_PostsBalanceEffects(t *testing.T) {
	tests := []struct {
		name         string
		fields       func(f *fixture) Fields
		wantChecking string
		wantSavings  string
		wantUsed     string
		wantSaved    string
		wantRefresh  bool
	}{
		{
			name: "account expense debits the account",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(40), Date: day(2025, 4, 3), AccountID: &f.checking}
			},
			wantChecking: "960", wantSavings: "500", wantUsed: "0", wantSaved: "0",
		},
		{
			name: "account income credits the account",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(250), Date: day(2025, 4, 3), AccountID: &f.checking}
			},
			wantChecking: "1250", wantSavings: "500", wantUsed: "0", wantSaved: "0",
		},
		{
			name: "card expense raises used credit and refreshes the bill",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(100), Date: day(2025, 4, 3), CreditCardID: &f.cardID}
			},
			wantChecking: "1000", wantSavings: "500", wantUsed: "100", wantSaved: "0", wantRefresh: true,
		},
		{
			name: "card refund lowers used credit",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(30), Date: day(2025, 4, 3), CreditCardID: &f.cardID}
			},
			wantChecking: "1000", wantSavings: "500", wantUsed: "-30", wantSaved: "0", wantRefresh: true,
		},
		{
			name: "transfer moves money between accounts",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeTransfer, Amount: decimal.NewFromInt(200), Date: day(2025, 4, 3), AccountID: &f.checking, ToAccountID: &f.savings}
			},
			wantChecking: "800", wantSavings: "700", wantUsed: "0", wantSaved: "0",
		},
		{
			name: "goal contribution debits the account and fills the goal",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(75), Date: day(2025, 4, 3), AccountID: &f.savings, GoalID: &f.goalID}
			},
			wantChecking: "1000", wantSavings: "425", wantUsed: "0", wantSaved: "75",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			txn := f.mustCreate(t, tt.fields(f))

			if got := f.ledger.balance(f.checking); !got.Equal(decimal.RequireFromString(tt.wantChecking)) {
				t.Errorf("checking = %s, want %s", got, tt.wantChecking)
			}
			if got := f.ledger.balance(f.savings); !got.Equal(decimal.RequireFromString(tt.wantSavings)) {
				t.Errorf("savings = %s, want %s", got, tt.wantSavings)
			}
			if got := f.ledger.used(f.cardID); !got.Equal(decimal.RequireFromString(tt.wantUsed)) {
				t.Errorf("card used = %s, want %s", got, tt.wantUsed)
			}
			if got := f.ledger.saved(f.goalID); !got.Equal(decimal.RequireFromString(tt.wantSaved)) {
				t.Errorf("goal saved = %s, want %s", got, tt.wantSaved)
			}
			if got := len(f.refresher.calls) > 0; got != tt.wantRefresh {
				t.Errorf("bill refreshed = %v, want %v", got, tt.wantRefresh)
			}
			if !f.publisher.has(entity.ChangeTransactionCreated, txn.ID) {
				t.Error("expected transaction.created event")
			}
		})
	}
}

func TestCreateTransaction_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		fields   func(f *fixture) Fields
		wantErr  error
		wantKind domainerror.ErrorKind
	}{
		{
			name: "unknown type",
			fields: func(f *fixture) Fields {
				return Fields{Type: "loan", Amount: decimal.NewFromInt(1), Date: day(2025, 4, 3), AccountID: &f.checking}
			},
			wantErr:  domainerror.ErrInvalidTransactionType,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "zero amount",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.Zero, Date: day(2025, 4, 3), AccountID: &f.checking}
			},
			wantErr:  domainerror.ErrInvalidTransactionAmount,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "both account and card",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Date: day(2025, 4, 3), AccountID: &f.checking, CreditCardID: &f.cardID}
			},
			wantErr:  domainerror.ErrInvalidTransactionSource,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "transfer without destination",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeTransfer, Amount: decimal.NewFromInt(1), Date: day(2025, 4, 3), AccountID: &f.checking}
			},
			wantErr:  domainerror.ErrInvalidTransactionSource,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "unknown account",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Date: day(2025, 4, 3), AccountID: ptr(uuid.New())}
			},
			wantErr:  domainerror.ErrAccountNotFound,
			wantKind: domainerror.KindNotFound,
		},
		{
			name: "archived account",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Date: day(2025, 4, 3), AccountID: &f.archived}
			},
			wantErr:  domainerror.ErrAccountArchived,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "unknown category",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Date: day(2025, 4, 3), AccountID: &f.checking, CategoryID: ptr(uuid.New())}
			},
			wantErr:  domainerror.ErrCategoryNotFoundForTransaction,
			wantKind: domainerror.KindNotFound,
		},
		{
			name: "goal on a card",
			fields: func(f *fixture) Fields {
				return Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Date: day(2025, 4, 3), CreditCardID: &f.cardID, GoalID: &f.goalID}
			},
			wantErr:  domainerror.ErrGoalRequiresAccount,
			wantKind: domainerror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.create.Execute(context.Background(), CreateTransactionInput{UserID: f.userID, Fields: tt.fields(f)})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if kind := domainerror.KindOf(err); kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", kind, tt.wantKind)
			}
			if got := f.ledger.balance(f.checking); !got.Equal(decimal.NewFromInt(1000)) {
				t.Errorf("checking changed to %s", got)
			}
		})
	}
}

func TestUpdateTransaction_MovesEffectsAndRefreshesBothPeriods(t *testing.T) {
	f := newFixture(t)
	txn := f.mustCreate(t, Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(100), Date: day(2025, 4, 3), CreditCardID: &f.cardID})
	f.refresher.calls = nil

	out, err := f.update.Execute(context.Background(), UpdateTransactionInput{
		UserID:        f.userID,
		TransactionID: txn.ID,
		Fields:        Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(60), Date: day(2025, 4, 12), CreditCardID: &f.cardID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Transaction.Version != txn.Version+1 {
		t.Errorf("version = %d, want %d", out.Transaction.Version, txn.Version+1)
	}
	if got := f.ledger.used(f.cardID); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("card used = %s, want 60", got)
	}
	if len(f.refresher.calls) != 1 || len(f.refresher.calls[0].dates) != 2 {
		t.Fatalf("refresh calls = %+v, want one call with old and new date", f.refresher.calls)
	}
	dates := f.refresher.calls[0].dates
	if !dates[0].Equal(day(2025, 4, 3)) || !dates[1].Equal(day(2025, 4, 12)) {
		t.Errorf("refreshed dates = %v", dates)
	}
}

func TestUpdateTransaction_MoveFromCardToAccount(t *testing.T) {
	f := newFixture(t)
	txn := f.mustCreate(t, Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(100), Date: day(2025, 4, 3), CreditCardID: &f.cardID})

	_, err := f.update.Execute(context.Background(), UpdateTransactionInput{
		UserID:        f.userID,
		TransactionID: txn.ID,
		Fields:        Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(100), Date: day(2025, 4, 3), AccountID: &f.checking},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.ledger.used(f.cardID); !got.IsZero() {
		t.Errorf("card used = %s, want 0", got)
	}
	if got := f.ledger.balance(f.checking); !got.Equal(decimal.NewFromInt(900)) {
		t.Errorf("checking = %s, want 900", got)
	}
	if !f.publisher.has(entity.ChangeCreditCardUpdated, f.cardID) || !f.publisher.has(entity.ChangeAccountUpdated, f.checking) {
		t.Error("expected card and account change events")
	}
}

func TestUpdateTransaction_StaleVersion(t *testing.T) {
	f := newFixture(t)
	txn := f.mustCreate(t, Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(10), Date: day(2025, 4, 3), AccountID: &f.checking})
	f.ledger.transactions[txn.ID].Version = 7

	stale := fakeTransactionRepo{l: f.ledger}
	before := txn.Clone()
	after := txn.Clone()
	after.Amount = decimal.NewFromInt(20)
	err := writeError("update transaction", stale.Update(context.Background(), before, after))

	if !errors.Is(err, domainerror.ErrTransactionChanged) {
		t.Fatalf("error = %v, want ErrTransactionChanged", err)
	}
	if kind := domainerror.KindOf(err); kind != domainerror.KindInvalidState {
		t.Errorf("kind = %v, want invalid state", kind)
	}
	if got := f.ledger.balance(f.checking); !got.Equal(decimal.NewFromInt(990)) {
		t.Errorf("checking = %s, want 990", got)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.update.Execute(context.Background(), UpdateTransactionInput{
		UserID:        f.userID,
		TransactionID: uuid.New(),
		Fields:        Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(1), Date: day(2025, 4, 3), AccountID: &f.checking},
	})
	if kind := domainerror.KindOf(err); kind != domainerror.KindNotFound {
		t.Fatalf("kind = %v, want not found (err %v)", kind, err)
	}
}

func TestDeleteTransaction_ReversesEffects(t *testing.T) {
	f := newFixture(t)
	txn := f.mustCreate(t, Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(100), Date: day(2025, 4, 3), CreditCardID: &f.cardID})
	f.refresher.calls = nil

	if err := f.remove.Execute(context.Background(), DeleteTransactionInput{UserID: f.userID, TransactionID: txn.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.ledger.used(f.cardID); !got.IsZero() {
		t.Errorf("card used = %s, want 0", got)
	}
	if len(f.refresher.calls) != 1 {
		t.Errorf("refresh calls = %d, want 1", len(f.refresher.calls))
	}
	if !f.publisher.has(entity.ChangeTransactionDeleted, txn.ID) {
		t.Error("expected transaction.deleted event")
	}
}

func TestSetTransactionStatus(t *testing.T) {
	f := newFixture(t)
	txn := f.mustCreate(t, Fields{Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(100), Date: day(2025, 4, 3), AccountID: &f.checking})
	ctx := context.Background()

	t.Run("cancel removes the effect", func(t *testing.T) {
		out, err := f.status.Execute(ctx, SetTransactionStatusInput{UserID: f.userID, TransactionID: txn.ID, Status: entity.TransactionStatusCancelled})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Transaction.IsCancelled() {
			t.Error("expected cancelled")
		}
		if got := f.ledger.balance(f.checking); !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("checking = %s, want 1000", got)
		}
	})

	t.Run("cancel again is a no-op", func(t *testing.T) {
		if _, err := f.status.Execute(ctx, SetTransactionStatusInput{UserID: f.userID, TransactionID: txn.ID, Status: entity.TransactionStatusCancelled}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.ledger.balance(f.checking); !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("checking = %s, want 1000", got)
		}
	})

	t.Run("restore reapplies the effect", func(t *testing.T) {
		if _, err := f.status.Execute(ctx, SetTransactionStatusInput{UserID: f.userID, TransactionID: txn.ID, Status: entity.TransactionStatusCompleted}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.ledger.balance(f.checking); !got.Equal(decimal.NewFromInt(900)) {
			t.Errorf("checking = %s, want 900", got)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := f.status.Execute(ctx, SetTransactionStatusInput{UserID: f.userID, TransactionID: txn.ID, Status: "pending"})
		if !errors.Is(err, domainerror.ErrInvalidTransactionStatus) {
			t.Fatalf("error = %v, want ErrInvalidTransactionStatus", err)
		}
	})
}

func TestSuggestCategory(t *testing.T) {
	userID := uuid.New()
	groceries := entity.NewCategory(userID, "Groceries", "#22C55E", "cart", entity.CategoryTypeExpense, []string{"market", "supermarket"})
	fuel := entity.NewCategory(userID, "Fuel", "#F97316", "fuel", entity.CategoryTypeExpense, []string{"shell"})
	salary := entity.NewCategory(userID, "Salary", "#0EA5E9", "wallet", entity.CategoryTypeIncome, []string{"market"})

	newUseCase := func(s *stubSuggester) *SuggestCategoryUseCase {
		l := newLedger()
		for _, c := range []*entity.Category{groceries, fuel, salary} {
			l.categories[c.ID] = c
		}
		return NewSuggestCategoryUseCase(fakeCategoryRepo{l: l}, s)
	}

	tests := []struct {
		name        string
		description string
		suggester   *stubSuggester
		wantID      *uuid.UUID
		wantSource  string
		wantAICalls int
	}{
		{
			name:        "longest keyword wins",
			description: "SUPERMARKET downtown",
			suggester:   &stubSuggester{available: true},
			wantID:      &groceries.ID,
			wantSource:  SuggestionSourceKeyword,
		},
		{
			name:        "falls back to AI",
			description: "Gas station 24h",
			suggester:   &stubSuggester{available: true, suggestion: &adapter.CategorySuggestion{CategoryID: fuel.ID, Confidence: 0.8}},
			wantID:      &fuel.ID,
			wantSource:  SuggestionSourceAI,
			wantAICalls: 1,
		},
		{
			name:        "AI not configured",
			description: "Gas station 24h",
			suggester:   &stubSuggester{available: false},
		},
		{
			name:        "AI failure is not an error",
			description: "Gas station 24h",
			suggester:   &stubSuggester{available: true, err: errors.New("quota")},
			wantAICalls: 1,
		},
		{
			name:        "AI picks an unknown category",
			description: "Gas station 24h",
			suggester:   &stubSuggester{available: true, suggestion: &adapter.CategorySuggestion{CategoryID: uuid.New(), Confidence: 0.9}},
			wantAICalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.suggester)
			out, err := uc.Execute(context.Background(), SuggestCategoryInput{
				UserID:      userID,
				Description: tt.description,
				Type:        entity.TransactionTypeExpense,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantID == nil {
				if out.Category != nil {
					t.Errorf("category = %s, want none", out.Category.Name)
				}
			} else if out.Category == nil || out.Category.ID != *tt.wantID {
				t.Errorf("category = %+v, want %s", out.Category, *tt.wantID)
			}
			if out.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", out.Source, tt.wantSource)
			}
			if tt.suggester.calls != tt.wantAICalls {
				t.Errorf("AI calls = %d, want %d", tt.suggester.calls, tt.wantAICalls)
			}
		})
	}

	t.Run("empty description", func(t *testing.T) {
		_, err := newUseCase(&stubSuggester{}).Execute(context.Background(), SuggestCategoryInput{UserID: userID, Description: "  "})
		if !errors.Is(err, domainerror.ErrDescriptionRequired) {
			t.Fatalf("error = %v, want ErrDescriptionRequired", err)
		}
	})
}
