package transaction

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// ledger is an in-memory store that posts balance effects like the gorm repository does.
type ledger struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]*entity.Account
	cards        map[uuid.UUID]*entity.CreditCard
	goals        map[uuid.UUID]*entity.Goal
	categories   map[uuid.UUID]*entity.Category
	transactions map[uuid.UUID]*entity.Transaction
}

func newLedger() *ledger {
	return &ledger{
		accounts:     make(map[uuid.UUID]*entity.Account),
		cards:        make(map[uuid.UUID]*entity.CreditCard),
		goals:        make(map[uuid.UUID]*entity.Goal),
		categories:   make(map[uuid.UUID]*entity.Category),
		transactions: make(map[uuid.UUID]*entity.Transaction),
	}
}

func (l *ledger) post(effects entity.BalanceEffects) {
	for _, e := range effects {
		switch e.Target {
		case entity.EffectTargetAccount:
			l.accounts[e.ID].Balance = l.accounts[e.ID].Balance.Add(e.Delta)
		case entity.EffectTargetCreditCard:
			l.cards[e.ID].CurrentUsed = l.cards[e.ID].CurrentUsed.Add(e.Delta)
		case entity.EffectTargetGoal:
			l.goals[e.ID].SavedAmount = l.goals[e.ID].SavedAmount.Add(e.Delta)
		}
	}
}

func (l *ledger) balance(id uuid.UUID) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[id].Balance
}

func (l *ledger) used(id uuid.UUID) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cards[id].CurrentUsed
}

func (l *ledger) saved(id uuid.UUID) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.goals[id].SavedAmount
}

type fakeTransactionRepo struct{ l *ledger }

func (r fakeTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	r.l.transactions[txn.ID] = txn.Clone()
	r.l.post(entity.Change(nil, txn))
	return nil
}

func (r fakeTransactionRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	txn, ok := r.l.transactions[id]
	if !ok || txn.UserID != userID {
		return nil, domainerror.ErrTransactionNotFound
	}
	return txn.Clone(), nil
}

func (r fakeTransactionRepo) List(context.Context, adapter.TransactionFilter) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r fakeTransactionRepo) FindByFilter(_ context.Context, filter adapter.TransactionFilter, p adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	result := &entity.TransactionListResult{Page: p.Page, Limit: p.Limit}
	for _, txn := range r.l.transactions {
		if txn.UserID != filter.UserID {
			continue
		}
		result.Transactions = append(result.Transactions, &entity.TransactionWithCategory{Transaction: txn.Clone()})
	}
	result.Total = int64(len(result.Transactions))
	return result, nil
}

func (r fakeTransactionRepo) Update(_ context.Context, before, after *entity.Transaction) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	stored, ok := r.l.transactions[before.ID]
	if !ok {
		return domainerror.ErrTransactionNotFound
	}
	if stored.Version != before.Version {
		return domainerror.ErrTransactionChanged
	}
	next := after.Clone()
	next.Version = before.Version + 1
	r.l.transactions[before.ID] = next
	r.l.post(entity.Change(before, after))
	return nil
}

func (r fakeTransactionRepo) Delete(_ context.Context, txn *entity.Transaction) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	delete(r.l.transactions, txn.ID)
	r.l.post(entity.Change(txn, nil))
	return nil
}

func (r fakeTransactionRepo) SumExpensesByCategory(context.Context, uuid.UUID, time.Time, time.Time) ([]adapter.CategoryTotal, error) {
	return nil, nil
}

type fakeAccountRepo struct{ l *ledger }

func (r fakeAccountRepo) Create(context.Context, *entity.Account) error { return nil }

func (r fakeAccountRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Account, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	a, ok := r.l.accounts[id]
	if !ok || a.UserID != userID {
		return nil, domainerror.ErrAccountNotFound
	}
	c := *a
	return &c, nil
}

func (r fakeAccountRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}

func (r fakeAccountRepo) Update(context.Context, *entity.Account) error { return nil }

func (r fakeAccountRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (r fakeAccountRepo) AdjustBalance(context.Context, uuid.UUID, uuid.UUID, decimal.Decimal) error {
	return nil
}

type fakeCardRepo struct{ l *ledger }

func (r fakeCardRepo) Create(context.Context, *entity.CreditCard) error { return nil }

func (r fakeCardRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.CreditCard, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	c, ok := r.l.cards[id]
	if !ok || c.UserID != userID {
		return nil, domainerror.ErrCreditCardNotFound
	}
	cp := *c
	return &cp, nil
}

func (r fakeCardRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.CreditCard, error) {
	return nil, nil
}

func (r fakeCardRepo) Update(context.Context, *entity.CreditCard) error { return nil }

func (r fakeCardRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type fakeGoalRepo struct{ l *ledger }

func (r fakeGoalRepo) Create(context.Context, *entity.Goal) error { return nil }

func (r fakeGoalRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Goal, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	g, ok := r.l.goals[id]
	if !ok || g.UserID != userID {
		return nil, domainerror.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (r fakeGoalRepo) FindByUserID(context.Context, uuid.UUID) ([]*entity.Goal, error) {
	return nil, nil
}

func (r fakeGoalRepo) Update(context.Context, *entity.Goal) error { return nil }

func (r fakeGoalRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type fakeCategoryRepo struct{ l *ledger }

func (r fakeCategoryRepo) Create(context.Context, *entity.Category) error { return nil }

func (r fakeCategoryRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	c, ok := r.l.categories[id]
	if !ok || c.UserID != userID {
		return nil, domainerror.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID, t *entity.CategoryType) ([]*entity.Category, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.l.categories {
		if c.UserID == userID && (t == nil || c.Type == *t) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeCategoryRepo) ExistsByName(context.Context, uuid.UUID, string) (bool, error) {
	return false, nil
}

func (r fakeCategoryRepo) Update(context.Context, *entity.Category) error { return nil }

func (r fakeCategoryRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type refreshCall struct {
	cardID uuid.UUID
	dates  []time.Time
}

type recordingRefresher struct {
	calls []refreshCall
}

func (r *recordingRefresher) RefreshForDates(_ context.Context, _ uuid.UUID, cardID uuid.UUID, dates ...time.Time) {
	r.calls = append(r.calls, refreshCall{cardID: cardID, dates: dates})
}

type recordingPublisher struct {
	events []entity.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event entity.ChangeEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) has(t entity.ChangeEventType, id uuid.UUID) bool {
	for _, e := range p.events {
		if e.Type == t && e.EntityID == id {
			return true
		}
	}
	return false
}

type stubSuggester struct {
	available  bool
	suggestion *adapter.CategorySuggestion
	err        error
	calls      int
}

func (s *stubSuggester) Suggest(context.Context, string, []*entity.Category) (*adapter.CategorySuggestion, error) {
	s.calls++
	return s.suggestion, s.err
}

func (s *stubSuggester) IsAvailable() bool { return s.available }
