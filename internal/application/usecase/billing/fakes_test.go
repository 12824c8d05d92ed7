package billing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// memStore backs every fake repository so pay/unpay can touch several tables at once.
type memStore struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]*entity.Account
	cards        map[uuid.UUID]*entity.CreditCard
	bills        map[uuid.UUID]*entity.Bill
	transactions []*entity.Transaction
	upserts      int
	failWrite    error
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[uuid.UUID]*entity.Account),
		cards:    make(map[uuid.UUID]*entity.CreditCard),
		bills:    make(map[uuid.UUID]*entity.Bill),
	}
}

func (s *memStore) balance(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id].Balance
}

func (s *memStore) used(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards[id].CurrentUsed
}

type fakeCardRepo struct{ s *memStore }

func (r fakeCardRepo) Create(_ context.Context, card *entity.CreditCard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cards[card.ID] = card
	return nil
}

func (r fakeCardRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.CreditCard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	card, ok := r.s.cards[id]
	if !ok || card.UserID != userID {
		return nil, domainerror.ErrCreditCardNotFound
	}
	c := *card
	return &c, nil
}

func (r fakeCardRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.CreditCard, error) {
	return nil, nil
}

func (r fakeCardRepo) Update(context.Context, *entity.CreditCard) error { return nil }

func (r fakeCardRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type fakeAccountRepo struct{ s *memStore }

func (r fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accounts[account.ID] = account
	return nil
}

func (r fakeAccountRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	account, ok := r.s.accounts[id]
	if !ok || account.UserID != userID {
		return nil, domainerror.ErrAccountNotFound
	}
	a := *account
	return &a, nil
}

func (r fakeAccountRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}

func (r fakeAccountRepo) Update(context.Context, *entity.Account) error { return nil }

func (r fakeAccountRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (r fakeAccountRepo) AdjustBalance(_ context.Context, _ uuid.UUID, id uuid.UUID, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accounts[id].Balance = r.s.accounts[id].Balance.Add(delta)
	return nil
}

type fakeTransactionRepo struct{ s *memStore }

func (r fakeTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions = append(r.s.transactions, txn)
	return nil
}

func (r fakeTransactionRepo) FindByID(context.Context, uuid.UUID, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r fakeTransactionRepo) List(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Transaction
	for _, t := range r.s.transactions {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.CreditCardID != nil {
			cardID := t.CreditCardID()
			if cardID == nil || *cardID != *filter.CreditCardID {
				continue
			}
		}
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			continue
		}
		if filter.ExcludeCancelled && t.IsCancelled() {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r fakeTransactionRepo) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return &entity.TransactionListResult{}, nil
}

func (r fakeTransactionRepo) Update(context.Context, *entity.Transaction, *entity.Transaction) error {
	return nil
}

func (r fakeTransactionRepo) Delete(context.Context, *entity.Transaction) error { return nil }

func (r fakeTransactionRepo) SumExpensesByCategory(context.Context, uuid.UUID, time.Time, time.Time) ([]adapter.CategoryTotal, error) {
	return nil, nil
}

type fakeBillRepo struct{ s *memStore }

func (r fakeBillRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bill, ok := r.s.bills[id]
	if !ok || bill.UserID != userID {
		return nil, domainerror.ErrBillNotFound
	}
	b := *bill
	return &b, nil
}

func (r fakeBillRepo) FindByPeriod(_ context.Context, userID, cardID uuid.UUID, period valueobject.BillingPeriod) (*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, bill := range r.s.bills {
		if bill.UserID == userID && bill.CreditCardID == cardID && bill.Period() == period {
			b := *bill
			return &b, nil
		}
	}
	return nil, domainerror.ErrBillNotFound
}

func (r fakeBillRepo) FindByCard(_ context.Context, userID, cardID uuid.UUID) ([]*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Bill
	for _, bill := range r.s.bills {
		if bill.UserID == userID && bill.CreditCardID == cardID {
			b := *bill
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Period().Before(out[i].Period()) })
	return out, nil
}

func (r fakeBillRepo) Upsert(_ context.Context, bill *entity.Bill) (*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.upserts++

	for _, existing := range r.s.bills {
		if existing.CreditCardID == bill.CreditCardID && existing.Period() == bill.Period() {
			existing.DueDate = bill.DueDate
			existing.ExpenseTotal = bill.ExpenseTotal
			existing.RefundTotal = bill.RefundTotal
			existing.NetTotal = bill.NetTotal
			existing.TransactionCount = bill.TransactionCount
			existing.Version++
			b := *existing
			return &b, nil
		}
	}

	stored := *bill
	stored.Version = 1
	r.s.bills[stored.ID] = &stored
	b := stored
	return &b, nil
}

func (r fakeBillRepo) MarkPaid(_ context.Context, cmd adapter.PayBillCommand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWrite != nil {
		return r.s.failWrite
	}

	bill := r.s.bills[cmd.BillID]
	if bill.IsPaid {
		return domainerror.ErrBillAlreadyPaid
	}
	if bill.Version != cmd.ExpectedVersion {
		return domainerror.ErrBillChanged
	}
	account, ok := r.s.accounts[cmd.AccountID]
	if !ok {
		return domainerror.ErrAccountNotFound
	}

	bill.IsPaid = true
	bill.PaidAmount = cmd.Amount
	bill.PaymentAccountID = &cmd.AccountID
	paidAt := cmd.PaidAt
	bill.PaymentDate = &paidAt
	bill.Version++
	account.Balance = account.Balance.Sub(cmd.Amount)
	r.s.cards[cmd.CreditCardID].CurrentUsed = r.s.cards[cmd.CreditCardID].CurrentUsed.Sub(cmd.Amount)
	return nil
}

func (r fakeBillRepo) MarkUnpaid(_ context.Context, cmd adapter.UnpayBillCommand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWrite != nil {
		return r.s.failWrite
	}

	bill := r.s.bills[cmd.BillID]
	if !bill.IsPaid {
		return domainerror.ErrBillNotPaid
	}
	if bill.Version != cmd.ExpectedVersion {
		return domainerror.ErrBillChanged
	}

	bill.IsPaid = false
	bill.PaidAmount = decimal.Zero
	bill.PaymentAccountID = nil
	bill.PaymentDate = nil
	bill.Version++
	r.s.accounts[cmd.AccountID].Balance = r.s.accounts[cmd.AccountID].Balance.Add(cmd.Amount)
	r.s.cards[cmd.CreditCardID].CurrentUsed = r.s.cards[cmd.CreditCardID].CurrentUsed.Add(cmd.Amount)
	return nil
}

func (r fakeBillRepo) FindUnpaidDueBetween(_ context.Context, from, to time.Time) ([]*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Bill
	for _, bill := range r.s.bills {
		if bill.IsPaid || bill.ReminderSentAt != nil || !bill.NetTotal.IsPositive() {
			continue
		}
		if bill.DueDate.Before(from) || bill.DueDate.After(to) {
			continue
		}
		b := *bill
		out = append(out, &b)
	}
	return out, nil
}

func (r fakeBillRepo) MarkReminderSent(_ context.Context, id uuid.UUID, sentAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bills[id].ReminderSentAt = &sentAt
	return nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (l *fakeLocker) TryLock(_ context.Context, key string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}, true, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event entity.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []entity.ChangeEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entity.ChangeEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
