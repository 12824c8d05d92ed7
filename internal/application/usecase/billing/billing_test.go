package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store     *memStore
	locker    *fakeLocker
	publisher *recordingPublisher
	clock     fixedClock
	userID    uuid.UUID
	account   *entity.Account
	card      *entity.CreditCard

	aggregator  *BillAggregator
	details     *GetBillDetailsUseCase
	current     *GetCurrentBillUseCase
	list        *ListBillsUseCase
	materialize *MaterializeBillUseCase
	pay         *PayBillUseCase
	unpay       *UnpayBillUseCase
}

// newFixture builds a card closing on the 10th and due on the 20th, paid from an
// account holding 1000.00, with today set to 2025-04-15.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:     newMemStore(),
		locker:    newFakeLocker(),
		publisher: &recordingPublisher{},
		clock:     fixedClock{now: time.Date(2025, time.April, 15, 12, 0, 0, 0, time.UTC)},
		userID:    uuid.New(),
	}

	f.account = entity.NewAccount(f.userID, "Checking", dec("1000.00"), true)
	f.store.accounts[f.account.ID] = f.account
	f.card = entity.NewCreditCard(f.userID, "Visa", dec("5000"), 10, 20, &f.account.ID)
	f.store.cards[f.card.ID] = f.card

	cards := fakeCardRepo{f.store}
	bills := fakeBillRepo{f.store}
	f.aggregator = NewBillAggregator(cards, fakeTransactionRepo{f.store}, valueobject.DefaultDueDatePolicy())
	f.details = NewGetBillDetailsUseCase(f.aggregator, bills, f.clock)
	f.current = NewGetCurrentBillUseCase(f.details, f.clock)
	f.list = NewListBillsUseCase(cards, bills, f.clock)
	f.materialize = NewMaterializeBillUseCase(f.aggregator, bills, f.publisher)
	f.pay = NewPayBillUseCase(bills, fakeAccountRepo{f.store}, cards, f.materialize, f.locker, f.publisher, f.clock)
	f.unpay = NewUnpayBillUseCase(bills, f.locker, f.publisher)
	return f
}

// charge books a card transaction and keeps current_used in step, the way the store does.
func (f *fixture) charge(t *testing.T, details entity.TransactionDetails, amount string, date time.Time) *entity.Transaction {
	t.Helper()
	txn, err := entity.NewTransaction(f.userID, entity.TransactionDraft{
		Details:     details,
		Amount:      dec(amount),
		Description: "charge",
		Date:        date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.store.transactions = append(f.store.transactions, txn)
	for _, e := range txn.BalanceEffects() {
		if e.Target == entity.EffectTargetCreditCard {
			f.store.cards[e.ID].CurrentUsed = f.store.cards[e.ID].CurrentUsed.Add(e.Delta)
		}
	}
	return txn
}

func (f *fixture) expense(t *testing.T, amount string, date time.Time) *entity.Transaction {
	return f.charge(t, entity.ExpenseDetails{Source: entity.CardSource(f.card.ID)}, amount, date)
}

func (f *fixture) refund(t *testing.T, amount string, date time.Time) *entity.Transaction {
	return f.charge(t, entity.IncomeDetails{Source: entity.CardSource(f.card.ID)}, amount, date)
}

// aprilBill materializes the 2025-04 bill: 100 + 50 expenses and a 20 refund.
func (f *fixture) aprilBill(t *testing.T) *entity.Bill {
	t.Helper()
	f.expense(t, "100.00", day(2025, time.March, 15))
	f.expense(t, "50.00", day(2025, time.March, 28))
	f.refund(t, "20.00", day(2025, time.April, 2))

	out, err := f.materialize.Execute(context.Background(), MaterializeBillInput{
		UserID:       f.userID,
		CreditCardID: f.card.ID,
		Period:       valueobject.BillingPeriod{Month: time.April, Year: 2025},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.Bill
}

func TestGetBillDetails(t *testing.T) {
	f := newFixture(t)
	f.expense(t, "100.00", day(2025, time.March, 15))
	f.expense(t, "50.00", day(2025, time.April, 10))
	f.refund(t, "20.00", day(2025, time.March, 11))
	f.expense(t, "999.00", day(2025, time.March, 10)) // March bill
	f.expense(t, "999.00", day(2025, time.April, 11)) // May bill
	cancelled := f.expense(t, "999.00", day(2025, time.March, 20))
	cancelled.Status = entity.TransactionStatusCancelled

	input := GetBillDetailsInput{UserID: f.userID, CreditCardID: f.card.ID, Month: time.April, Year: 2025}

	first, err := f.details.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agg := first.Details.Aggregate
	if !agg.ExpenseTotal.Equal(dec("150")) || !agg.RefundTotal.Equal(dec("20")) || !agg.NetTotal.Equal(dec("130")) {
		t.Errorf("unexpected totals %s/%s/%s", agg.ExpenseTotal, agg.RefundTotal, agg.NetTotal)
	}
	if agg.TransactionCount != 3 || len(first.Details.Transactions) != 3 {
		t.Errorf("expected 3 transactions, got %d", agg.TransactionCount)
	}
	if !agg.DueDate.Equal(day(2025, time.April, 20)) {
		t.Errorf("expected due 2025-04-20, got %s", agg.DueDate)
	}
	if first.Details.Bill != nil {
		t.Error("expected no materialized bill")
	}
	if first.Details.Status != entity.BillStatusClosed {
		t.Errorf("expected closed, got %s", first.Details.Status)
	}

	t.Run("read path is idempotent and writes nothing", func(t *testing.T) {
		second, err := f.details.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a, b := first.Details.Aggregate, second.Details.Aggregate
		if !a.NetTotal.Equal(b.NetTotal) || !a.ExpenseTotal.Equal(b.ExpenseTotal) ||
			!a.RefundTotal.Equal(b.RefundTotal) || a.TransactionCount != b.TransactionCount {
			t.Error("expected identical aggregates")
		}
		if f.store.upserts != 0 || len(f.store.bills) != 0 {
			t.Error("expected no bill writes on read")
		}
	})

	t.Run("empty period", func(t *testing.T) {
		out, err := f.details.Execute(context.Background(), GetBillDetailsInput{
			UserID: f.userID, CreditCardID: f.card.ID, Month: time.January, Year: 2025,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Details.Aggregate.NetTotal.IsZero() || out.Details.Aggregate.TransactionCount != 0 {
			t.Error("expected zero aggregate")
		}
	})

	t.Run("card of another user is not found", func(t *testing.T) {
		_, err := f.details.Execute(context.Background(), GetBillDetailsInput{
			UserID: uuid.New(), CreditCardID: f.card.ID, Month: time.April, Year: 2025,
		})
		if domainerror.KindOf(err) != domainerror.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := f.details.Execute(context.Background(), GetBillDetailsInput{
			UserID: f.userID, CreditCardID: f.card.ID, Month: 13, Year: 2025,
		})
		if !errors.Is(err, domainerror.ErrInvalidBillingPeriod) {
			t.Errorf("expected ErrInvalidBillingPeriod, got %v", err)
		}
	})
}

func TestGetCurrentBill(t *testing.T) {
	f := newFixture(t)
	f.expense(t, "42.00", day(2025, time.April, 12))

	out, err := f.current.Execute(context.Background(), GetCurrentBillInput{UserID: f.userID, CreditCardID: f.card.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Today is 2025-04-15, after the 10th, so charges land in May.
	if out.Details.Aggregate.Period != (valueobject.BillingPeriod{Month: time.May, Year: 2025}) {
		t.Errorf("expected 2025-05, got %s", out.Details.Aggregate.Period)
	}
	if !out.Details.Aggregate.NetTotal.Equal(dec("42")) {
		t.Errorf("expected 42, got %s", out.Details.Aggregate.NetTotal)
	}
	if out.Details.Status != entity.BillStatusOpen {
		t.Errorf("expected open, got %s", out.Details.Status)
	}
}

func TestMaterializeBill_KeepsPaymentAndRefreshes(t *testing.T) {
	f := newFixture(t)
	bill := f.aprilBill(t)
	if !bill.NetTotal.Equal(dec("130")) {
		t.Fatalf("expected 130, got %s", bill.NetTotal)
	}

	f.expense(t, "10.00", day(2025, time.April, 1))
	f.materialize.RefreshForDates(context.Background(), f.userID, f.card.ID, day(2025, time.April, 1), day(2025, time.March, 20))

	stored := f.store.bills[bill.ID]
	if !stored.NetTotal.Equal(dec("140")) {
		t.Errorf("expected refreshed total 140, got %s", stored.NetTotal)
	}
	if len(f.store.bills) != 1 {
		t.Errorf("expected dates of one period to refresh one bill, got %d bills", len(f.store.bills))
	}
}

func TestListBills(t *testing.T) {
	f := newFixture(t)
	f.aprilBill(t)
	f.expense(t, "5.00", day(2025, time.April, 20))
	if _, err := f.materialize.Execute(context.Background(), MaterializeBillInput{
		UserID: f.userID, CreditCardID: f.card.ID, Period: valueobject.BillingPeriod{Month: time.May, Year: 2025},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := f.list.Execute(context.Background(), ListBillsInput{UserID: f.userID, CreditCardID: f.card.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(out.Bills))
	}
	if out.Bills[0].Bill.Month != time.May || out.Bills[0].Status != entity.BillStatusOpen {
		t.Errorf("expected open May bill first, got %s %s", out.Bills[0].Bill.Period(), out.Bills[0].Status)
	}
	if out.Bills[1].Status != entity.BillStatusClosed {
		t.Errorf("expected closed April bill, got %s", out.Bills[1].Status)
	}
}

func TestPayUnpay_RoundTrip(t *testing.T) {
	f := newFixture(t)
	bill := f.aprilBill(t)
	ctx := context.Background()

	startBalance := f.store.balance(f.account.ID)
	startUsed := f.store.used(f.card.ID)

	for i := 0; i < 3; i++ {
		out, err := f.pay.Execute(ctx, PayBillInput{UserID: f.userID, BillID: bill.ID, AccountID: &f.account.ID})
		if err != nil {
			t.Fatalf("pay %d: unexpected error: %v", i, err)
		}
		if !out.Bill.IsPaid || !out.Bill.PaidAmount.Equal(dec("130")) {
			t.Fatalf("pay %d: expected paid 130, got %+v", i, out.Bill)
		}
		if got := f.store.balance(f.account.ID); !got.Equal(startBalance.Sub(dec("130"))) {
			t.Fatalf("pay %d: expected balance 870, got %s", i, got)
		}
		if got := f.store.used(f.card.ID); !got.Equal(startUsed.Sub(dec("130"))) {
			t.Fatalf("pay %d: expected used reduced by 130, got %s", i, got)
		}

		if _, err := f.unpay.Execute(ctx, UnpayBillInput{UserID: f.userID, BillID: bill.ID}); err != nil {
			t.Fatalf("unpay %d: unexpected error: %v", i, err)
		}
		if got := f.store.balance(f.account.ID); !got.Equal(startBalance) {
			t.Fatalf("unpay %d: expected balance restored to %s, got %s", i, startBalance, got)
		}
		if got := f.store.used(f.card.ID); !got.Equal(startUsed) {
			t.Fatalf("unpay %d: expected used restored, got %s", i, got)
		}
	}

	types := f.publisher.types()
	if len(types) == 0 || types[len(types)-3] != entity.ChangeBillUnpaid {
		t.Errorf("expected bill.unpaid event, got %v", types)
	}
}

func TestPayBill_DefaultsToCardPaymentAccount(t *testing.T) {
	f := newFixture(t)
	bill := f.aprilBill(t)

	amount := dec("130.00")
	out, err := f.pay.Execute(context.Background(), PayBillInput{UserID: f.userID, BillID: bill.ID, Amount: &amount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bill.PaymentAccountID == nil || *out.Bill.PaymentAccountID != f.account.ID {
		t.Error("expected the card's payment account to be used")
	}
}

func TestPayBill_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, f *fixture) PayBillInput
		wantErr  error
		wantKind domainerror.ErrorKind
	}{
		{
			name: "already paid",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				if _, err := f.pay.Execute(context.Background(), PayBillInput{UserID: f.userID, BillID: bill.ID}); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				f.store.accounts[f.account.ID].Balance = dec("1000.00")
				return PayBillInput{UserID: f.userID, BillID: bill.ID}
			},
			wantErr:  domainerror.ErrBillAlreadyPaid,
			wantKind: domainerror.KindInvalidState,
		},
		{
			name: "amount mismatch",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				amount := dec("100")
				return PayBillInput{UserID: f.userID, BillID: bill.ID, Amount: &amount}
			},
			wantErr:  domainerror.ErrBillAmountMismatch,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "amount below cents",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				amount := dec("130.005")
				return PayBillInput{UserID: f.userID, BillID: bill.ID, Amount: &amount}
			},
			wantErr:  domainerror.ErrInvalidPaymentAmount,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "stale cache is recomputed before comparing",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				f.expense(t, "10.00", day(2025, time.April, 3))
				amount := dec("130")
				return PayBillInput{UserID: f.userID, BillID: bill.ID, Amount: &amount}
			},
			wantErr:  domainerror.ErrBillAmountMismatch,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "nothing to pay",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				f.expense(t, "20.00", day(2025, time.March, 15))
				f.refund(t, "20.00", day(2025, time.March, 16))
				out, err := f.materialize.Execute(context.Background(), MaterializeBillInput{
					UserID: f.userID, CreditCardID: f.card.ID, Period: valueobject.BillingPeriod{Month: time.April, Year: 2025},
				})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return PayBillInput{UserID: f.userID, BillID: out.Bill.ID}
			},
			wantErr:  domainerror.ErrNothingToPay,
			wantKind: domainerror.KindInvalidState,
		},
		{
			name: "archived account",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				f.store.accounts[f.account.ID].IsArchived = true
				return PayBillInput{UserID: f.userID, BillID: bill.ID}
			},
			wantErr:  domainerror.ErrAccountArchived,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "unknown account",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				other := uuid.New()
				return PayBillInput{UserID: f.userID, BillID: bill.ID, AccountID: &other}
			},
			wantErr:  domainerror.ErrAccountNotFound,
			wantKind: domainerror.KindNotFound,
		},
		{
			name: "no payment account",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				f.store.cards[f.card.ID].PaymentAccountID = nil
				return PayBillInput{UserID: f.userID, BillID: bill.ID}
			},
			wantErr:  domainerror.ErrPaymentAccountRequired,
			wantKind: domainerror.KindValidation,
		},
		{
			name: "unknown bill",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				return PayBillInput{UserID: f.userID, BillID: uuid.New()}
			},
			wantErr:  domainerror.ErrBillNotFound,
			wantKind: domainerror.KindNotFound,
		},
		{
			name: "bill of another user",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				return PayBillInput{UserID: uuid.New(), BillID: bill.ID}
			},
			wantErr:  domainerror.ErrBillNotFound,
			wantKind: domainerror.KindNotFound,
		},
		{
			name: "operation in progress",
			setup: func(t *testing.T, f *fixture) PayBillInput {
				bill := f.aprilBill(t)
				if _, ok, _ := f.locker.TryLock(context.Background(), lockKey(bill.ID.String())); !ok {
					t.Fatal("expected to take the lock")
				}
				return PayBillInput{UserID: f.userID, BillID: bill.ID}
			},
			wantErr:  domainerror.ErrBillOperationInProgress,
			wantKind: domainerror.KindInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			input := tt.setup(t, f)
			before := f.store.balance(f.account.ID)

			_, err := f.pay.Execute(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if kind := domainerror.KindOf(err); kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, kind)
			}
			if got := f.store.balance(f.account.ID); !got.Equal(before) {
				t.Errorf("expected balance unchanged at %s, got %s", before, got)
			}
		})
	}
}

func TestPayBill_StoreFailureLeavesNothingApplied(t *testing.T) {
	f := newFixture(t)
	bill := f.aprilBill(t)
	f.store.failWrite = errors.New("connection reset")

	_, err := f.pay.Execute(context.Background(), PayBillInput{UserID: f.userID, BillID: bill.ID})
	if domainerror.KindOf(err) != domainerror.KindStore {
		t.Fatalf("expected store kind, got %v", err)
	}
	if f.store.bills[bill.ID].IsPaid {
		t.Error("expected bill to stay unpaid")
	}
	if !f.store.balance(f.account.ID).Equal(dec("1000")) {
		t.Error("expected balance unchanged")
	}

	f.store.failWrite = nil
	if _, err := f.pay.Execute(context.Background(), PayBillInput{UserID: f.userID, BillID: bill.ID}); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestUnpayBill_UsesRecordedAmount(t *testing.T) {
	f := newFixture(t)
	bill := f.aprilBill(t)
	ctx := context.Background()

	if _, err := f.pay.Execute(ctx, PayBillInput{UserID: f.userID, BillID: bill.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A late charge changes the live total after payment.
	f.expense(t, "10.00", day(2025, time.April, 4))
	f.materialize.RefreshForDates(ctx, f.userID, f.card.ID, day(2025, time.April, 4))

	out, err := f.unpay.Execute(ctx, UnpayBillInput{UserID: f.userID, BillID: bill.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bill.IsPaid || out.Bill.PaymentAccountID != nil || out.Bill.PaymentDate != nil {
		t.Error("expected payment fields cleared")
	}
	if got := f.store.balance(f.account.ID); !got.Equal(dec("1000")) {
		t.Errorf("expected balance 1000, got %s", got)
	}
}

func TestUnpayBill_Rejections(t *testing.T) {
	t.Run("unpaid bill", func(t *testing.T) {
		f := newFixture(t)
		bill := f.aprilBill(t)

		_, err := f.unpay.Execute(context.Background(), UnpayBillInput{UserID: f.userID, BillID: bill.ID})
		if !errors.Is(err, domainerror.ErrBillNotPaid) {
			t.Fatalf("expected ErrBillNotPaid, got %v", err)
		}
		if domainerror.KindOf(err) != domainerror.KindInvalidState {
			t.Errorf("expected invalid state, got %s", domainerror.KindOf(err))
		}
		if !f.store.balance(f.account.ID).Equal(dec("1000")) {
			t.Error("expected balance unchanged")
		}
	})

	t.Run("unknown bill", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.unpay.Execute(context.Background(), UnpayBillInput{UserID: f.userID, BillID: uuid.New()})
		if domainerror.KindOf(err) != domainerror.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestPayBill_ReleasesLock(t *testing.T) {
	f := newFixture(t)
	bill := f.aprilBill(t)
	amount := dec("1")

	if _, err := f.pay.Execute(context.Background(), PayBillInput{UserID: f.userID, BillID: bill.ID, Amount: &amount}); err == nil {
		t.Fatal("expected mismatch error")
	}
	if len(f.locker.held) != 0 {
		t.Error("expected lock released after a failed payment")
	}
}
