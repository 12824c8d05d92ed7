package report

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
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

type stubTransactionRepo struct {
	adapter.TransactionRepository
	totals     []adapter.CategoryTotal
	err        error
	start, end time.Time
}

func (r *stubTransactionRepo) SumExpensesByCategory(_ context.Context, _ uuid.UUID, start, end time.Time) ([]adapter.CategoryTotal, error) {
	r.start, r.end = start, end
	return r.totals, r.err
}

type stubCategoryRepo struct {
	adapter.CategoryRepository
	categories []*entity.Category
}

func (r *stubCategoryRepo) FindByUser(context.Context, uuid.UUID, *entity.CategoryType) ([]*entity.Category, error) {
	return r.categories, nil
}

func TestGetCategoryBreakdown(t *testing.T) {
	userID := uuid.New()
	food := entity.NewCategory(userID, "Food", "#FF0000", "utensils", entity.CategoryTypeExpense, nil)
	deleted := uuid.New()

	txns := &stubTransactionRepo{totals: []adapter.CategoryTotal{
		{CategoryID: nil, Total: decimal.NewFromInt(25), TransactionCount: 1},
		{CategoryID: &food.ID, Total: decimal.NewFromInt(150), TransactionCount: 4},
		{CategoryID: &deleted, Total: decimal.NewFromInt(75), TransactionCount: 2},
	}}
	uc := NewGetCategoryBreakdownUseCase(txns, &stubCategoryRepo{categories: []*entity.Category{food}})

	out, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{
		UserID: userID,
		Period: valueobject.BillingPeriod{Month: time.February, Year: 2024},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !txns.start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) || !txns.end.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("range = %v..%v, want 2024-02-01..2024-02-29", txns.start, txns.end)
	}
	if !out.TotalExpenses.Equal(decimal.NewFromInt(250)) {
		t.Errorf("total = %s, want 250", out.TotalExpenses)
	}

	want := []struct {
		id      string
		name    string
		percent float64
	}{
		{food.ID.String(), "Food", 60},
		{deleted.String(), UncategorizedName, 30},
		{UncategorizedID, UncategorizedName, 10},
	}
	if len(out.Categories) != len(want) {
		t.Fatalf("items = %d, want %d", len(out.Categories), len(want))
	}
	for i, w := range want {
		got := out.Categories[i]
		if got.CategoryID != w.id || got.CategoryName != w.name || got.Percentage != w.percent {
			t.Errorf("item %d = %s/%s/%v, want %s/%s/%v", i, got.CategoryID, got.CategoryName, got.Percentage, w.id, w.name, w.percent)
		}
	}
}

func TestGetCategoryBreakdown_Errors(t *testing.T) {
	uc := NewGetCategoryBreakdownUseCase(&stubTransactionRepo{err: errors.New("timeout")}, &stubCategoryRepo{})

	_, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{Period: valueobject.BillingPeriod{Month: 13, Year: 2024}})
	if !errors.Is(err, domainerror.ErrInvalidBillingPeriod) {
		t.Fatalf("error = %v, want ErrInvalidBillingPeriod", err)
	}

	_, err = uc.Execute(context.Background(), GetCategoryBreakdownInput{Period: valueobject.BillingPeriod{Month: time.March, Year: 2024}})
	if kind := domainerror.KindOf(err); kind != domainerror.KindStore {
		t.Fatalf("kind = %v, want store", kind)
	}
}
