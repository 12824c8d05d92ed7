// Package report contains spending report use cases.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// UncategorizedID is a constant string used to represent uncategorized transactions.
const UncategorizedID = "uncategorized"

// UncategorizedName is the default name for uncategorized transactions.
const UncategorizedName = "Uncategorized"

// UncategorizedColor is the default color for uncategorized transactions.
const UncategorizedColor = "#6B7280"

// UncategorizedIcon is the default icon for uncategorized transactions.
const UncategorizedIcon = "question-mark"

// GetCategoryBreakdownInput represents the input for getting category breakdown.
// The calendar month of Period is reported.
type GetCategoryBreakdownInput struct {
	UserID uuid.UUID
	Period valueobject.BillingPeriod
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	CategoryID       string
	CategoryName     string
	CategoryColor    string
	CategoryIcon     string
	Amount           decimal.Decimal
	Percentage       float64
	TransactionCount int
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	Period        valueobject.BillingPeriod
	StartDate     time.Time
	EndDate       time.Time
	TotalExpenses decimal.Decimal
	Categories    []CategoryBreakdownItem // Largest amount first
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
// Card charges count on their transaction date, not on their bill.
type GetCategoryBreakdownUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute retrieves spending breakdown by category for the given month.
func (uc *GetCategoryBreakdownUseCase) Execute(
	ctx context.Context,
	input GetCategoryBreakdownInput,
) (*GetCategoryBreakdownOutput, error) {
	if _, err := valueobject.NewBillingPeriod(input.Period.Month, input.Period.Year); err != nil {
		return nil, err
	}

	start := valueobject.CalendarDate(input.Period.Year, input.Period.Month, 1)
	end := valueobject.CalendarDate(input.Period.Year, input.Period.Month, valueobject.DaysIn(input.Period.Year, input.Period.Month))

	totals, err := uc.transactionRepo.SumExpensesByCategory(ctx, input.UserID, start, end)
	if err != nil {
		return nil, domainerror.NewStoreError("sum expenses by category", err)
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID, nil)
	if err != nil {
		return nil, domainerror.NewStoreError("list categories", err)
	}
	byID := make(map[uuid.UUID]int, len(categories))
	for i, c := range categories {
		byID[c.ID] = i
	}

	totalExpenses := decimal.Zero
	for _, t := range totals {
		totalExpenses = totalExpenses.Add(t.Total)
	}

	items := make([]CategoryBreakdownItem, 0, len(totals))
	for _, raw := range totals {
		var percentage float64
		if !totalExpenses.IsZero() {
			pct := raw.Total.Mul(decimal.NewFromInt(100)).Div(totalExpenses)
			percentage, _ = pct.Round(2).Float64()
		}

		item := CategoryBreakdownItem{
			CategoryID:       UncategorizedID,
			CategoryName:     UncategorizedName,
			CategoryColor:    UncategorizedColor,
			CategoryIcon:     UncategorizedIcon,
			Amount:           raw.Total,
			Percentage:       percentage,
			TransactionCount: raw.TransactionCount,
		}

		// Deleted categories fall back to the uncategorized look but keep their id.
		if raw.CategoryID != nil {
			item.CategoryID = raw.CategoryID.String()
			if i, ok := byID[*raw.CategoryID]; ok {
				c := categories[i]
				item.CategoryName = c.Name
				item.CategoryColor = c.Color
				item.CategoryIcon = c.Icon
			}
		}

		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount.GreaterThan(items[j].Amount)
	})

	return &GetCategoryBreakdownOutput{
		Period:        input.Period,
		StartDate:     start,
		EndDate:       end,
		TotalExpenses: totalExpenses,
		Categories:    items,
	}, nil
}
