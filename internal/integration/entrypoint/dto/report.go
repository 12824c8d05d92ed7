// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/usecase/report"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CategoryBreakdownItemResponse represents one category's share of the month's expenses.
type CategoryBreakdownItemResponse struct {
	CategoryID       string          `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	CategoryColor    string          `json:"category_color"`
	CategoryIcon     string          `json:"category_icon"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       float64         `json:"percentage"`
	TransactionCount int             `json:"transaction_count"`
}

// CategoryBreakdownResponse represents the expense report of one month.
type CategoryBreakdownResponse struct {
	Period        string                          `json:"period"`
	StartDate     string                          `json:"start_date"`
	EndDate       string                          `json:"end_date"`
	TotalExpenses decimal.Decimal                 `json:"total_expenses"`
	Categories    []CategoryBreakdownItemResponse `json:"categories"`
}

// ToCategoryBreakdownResponse converts the report output to its response.
func ToCategoryBreakdownResponse(output *report.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	items := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, c := range output.Categories {
		items[i] = CategoryBreakdownItemResponse{
			CategoryID:       c.CategoryID,
			CategoryName:     c.CategoryName,
			CategoryColor:    c.CategoryColor,
			CategoryIcon:     c.CategoryIcon,
			Amount:           c.Amount,
			Percentage:       c.Percentage,
			TransactionCount: c.TransactionCount,
		}
	}
	return CategoryBreakdownResponse{
		Period:        output.Period.String(),
		StartDate:     formatDate(output.StartDate),
		EndDate:       formatDate(output.EndDate),
		TotalExpenses: output.TotalExpenses,
		Categories:    items,
	}
}

// ChangeEventResponse is the payload of one server-sent change event.
type ChangeEventResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToChangeEventResponse converts a change event to its wire form.
func ToChangeEventResponse(e entity.ChangeEvent) ChangeEventResponse {
	return ChangeEventResponse{
		ID:         e.ID.String(),
		Type:       string(e.Type),
		EntityID:   e.EntityID.String(),
		OccurredAt: e.OccurredAt,
	}
}
