// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// TransactionRequest represents the request body for creating or replacing a transaction.
// Expenses and incomes set exactly one of account_id or credit_card_id.
// Transfers set account_id (source) and to_account_id (destination).
type TransactionRequest struct {
	Type         string          `json:"type" binding:"required,oneof=expense income transfer"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description" binding:"max=255"`
	Date         string          `json:"date" binding:"required"`
	AccountID    *string         `json:"account_id,omitempty"`
	CreditCardID *string         `json:"credit_card_id,omitempty"`
	ToAccountID  *string         `json:"to_account_id,omitempty"`
	CategoryID   *string         `json:"category_id,omitempty"`
	GoalID       *string         `json:"goal_id,omitempty"`
	Notes        string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// SetTransactionStatusRequest represents the request body for cancelling or restoring a transaction.
type SetTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required,min=1,max=255"`
	Type        string `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
}

// SuggestCategoryResponse represents a category suggestion.
// Category is nil when nothing matched.
type SuggestCategoryResponse struct {
	Category   *TransactionCategoryResponse `json:"category"`
	Source     string                       `json:"source,omitempty"`
	Confidence float64                      `json:"confidence"`
	Reasoning  string                       `json:"reasoning,omitempty"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID           string                       `json:"id"`
	Type         string                       `json:"type"`
	Status       string                       `json:"status"`
	Date         string                       `json:"date"`
	Description  string                       `json:"description"`
	Amount       decimal.Decimal              `json:"amount"`
	AccountID    *string                      `json:"account_id,omitempty"`
	CreditCardID *string                      `json:"credit_card_id,omitempty"`
	ToAccountID  *string                      `json:"to_account_id,omitempty"`
	CategoryID   *string                      `json:"category_id,omitempty"`
	Category     *TransactionCategoryResponse `json:"category,omitempty"`
	GoalID       *string                      `json:"goal_id,omitempty"`
	Notes        string                       `json:"notes"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// Fields converts the request into use case fields.
// It fails on a malformed date or id.
func (r TransactionRequest) Fields() (transaction.Fields, error) {
	fields := transaction.Fields{
		Type:        entity.TransactionType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		Notes:       r.Notes,
	}

	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return fields, err
	}
	fields.Date = date

	if fields.AccountID, err = ParseOptionalUUID(r.AccountID); err != nil {
		return fields, err
	}
	if fields.CreditCardID, err = ParseOptionalUUID(r.CreditCardID); err != nil {
		return fields, err
	}
	if fields.ToAccountID, err = ParseOptionalUUID(r.ToAccountID); err != nil {
		return fields, err
	}
	if fields.CategoryID, err = ParseOptionalUUID(r.CategoryID); err != nil {
		return fields, err
	}
	if fields.GoalID, err = ParseOptionalUUID(r.GoalID); err != nil {
		return fields, err
	}
	return fields, nil
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
// category may be nil.
func ToTransactionResponse(t *entity.Transaction, category *entity.Category) TransactionResponse {
	response := TransactionResponse{
		ID:           t.ID.String(),
		Type:         string(t.Type()),
		Status:       string(t.Status),
		Date:         formatDate(t.Date),
		Description:  t.Description,
		Amount:       t.Amount,
		AccountID:    optionalUUIDString(t.AccountID()),
		CreditCardID: optionalUUIDString(t.CreditCardID()),
		CategoryID:   optionalUUIDString(t.CategoryID),
		GoalID:       optionalUUIDString(t.GoalID),
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	if d, ok := t.Details.(entity.TransferDetails); ok {
		from, to := d.FromAccountID.String(), d.ToAccountID.String()
		response.AccountID = &from
		response.ToAccountID = &to
	}

	if category != nil {
		response.Category = ToTransactionCategoryResponse(category)
	}

	return response
}

// ToTransactionCategoryResponse converts a category to its compact form.
func ToTransactionCategoryResponse(c *entity.Category) *TransactionCategoryResponse {
	if c == nil {
		return nil
	}
	return &TransactionCategoryResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Color: c.Color,
		Icon:  c.Icon,
		Type:  string(c.Type),
	}
}

// ToTransactionListResponse converts a paginated result to TransactionListResponse.
func ToTransactionListResponse(result *entity.TransactionListResult) TransactionListResponse {
	transactions := make([]TransactionResponse, len(result.Transactions))
	for i, item := range result.Transactions {
		transactions[i] = ToTransactionResponse(item.Transaction, item.Category)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
