// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	IncludeInTotals *bool           `json:"include_in_totals,omitempty"`
}

// UpdateAccountRequest represents the request body for account update.
type UpdateAccountRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	IsArchived      *bool   `json:"is_archived,omitempty"`
	IncludeInTotals *bool   `json:"include_in_totals,omitempty"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Balance         decimal.Decimal `json:"balance"`
	IsArchived      bool            `json:"is_archived"`
	IncludeInTotals bool            `json:"include_in_totals"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance decimal.Decimal   `json:"total_balance"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:              a.ID.String(),
		Name:            a.Name,
		Balance:         a.Balance,
		IsArchived:      a.IsArchived,
		IncludeInTotals: a.IncludeInTotals,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAccountListResponse converts accounts and their total to an AccountListResponse.
func ToAccountListResponse(accounts []*entity.Account, total decimal.Decimal) AccountListResponse {
	items := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		items[i] = ToAccountResponse(a)
	}
	return AccountListResponse{
		Accounts:     items,
		TotalBalance: total,
	}
}

// ParseOptionalUUID parses an optional id field. Empty strings are treated as absent.
func ParseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalUUIDString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
