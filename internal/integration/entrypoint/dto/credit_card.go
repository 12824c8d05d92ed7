// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/usecase/billing"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CreateCreditCardRequest represents the request body for credit card creation.
type CreateCreditCardRequest struct {
	Name             string          `json:"name" binding:"required,min=1,max=100"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	ClosingDay       int             `json:"closing_day" binding:"required"`
	DueDay           int             `json:"due_day" binding:"required"`
	PaymentAccountID *string         `json:"payment_account_id,omitempty"`
}

// UpdateCreditCardRequest represents the request body for credit card update.
// An empty payment_account_id detaches the payment account.
type UpdateCreditCardRequest struct {
	Name             *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	CreditLimit      *decimal.Decimal `json:"credit_limit,omitempty"`
	ClosingDay       *int             `json:"closing_day,omitempty"`
	DueDay           *int             `json:"due_day,omitempty"`
	PaymentAccountID *string          `json:"payment_account_id,omitempty"`
	IsArchived       *bool            `json:"is_archived,omitempty"`
}

// CreditCardResponse represents a single credit card in API responses.
type CreditCardResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	CurrentUsed      decimal.Decimal `json:"current_used"`
	AvailableLimit   decimal.Decimal `json:"available_limit"`
	ClosingDay       int             `json:"closing_day"`
	DueDay           int             `json:"due_day"`
	PaymentAccountID *string         `json:"payment_account_id,omitempty"`
	IsArchived       bool            `json:"is_archived"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreditCardListResponse represents the response for listing credit cards.
type CreditCardListResponse struct {
	CreditCards []CreditCardResponse `json:"credit_cards"`
}

// ToCreditCardResponse converts a domain CreditCard entity to a CreditCardResponse DTO.
func ToCreditCardResponse(c *entity.CreditCard) CreditCardResponse {
	return CreditCardResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		CreditLimit:      c.CreditLimit,
		CurrentUsed:      c.CurrentUsed,
		AvailableLimit:   c.AvailableLimit(),
		ClosingDay:       c.ClosingDay,
		DueDay:           c.DueDay,
		PaymentAccountID: optionalUUIDString(c.PaymentAccountID),
		IsArchived:       c.IsArchived,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ToCreditCardListResponse converts credit cards to a CreditCardListResponse.
func ToCreditCardListResponse(cards []*entity.CreditCard) CreditCardListResponse {
	items := make([]CreditCardResponse, len(cards))
	for i, c := range cards {
		items[i] = ToCreditCardResponse(c)
	}
	return CreditCardListResponse{CreditCards: items}
}

// PayBillRequest represents the request body for paying a bill.
type PayBillRequest struct {
	AccountID *string          `json:"account_id,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
}

// BillResponse represents a materialized bill in API responses.
type BillResponse struct {
	ID               string          `json:"id"`
	CreditCardID     string          `json:"credit_card_id"`
	Period           string          `json:"period"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	DueDate          string          `json:"due_date"`
	ExpenseTotal     decimal.Decimal `json:"expense_total"`
	RefundTotal      decimal.Decimal `json:"refund_total"`
	NetTotal         decimal.Decimal `json:"net_total"`
	TransactionCount int             `json:"transaction_count"`
	Status           string          `json:"status,omitempty"`
	IsPaid           bool            `json:"is_paid"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	PaymentAccountID *string         `json:"payment_account_id,omitempty"`
	PaymentDate      *time.Time      `json:"payment_date,omitempty"`
	Version          int             `json:"version"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// BillListResponse represents the response for listing the bills of a card.
type BillListResponse struct {
	CreditCard CreditCardResponse `json:"credit_card"`
	Bills      []BillResponse     `json:"bills"`
}

// BillDetailsResponse represents one billing period with its transactions.
type BillDetailsResponse struct {
	CreditCard       CreditCardResponse    `json:"credit_card"`
	Period           string                `json:"period"`
	PeriodStart      string                `json:"period_start"`
	ClosingDate      string                `json:"closing_date"`
	DueDate          string                `json:"due_date"`
	ExpenseTotal     decimal.Decimal       `json:"expense_total"`
	RefundTotal      decimal.Decimal       `json:"refund_total"`
	NetTotal         decimal.Decimal       `json:"net_total"`
	TransactionCount int                   `json:"transaction_count"`
	Status           string                `json:"status"`
	Bill             *BillResponse         `json:"bill,omitempty"`
	Transactions     []TransactionResponse `json:"transactions"`
}

// BillingPeriodResponse represents a resolved billing period.
type BillingPeriodResponse struct {
	Period      string `json:"period"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	PeriodStart string `json:"period_start"`
	ClosingDate string `json:"closing_date"`
	DueDate     string `json:"due_date"`
}

// ToBillResponse converts a domain Bill entity to a BillResponse DTO.
func ToBillResponse(b *entity.Bill, status entity.BillStatus) BillResponse {
	return BillResponse{
		ID:               b.ID.String(),
		CreditCardID:     b.CreditCardID.String(),
		Period:           b.Period().String(),
		Month:            int(b.Month),
		Year:             b.Year,
		DueDate:          formatDate(b.DueDate),
		ExpenseTotal:     b.ExpenseTotal,
		RefundTotal:      b.RefundTotal,
		NetTotal:         b.NetTotal,
		TransactionCount: b.TransactionCount,
		Status:           string(status),
		IsPaid:           b.IsPaid,
		PaidAmount:       b.PaidAmount,
		PaymentAccountID: optionalUUIDString(b.PaymentAccountID),
		PaymentDate:      b.PaymentDate,
		Version:          b.Version,
		UpdatedAt:        b.UpdatedAt,
	}
}

// ToBillListResponse converts the output of ListBills to a BillListResponse.
func ToBillListResponse(output *billing.ListBillsOutput) BillListResponse {
	bills := make([]BillResponse, len(output.Bills))
	for i, summary := range output.Bills {
		bills[i] = ToBillResponse(summary.Bill, summary.Status)
	}
	return BillListResponse{
		CreditCard: ToCreditCardResponse(output.Card),
		Bills:      bills,
	}
}

// ToBillDetailsResponse converts a bill view to a BillDetailsResponse.
func ToBillDetailsResponse(details *entity.BillWithTransactions) BillDetailsResponse {
	agg := details.Aggregate
	txns := make([]TransactionResponse, len(details.Transactions))
	for i, t := range details.Transactions {
		txns[i] = ToTransactionResponse(t, nil)
	}

	response := BillDetailsResponse{
		CreditCard:       ToCreditCardResponse(details.Card),
		Period:           agg.Period.String(),
		PeriodStart:      formatDate(agg.PeriodStart),
		ClosingDate:      formatDate(agg.ClosingDate),
		DueDate:          formatDate(agg.DueDate),
		ExpenseTotal:     agg.ExpenseTotal,
		RefundTotal:      agg.RefundTotal,
		NetTotal:         agg.NetTotal,
		TransactionCount: agg.TransactionCount,
		Status:           string(details.Status),
		Transactions:     txns,
	}
	if details.Bill != nil {
		bill := ToBillResponse(details.Bill, details.Status)
		response.Bill = &bill
	}
	return response
}

// ToBillingPeriodResponse converts a resolved period to a BillingPeriodResponse.
func ToBillingPeriodResponse(output *billing.ResolvePeriodOutput) BillingPeriodResponse {
	return BillingPeriodResponse{
		Period:      output.Period.String(),
		Month:       int(output.Period.Month),
		Year:        output.Period.Year,
		PeriodStart: formatDate(output.PeriodStart),
		ClosingDate: formatDate(output.ClosingDate),
		DueDate:     formatDate(output.DueDate),
	}
}
