// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BillReminder is the content of one bill due reminder.
type BillReminder struct {
	UserEmail string
	UserName  string
	CardName  string
	Period    valueobject.BillingPeriod
	DueDate   time.Time
	Amount    decimal.Decimal
}

// BillReminderNotifier delivers bill due reminders.
type BillReminderNotifier interface {
	NotifyBillDue(ctx context.Context, reminder BillReminder) error
}
