package email

import (
	"context"
	"fmt"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/email/templates"
)

// ReminderMailer renders bill reminders and hands them to an EmailSender.
type ReminderMailer struct {
	sender     adapter.EmailSender
	renderer   *templates.Renderer
	appBaseURL string
}

var _ adapter.BillReminderNotifier = (*ReminderMailer)(nil)

// NewReminderMailer creates a new reminder mailer.
func NewReminderMailer(sender adapter.EmailSender, renderer *templates.Renderer, appBaseURL string) *ReminderMailer {
	return &ReminderMailer{
		sender:     sender,
		renderer:   renderer,
		appBaseURL: appBaseURL,
	}
}

// NotifyBillDue sends one reminder email.
func (m *ReminderMailer) NotifyBillDue(ctx context.Context, reminder adapter.BillReminder) error {
	data := templates.BillReminderData{
		UserName: reminder.UserName,
		CardName: reminder.CardName,
		Period:   reminder.Period.String(),
		DueDate:  reminder.DueDate.Format("2006-01-02"),
		Amount:   reminder.Amount.StringFixed(2),
	}
	if m.appBaseURL != "" {
		data.BillsURL = m.appBaseURL + "/credit-cards"
	}

	html, text, err := m.renderer.Render(templates.BillReminderTemplate, data)
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render bill reminder",
			err,
		)
	}

	_, err = m.sender.Send(ctx, adapter.SendEmailInput{
		To:      reminder.UserEmail,
		Name:    reminder.UserName,
		Subject: fmt.Sprintf("Your %s bill is due on %s", reminder.CardName, data.DueDate),
		HTML:    html,
		Text:    text,
	})
	return err
}
