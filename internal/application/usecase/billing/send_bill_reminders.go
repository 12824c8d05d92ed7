// Package billing contains the credit card bill use cases.
package billing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// SendBillRemindersOutput reports one reminder run.
type SendBillRemindersOutput struct {
	Sent    int
	Skipped int
	Failed  int
}

// SendBillRemindersUseCase notifies users of unpaid bills that fall due soon.
type SendBillRemindersUseCase struct {
	billRepo adapter.BillRepository
	cardRepo adapter.CreditCardRepository
	userRepo adapter.UserRepository
	notifier adapter.BillReminderNotifier
	clock    adapter.Clock
	leadDays int
}

// NewSendBillRemindersUseCase creates a new SendBillRemindersUseCase instance.
func NewSendBillRemindersUseCase(
	billRepo adapter.BillRepository,
	cardRepo adapter.CreditCardRepository,
	userRepo adapter.UserRepository,
	notifier adapter.BillReminderNotifier,
	clock adapter.Clock,
	leadDays int,
) *SendBillRemindersUseCase {
	return &SendBillRemindersUseCase{
		billRepo: billRepo,
		cardRepo: cardRepo,
		userRepo: userRepo,
		notifier: notifier,
		clock:    clock,
		leadDays: leadDays,
	}
}

// Execute sends one reminder per unpaid bill due between today and today+leadDays.
// A failed reminder is retried on the next run.
func (uc *SendBillRemindersUseCase) Execute(ctx context.Context) (*SendBillRemindersOutput, error) {
	now := uc.clock.Now()
	today := valueobject.DateOf(now)
	bills, err := uc.billRepo.FindUnpaidDueBetween(ctx, today, today.AddDate(0, 0, uc.leadDays))
	if err != nil {
		return nil, domainerror.NewStoreError("find bills due", err)
	}

	out := &SendBillRemindersOutput{}
	for _, bill := range bills {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		logger := slog.With("bill_id", bill.ID, "user_id", bill.UserID)

		user, err := uc.userRepo.FindByID(ctx, bill.UserID)
		if err != nil {
			logger.Error("Failed to load bill owner", "error", err)
			out.Failed++
			continue
		}
		if !user.EmailNotifications {
			out.Skipped++
			continue
		}

		card, err := uc.cardRepo.FindByID(ctx, bill.UserID, bill.CreditCardID)
		if err != nil {
			logger.Error("Failed to load bill card", "error", err)
			out.Failed++
			continue
		}

		err = uc.notifier.NotifyBillDue(ctx, adapter.BillReminder{
			UserEmail: user.Email,
			UserName:  user.Name,
			CardName:  card.Name,
			Period:    bill.Period(),
			DueDate:   bill.DueDate,
			Amount:    bill.NetTotal,
		})
		if err != nil {
			logger.Error("Failed to send bill reminder",
				"error", err,
				"permanent", errors.Is(err, domainerror.ErrPermanentEmailFailure) || errors.Is(err, domainerror.ErrTemplateRenderFailed),
			)
			out.Failed++
			continue
		}

		if err := uc.billRepo.MarkReminderSent(ctx, bill.ID, now); err != nil {
			logger.Error("Failed to record bill reminder", "error", err)
			out.Failed++
			continue
		}
		out.Sent++
	}

	return out, nil
}
