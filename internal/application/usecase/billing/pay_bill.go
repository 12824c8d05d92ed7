// Package billing contains the credit card bill use cases.
package billing

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// PayBillInput represents the input for paying a bill.
type PayBillInput struct {
	UserID    uuid.UUID
	BillID    uuid.UUID
	AccountID *uuid.UUID       // Optional, defaults to the card's payment account
	Amount    *decimal.Decimal // Optional, must equal the bill's net total when given
}

// PayBillOutput represents the output of paying a bill.
type PayBillOutput struct {
	Bill *entity.Bill
}

// PayBillUseCase moves a bill from unpaid to paid and debits the payment account.
type PayBillUseCase struct {
	billRepo    adapter.BillRepository
	accountRepo adapter.AccountRepository
	cardRepo    adapter.CreditCardRepository
	materialize *MaterializeBillUseCase
	locker      adapter.Locker
	publisher   adapter.EventPublisher
	clock       adapter.Clock
}

// NewPayBillUseCase creates a new PayBillUseCase instance.
func NewPayBillUseCase(
	billRepo adapter.BillRepository,
	accountRepo adapter.AccountRepository,
	cardRepo adapter.CreditCardRepository,
	materialize *MaterializeBillUseCase,
	locker adapter.Locker,
	publisher adapter.EventPublisher,
	clock adapter.Clock,
) *PayBillUseCase {
	return &PayBillUseCase{
		billRepo:    billRepo,
		accountRepo: accountRepo,
		cardRepo:    cardRepo,
		materialize: materialize,
		locker:      locker,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute pays the bill. Either the bill is marked paid and the account debited, or nothing changes.
func (uc *PayBillUseCase) Execute(ctx context.Context, input PayBillInput) (*PayBillOutput, error) {
	if input.Amount != nil && !valueobject.HasMoneyScale(*input.Amount) {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must have at most 2 decimal places",
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	release, err := acquire(ctx, uc.locker, input.BillID)
	if err != nil {
		return nil, err
	}
	defer release()

	bill, err := uc.billRepo.FindByID(ctx, input.UserID, input.BillID)
	if err != nil {
		return nil, billLookupError(err)
	}
	if bill.IsPaid {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeBillAlreadyPaid,
			"bill is already paid",
			domainerror.ErrBillAlreadyPaid,
		)
	}

	card, err := uc.cardRepo.FindByID(ctx, input.UserID, bill.CreditCardID)
	if err != nil {
		return nil, cardLookupError(err)
	}

	accountID := input.AccountID
	if accountID == nil {
		accountID = card.PaymentAccountID
	}
	if accountID == nil {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodePaymentAccountRequired,
			"choose the account that pays the bill",
			domainerror.ErrPaymentAccountRequired,
		)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.UserID, *accountID)
	if err != nil {
		return nil, accountLookupError(err)
	}
	if account.IsArchived {
		return nil, accountLookupError(domainerror.ErrAccountArchived)
	}

	// Pay what the transactions say now, not what the cache said before.
	fresh, err := uc.materialize.Execute(ctx, MaterializeBillInput{
		UserID:       input.UserID,
		CreditCardID: bill.CreditCardID,
		Period:       bill.Period(),
	})
	if err != nil {
		return nil, err
	}
	bill = fresh.Bill

	if bill.IsPaid {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeBillAlreadyPaid,
			"bill is already paid",
			domainerror.ErrBillAlreadyPaid,
		)
	}
	if !bill.NetTotal.IsPositive() {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeNothingToPay,
			"bill total is "+bill.NetTotal.StringFixed(2)+", there is nothing to pay",
			domainerror.ErrNothingToPay,
		)
	}

	amount := bill.NetTotal
	if input.Amount != nil && !input.Amount.Equal(bill.NetTotal) {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeBillAmountMismatch,
			"amount "+input.Amount.StringFixed(2)+" does not match the bill total "+bill.NetTotal.StringFixed(2),
			domainerror.ErrBillAmountMismatch,
		)
	}

	paidAt := uc.clock.Now()
	err = uc.billRepo.MarkPaid(ctx, adapter.PayBillCommand{
		UserID:          input.UserID,
		BillID:          bill.ID,
		CreditCardID:    bill.CreditCardID,
		AccountID:       account.ID,
		Amount:          amount,
		PaidAt:          paidAt,
		ExpectedVersion: bill.Version,
	})
	if err != nil {
		return nil, transitionError("pay bill", err)
	}

	slog.Info("Bill paid",
		"bill_id", bill.ID,
		"account_id", account.ID,
		"amount", amount.String(),
	)

	bill.IsPaid = true
	bill.PaidAmount = amount
	bill.PaymentAccountID = &account.ID
	bill.PaymentDate = &paidAt
	bill.Version++

	publish(ctx, uc.publisher,
		entity.NewChangeEvent(input.UserID, entity.ChangeBillPaid, bill.ID),
		entity.NewChangeEvent(input.UserID, entity.ChangeAccountUpdated, account.ID),
		entity.NewChangeEvent(input.UserID, entity.ChangeCreditCardUpdated, bill.CreditCardID),
	)

	return &PayBillOutput{Bill: bill}, nil
}

// acquire takes the per-bill lock or reports the bill as busy.
func acquire(ctx context.Context, locker adapter.Locker, billID uuid.UUID) (func(), error) {
	release, ok, err := locker.TryLock(ctx, lockKey(billID.String()))
	if err != nil {
		return nil, domainerror.NewStoreError("lock bill", err)
	}
	if !ok {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeBillOperationInProgress,
			"another payment operation on this bill is in progress",
			domainerror.ErrBillOperationInProgress,
		)
	}
	return release, nil
}
