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
)

// UnpayBillInput represents the input for reversing a bill payment.
type UnpayBillInput struct {
	UserID uuid.UUID
	BillID uuid.UUID
}

// UnpayBillOutput represents the output of reversing a bill payment.
type UnpayBillOutput struct {
	Bill *entity.Bill
}

// UnpayBillUseCase moves a bill from paid back to unpaid and refunds the recorded payment.
type UnpayBillUseCase struct {
	billRepo  adapter.BillRepository
	locker    adapter.Locker
	publisher adapter.EventPublisher
}

// NewUnpayBillUseCase creates a new UnpayBillUseCase instance.
func NewUnpayBillUseCase(billRepo adapter.BillRepository, locker adapter.Locker, publisher adapter.EventPublisher) *UnpayBillUseCase {
	return &UnpayBillUseCase{
		billRepo:  billRepo,
		locker:    locker,
		publisher: publisher,
	}
}

// Execute reverses the payment with the amount and account stored at payment time.
func (uc *UnpayBillUseCase) Execute(ctx context.Context, input UnpayBillInput) (*UnpayBillOutput, error) {
	release, err := acquire(ctx, uc.locker, input.BillID)
	if err != nil {
		return nil, err
	}
	defer release()

	bill, err := uc.billRepo.FindByID(ctx, input.UserID, input.BillID)
	if err != nil {
		return nil, billLookupError(err)
	}
	if !bill.IsPaid || bill.PaymentAccountID == nil {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeBillNotPaid,
			"bill is not paid",
			domainerror.ErrBillNotPaid,
		)
	}

	accountID := *bill.PaymentAccountID
	amount := bill.PaidAmount
	err = uc.billRepo.MarkUnpaid(ctx, adapter.UnpayBillCommand{
		UserID:          input.UserID,
		BillID:          bill.ID,
		CreditCardID:    bill.CreditCardID,
		AccountID:       accountID,
		Amount:          amount,
		ExpectedVersion: bill.Version,
	})
	if err != nil {
		return nil, transitionError("unpay bill", err)
	}

	slog.Info("Bill payment reversed",
		"bill_id", bill.ID,
		"account_id", accountID,
		"amount", amount.String(),
	)

	bill.IsPaid = false
	bill.PaidAmount = decimal.Zero
	bill.PaymentAccountID = nil
	bill.PaymentDate = nil
	bill.Version++

	publish(ctx, uc.publisher,
		entity.NewChangeEvent(input.UserID, entity.ChangeBillUnpaid, bill.ID),
		entity.NewChangeEvent(input.UserID, entity.ChangeAccountUpdated, accountID),
		entity.NewChangeEvent(input.UserID, entity.ChangeCreditCardUpdated, bill.CreditCardID),
	)

	return &UnpayBillOutput{Bill: bill}, nil
}
