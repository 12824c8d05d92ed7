// Package billing contains the credit card bill use cases.
package billing

import (
	"errors"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// lockKey is the locker key guarding pay and unpay of one bill.
func lockKey(billID string) string {
	return "bill:" + billID
}

func cardLookupError(err error) error {
	if errors.Is(err, domainerror.ErrCreditCardNotFound) {
		return domainerror.NewCreditCardError(
			domainerror.ErrCodeCreditCardNotFound,
			"credit card not found",
			err,
		)
	}
	return domainerror.NewStoreError("load credit card", err)
}

func billLookupError(err error) error {
	if errors.Is(err, domainerror.ErrBillNotFound) {
		return domainerror.NewBillingError(
			domainerror.ErrCodeBillNotFound,
			"bill not found",
			err,
		)
	}
	return domainerror.NewStoreError("load bill", err)
}

func accountLookupError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrAccountNotFound):
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"payment account not found",
			err,
		)
	case errors.Is(err, domainerror.ErrAccountArchived):
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountArchived,
			"payment account is archived",
			err,
		)
	default:
		return domainerror.NewStoreError("load account", err)
	}
}

// transitionError maps failures of the atomic pay/unpay write.
func transitionError(op string, err error) error {
	switch {
	case errors.Is(err, domainerror.ErrBillAlreadyPaid):
		return domainerror.NewBillingError(domainerror.ErrCodeBillAlreadyPaid, "bill is already paid", err)
	case errors.Is(err, domainerror.ErrBillNotPaid):
		return domainerror.NewBillingError(domainerror.ErrCodeBillNotPaid, "bill is not paid", err)
	case errors.Is(err, domainerror.ErrBillChanged):
		return domainerror.NewBillingError(domainerror.ErrCodeBillChanged, "bill changed, reload it and try again", err)
	case errors.Is(err, domainerror.ErrBillNotFound):
		return billLookupError(err)
	case errors.Is(err, domainerror.ErrAccountNotFound), errors.Is(err, domainerror.ErrAccountArchived):
		return accountLookupError(err)
	case errors.Is(err, domainerror.ErrCreditCardNotFound):
		return cardLookupError(err)
	default:
		return domainerror.NewStoreError(op, err)
	}
}
