package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
	"github.com/finance-tracker/wallet/internal/integration/persistence/model"
)

// billRepository implements the adapter.BillRepository interface.
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository instance.
func NewBillRepository(db *gorm.DB) adapter.BillRepository {
	return &billRepository{
		db: db,
	}
}

// FindByID retrieves a bill owned by the user.
func (r *billRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillNotFound
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// FindByPeriod retrieves the bill of a card for one period.
func (r *billRepository) FindByPeriod(ctx context.Context, userID, cardID uuid.UUID, period valueobject.BillingPeriod) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND credit_card_id = ? AND month = ? AND year = ?", userID, cardID, int(period.Month), period.Year).
		First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillNotFound
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// FindByCard retrieves every stored bill of a card, newest period first.
func (r *billRepository) FindByCard(ctx context.Context, userID, cardID uuid.UUID) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND credit_card_id = ?", userID, cardID).
		Order("year DESC, month DESC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}

	bills := make([]*entity.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToEntity()
	}
	return bills, nil
}

// Upsert inserts the bill or overwrites the derived totals of the existing row for the
// same card and period. Payment fields of an existing row are never touched.
func (r *billRepository) Upsert(ctx context.Context, bill *entity.Bill) (*entity.Bill, error) {
	row := model.BillFromEntity(bill)
	row.Version = 1
	row.UpdatedAt = time.Now().UTC()

	updates := clause.AssignmentColumns([]string{
		"due_date", "expense_total", "refund_total", "net_total", "transaction_count", "updated_at",
	})
	updates = append(updates, clause.Assignment{
		Column: clause.Column{Name: "version"},
		Value:  gorm.Expr("bills.version + 1"),
	})

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "credit_card_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: updates,
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	return r.FindByPeriod(ctx, bill.UserID, bill.CreditCardID, bill.Period())
}

// MarkPaid flips the bill to paid, debits the account and releases card usage atomically.
func (r *billRepository) MarkPaid(ctx context.Context, cmd adapter.PayBillCommand) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.BillModel{}).
			Where("id = ? AND user_id = ? AND version = ? AND is_paid = ?", cmd.BillID, cmd.UserID, cmd.ExpectedVersion, false).
			Updates(map[string]any{
				"is_paid":            true,
				"paid_amount":        cmd.Amount,
				"payment_account_id": cmd.AccountID,
				"payment_date":       cmd.PaidAt,
				"version":            gorm.Expr("version + 1"),
				"updated_at":         time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.transitionConflict(tx, cmd.UserID, cmd.BillID, true)
		}

		result = tx.Model(&model.AccountModel{}).
			Where("id = ? AND user_id = ? AND is_archived = ?", cmd.AccountID, cmd.UserID, false).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance - ?", cmd.Amount),
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.unusableAccount(tx, cmd.UserID, cmd.AccountID)
		}

		return adjustCardUsage(tx, cmd.UserID, cmd.CreditCardID, cmd.Amount.Neg())
	})
}

// MarkUnpaid reverses a payment: the account gets the recorded amount back and card usage returns.
func (r *billRepository) MarkUnpaid(ctx context.Context, cmd adapter.UnpayBillCommand) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.BillModel{}).
			Where("id = ? AND user_id = ? AND version = ? AND is_paid = ?", cmd.BillID, cmd.UserID, cmd.ExpectedVersion, true).
			Updates(map[string]any{
				"is_paid":            false,
				"paid_amount":        decimal.Zero,
				"payment_account_id": nil,
				"payment_date":       nil,
				"version":            gorm.Expr("version + 1"),
				"updated_at":         time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.transitionConflict(tx, cmd.UserID, cmd.BillID, false)
		}

		// The paying account may have been archived or deleted since; it still gets the money back.
		result = tx.Unscoped().Model(&model.AccountModel{}).
			Where("id = ? AND user_id = ?", cmd.AccountID, cmd.UserID).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance + ?", cmd.Amount),
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrAccountNotFound
		}

		return adjustCardUsage(tx, cmd.UserID, cmd.CreditCardID, cmd.Amount)
	})
}

func adjustCardUsage(tx *gorm.DB, userID, cardID uuid.UUID, delta decimal.Decimal) error {
	result := tx.Unscoped().Model(&model.CreditCardModel{}).
		Where("id = ? AND user_id = ?", cardID, userID).
		Updates(map[string]any{
			"current_used": gorm.Expr("current_used + ?", delta),
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCreditCardNotFound
	}
	return nil
}

// transitionConflict explains why the guarded bill update matched no row.
func (r *billRepository) transitionConflict(tx *gorm.DB, userID, billID uuid.UUID, paying bool) error {
	var billModel model.BillModel
	err := tx.Where("id = ? AND user_id = ?", billID, userID).First(&billModel).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerror.ErrBillNotFound
	case err != nil:
		return err
	case paying && billModel.IsPaid:
		return domainerror.ErrBillAlreadyPaid
	case !paying && !billModel.IsPaid:
		return domainerror.ErrBillNotPaid
	default:
		return domainerror.ErrBillChanged
	}
}

func (r *billRepository) unusableAccount(tx *gorm.DB, userID, accountID uuid.UUID) error {
	var accountModel model.AccountModel
	err := tx.Where("id = ? AND user_id = ?", accountID, userID).First(&accountModel).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerror.ErrAccountNotFound
	case err != nil:
		return err
	default:
		return domainerror.ErrAccountArchived
	}
}

// FindUnpaidDueBetween returns unpaid bills with something to pay, due in [from, to],
// that have not been reminded yet.
func (r *billRepository) FindUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Where("is_paid = ? AND reminder_sent_at IS NULL AND net_total > 0", false).
		Where("due_date >= ? AND due_date <= ?", from, to).
		Order("due_date ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}

	bills := make([]*entity.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToEntity()
	}
	return bills, nil
}

// MarkReminderSent stamps the bill so the reminder is sent only once.
func (r *billRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.BillModel{}).
		Where("id = ?", id).
		Update("reminder_sent_at", sentAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBillNotFound
	}
	return nil
}
