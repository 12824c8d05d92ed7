// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/persistence/model"
)

// applyEffects adds each delta to its balance column inside tx.
// Soft-deleted rows still receive deltas so reversals stay balanced.
func applyEffects(tx *gorm.DB, effects entity.BalanceEffects) error {
	now := time.Now().UTC()
	for _, effect := range effects.Net() {
		var (
			target  any
			column  string
			missing error
		)
		switch effect.Target {
		case entity.EffectTargetAccount:
			target, column, missing = &model.AccountModel{}, "balance", domainerror.ErrAccountNotFound
		case entity.EffectTargetCreditCard:
			target, column, missing = &model.CreditCardModel{}, "current_used", domainerror.ErrCreditCardNotFound
		case entity.EffectTargetGoal:
			target, column, missing = &model.GoalModel{}, "saved_amount", domainerror.ErrGoalNotFound
		default:
			return fmt.Errorf("unknown effect target %q", effect.Target)
		}

		result := tx.Unscoped().Model(target).
			Where("id = ?", effect.ID).
			Updates(map[string]any{
				column:       gorm.Expr(column+" + ?", effect.Delta),
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return missing
		}
	}
	return nil
}
