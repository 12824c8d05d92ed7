package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/persistence/model"
)

// creditCardRepository implements the adapter.CreditCardRepository interface.
type creditCardRepository struct {
	db *gorm.DB
}

// NewCreditCardRepository creates a new credit card repository instance.
func NewCreditCardRepository(db *gorm.DB) adapter.CreditCardRepository {
	return &creditCardRepository{
		db: db,
	}
}

// Create creates a new credit card in the database.
func (r *creditCardRepository) Create(ctx context.Context, card *entity.CreditCard) error {
	return r.db.WithContext(ctx).Create(model.CreditCardFromEntity(card)).Error
}

// FindByID retrieves a credit card owned by the user.
func (r *creditCardRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.CreditCard, error) {
	var cardModel model.CreditCardModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCreditCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// FindByUser retrieves all credit cards of a user, oldest first.
func (r *creditCardRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CreditCard, error) {
	var cardModels []model.CreditCardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}

	cards := make([]*entity.CreditCard, len(cardModels))
	for i := range cardModels {
		cards[i] = cardModels[i].ToEntity()
	}
	return cards, nil
}

// Update writes the editable fields. current_used only moves through transaction and bill writes.
func (r *creditCardRepository) Update(ctx context.Context, card *entity.CreditCard) error {
	result := r.db.WithContext(ctx).
		Model(&model.CreditCardModel{}).
		Where("id = ? AND user_id = ?", card.ID, card.UserID).
		Updates(map[string]any{
			"name":               card.Name,
			"credit_limit":       card.CreditLimit,
			"closing_day":        card.ClosingDay,
			"due_day":            card.DueDay,
			"payment_account_id": card.PaymentAccountID,
			"is_archived":        card.IsArchived,
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCreditCardNotFound
	}
	return nil
}

// Delete removes a credit card from the database (soft delete).
func (r *creditCardRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.CreditCardModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCreditCardNotFound
	}
	return nil
}
