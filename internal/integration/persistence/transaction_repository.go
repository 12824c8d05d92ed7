package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
// Every write applies the balance deltas of the change in the same database transaction.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create inserts the transaction and posts its balance effects.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		return applyEffects(tx, entity.Change(nil, transaction))
	})
}

// FindByID retrieves a transaction owned by the user.
func (r *transactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// List returns every transaction matching the filter ordered by date, oldest first.
func (r *transactionRepository) List(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.filtered(ctx, filter).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	query := r.filtered(ctx, filter)

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithCategory()
	}

	return &entity.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

func (r *transactionRepository) filtered(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", filter.UserID)

	if filter.CreditCardID != nil {
		query = query.Where("credit_card_id = ?", *filter.CreditCardID)
	}
	if filter.AccountID != nil {
		query = query.Where("(account_id = ? OR to_account_id = ?)", *filter.AccountID, *filter.AccountID)
	}
	if filter.GoalID != nil {
		query = query.Where("goal_id = ?", *filter.GoalID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.ExcludeCancelled {
		query = query.Where("status <> ?", string(entity.TransactionStatusCancelled))
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}
	return query
}

// Update replaces before with after when the stored version still matches before,
// moving balances by the difference of their effects.
func (r *transactionRepository) Update(ctx context.Context, before, after *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.TransactionFromEntity(after)
		result := tx.Model(&model.TransactionModel{}).
			Where("id = ? AND user_id = ? AND version = ?", before.ID, before.UserID, before.Version).
			Updates(map[string]any{
				"type":           row.Type,
				"account_id":     row.AccountID,
				"credit_card_id": row.CreditCardID,
				"to_account_id":  row.ToAccountID,
				"date":           row.Date,
				"description":    row.Description,
				"amount":         row.Amount,
				"status":         row.Status,
				"category_id":    row.CategoryID,
				"goal_id":        row.GoalID,
				"notes":          row.Notes,
				"version":        gorm.Expr("version + 1"),
				"updated_at":     time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.missingOrChanged(tx, before)
		}
		return applyEffects(tx, entity.Change(before, after))
	})
}

// Delete soft-deletes the transaction and reverses its balance effects.
func (r *transactionRepository) Delete(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ? AND version = ?", transaction.ID, transaction.UserID, transaction.Version).
			Delete(&model.TransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.missingOrChanged(tx, transaction)
		}
		return applyEffects(tx, entity.Change(transaction, nil))
	})
}

func (r *transactionRepository) missingOrChanged(tx *gorm.DB, transaction *entity.Transaction) error {
	var count int64
	err := tx.Model(&model.TransactionModel{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return domainerror.ErrTransactionChanged
}

type categoryTotalRow struct {
	CategoryID       *uuid.UUID
	Total            decimal.Decimal
	TransactionCount int
}

// SumExpensesByCategory totals completed expenses between start and end (inclusive) per category.
func (r *transactionRepository) SumExpensesByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.CategoryTotal, error) {
	var rows []categoryTotalRow
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("category_id, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS transaction_count").
		Where("user_id = ? AND type = ? AND status = ?", userID, string(entity.TransactionTypeExpense), string(entity.TransactionStatusCompleted)).
		Where("date >= ? AND date <= ?", start, end).
		Group("category_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := make([]adapter.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = adapter.CategoryTotal{
			CategoryID:       row.CategoryID,
			Total:            row.Total,
			TransactionCount: row.TransactionCount,
		}
	}
	return totals, nil
}
