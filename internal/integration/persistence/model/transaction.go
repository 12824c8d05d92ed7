package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/internal/domain/entity"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
// The variant payload is flattened: account_id or credit_card_id for expenses and
// incomes, account_id and to_account_id for transfers.
type TransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         string          `gorm:"type:varchar(10);not null;index"`
	AccountID    *uuid.UUID      `gorm:"type:uuid;index"`
	CreditCardID *uuid.UUID      `gorm:"type:uuid;index:idx_transactions_card_date"`
	ToAccountID  *uuid.UUID      `gorm:"type:uuid;index"`
	Date         time.Time       `gorm:"type:date;not null;index;index:idx_transactions_card_date"`
	Description  string          `gorm:"type:varchar(255);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status       string          `gorm:"type:varchar(10);not null;default:'completed'"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	GoalID       *uuid.UUID      `gorm:"type:uuid;index"`
	Notes        string          `gorm:"type:text"`
	Version      int             `gorm:"not null;default:1"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Details:     m.details(),
		Amount:      m.Amount,
		Description: m.Description,
		Date:        valueobject.DateOf(m.Date),
		Status:      entity.TransactionStatus(m.Status),
		CategoryID:  m.CategoryID,
		GoalID:      m.GoalID,
		Notes:       m.Notes,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAtPtr(m.DeletedAt),
	}
}

func (m *TransactionModel) details() entity.TransactionDetails {
	source := entity.Source{AccountID: m.AccountID, CreditCardID: m.CreditCardID}
	switch entity.TransactionType(m.Type) {
	case entity.TransactionTypeExpense:
		return entity.ExpenseDetails{Source: source}
	case entity.TransactionTypeIncome:
		return entity.IncomeDetails{Source: source}
	case entity.TransactionTypeTransfer:
		d := entity.TransferDetails{}
		if m.AccountID != nil {
			d.FromAccountID = *m.AccountID
		}
		if m.ToAccountID != nil {
			d.ToAccountID = *m.ToAccountID
		}
		return d
	default:
		return nil
	}
}

// ToEntityWithCategory converts a TransactionModel with its Category to a TransactionWithCategory entity.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	m := &TransactionModel{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Type:        string(transaction.Type()),
		Date:        transaction.Date,
		Description: transaction.Description,
		Amount:      transaction.Amount,
		Status:      string(transaction.Status),
		CategoryID:  transaction.CategoryID,
		GoalID:      transaction.GoalID,
		Notes:       transaction.Notes,
		Version:     transaction.Version,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
		DeletedAt:   gormDeletedAt(transaction.DeletedAt),
	}

	switch d := transaction.Details.(type) {
	case entity.ExpenseDetails:
		m.AccountID, m.CreditCardID = d.Source.AccountID, d.Source.CreditCardID
	case entity.IncomeDetails:
		m.AccountID, m.CreditCardID = d.Source.AccountID, d.Source.CreditCardID
	case entity.TransferDetails:
		from, to := d.FromAccountID, d.ToAccountID
		m.AccountID, m.ToAccountID = &from, &to
	}
	return m
}
