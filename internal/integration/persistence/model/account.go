package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Balance         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsArchived      bool            `gorm:"default:false"`
	IncludeInTotals bool            `gorm:"default:true"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Balance:         m.Balance,
		IsArchived:      m.IsArchived,
		IncludeInTotals: m.IncludeInTotals,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAtPtr(m.DeletedAt),
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:              account.ID,
		UserID:          account.UserID,
		Name:            account.Name,
		Balance:         account.Balance,
		IsArchived:      account.IsArchived,
		IncludeInTotals: account.IncludeInTotals,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
		DeletedAt:       gormDeletedAt(account.DeletedAt),
	}
}

func deletedAtPtr(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func gormDeletedAt(t *time.Time) gorm.DeletedAt {
	if t == nil {
		return gorm.DeletedAt{}
	}
	return gorm.DeletedAt{Time: *t, Valid: true}
}
