package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CreditCardModel represents the credit_cards table in the database.
type CreditCardModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(100);not null"`
	CreditLimit      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ClosingDay       int             `gorm:"not null"`
	DueDay           int             `gorm:"not null"`
	PaymentAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	CurrentUsed      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsArchived       bool            `gorm:"default:false"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
	DeletedAt        gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the CreditCardModel.
func (CreditCardModel) TableName() string {
	return "credit_cards"
}

// ToEntity converts a CreditCardModel to a domain CreditCard entity.
func (m *CreditCardModel) ToEntity() *entity.CreditCard {
	return &entity.CreditCard{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		CreditLimit:      m.CreditLimit,
		ClosingDay:       m.ClosingDay,
		DueDay:           m.DueDay,
		PaymentAccountID: m.PaymentAccountID,
		CurrentUsed:      m.CurrentUsed,
		IsArchived:       m.IsArchived,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAtPtr(m.DeletedAt),
	}
}

// CreditCardFromEntity creates a CreditCardModel from a domain CreditCard entity.
func CreditCardFromEntity(card *entity.CreditCard) *CreditCardModel {
	return &CreditCardModel{
		ID:               card.ID,
		UserID:           card.UserID,
		Name:             card.Name,
		CreditLimit:      card.CreditLimit,
		ClosingDay:       card.ClosingDay,
		DueDay:           card.DueDay,
		PaymentAccountID: card.PaymentAccountID,
		CurrentUsed:      card.CurrentUsed,
		IsArchived:       card.IsArchived,
		CreatedAt:        card.CreatedAt,
		UpdatedAt:        card.UpdatedAt,
		DeletedAt:        gormDeletedAt(card.DeletedAt),
	}
}
