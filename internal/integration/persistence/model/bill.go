package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// BillModel represents the bills table. One row per card and period.
type BillModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreditCardID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bills_card_period"`
	Month            int             `gorm:"not null;uniqueIndex:idx_bills_card_period"`
	Year             int             `gorm:"not null;uniqueIndex:idx_bills_card_period"`
	DueDate          time.Time       `gorm:"type:date;not null;index"`
	ExpenseTotal     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	RefundTotal      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	NetTotal         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TransactionCount int             `gorm:"not null;default:0"`
	IsPaid           bool            `gorm:"default:false;index"`
	PaidAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PaymentAccountID *uuid.UUID      `gorm:"type:uuid"`
	PaymentDate      *time.Time      `gorm:"type:timestamp"`
	ReminderSentAt   *time.Time      `gorm:"type:timestamp"`
	Version          int             `gorm:"not null;default:1"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BillModel.
func (BillModel) TableName() string {
	return "bills"
}

// ToEntity converts a BillModel to a domain Bill entity.
func (m *BillModel) ToEntity() *entity.Bill {
	return &entity.Bill{
		ID:               m.ID,
		UserID:           m.UserID,
		CreditCardID:     m.CreditCardID,
		Month:            time.Month(m.Month),
		Year:             m.Year,
		DueDate:          m.DueDate.UTC(),
		ExpenseTotal:     m.ExpenseTotal,
		RefundTotal:      m.RefundTotal,
		NetTotal:         m.NetTotal,
		TransactionCount: m.TransactionCount,
		IsPaid:           m.IsPaid,
		PaidAmount:       m.PaidAmount,
		PaymentAccountID: m.PaymentAccountID,
		PaymentDate:      m.PaymentDate,
		ReminderSentAt:   m.ReminderSentAt,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// BillFromEntity creates a BillModel from a domain Bill entity.
func BillFromEntity(bill *entity.Bill) *BillModel {
	return &BillModel{
		ID:               bill.ID,
		UserID:           bill.UserID,
		CreditCardID:     bill.CreditCardID,
		Month:            int(bill.Month),
		Year:             bill.Year,
		DueDate:          bill.DueDate,
		ExpenseTotal:     bill.ExpenseTotal,
		RefundTotal:      bill.RefundTotal,
		NetTotal:         bill.NetTotal,
		TransactionCount: bill.TransactionCount,
		IsPaid:           bill.IsPaid,
		PaidAmount:       bill.PaidAmount,
		PaymentAccountID: bill.PaymentAccountID,
		PaymentDate:      bill.PaymentDate,
		ReminderSentAt:   bill.ReminderSentAt,
		Version:          bill.Version,
		CreatedAt:        bill.CreatedAt,
		UpdatedAt:        bill.UpdatedAt,
	}
}
