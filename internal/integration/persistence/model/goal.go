package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(100);not null"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SavedAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Deadline     *time.Time      `gorm:"type:date"`
	AccountID    *uuid.UUID      `gorm:"type:uuid;index"`
	IsArchived   bool            `gorm:"default:false"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		TargetAmount: m.TargetAmount,
		SavedAmount:  m.SavedAmount,
		Deadline:     m.Deadline,
		AccountID:    m.AccountID,
		IsArchived:   m.IsArchived,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAtPtr(m.DeletedAt),
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:           goal.ID,
		UserID:       goal.UserID,
		Name:         goal.Name,
		TargetAmount: goal.TargetAmount,
		SavedAmount:  goal.SavedAmount,
		Deadline:     goal.Deadline,
		AccountID:    goal.AccountID,
		IsArchived:   goal.IsArchived,
		CreatedAt:    goal.CreatedAt,
		UpdatedAt:    goal.UpdatedAt,
		DeletedAt:    gormDeletedAt(goal.DeletedAt),
	}
}
