// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChangeEventType names what changed.
type ChangeEventType string

const (
	ChangeTransactionCreated ChangeEventType = "transaction.created"
	ChangeTransactionUpdated ChangeEventType = "transaction.updated"
	ChangeTransactionDeleted ChangeEventType = "transaction.deleted"
	ChangeBillUpdated        ChangeEventType = "bill.updated"
	ChangeBillPaid           ChangeEventType = "bill.paid"
	ChangeBillUnpaid         ChangeEventType = "bill.unpaid"
	ChangeAccountUpdated     ChangeEventType = "account.updated"
	ChangeCreditCardUpdated  ChangeEventType = "credit_card.updated"
	ChangeGoalUpdated        ChangeEventType = "goal.updated"
	ChangeCategoryUpdated    ChangeEventType = "category.updated"
	ChangeSessionEnded       ChangeEventType = "session.ended"
)

// ChangeEvent tells a user's open views that some of their data changed.
type ChangeEvent struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       ChangeEventType
	EntityID   uuid.UUID
	OccurredAt time.Time
}

// NewChangeEvent creates a ChangeEvent stamped with the current time.
func NewChangeEvent(userID uuid.UUID, eventType ChangeEventType, entityID uuid.UUID) ChangeEvent {
	return ChangeEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}
