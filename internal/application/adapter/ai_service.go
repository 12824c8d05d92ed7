// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CategorySuggestion is a category picked for a transaction description.
type CategorySuggestion struct {
	CategoryID uuid.UUID
	Confidence float64
	Reasoning  string
}

// CategorySuggester defines the interface for AI category suggestion.
type CategorySuggester interface {
	// Suggest picks one of the given categories for the description, or returns nil.
	Suggest(ctx context.Context, description string, categories []*entity.Category) (*CategorySuggestion, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
