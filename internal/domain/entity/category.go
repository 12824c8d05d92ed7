// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// MaxCategoryKeywords caps the keywords stored on one category.
const MaxCategoryKeywords = 50

// Category represents a transaction category in the Wallet system.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Icon      string
	Type      CategoryType
	Keywords  []string // Lower-cased description fragments used for auto-categorization
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the Application layer (UseCase)
// before calling this constructor.
func NewCategory(userID uuid.UUID, name, color, icon string, categoryType CategoryType, keywords []string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		Type:      categoryType,
		Keywords:  NormalizeKeywords(keywords),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeKeywords trims, lower-cases and de-duplicates keywords.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// MatchScore returns the length of the longest keyword found in description, or 0.
func (c *Category) MatchScore(description string) int {
	d := strings.ToLower(description)
	best := 0
	for _, k := range c.Keywords {
		if len(k) > best && strings.Contains(d, k) {
			best = len(k)
		}
	}
	return best
}
