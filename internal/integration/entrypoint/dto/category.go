// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=50"`
	Color    string   `json:"color,omitempty"`
	Icon     string   `json:"icon,omitempty"`
	Type     string   `json:"type" binding:"required,oneof=expense income"`
	Keywords []string `json:"keywords,omitempty"`
}

// UpdateCategoryRequest represents the request body for category update.
// A present keywords list replaces the stored one.
type UpdateCategoryRequest struct {
	Name     *string   `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color    *string   `json:"color,omitempty"`
	Icon     *string   `json:"icon,omitempty"`
	Keywords *[]string `json:"keywords,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Type      string    `json:"type"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	keywords := cat.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Color:     cat.Color,
		Icon:      cat.Icon,
		Type:      string(cat.Type),
		Keywords:  keywords,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		items[i] = ToCategoryResponse(c)
	}
	return CategoryListResponse{Categories: items}
}
