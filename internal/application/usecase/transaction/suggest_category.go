// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// Suggestion sources.
const (
	SuggestionSourceKeyword = "keyword"
	SuggestionSourceAI      = "ai"
)

// SuggestCategoryInput represents the input for category suggestion.
type SuggestCategoryInput struct {
	UserID      uuid.UUID
	Description string
	Type        entity.TransactionType
}

// SuggestCategoryOutput represents the output of category suggestion.
// Category is nil when nothing matched.
type SuggestCategoryOutput struct {
	Category   *entity.Category
	Source     string
	Confidence float64
	Reasoning  string
}

// SuggestCategoryUseCase picks a category for a description by keyword, then by AI.
type SuggestCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	suggester    adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
// suggester may be nil when AI is not configured.
func NewSuggestCategoryUseCase(categoryRepo adapter.CategoryRepository, suggester adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		categoryRepo: categoryRepo,
		suggester:    suggester,
	}
}

// Execute returns the best matching category.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"description is required",
			domainerror.ErrDescriptionRequired,
		)
	}

	var categoryType *entity.CategoryType
	switch input.Type {
	case entity.TransactionTypeExpense:
		t := entity.CategoryTypeExpense
		categoryType = &t
	case entity.TransactionTypeIncome:
		t := entity.CategoryTypeIncome
		categoryType = &t
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID, categoryType)
	if err != nil {
		return nil, domainerror.NewStoreError("list categories", err)
	}
	if len(categories) == 0 {
		return &SuggestCategoryOutput{}, nil
	}

	var best *entity.Category
	bestScore := 0
	for _, c := range categories {
		if score := c.MatchScore(description); score > bestScore {
			best, bestScore = c, score
		}
	}
	if best != nil {
		return &SuggestCategoryOutput{
			Category:   best,
			Source:     SuggestionSourceKeyword,
			Confidence: 1,
		}, nil
	}

	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return &SuggestCategoryOutput{}, nil
	}

	suggestion, err := uc.suggester.Suggest(ctx, description, categories)
	if err != nil {
		slog.Warn("AI category suggestion failed", "user_id", input.UserID, "error", err)
		return &SuggestCategoryOutput{}, nil
	}
	if suggestion == nil {
		return &SuggestCategoryOutput{}, nil
	}
	for _, c := range categories {
		if c.ID == suggestion.CategoryID {
			return &SuggestCategoryOutput{
				Category:   c,
				Source:     SuggestionSourceAI,
				Confidence: suggestion.Confidence,
				Reasoning:  suggestion.Reasoning,
			}, nil
		}
	}
	return &SuggestCategoryOutput{}, nil
}
