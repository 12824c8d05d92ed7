package adapters

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}}},
		},
	}
}

func TestParseSuggestion(t *testing.T) {
	food := entity.NewCategory(uuid.New(), "Food", "#FF0000", "utensils", entity.CategoryTypeExpense, nil)
	categories := []*entity.Category{food}

	tests := []struct {
		name           string
		resp           *genai.GenerateContentResponse
		wantErr        bool
		wantNil        bool
		wantConfidence float64
	}{
		{
			name:           "known category",
			resp:           textResponse(`{"category_id": "` + food.ID.String() + `", "confidence": 0.8, "reasoning": "restaurant"}`),
			wantConfidence: 0.8,
		},
		{
			name:           "markdown fenced and clamped",
			resp:           textResponse("```json\n{\"category_id\": \"" + food.ID.String() + "\", \"confidence\": 3}\n```"),
			wantConfidence: 1,
		},
		{
			name:    "null category",
			resp:    textResponse(`{"category_id": null, "confidence": 0.1}`),
			wantNil: true,
		},
		{
			name:    "invented id",
			resp:    textResponse(`{"category_id": "` + uuid.NewString() + `", "confidence": 0.9}`),
			wantNil: true,
		},
		{
			name:    "empty response",
			resp:    &genai.GenerateContentResponse{},
			wantErr: true,
		},
		{
			name:    "not json",
			resp:    textResponse("I think it is food"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestion(tt.resp, categories)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected no suggestion, got %+v", got)
				}
				return
			}
			if got == nil || got.CategoryID != food.ID {
				t.Fatalf("suggestion = %+v, want category %s", got, food.ID)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestBuildSuggestionPromptListsCategories(t *testing.T) {
	food := entity.NewCategory(uuid.New(), "Food", "#FF0000", "utensils", entity.CategoryTypeExpense, nil)
	prompt := buildSuggestionPrompt("PIZZA HUT 123", []*entity.Category{food})

	for _, want := range []string{food.ID.String(), "Food", `"PIZZA HUT 123"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
}

func TestGeminiServiceAvailability(t *testing.T) {
	if NewGeminiService("", "").IsAvailable() {
		t.Error("service without key must be unavailable")
	}
	s := NewGeminiService("key", "")
	if !s.IsAvailable() || s.modelName != DefaultGeminiModel {
		t.Errorf("unexpected service state: %+v", s)
	}
}
