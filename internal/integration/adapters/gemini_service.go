// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.CategorySuggester using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini which of the user's categories fits the description.
// It returns nil when the model picks none of them.
func (s *GeminiService) Suggest(ctx context.Context, description string, categories []*entity.Category) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}
	if len(categories) == 0 {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(description, categories)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	suggestion, err := parseSuggestion(resp, categories)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestion, nil
}

func buildSuggestionPrompt(description string, categories []*entity.Category) string {
	var sb strings.Builder

	sb.WriteString(`You categorize personal finance transactions.
Pick the single category from the list below that best matches the transaction description.
Only use ids from the list. If none fits, answer with "category_id": null.

CATEGORIES:
`)
	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("- ID: %s, Name: %s, Type: %s\n", cat.ID, cat.Name, cat.Type))
	}

	sb.WriteString(fmt.Sprintf("\nDESCRIPTION: %q\n", description))
	sb.WriteString(`
Respond with one JSON object:
{"category_id": "uuid or null", "confidence": 0.0-1.0, "reasoning": "short explanation"}
Return only the JSON object, without any other text.
`)
	return sb.String()
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	CategoryID *string `json:"category_id"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func parseSuggestion(resp *genai.GenerateContentResponse, categories []*entity.Category) (*adapter.CategorySuggestion, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}
	if raw.CategoryID == nil || *raw.CategoryID == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw.CategoryID)
	if err != nil {
		return nil, nil
	}
	for _, cat := range categories {
		if cat.ID == id {
			return &adapter.CategorySuggestion{
				CategoryID: id,
				Confidence: clampConfidence(raw.Confidence),
				Reasoning:  raw.Reasoning,
			}, nil
		}
	}
	// The model invented an id.
	return nil, nil
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
