package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pantrypal/domain"
	"pantrypal/internal/utils"
	"pantrypal/pkg/expiry"
	"pantrypal/pkg/pantry"
)

type (
	RecipeService interface {
		GetSuggestions(ctx context.Context, userID string) (domain.RecipeSuggestionsResponse, error)
	}

	recipeService struct {
		pantryRepository pantry.PantryRepository
	}
)

func NewRecipeService(pantryRepository pantry.PantryRepository) RecipeService {
	return &recipeService{pantryRepository: pantryRepository}
}

// GetSuggestions asks Gemini for recipes that use only what is in the user's
// pantry. Items closest to expiry are listed with their remaining days so the
// model can prioritize them. An empty pantry returns domain.ErrNoPantryItems,
// which is not an AI failure.
func (s *recipeService) GetSuggestions(ctx context.Context, userID string) (domain.RecipeSuggestionsResponse, error) {
	items, err := s.pantryRepository.GetItems(ctx, userID)
	if err != nil {
		return domain.RecipeSuggestionsResponse{}, err
	}

	if len(items) == 0 {
		return domain.RecipeSuggestionsResponse{}, domain.ErrNoPantryItems
	}

	today := time.Now()
	ingredients := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		c := expiry.Classify(item.AddedDate, item.ShelfLifeDays, today)
		if c.Status == expiry.StatusExpired {
			continue
		}
		ingredients = append(ingredients, map[string]interface{}{
			"name":            item.Name,
			"daysUntilExpiry": c.RemainingDays,
		})
	}

	if len(ingredients) == 0 {
		return domain.RecipeSuggestionsResponse{}, domain.ErrNoPantryItems
	}

	recipes, err := s.generateSuggestions(ctx, ingredients)
	if err != nil {
		return domain.RecipeSuggestionsResponse{}, err
	}

	return domain.RecipeSuggestionsResponse{
		Recipes:      recipes,
		TotalRecipes: len(recipes),
	}, nil
}

func (s *recipeService) generateSuggestions(ctx context.Context, ingredients []map[string]interface{}) ([]domain.RecipeSuggestion, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return nil, fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	ingredientsJSON, _ := json.Marshal(ingredients)

	prompt := fmt.Sprintf(
		"You are a world-class chef specializing in creating recipes based on available ingredients. "+
			"Given the following pantry items (with days until expiry): %s, "+
			"suggest recipes that utilize these ingredients. "+
			"Only suggest recipes that use ingredients in the pantry, "+
			"and prioritize ingredients that are closest to expiry. "+
			"Respond ONLY with a valid JSON array of recipe objects with exactly these fields: "+
			"'name' (string), 'ingredients' (array of strings), 'instructions' (string). "+
			"Do not include any explanations, markdown formatting, or extra text.",
		string(ingredientsJSON),
	)

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, domain.ErrGeminiProcessingFailed
	}

	recipes, err := parseSuggestions(geminiResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	return recipes, nil
}

// parseSuggestions extracts the JSON array from the model's answer, tolerating
// markdown fences and stray text around it.
func parseSuggestions(responseText string) ([]domain.RecipeSuggestion, error) {
	responseText = strings.TrimSpace(responseText)

	startIdx := strings.Index(responseText, "[")
	endIdx := strings.LastIndex(responseText, "]")
	if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
		return nil, fmt.Errorf("no JSON array in response: %s", responseText)
	}
	responseText = responseText[startIdx : endIdx+1]

	var recipes []domain.RecipeSuggestion
	if err := json.Unmarshal([]byte(responseText), &recipes); err != nil {
		return nil, err
	}

	valid := make([]domain.RecipeSuggestion, 0, len(recipes))
	for _, recipe := range recipes {
		if recipe.Name == "" {
			continue
		}
		valid = append(valid, recipe)
	}
	return valid, nil
}
