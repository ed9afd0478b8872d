package domain

import "errors"

var (
	MessageSuccessGetSuggestions = "recipe suggestions generated successfully"
	MessageFailedGetSuggestions  = "failed to generate recipe suggestions"

	ErrGeminiProcessingFailed = errors.New("gemini processing failed")
	ErrNoPantryItems          = errors.New("no pantry items available for recipe suggestions")
)

type (
	RecipeSuggestion struct {
		Name         string   `json:"name"`
		Ingredients  []string `json:"ingredients"`
		Instructions string   `json:"instructions"`
	}

	RecipeSuggestionsResponse struct {
		Recipes      []RecipeSuggestion `json:"recipes"`
		TotalRecipes int                `json:"total_recipes"`
	}
)
