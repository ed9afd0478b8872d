package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pantrypal/domain"
	"pantrypal/internal/api/presenters"
	"pantrypal/pkg/recipe"
)

type (
	RecipeHandler interface {
		GetSuggestions(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{recipeService: recipeService}
}

func (h *recipeHandler) GetSuggestions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetSuggestions(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoPantryItems) {
			return presenters.SuccessResponse(c, fiber.Map{
				"recipes":       []domain.RecipeSuggestion{},
				"total_recipes": 0,
				"message":       "Your pantry is empty. Please add some items to get recipe suggestions.",
			}, fiber.StatusOK, "no pantry items available")
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGetSuggestions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSuggestions)
}
