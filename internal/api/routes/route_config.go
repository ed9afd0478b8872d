package routes

import (
	"github.com/gofiber/fiber/v2"

	"pantrypal/internal/api/handlers"
	"pantrypal/internal/middleware"
	"pantrypal/pkg/jwt"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	PantryHandler handlers.PantryHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.PantryItems()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) PantryItems() {
	pantryItems := c.App.Group("/api/v1/pantry-items", c.Middleware.AuthMiddleware(c.JWTService))

	pantryItems.Post("", c.PantryHandler.AddItem)
	pantryItems.Get("", c.PantryHandler.GetItems)
	pantryItems.Get("/alerts", c.PantryHandler.GetAlerts)
	pantryItems.Delete("/:id", c.PantryHandler.DeleteItem)

	pantryItems.Post("/scan", c.PantryHandler.ScanItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Get("/suggestions", c.RecipeHandler.GetSuggestions)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
