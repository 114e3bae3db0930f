package routes

import (
	"tastebook/internal/api/handlers"
	"tastebook/internal/middleware"
	"tastebook/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	ReviewHandler   handlers.ReviewHandler
	KeywordHandler  handlers.KeywordHandler
	FavoriteHandler handlers.FavoriteHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Patch("/update", auth, c.UserHandler.UpdateUser)
		user.Get("/favorites", auth, c.FavoriteHandler.GetFavorites)
		user.Delete("/:id", auth, c.UserHandler.DeleteUser)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	// Reads resolve the identity when a token is present so owners and
	// admins can see private recipes; anonymous reads pass through.
	optionalAuth := c.Middleware.OptionalAuthMiddleware(c.JWTService)
	{
		recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
		recipes.Get("", optionalAuth, c.RecipeHandler.GetRecipes)
		recipes.Get("/:id", optionalAuth, c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

		recipes.Post("/:id/ingredients", auth, c.RecipeHandler.AddIngredient)
		recipes.Delete("/:id/ingredients/:ingredientId", auth, c.RecipeHandler.RemoveIngredient)

		recipes.Post("/:id/images", auth, c.RecipeHandler.UploadImage)
		recipes.Get("/:id/images/:imageId", optionalAuth, c.RecipeHandler.GetImage)
		recipes.Delete("/:id/images/:imageId", auth, c.RecipeHandler.RemoveImage)
		recipes.Post("/:id/cover", auth, c.RecipeHandler.UploadCoverImage)

		recipes.Post("/:id/keywords", auth, c.KeywordHandler.AttachKeyword)
		recipes.Delete("/:id/keywords/:word", auth, c.KeywordHandler.DetachKeyword)

		recipes.Post("/:id/reviews", auth, c.ReviewHandler.AddReview)
		recipes.Get("/:id/reviews", optionalAuth, c.ReviewHandler.GetReviews)
		recipes.Patch("/:id/reviews/:reviewId", auth, c.ReviewHandler.UpdateReview)
		recipes.Delete("/:id/reviews/:reviewId", auth, c.ReviewHandler.DeleteReview)

		recipes.Post("/:id/favorite", auth, c.FavoriteHandler.AddFavorite)
		recipes.Delete("/:id/favorite", auth, c.FavoriteHandler.RemoveFavorite)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
