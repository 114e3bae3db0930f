package config

import (
	"os"
	"time"

	"tastebook/internal/api/handlers"
	"tastebook/internal/api/routes"
	"tastebook/internal/middleware"
	"tastebook/internal/utils"
	"tastebook/internal/utils/mailing"
	"tastebook/internal/utils/storage"
	"tastebook/pkg/crypto"
	"tastebook/pkg/favorite"
	"tastebook/pkg/jwt"
	"tastebook/pkg/keyword"
	"tastebook/pkg/recipe"
	"tastebook/pkg/review"
	"tastebook/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	cipher := crypto.NewCredentialCipher(utils.GetConfig("AES_KEY"))

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	reviewRepository := review.NewReviewRepository(db)
	keywordRepository := keyword.NewKeywordRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, cipher, mailer, s3)
	recipeService := recipe.NewRecipeService(recipeRepository, reviewRepository, s3)
	reviewService := review.NewReviewService(reviewRepository, recipeRepository)
	keywordService := keyword.NewKeywordService(keywordRepository, recipeRepository)
	favoriteService := favorite.NewFavoriteService(favoriteRepository, userRepository, recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	reviewHandler := handlers.NewReviewHandler(reviewService, validator)
	keywordHandler := handlers.NewKeywordHandler(keywordService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		ReviewHandler:   reviewHandler,
		KeywordHandler:  keywordHandler,
		FavoriteHandler: favoriteHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
