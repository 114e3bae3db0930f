package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"tastebook/domain"
	"tastebook/entities"
	"tastebook/internal/utils/storage"
	"tastebook/pkg/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// RatingAggregator supplies the derived read values for a recipe.
	// Implemented by the review repository; declared here so this package
	// does not depend on pkg/review.
	RatingAggregator interface {
		AverageRating(ctx context.Context, recipeID string) (float64, error)
		FavoriteCount(ctx context.Context, recipeID string) (int64, error)
	}

	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, identity *auth.Identity) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, identity *auth.Identity) ([]domain.RecipeResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, identity *auth.Identity) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, identity *auth.Identity) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, identity *auth.Identity) error

		AddIngredient(ctx context.Context, recipeID string, req domain.CreateIngredientRequest, identity *auth.Identity) (domain.IngredientResponse, error)
		RemoveIngredient(ctx context.Context, recipeID, ingredientID string, identity *auth.Identity) error

		UploadImage(ctx context.Context, recipeID string, data []byte, identity *auth.Identity) (string, error)
		GetImage(ctx context.Context, recipeID, imageID string, identity *auth.Identity) ([]byte, error)
		RemoveImage(ctx context.Context, recipeID, imageID string, identity *auth.Identity) error
		UploadCoverImage(ctx context.Context, recipeID string, file *multipart.FileHeader, identity *auth.Identity) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		ratings          RatingAggregator
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, ratings RatingAggregator, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		ratings:          ratings,
		s3:               s3,
	}
}

// ownedRecipe loads the recipe and applies the owner-or-admin policy.
// Authorization happens here, before the repository mutation is invoked;
// the repository itself never re-checks.
func (s *recipeService) ownedRecipe(ctx context.Context, recipeID string, identity *auth.Identity) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if !auth.Authorize(identity, recipe.UserID.String()) {
		return nil, domain.ErrUserNotAllowed
	}
	return recipe, nil
}

// visibleRecipe loads a recipe for reading. Private recipes answer "not
// found" to anyone but their owner or an admin so their existence does
// not leak.
func (s *recipeService) visibleRecipe(ctx context.Context, recipeID string, identity *auth.Identity) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if !recipe.IsPublic && !auth.Authorize(identity, recipe.UserID.String()) {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:            recipe.ID.String(),
		UserID:        recipe.UserID.String(),
		Name:          recipe.Name,
		Description:   recipe.Description,
		IsPublic:      recipe.IsPublic,
		CoverImageURL: recipe.CoverImageURL,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, identity *auth.Identity) (domain.RecipeResponse, error) {
	if identity == nil {
		return domain.RecipeResponse{}, domain.ErrUnauthenticated
	}
	ownerID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       ownerID,
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		IsPublic:     req.IsPublic,
	}
	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, &entities.Ingredient{
			ID:       uuid.New(),
			RecipeID: recipe.ID,
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
		})
	}

	if err := s.recipeRepository.CreateRecipeAggregate(ctx, recipe, req.Keywords); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, identity *auth.Identity) ([]domain.RecipeResponse, error) {
	viewerID := ""
	isAdmin := false
	if identity != nil {
		viewerID = identity.UserID
		isAdmin = identity.IsAdmin
	}

	recipes, err := s.recipeRepository.GetRecipes(ctx, viewerID, isAdmin)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toRecipeResponse(recipe))
	}
	return result, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, identity *auth.Identity) (domain.RecipeDetailResponse, error) {
	recipe, err := s.visibleRecipe(ctx, recipeID, identity)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	keywords, err := s.recipeRepository.GetRecipeKeywords(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	imageIDs, err := s.recipeRepository.GetImageIDs(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	// Derived values are recomputed on every read, no caching.
	rating, err := s.ratings.AverageRating(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	favoriteCount, err := s.ratings.FavoriteCount(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	ingredients := make([]domain.IngredientResponse, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, domain.IngredientResponse{
			ID:     ing.ID.String(),
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}

	return domain.RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(recipe),
		Instructions:   recipe.Instructions,
		Ingredients:    ingredients,
		Keywords:       keywords,
		ImageIDs:       imageIDs,
		AverageRating:  rating,
		FavoriteCount:  favoriteCount,
	}, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, identity *auth.Identity) (domain.RecipeResponse, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, identity)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	// nil means "not provided, keep stored value"; a present field
	// replaces, even with an empty string.
	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, identity *auth.Identity) error {
	if _, err := s.ownedRecipe(ctx, recipeID, identity); err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipeCascade(ctx, recipeID)
}

func (s *recipeService) AddIngredient(ctx context.Context, recipeID string, req domain.CreateIngredientRequest, identity *auth.Identity) (domain.IngredientResponse, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, identity)
	if err != nil {
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{
		ID:       uuid.New(),
		RecipeID: recipe.ID,
		Name:     req.Name,
		Amount:   req.Amount,
		Unit:     req.Unit,
	}
	if err := s.recipeRepository.AddIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	return domain.IngredientResponse{
		ID:     ingredient.ID.String(),
		Name:   ingredient.Name,
		Amount: ingredient.Amount,
		Unit:   ingredient.Unit,
	}, nil
}

func (s *recipeService) RemoveIngredient(ctx context.Context, recipeID, ingredientID string, identity *auth.Identity) error {
	if _, err := s.ownedRecipe(ctx, recipeID, identity); err != nil {
		return err
	}

	ingredient, err := s.recipeRepository.GetIngredientByID(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}
	if ingredient.RecipeID.String() != recipeID {
		return domain.ErrIngredientNotFound
	}

	return s.recipeRepository.DeleteIngredient(ctx, ingredientID)
}

func (s *recipeService) UploadImage(ctx context.Context, recipeID string, data []byte, identity *auth.Identity) (string, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, identity)
	if err != nil {
		return "", err
	}

	image := &entities.RecipeImage{
		ID:       uuid.New(),
		RecipeID: recipe.ID,
		Data:     data,
	}
	if err := s.recipeRepository.AddImage(ctx, image); err != nil {
		return "", err
	}
	return image.ID.String(), nil
}

func (s *recipeService) GetImage(ctx context.Context, recipeID, imageID string, identity *auth.Identity) ([]byte, error) {
	if _, err := s.visibleRecipe(ctx, recipeID, identity); err != nil {
		return nil, err
	}

	image, err := s.recipeRepository.GetImageByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrImageNotFound
		}
		return nil, err
	}
	if image.RecipeID.String() != recipeID {
		return nil, domain.ErrImageNotFound
	}
	return image.Data, nil
}

func (s *recipeService) RemoveImage(ctx context.Context, recipeID, imageID string, identity *auth.Identity) error {
	if _, err := s.ownedRecipe(ctx, recipeID, identity); err != nil {
		return err
	}

	image, err := s.recipeRepository.GetImageByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrImageNotFound
		}
		return err
	}
	if image.RecipeID.String() != recipeID {
		return domain.ErrImageNotFound
	}

	return s.recipeRepository.DeleteImage(ctx, imageID)
}

func (s *recipeService) UploadCoverImage(ctx context.Context, recipeID string, file *multipart.FileHeader, identity *auth.Identity) (string, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, identity)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipes/%s/cover-%s", recipe.ID, uuid.New())
	url, err := s.s3.UploadFile(ctx, key, file)
	if err != nil {
		return "", err
	}

	recipe.CoverImageURL = url
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return "", err
	}
	return url, nil
}
