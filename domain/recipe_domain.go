package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessUpdateRecipe     = "recipe updated successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessAddIngredient    = "ingredient added successfully"
	MessageSuccessRemoveIngredient = "ingredient removed successfully"
	MessageSuccessUploadImage      = "image uploaded successfully"
	MessageSuccessGetImage         = "success get image"
	MessageSuccessRemoveImage      = "image removed successfully"
	MessageSuccessUploadCover      = "cover image uploaded successfully"

	MessageFailedGetRecipes       = "failed to get recipes"
	MessageFailedGetRecipeDetail  = "failed to get recipe detail"
	MessageFailedCreateRecipe     = "failed to create recipe"
	MessageFailedUpdateRecipe     = "failed to update recipe"
	MessageFailedDeleteRecipe     = "failed to delete recipe"
	MessageFailedAddIngredient    = "failed to add ingredient"
	MessageFailedRemoveIngredient = "failed to remove ingredient"
	MessageFailedUploadImage      = "failed to upload image"
	MessageFailedGetImage         = "failed to get image"
	MessageFailedRemoveImage      = "failed to remove image"
	MessageFailedUploadCover      = "failed to upload cover image"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrImageNotFound      = errors.New("image not found")
)

type (
	CreateRecipeRequest struct {
		Name         string                    `json:"name" validate:"required"`
		Description  string                    `json:"description"`
		Instructions string                    `json:"instructions"`
		IsPublic     bool                      `json:"is_public"`
		Keywords     []string                  `json:"keywords"`
		Ingredients  []CreateIngredientRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	CreateIngredientRequest struct {
		Name   string  `json:"name" validate:"required"`
		Amount float64 `json:"amount" validate:"gte=0"`
		Unit   string  `json:"unit"`
	}

	// Pointer fields distinguish "not provided" from "explicitly set";
	// nil keeps the stored value.
	UpdateRecipeRequest struct {
		Name         *string `json:"name,omitempty"`
		Description  *string `json:"description,omitempty"`
		Instructions *string `json:"instructions,omitempty"`
		IsPublic     *bool   `json:"is_public,omitempty"`
	}

	RecipeResponse struct {
		ID            string `json:"id"`
		UserID        string `json:"user_id"`
		Name          string `json:"name"`
		Description   string `json:"description"`
		IsPublic      bool   `json:"is_public"`
		CoverImageURL string `json:"cover_image_url,omitempty"`
	}

	IngredientResponse struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Instructions  string               `json:"instructions"`
		Ingredients   []IngredientResponse `json:"ingredients"`
		Keywords      []string             `json:"keywords"`
		ImageIDs      []string             `json:"image_ids"`
		AverageRating float64              `json:"average_rating"`
		FavoriteCount int64                `json:"favorite_count"`
	}
)
