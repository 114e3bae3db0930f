package recipe

import (
	"context"
	"errors"

	"tastebook/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// RecipeRepository owns the transactional lifecycle of the recipe
	// aggregate. The schema rejects engine-level cascades, so the delete
	// here enumerates every dependent collection itself.
	RecipeRepository interface {
		CreateRecipeAggregate(ctx context.Context, recipe *entities.Recipe, keywords []string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, viewerID string, isAdmin bool) ([]*entities.Recipe, error)
		GetRecipeKeywords(ctx context.Context, recipeID string) ([]string, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipeCascade(ctx context.Context, id string) error

		AddIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		DeleteIngredient(ctx context.Context, id string) error

		AddImage(ctx context.Context, image *entities.RecipeImage) error
		GetImageByID(ctx context.Context, id string) (*entities.RecipeImage, error)
		GetImageIDs(ctx context.Context, recipeID string) ([]string, error)
		DeleteImage(ctx context.Context, id string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// findOrCreateKeyword matches by exact word (case-sensitive). A failed
// insert is retried as a lookup so a concurrent create of the same word
// resolves to the existing row instead of an error.
func findOrCreateKeyword(tx *gorm.DB, word string) (*entities.Keyword, error) {
	var keyword entities.Keyword
	err := tx.Where("word = ?", word).First(&keyword).Error
	if err == nil {
		return &keyword, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	keyword = entities.Keyword{ID: uuid.New(), Word: word}
	if createErr := tx.Create(&keyword).Error; createErr != nil {
		if lookupErr := tx.Where("word = ?", word).First(&keyword).Error; lookupErr == nil {
			return &keyword, nil
		}
		return nil, createErr
	}
	return &keyword, nil
}

func linkKeyword(tx *gorm.DB, recipeID, keywordID uuid.UUID) (created bool, err error) {
	var count int64
	if err := tx.Model(&entities.RecipeKeyword{}).
		Where("recipe_id = ? AND keyword_id = ?", recipeID, keywordID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	link := entities.RecipeKeyword{RecipeID: recipeID, KeywordID: keywordID}
	if err := tx.Create(&link).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *recipeRepository) CreateRecipeAggregate(ctx context.Context, recipe *entities.Recipe, keywords []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		for _, word := range keywords {
			keyword, err := findOrCreateKeyword(tx, word)
			if err != nil {
				return err
			}
			if _, err := linkKeyword(tx, recipe.ID, keyword.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, viewerID string, isAdmin bool) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).Order("created_at desc")
	if !isAdmin {
		query = query.Where("is_public = ? OR user_id = ?", true, viewerID)
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipeKeywords(ctx context.Context, recipeID string) ([]string, error) {
	var words []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Keyword{}).
		Joins("JOIN recipe_keywords ON keywords.id = recipe_keywords.keyword_id").
		Where("recipe_keywords.recipe_id = ?", recipeID).
		Order("keywords.word").
		Pluck("keywords.word", &words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("Ingredients", "Images", "Reviews", "Keywords", "Favorites").Save(recipe).Error
}

// DeleteRecipeCascade removes the five dependent collections and then the
// recipe, all in one transaction. Any failure rolls back the whole unit so
// a partial cascade is never observable.
func (r *recipeRepository) DeleteRecipeCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeKeyword{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Recipe{}, "id = ?", id).Error
	})
}

func (r *recipeRepository) AddIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *recipeRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *recipeRepository) DeleteIngredient(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Ingredient{}, "id = ?", id).Error
}

func (r *recipeRepository) AddImage(ctx context.Context, image *entities.RecipeImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *recipeRepository) GetImageByID(ctx context.Context, id string) (*entities.RecipeImage, error) {
	var image entities.RecipeImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *recipeRepository) GetImageIDs(ctx context.Context, recipeID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeImage{}).
		Where("recipe_id = ?", recipeID).
		Order("created_at").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeRepository) DeleteImage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.RecipeImage{}, "id = ?", id).Error
}
