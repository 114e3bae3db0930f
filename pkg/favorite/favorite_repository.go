package favorite

import (
	"context"

	"tastebook/entities"

	"gorm.io/gorm"
)

type (
	FavoriteRepository interface {
		FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error)
		CreateFavorite(ctx context.Context, favorite *entities.Favorite) error
		DeleteFavorite(ctx context.Context, userID, recipeID string) error
		GetFavoriteRecipes(ctx context.Context, userID string) ([]*entities.Recipe, error)
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) CreateFavorite(ctx context.Context, favorite *entities.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{}).Error
}

func (r *favoriteRepository) GetFavoriteRecipes(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON recipes.id = favorites.recipe_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
