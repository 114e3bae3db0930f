package user

import (
	"context"

	"tastebook/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		DeleteUserCascade(ctx context.Context, id string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Omit("Recipes", "Reviews", "Favorites").Save(user).Error
}

// DeleteUserCascade removes the user's reviews and favorites, every recipe
// aggregate the user owns (each with its own five dependent collections),
// and finally the user row, in one transaction. The schema rejects
// engine-level cascades, so this enumeration is the only delete path.
func (r *userRepository) DeleteUserCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeIDs []string
		if err := tx.Model(&entities.Recipe{}).
			Where("user_id = ?", id).
			Pluck("id", &recipeIDs).Error; err != nil {
			return err
		}

		if len(recipeIDs) > 0 {
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&entities.Ingredient{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&entities.RecipeImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&entities.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&entities.RecipeKeyword{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&entities.Favorite{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		if len(recipeIDs) > 0 {
			if err := tx.Where("user_id = ?", id).Delete(&entities.Recipe{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entities.User{}, "id = ?", id).Error
	})
}
