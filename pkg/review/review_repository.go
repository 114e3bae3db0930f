package review

import (
	"context"

	"tastebook/entities"

	"gorm.io/gorm"
)

type (
	// ReviewRepository also serves as the rating aggregator: both derived
	// values are recomputed from their own tables on every call. The
	// favorite count counts favorite rows, never reviews.
	ReviewRepository interface {
		CreateReview(ctx context.Context, review *entities.Review) error
		GetReviewByID(ctx context.Context, id string) (*entities.Review, error)
		GetReviewsByRecipe(ctx context.Context, recipeID string) ([]*entities.Review, error)
		UpdateReview(ctx context.Context, review *entities.Review) error
		DeleteReview(ctx context.Context, id string) error

		AverageRating(ctx context.Context, recipeID string) (float64, error)
		FavoriteCount(ctx context.Context, recipeID string) (int64, error)
	}

	reviewRepository struct {
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *entities.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id string) (*entities.Review, error) {
	var review entities.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetReviewsByRecipe(ctx context.Context, recipeID string) ([]*entities.Review, error) {
	var reviews []*entities.Review
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, review *entities.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Review{}, "id = ?", id).Error
}

// AverageRating returns 0 for a recipe with no reviews.
func (r *reviewRepository) AverageRating(ctx context.Context, recipeID string) (float64, error) {
	var rating float64
	if err := r.db.WithContext(ctx).
		Model(&entities.Review{}).
		Where("recipe_id = ?", recipeID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&rating).Error; err != nil {
		return 0, err
	}
	return rating, nil
}

func (r *reviewRepository) FavoriteCount(ctx context.Context, recipeID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
