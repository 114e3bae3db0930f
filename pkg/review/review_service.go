package review

import (
	"context"
	"errors"

	"tastebook/domain"
	"tastebook/entities"
	"tastebook/pkg/auth"
	"tastebook/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReviewService interface {
		AddReview(ctx context.Context, recipeID string, req domain.CreateReviewRequest, identity *auth.Identity) (domain.ReviewResponse, error)
		GetReviews(ctx context.Context, recipeID string, identity *auth.Identity) ([]domain.ReviewResponse, error)
		UpdateReview(ctx context.Context, reviewID string, req domain.UpdateReviewRequest, identity *auth.Identity) (domain.ReviewResponse, error)
		DeleteReview(ctx context.Context, reviewID string, identity *auth.Identity) error
	}

	reviewService struct {
		reviewRepository ReviewRepository
		recipeRepository recipe.RecipeRepository
	}
)

func NewReviewService(reviewRepository ReviewRepository, recipeRepository recipe.RecipeRepository) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		recipeRepository: recipeRepository,
	}
}

// clampRating forces a rating into [1,5]; values outside the range are
// never stored.
func clampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func toReviewResponse(review *entities.Review) domain.ReviewResponse {
	return domain.ReviewResponse{
		ID:        review.ID.String(),
		RecipeID:  review.RecipeID.String(),
		UserID:    review.UserID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func (s *reviewService) AddReview(ctx context.Context, recipeID string, req domain.CreateReviewRequest, identity *auth.Identity) (domain.ReviewResponse, error) {
	if identity == nil {
		return domain.ReviewResponse{}, domain.ErrUnauthenticated
	}
	authorID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return domain.ReviewResponse{}, domain.ErrParseUUID
	}

	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReviewResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ReviewResponse{}, err
	}
	// Writing against a private recipe must not reveal its existence.
	if !rec.IsPublic && !auth.Authorize(identity, rec.UserID.String()) {
		return domain.ReviewResponse{}, domain.ErrRecipeNotFound
	}

	review := &entities.Review{
		ID:       uuid.New(),
		RecipeID: rec.ID,
		UserID:   authorID,
		Rating:   clampRating(req.Rating),
		Comment:  req.Comment,
	}
	if err := s.reviewRepository.CreateReview(ctx, review); err != nil {
		return domain.ReviewResponse{}, err
	}
	return toReviewResponse(review), nil
}

func (s *reviewService) GetReviews(ctx context.Context, recipeID string, identity *auth.Identity) ([]domain.ReviewResponse, error) {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if !rec.IsPublic && !auth.Authorize(identity, rec.UserID.String()) {
		return nil, domain.ErrRecipeNotFound
	}

	reviews, err := s.reviewRepository.GetReviewsByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, toReviewResponse(review))
	}
	return result, nil
}

// ownedReview applies the policy with the review's author as owner.
func (s *reviewService) ownedReview(ctx context.Context, reviewID string, identity *auth.Identity) (*entities.Review, error) {
	review, err := s.reviewRepository.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	if !auth.Authorize(identity, review.UserID.String()) {
		return nil, domain.ErrUserNotAllowed
	}
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, req domain.UpdateReviewRequest, identity *auth.Identity) (domain.ReviewResponse, error) {
	review, err := s.ownedReview(ctx, reviewID, identity)
	if err != nil {
		return domain.ReviewResponse{}, err
	}

	if req.Rating != nil {
		review.Rating = clampRating(*req.Rating)
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := s.reviewRepository.UpdateReview(ctx, review); err != nil {
		return domain.ReviewResponse{}, err
	}
	return toReviewResponse(review), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, identity *auth.Identity) error {
	if _, err := s.ownedReview(ctx, reviewID, identity); err != nil {
		return err
	}
	return s.reviewRepository.DeleteReview(ctx, reviewID)
}
