package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddReview    = "review added successfully"
	MessageSuccessGetReviews   = "success get reviews"
	MessageSuccessUpdateReview = "review updated successfully"
	MessageSuccessDeleteReview = "review deleted successfully"

	MessageFailedAddReview    = "failed to add review"
	MessageFailedGetReviews   = "failed to get reviews"
	MessageFailedUpdateReview = "failed to update review"
	MessageFailedDeleteReview = "failed to delete review"

	ErrReviewNotFound = errors.New("review not found")
)

type (
	CreateReviewRequest struct {
		Rating  int    `json:"rating" validate:"required"`
		Comment string `json:"comment"`
	}

	UpdateReviewRequest struct {
		Rating  *int    `json:"rating,omitempty"`
		Comment *string `json:"comment,omitempty"`
	}

	ReviewResponse struct {
		ID        string    `json:"id"`
		RecipeID  string    `json:"recipe_id"`
		UserID    string    `json:"user_id"`
		Rating    int       `json:"rating"`
		Comment   string    `json:"comment"`
		CreatedAt time.Time `json:"created_at"`
	}
)
