package handlers

import (
	"tastebook/domain"
	"tastebook/internal/api/presenters"
	"tastebook/pkg/review"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReviewHandler interface {
		AddReview(c *fiber.Ctx) error
		GetReviews(c *fiber.Ctx) error
		UpdateReview(c *fiber.Ctx) error
		DeleteReview(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
		validator     *validator.Validate
	}
)

func NewReviewHandler(reviewService review.ReviewService, validator *validator.Validate) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *reviewHandler) AddReview(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddReview, err)
	}

	req := new(domain.CreateReviewRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddReview, err)
	}

	res, err := h.reviewService.AddReview(c.Context(), recipeID, *req, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddReview, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddReview)
}

func (h *reviewHandler) GetReviews(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReviews, err)
	}

	res, err := h.reviewService.GetReviews(c.Context(), recipeID, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetReviews, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReviews)
}

func (h *reviewHandler) UpdateReview(c *fiber.Ctx) error {
	reviewID, err := parseIDParam(c, "reviewId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateReview, err)
	}

	req := new(domain.UpdateReviewRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateReview, err)
	}

	res, err := h.reviewService.UpdateReview(c.Context(), reviewID, *req, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateReview, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateReview)
}

func (h *reviewHandler) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := parseIDParam(c, "reviewId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReview, err)
	}

	if err := h.reviewService.DeleteReview(c.Context(), reviewID, callerIdentity(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteReview, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReview)
}
