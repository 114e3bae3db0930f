package handlers

import (
	"tastebook/domain"
	"tastebook/internal/api/presenters"
	"tastebook/pkg/favorite"

	"github.com/gofiber/fiber/v2"
)

type (
	FavoriteHandler interface {
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		GetFavorites(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		favoriteService favorite.FavoriteService
	}
)

func NewFavoriteHandler(favoriteService favorite.FavoriteService) FavoriteHandler {
	return &favoriteHandler{
		favoriteService: favoriteService,
	}
}

func (h *favoriteHandler) AddFavorite(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFavorite, err)
	}

	if err := h.favoriteService.AddFavorite(c.Context(), recipeID, callerIdentity(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddFavorite, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessAddFavorite)
}

func (h *favoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveFavorite, err)
	}

	if err := h.favoriteService.RemoveFavorite(c.Context(), recipeID, callerIdentity(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRemoveFavorite, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveFavorite)
}

func (h *favoriteHandler) GetFavorites(c *fiber.Ctx) error {
	res, err := h.favoriteService.GetFavorites(c.Context(), callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFavorites, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}
