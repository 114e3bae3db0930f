package handlers

import (
	"io"

	"tastebook/domain"
	"tastebook/internal/api/presenters"
	"tastebook/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddIngredient(c *fiber.Ctx) error
		RemoveIngredient(c *fiber.Ctx) error
		UploadImage(c *fiber.Ctx) error
		GetImage(c *fiber.Ctx) error
		RemoveImage(c *fiber.Ctx) error
		UploadCoverImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func parseIDParam(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.ErrParseUUID
	}
	return id, nil
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipes(c.Context(), callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	req := new(domain.UpdateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, *req, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, callerIdentity(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteRecipe, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) AddIngredient(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddIngredient, err)
	}

	req := new(domain.CreateIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddIngredient, err)
	}

	res, err := h.recipeService.AddIngredient(c.Context(), recipeID, *req, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddIngredient)
}

func (h *recipeHandler) RemoveIngredient(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveIngredient, err)
	}
	ingredientID, err := parseIDParam(c, "ingredientId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveIngredient, err)
	}

	if err := h.recipeService.RemoveIngredient(c.Context(), recipeID, ingredientID, callerIdentity(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRemoveIngredient, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveIngredient)
}

func (h *recipeHandler) UploadImage(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	src, err := file.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	imageID, err := h.recipeService.UploadImage(c.Context(), recipeID, data, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"image_id": imageID}, fiber.StatusCreated, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) GetImage(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetImage, err)
	}
	imageID, err := parseIDParam(c, "imageId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetImage, err)
	}

	data, err := h.recipeService.GetImage(c.Context(), recipeID, imageID, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetImage, err)
	}

	c.Set(fiber.HeaderContentType, "application/octet-stream")
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *recipeHandler) RemoveImage(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveImage, err)
	}
	imageID, err := parseIDParam(c, "imageId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveImage, err)
	}

	if err := h.recipeService.RemoveImage(c.Context(), recipeID, imageID, callerIdentity(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRemoveImage, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveImage)
}

func (h *recipeHandler) UploadCoverImage(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	file, err := c.FormFile("cover")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	url, err := h.recipeService.UploadCoverImage(c.Context(), recipeID, file, callerIdentity(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"cover_image_url": url}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
