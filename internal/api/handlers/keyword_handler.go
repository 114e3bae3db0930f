package handlers

import (
	"tastebook/domain"
	"tastebook/internal/api/presenters"
	"tastebook/pkg/keyword"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	KeywordHandler interface {
		AttachKeyword(c *fiber.Ctx) error
		DetachKeyword(c *fiber.Ctx) error
	}

	keywordHandler struct {
		keywordService keyword.KeywordService
		validator      *validator.Validate
	}
)

func NewKeywordHandler(keywordService keyword.KeywordService, validator *validator.Validate) KeywordHandler {
	return &keywordHandler{
		keywordService: keywordService,
		validator:      validator,
	}
}

func (h *keywordHandler) AttachKeyword(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAttachKeyword, err)
	}

	req := new(domain.KeywordRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAttachKeyword, err)
	}

	if err := h.keywordService.Attach(c.Context(), recipeID, req.Word, callerIdentity(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAttachKeyword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessAttachKeyword)
}

func (h *keywordHandler) DetachKeyword(c *fiber.Ctx) error {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDetachKeyword, err)
	}

	word := c.Params("word")
	if word == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDetachKeyword, domain.ErrKeywordNotLinked)
	}

	if err := h.keywordService.Detach(c.Context(), recipeID, word, callerIdentity(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDetachKeyword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDetachKeyword)
}
