package handlers

import (
	"errors"

	"tastebook/domain"
	"tastebook/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// callerIdentity reads the identity resolved by the auth middleware.
// Routes without the middleware yield nil, which services treat as an
// unauthenticated caller.
func callerIdentity(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals("identity").(*auth.Identity)
	return identity
}

// statusFor maps core outcomes to transport statuses: forbidden 403,
// unauthenticated 401, absent 404, conflict 409, unlink-miss 422,
// bad input 400, anything else is a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrImageNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyUsed),
		errors.Is(err, domain.ErrUsernameAlreadyUsed),
		errors.Is(err, domain.ErrAlreadyFavorited),
		errors.Is(err, domain.ErrAlreadyLinked):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrKeywordNotLinked):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
