package middleware

import (
	"strings"

	"tastebook/domain"
	"tastebook/internal/api/presenters"
	"tastebook/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const identityLocal = "identity"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, PUT, DELETE",
	})
}

// AuthMiddleware resolves the caller identity once and stores it in
// locals; handlers pass it down explicitly from there. A request without
// a resolvable identity never reaches a guarded handler.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenInvalid)
		}

		identity := jwtService.ParseIdentity(parts[1])
		if identity == nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenInvalid)
		}

		c.Locals(identityLocal, identity)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the identity when a bearer token is
// present and passes through anonymously otherwise. Read routes use it so
// an owner's token still reaches their own private resources.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if identity := jwtService.ParseIdentity(parts[1]); identity != nil {
				c.Locals(identityLocal, identity)
			}
		}
		return c.Next()
	}
}
