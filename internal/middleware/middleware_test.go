package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastebook/entities"
	"tastebook/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

type jwtServiceStub struct {
	identity *auth.Identity
}

func (s *jwtServiceStub) GenerateToken(*entities.User) string { return "" }

func (s *jwtServiceStub) ParseIdentity(token string) *auth.Identity {
	if token == "valid-token" {
		return s.identity
	}
	return nil
}

func (s *jwtServiceStub) IsAdmin(string) bool { return false }

func identityEcho(c *fiber.Ctx) error {
	if identity, ok := c.Locals("identity").(*auth.Identity); ok {
		return c.SendString(identity.UserID)
	}
	return c.SendString("anonymous")
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := &jwtServiceStub{identity: &auth.Identity{UserID: "user-1"}}
	app := fiber.New()
	app.Get("/guarded", NewMiddleware().AuthMiddleware(jwtService), identityEcho)

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("status: got %d want %d", resp.StatusCode, fiber.StatusUnauthorized)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("status: got %d want %d", resp.StatusCode, fiber.StatusUnauthorized)
		}
	})

	t.Run("valid token reaches the handler with an identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status: got %d want %d", resp.StatusCode, fiber.StatusOK)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "user-1" {
			t.Errorf("identity not resolved: got %q", body)
		}
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := &jwtServiceStub{identity: &auth.Identity{UserID: "user-1"}}
	app := fiber.New()
	app.Get("/open", NewMiddleware().OptionalAuthMiddleware(jwtService), identityEcho)

	t.Run("anonymous request passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status: got %d want %d", resp.StatusCode, fiber.StatusOK)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "anonymous" {
			t.Errorf("expected anonymous, got %q", body)
		}
	})

	t.Run("bearer token resolves the identity on a read route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status: got %d want %d", resp.StatusCode, fiber.StatusOK)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "user-1" {
			t.Errorf("identity not resolved: got %q", body)
		}
	})

	t.Run("unparseable token falls back to anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status: got %d want %d", resp.StatusCode, fiber.StatusOK)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "anonymous" {
			t.Errorf("expected anonymous, got %q", body)
		}
	})
}
