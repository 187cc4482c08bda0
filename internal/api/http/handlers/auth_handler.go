package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/college-records/internal/api/dto"
	"github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/service"
)

const bearerPrefix = "Bearer "

// AuthHandler exposes login, logout and session inspection.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login. The error body is deliberately generic so
// a caller cannot probe which accounts exist.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	user, err := h.auth.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return err
	}

	session, err := h.auth.BuildSession(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Success: true,
		User:    dto.NewUserSummary(session.User),
		Token:   session.Token,
	})
}

// Logout handles POST /auth/logout. A missing or malformed Authorization
// header is tolerated as a no-op rather than treated as an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		token := strings.TrimSpace(header[len(bearerPrefix):])
		if token != "" {
			if err := h.auth.EndSession(c.Context(), token); err != nil {
				return err
			}
		}
	}

	return c.JSON(dto.LogoutResponse{Success: true, Message: "Logged out successfully"})
}

// Me handles GET /auth/me for session restore.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserSummary(principal.User),
	})
}
