package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// AuthHandler exposes account endpoints for the admin console.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: authService, cookieSecure: cookieSecure}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.FromUser(user)},
	})
}

// Login handles POST /api/auth/login. The token is returned in the body and set as a cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	auth.SetTokenCookie(c, session.Token, session.ExpiresAt, h.cookieSecure)
	return c.JSON(fiber.Map{
		"data": dto.LoginResponse{
			User: dto.FromUser(session.User),
			Auth: dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
		},
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearTokenCookie(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Logged out"}})
}

// PromoteUsers handles POST /api/auth/update-users.
func (h *AuthHandler) PromoteUsers(c *fiber.Ctx) error {
	count, err := h.auth.PromoteAllToAdmin(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PromoteUsersResponse{Updated: count}})
}
