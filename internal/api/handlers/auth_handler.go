package handlers

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/picturesmile/studio-api/configs"
	"github.com/picturesmile/studio-api/internal/api/middleware"
	"github.com/picturesmile/studio-api/internal/service"
	"github.com/picturesmile/studio-api/internal/transfer"
)

type AuthHandler struct {
	s      service.AuthService
	cfg    config.Auth
	secure bool
}

func NewAuthHandler(cfg config.Auth, secure bool, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg, secure: secure}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := transfer.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	session, err := h.s.Login(req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    session.Token,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  session.ExpiresAt,
	})

	return c.Status(fiber.StatusOK).JSON(session)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token := middleware.SessionToken(c, h.cfg.CookieName)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"authenticated": h.s.ValidateSession(token),
	})
}
