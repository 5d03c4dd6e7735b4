package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/picturesmile/studio-api/configs"
	"github.com/picturesmile/studio-api/internal/service"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	s   service.AuthService
	cfg config.Auth
	log *zap.Logger
}

func NewAuthMiddleware(cfg config.Auth, service service.AuthService, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{s: service, cfg: cfg, log: log}
}

// SessionToken reads the session from the cookie, falling back to a bearer
// token for API clients.
func SessionToken(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}
	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func (m *AuthMiddleware) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	})
}

func (m *AuthMiddleware) authenticated(c *fiber.Ctx) bool {
	token := SessionToken(c, m.cfg.CookieName)
	if token == "" {
		return false
	}
	if !m.s.ValidateSession(token) {
		m.clearCookie(c)
		m.log.Debug("session rejected", zap.String("path", c.Path()))
		return false
	}
	return true
}

// APIGate answers 401 for requests without a valid session.
func (m *AuthMiddleware) APIGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.authenticated(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}
		return c.Next()
	}
}

// PageGate sends visitors without a valid session to the login page.
func (m *AuthMiddleware) PageGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.authenticated(c) {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}
