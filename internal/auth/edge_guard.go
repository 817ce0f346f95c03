package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Admin page paths seen by the edge guard.
const (
	AdminPrefix  = "/admin"
	LoginPath    = "/admin/login"
	RegisterPath = "/admin/register"
)

// CookieName carries the session token for page navigation.
const CookieName = "token"

// EdgeGuard redirects unauthenticated navigation under /admin to the login page.
type EdgeGuard struct {
	tokens TokenVerifier
	logger *zap.Logger
	open   map[string]struct{}
}

// NewEdgeGuard constructs the guard. It shares the verifier with the API gate.
func NewEdgeGuard(tokens TokenVerifier, logger *zap.Logger) *EdgeGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EdgeGuard{
		tokens: tokens,
		logger: logger,
		open: map[string]struct{}{
			LoginPath:    {},
			RegisterPath: {},
		},
	}
}

// Handle is the fiber middleware.
func (g *EdgeGuard) Handle(c *fiber.Ctx) error {
	path := normalizePath(c.Path())
	if !isAdminPath(path) {
		return c.Next()
	}
	if _, ok := g.open[path]; ok {
		return c.Next()
	}

	token := c.Cookies(CookieName)
	if token == "" {
		return c.Redirect(LoginPath, fiber.StatusTemporaryRedirect)
	}

	if _, err := g.tokens.Verify(token); err != nil {
		g.logger.Debug("admin cookie rejected", zap.String("path", path), zap.Error(err))
		ClearTokenCookie(c)
		return c.Redirect(LoginPath, fiber.StatusTemporaryRedirect)
	}
	return c.Next()
}

func isAdminPath(path string) bool {
	return path == AdminPrefix || strings.HasPrefix(path, AdminPrefix+"/")
}

// normalizePath lowercases and drops trailing slashes so /ADMIN/ and /admin match alike.
func normalizePath(path string) string {
	path = strings.ToLower(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}

// SetTokenCookie stores a freshly issued token for page navigation.
func SetTokenCookie(c *fiber.Ctx, token string, expiresAt time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearTokenCookie expires the token cookie.
func ClearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
