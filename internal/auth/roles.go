package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/domain"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// RolePolicy decides which authenticated roles may pass Authorize.
// With Enforce unset every authenticated caller passes.
type RolePolicy struct {
	Enforce bool
	Allowed []domain.Role
}

// AdminOnly returns the policy used by the mutating routes.
func AdminOnly(enforce bool) RolePolicy {
	return RolePolicy{Enforce: enforce, Allowed: []domain.Role{domain.RoleAdmin}}
}

// Allows reports whether role passes the policy.
func (p RolePolicy) Allows(role domain.Role) bool {
	if !p.Enforce {
		return true
	}
	for _, allowed := range p.Allowed {
		if role == allowed {
			return true
		}
	}
	return false
}

// WarnIfOpen logs once at startup when authorization is not enforced.
func (g *Gate) WarnIfOpen() {
	if !g.policy.Enforce {
		g.logger.Warn("admin role enforcement disabled; every authenticated user may mutate content",
			zap.String("setting", "AUTH_ENFORCE_ADMIN_ROLE"))
	}
}

// Authorize runs after Authenticate and applies the role policy.
func (g *Gate) Authorize(c *fiber.Ctx) error {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(msgAuthRequired)
	}
	if !g.policy.Allows(principal.Role) {
		g.logger.Info("role rejected",
			zap.String("user_id", principal.UserID),
			zap.String("role", string(principal.Role)),
			zap.String("path", c.Path()),
		)
		return apperrors.NewForbidden(msgAdminOnly)
	}
	return c.Next()
}

// Protect chains Authenticate and Authorize into a single handler list.
func (g *Gate) Protect() []fiber.Handler {
	return []fiber.Handler{g.Authenticate, g.Authorize}
}

// Unless runs next only when skip reports false.
func Unless(skip func(*fiber.Ctx) bool, next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skip(c) {
			return c.Next()
		}
		return next(c)
	}
}

// PublicQuery reports whether the request asks for the public view.
func PublicQuery(c *fiber.Ctx) bool {
	return c.Query("public") == "true"
}
