package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/domain"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const principalKey = "auth_principal"

type principalCtxKey struct{}

// Headers forwarded to downstream handlers once a caller is authenticated.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

const (
	msgAuthRequired = "Authentication required"
	msgInvalidToken = "Invalid or expired token"
	msgAdminOnly    = "Admin access required"
)

// Principal represents the authenticated caller.
type Principal struct {
	UserID string
	Role   domain.Role
}

// Gate guards the mutating API routes with bearer tokens.
type Gate struct {
	tokens TokenVerifier
	policy RolePolicy
	logger *zap.Logger
}

// NewGate constructs the API gate.
func NewGate(tokens TokenVerifier, policy RolePolicy, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{tokens: tokens, policy: policy, logger: logger}
}

// Authenticate validates the bearer token and attaches the principal.
// It never touches the database.
func (g *Gate) Authenticate(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return apperrors.NewUnauthorized(msgAuthRequired)
	}

	scheme, token, _ := strings.Cut(authHeader, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		g.logger.Debug("unsupported authorization scheme", zap.String("path", c.Path()))
		return apperrors.NewUnauthorized(msgInvalidToken)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.NewUnauthorized(msgAuthRequired)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debug("bearer token rejected", zap.String("path", c.Path()), zap.Error(err))
		return apperrors.NewUnauthorized(msgInvalidToken)
	}

	role := claims.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	principal := &Principal{UserID: claims.UserID, Role: role}
	c.Locals(principalKey, principal)
	c.SetUserContext(context.WithValue(c.UserContext(), principalCtxKey{}, principal))
	c.Request().Header.Set(HeaderUserID, principal.UserID)
	c.Request().Header.Set(HeaderUserRole, string(principal.Role))
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// ActorID returns the authenticated user id carried by ctx, or "" for anonymous calls.
func ActorID(ctx context.Context) string {
	if principal, ok := ctx.Value(principalCtxKey{}).(*Principal); ok {
		return principal.UserID
	}
	return ""
}
