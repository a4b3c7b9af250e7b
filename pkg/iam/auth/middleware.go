package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// UnifiedAuthMiddleware validates bearer tokens and enforces roles and scopes
type UnifiedAuthMiddleware struct {
	tokens TokenService
}

func NewUnifiedAuthMiddleware(tokens TokenService) *UnifiedAuthMiddleware {
	return &UnifiedAuthMiddleware{tokens: tokens}
}

// Authenticate requires a valid "Bearer <token>" header
func (m *UnifiedAuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return ErrMissingToken()
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return ErrInvalidToken().WithDetail("reason", "expected Bearer token")
		}

		claims, err := m.tokens.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
			Scopes: claims.Scopes,
		})

		return c.Next()
	}
}

// RequireScope must run after Authenticate
func (m *UnifiedAuthMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !authContext.HasScope(scope) {
			return ErrInsufficientScope(scope)
		}
		return c.Next()
	}
}

// RequireRole must run after Authenticate
func (m *UnifiedAuthMiddleware) RequireRole(role Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if authContext.Role != role {
			return ErrWrongRole(role)
		}
		return c.Next()
	}
}

// GetAuthContext extracts the authenticated caller from the request
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authContext, ok := c.Locals(authContextKey).(*AuthContext)
	return authContext, ok && authContext != nil
}
