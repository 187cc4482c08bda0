package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/repository"
)

const principalKey = "auth_principal"

const bearerPrefix = "Bearer "

// Principal represents the authenticated caller for the current request.
type Principal struct {
	User *domain.User
	Role domain.Role
}

// AuthMiddleware resolves bearer tokens into principals. It never rejects a
// request itself: any verification failure degrades to "no identity attached"
// and the route guards in roles.go decide whether anonymous access is
// acceptable.
type AuthMiddleware struct {
	tokens      *TokenManager
	revocations RevocationStore
	users       repository.UserRepository
	logger      *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, revocations RevocationStore, users repository.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revocations: revocations, users: users, logger: logger}
}

// Handle inspects the Authorization header and, when it carries a valid,
// unrevoked token whose subject still resolves to an account, attaches the
// principal to the request context. Safe to invoke more than once per
// request; a context that already carries a principal is left untouched.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if _, ok := PrincipalFromContext(c); ok {
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return c.Next()
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return c.Next()
	}

	revoked, err := m.revocations.IsRevoked(c.Context(), token)
	if err != nil {
		m.logger.Warn("revocation lookup failed", zap.Error(err))
		return c.Next()
	}
	if revoked {
		return c.Next()
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return c.Next()
	}

	user, err := m.users.GetByUserID(c.Context(), claims.Subject)
	if err != nil {
		// account deleted since issuance, or the store is unreachable
		return c.Next()
	}

	c.Locals(principalKey, &Principal{User: user, Role: user.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
