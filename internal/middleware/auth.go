package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"craftmosul/internal/domain"
	jwtsvc "craftmosul/internal/pkg/jwt"
	"craftmosul/internal/pkg/response"
)

const principalKey = "principal"

// UserLoader resolves the user behind a token so stale tokens for deleted
// or deactivated accounts are rejected.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Auth validates the bearer token and attaches the resolved principal to
// the request context.
func Auth(jwt *jwtsvc.Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, "User associated with token not found")
			return
		}
		if !user.IsActive {
			abortUnauthorized(c, "User account is deactivated")
			return
		}

		c.Set(principalKey, domain.Principal{UserID: user.ID, Role: user.Role})

		c.Next()
	}
}

// RequireRoles is the coarse role gate. Ownership checks stay in the
// modules, layered on top of this.
func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}

		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient role for this operation")
		c.Abort()
	}
}

// GetPrincipal returns the principal set by Auth, if any.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		abortUnauthorized(c, "Missing Authorization header")
		return "", false
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		abortUnauthorized(c, "Authorization header must be 'Bearer <token>'")
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		abortUnauthorized(c, "Empty token")
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
	c.Abort()
}
