package middleware

import (
	"net/http"
	"strings"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxRoles    = "roles"
)

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// Requests without a valid bearer token are rejected with 401.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			Abort(c, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			Abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves the requester when a valid token is present and lets
// the request through as anonymous otherwise.
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := tokens.ValidateToken(tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole answers 401 for anonymous callers and 403 when the role is missing.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := RequesterFrom(c)
		if !req.Authenticated() {
			Abort(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !req.HasRole(role) {
			Abort(c, http.StatusForbidden, "requires role "+role)
			return
		}
		c.Next()
	}
}

// RequireAdmin is a convenience function for requiring the Admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// RequesterFrom returns the identity the auth middleware stored on c; the
// zero Requester when there is none.
func RequesterFrom(c *gin.Context) service.Requester {
	var req service.Requester
	req.UserID = c.GetString(ctxUserID)
	req.Username = c.GetString(ctxUsername)
	req.Roles = c.GetStringSlice(ctxRoles)
	return req
}

// Abort writes a problem body and stops the chain.
func Abort(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, dto.ProblemResponse{
		Status: status,
		Title:  http.StatusText(status),
		Detail: detail,
	})
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	// format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setClaims(c *gin.Context, claims *service.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxRoles, claims.Roles)
}
