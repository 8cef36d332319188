package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookrealm-backend/internal/shared/response"
	"bookrealm-backend/pkg/jwt"
)

const userIDKey = "userID"

// AuthMiddleware validates the bearer token and stores the caller's
// user id in the request context. Token issuance is the auth service's
// job; here we only verify.
func AuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is
// present but lets anonymous requests through. Read paths use it for
// the per-viewer favorite annotation.
func OptionalAuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if claims, err := tokens.ValidateAccessToken(tokenString); err == nil {
			c.Set(userIDKey, claims.UserID)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// UserID returns the authenticated caller's id, or 0 for anonymous.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
