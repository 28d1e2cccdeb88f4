package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// identityKey is the gin context key holding the authenticated identity
const identityKey = "auth_identity"

// Middleware validates the Authorization bearer token and stores the
// identity in the request context. Missing or invalid tokens abort with 401.
func Middleware(provider Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "UNAUTHORIZED",
				"message": "missing bearer token",
			})
			return
		}

		identity, err := provider.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Warn("Token validation failed",
				zap.String("ip", c.ClientIP()),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "UNAUTHORIZED",
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom extracts the authenticated identity set by Middleware
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok
}
