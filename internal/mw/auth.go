package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"capacity-engine-backend/internal/auth"
)

// RoleContextKey is where the verified admin role is stored on the request
// context.
const RoleContextKey = "admin_role"

// RequireCapability verifies the bearer token and checks that its role holds
// the given capability. Missing or invalid tokens get 401; a valid token
// whose role lacks the capability gets 403.
func RequireCapability(secret string, capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if !claims.Role.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		c.Set(RoleContextKey, claims.Role)
		c.Next()
	}
}
