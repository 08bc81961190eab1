package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-admin-dashboard/internal/application/ports"
)

const (
	CtxGrantToken = "grantToken"
	CtxAttemptID  = "attemptID"
	CtxAdminPhone = "adminPhone"
)

// GrantMiddleware requires a deletion grant in the Authorization header.
func GrantMiddleware(grants ports.Grants) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := grants.ValidateGrant(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxGrantToken, tokenStr)
		c.Set(CtxAttemptID, claims.AttemptID)
		c.Set(CtxAdminPhone, claims.AdminPhone)

		c.Next()
	}
}
