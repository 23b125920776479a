package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"freelancer_directory/internal/domain" // Role names
	"freelancer_directory/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// JWTAuthMiddleware validates bearer tokens and stores the caller's id, username and role in the context
func JWTAuthMiddleware(opts utils.TokenOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header."})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, opts)                            // Parse the JWT token
		if err != nil {
			logrus.WithField("error", err.Error()).Debug("Rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token."})
			return
		}
		id, err := claims.FreelancerID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token."})
			return
		}
		c.Set(ContextUserID, id)            // Store freelancer id in context
		c.Set(ContextUsername, claims.Name) // Store display name in context
		c.Set(ContextRole, claims.Role)     // Store role in context
		c.Next()                            // Proceed to the next handler
	}
}

// CurrentUserID returns the authenticated freelancer id, if any
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// IsAdmin reports whether the authenticated caller carries the Admin role
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextRole) == domain.RoleAdmin
}
