package middleware

import (
	"instrument_market/internal/identity" // Role resolver
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole re-checks the caller's role from the database on each request,
// so a revoked or demoted account loses access immediately. An unknown email
// is a role mismatch, not a separate error.
func RequireRole(res *identity.Resolver, role string) gin.HandlerFunc {
	message := role + " access required" // Shared error message for this guard
	return func(c *gin.Context) {
		email, exists := c.Get("email") // Get email from context
		// Check if email exists in context (JWTAuthMiddleware must run first)
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Resolve the stored role for this email
		current, ok := res.RoleOf(email.(string))
		if !ok || current != role {
			// Wrong role (or no user record), abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": message})
			return
		}
		// Role matches, proceed to the next handler
		c.Next()
	}
}
