package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireSelf compares the token's email with the caller-supplied email
// parameter (query first, then path). Ownership is checked by value
// equality, never by a database round-trip.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email") // Get email from context
		// Check if email exists in context (JWTAuthMiddleware must run first)
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		target := c.Query(param) // Caller-supplied email, query parameter form
		if target == "" {
			target = c.Param(param) // Fall back to the path parameter form
		}
		// The principal may only act on their own data
		if target != email.(string) {
			// Mismatch, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access restricted to your own data"})
			return
		}
		// Owner confirmed, proceed to the next handler
		c.Next()
	}
}
