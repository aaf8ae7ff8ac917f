package api

import (
	"instrument_market/internal/domain"   // Importing domain models
	"instrument_market/internal/identity" // Role resolver
	"instrument_market/internal/utils"    // Utility functions
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Email string `json:"email" binding:"required,email"` // Email must be provided and valid
	Name  string `json:"name"`                           // Display name, optional
	Role  string `json:"role"`                           // Requested role, defaults to buyer
}

// TokenResponse carries an issued token (empty when issuance is refused)
type TokenResponse struct {
	Token string `json:"token"` // JWT token
}

// isValidRole restricts signup to the two self-assignable roles
func isValidRole(role string) bool {
	return role == "buyer" || role == "seller" // Admin is never self-assigned
}

// RegisterHandler creates a user record keyed by email. Repeating signup for
// a known email acknowledges without inserting a duplicate (upsert-like).
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Default and validate the requested role
		if req.Role == "" {
			req.Role = "buyer" // Plain signup is a buyer
		}
		if !isValidRole(req.Role) {
			// If role is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be buyer or seller"})
			return
		}
		var existing domain.User // Check for an existing record with this email
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			// Email already registered, acknowledge without duplicating
			c.JSON(http.StatusOK, gin.H{"message": "User already registered"})
			return
		}
		// Create the user record
		user := domain.User{Email: req.Email, Name: req.Name, Role: req.Role}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Signup email
				"error": err.Error(), // Error message
			}).Error("Signup failed") // Log signup failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// IssueTokenHandler issues a JWT for a known email. An unknown email gets an
// explicit empty-token refusal, distinguishable from a transport failure.
func IssueTokenHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email") // Email the caller wants a token for
		if email == "" {
			// No email supplied, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			// Unknown email never yields a usable token
			c.JSON(http.StatusForbidden, TokenResponse{Token: ""})
			return
		}
		// Generate JWT token bound to the email
		token, err := utils.GenerateJWT(user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}

// IsAdminHandler is the unauthenticated boolean projection of the admin role
func IsAdminHandler(res *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")                                   // Email to check
		c.JSON(http.StatusOK, gin.H{"admin": res.IsAdmin(email)}) // Pure projection of RoleOf
	}
}

// IsSellerHandler is the unauthenticated boolean projection of the seller role
func IsSellerHandler(res *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")                                     // Email to check
		c.JSON(http.StatusOK, gin.H{"seller": res.IsSeller(email)}) // Pure projection of RoleOf
	}
}
