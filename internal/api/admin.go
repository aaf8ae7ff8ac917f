package api

import (
	"errors"                            // Error matching
	"instrument_market/internal/domain" // Importing domain models
	"net/http"                          // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// VerifySellerRequest identifies the seller being verified
type VerifySellerRequest struct {
	ID    uint   `json:"id" binding:"required"`              // User record id
	Email string `json:"email" binding:"required,email"`     // Seller email, owner key of their listings
}

// ListUsersByRoleHandler returns all users holding one role (buyers or sellers)
func ListUsersByRoleHandler(db *gorm.DB, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User // Slice to hold users
		// Fetch users with the requested role
		if err := db.Where("role = ?", role).Find(&users).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users) // Return the users
	}
}

// DeleteUserHandler removes a user record by id
func DeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // User id from the path
		// Delete the user record
		result := db.Where("id = ?", id).Delete(&domain.User{})
		if result.Error != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		// Check if a record was actually removed
		if result.RowsAffected == 0 {
			// If not, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"user_id": id, // Deleted user id
		}).Info("User deleted") // Log user deletion
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"}) // Return success response
	}
}

// VerifySellerHandler is the compound write: it flips verified on the user
// record AND the seller-verified flag across every instrument owned by the
// seller's email, inside one transaction so a mid-sequence fault cannot leave
// the two collections disagreeing.
func VerifySellerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifySellerRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Atomic compound write
		err := db.Transaction(func(tx *gorm.DB) error {
			// Flip verified on the user record by id
			result := tx.Model(&domain.User{}).Where("id = ?", req.ID).Update("verified", true)
			if result.Error != nil {
				return result.Error // Return error to rollback
			}
			// A missing user record aborts the whole operation
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound // Return error to rollback
			}
			// Flip the seller-verified flag across every owned instrument
			// (zero owned instruments is fine, the update simply matches nothing)
			if err := tx.Model(&domain.Instrument{}).Where("owner_email = ?", req.Email).
				Update("seller_verified", true).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// A missing user is the caller's mistake, not a server fault
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": req.ID,      // Seller user id
				"email":   req.Email,   // Seller email
				"error":   err.Error(), // Error message
			}).Error("Seller verification failed") // Log verification failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify seller"})
			return
		}
		// Log successful verification
		logrus.WithFields(logrus.Fields{
			"user_id": req.ID,    // Seller user id
			"email":   req.Email, // Seller email
		}).Info("Seller verified") // Log seller verification
		c.JSON(http.StatusOK, gin.H{"message": "Seller verified"}) // Return success response
	}
}

// ListReportedHandler returns all listings flagged by reporters
func ListReportedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var instruments []domain.Instrument // Slice to hold reported listings
		// Fetch listings with the report flag set
		if err := db.Where("report = ?", true).Find(&instruments).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reported instruments"})
			return
		}
		c.JSON(http.StatusOK, instruments) // Return the reported listings
	}
}

// DeleteReportedHandler removes a flagged listing outright
func DeleteReportedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Listing id from the path
		var instrument domain.Instrument
		// Fetch the listing so its category cache can be invalidated
		if err := db.Where("id = ?", id).First(&instrument).Error; err != nil {
			// If listing not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found"})
			return
		}
		// Delete the listing
		if err := db.Delete(&instrument).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete instrument"})
			return
		}
		// Log successful moderation
		logrus.WithFields(logrus.Fields{
			"instrument_id": instrument.ID,         // Deleted listing id
			"owner_email":   instrument.OwnerEmail, // Listing owner
		}).Info("Reported instrument deleted") // Log reported listing deletion
		invalidateListingCache(c, instrument.TypeID)                 // Drop staled public read caches
		c.JSON(http.StatusOK, gin.H{"message": "Instrument deleted"}) // Return success response
	}
}
