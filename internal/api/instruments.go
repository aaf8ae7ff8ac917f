package api

import (
	"context"                           // Context for Redis operations
	"instrument_market/internal/domain" // Importing domain models
	"instrument_market/internal/utils"  // Utility functions
	"net/http"                          // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// InstrumentRequest is the seller's listing payload
type InstrumentRequest struct {
	Name        string  `json:"name" binding:"required"`        // Instrument name must be provided
	TypeID      string  `json:"typeId" binding:"required"`      // Category slug must be provided
	Price       float64 `json:"price" binding:"required,gt=0"`  // Asking price must be positive
	Brand       string  `json:"brand"`                          // Manufacturer, optional
	Description string  `json:"description"`                    // Free-form description, optional
	ImageURL    string  `json:"imageUrl"`                       // Product image, optional
}

// invalidateListingCache drops the cached public reads a listing mutation staled
func invalidateListingCache(c *gin.Context, typeID string) {
	// Redis client is injected into the context by the route wiring
	if v, exists := c.Get("redisClient"); exists {
		rdb, ok := v.(*redis.Client)
		if !ok {
			return // Wrong type in context, nothing to invalidate
		}
		ctx := context.Background()                                   // Context for Redis operations
		_ = utils.DeleteCache(ctx, rdb, "instruments:advertised")     // Invalidate advertised listings cache
		_ = utils.DeleteCache(ctx, rdb, "instruments:category:"+typeID) // Invalidate per-category listings cache
	}
}

// ListCategoriesHandler returns the static category list
func ListCategoriesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()   // Context for Redis operations
		cacheKey := "categories:all"  // Cache key for the category list
		var categories []domain.Category
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &categories)
		if err == nil && found {
			// Return cached categories
			c.JSON(http.StatusOK, categories)
			return
		}
		// If not in cache, fetch from DB
		if err := db.Find(&categories).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, categories, utils.ListingCacheTTL) // Cache until the TTL or the next mutation
		c.JSON(http.StatusOK, categories)                                  // Return the category list
	}
}

// ListByCategoryHandler returns listings for one category.
// Reported listings are not filtered out here; admins moderate them
// separately via /showReports.
func ListByCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		typeID := c.Param("id")                       // Category slug from the path
		ctx := context.Background()                   // Context for Redis operations
		cacheKey := "instruments:category:" + typeID  // Cache key for this category
		var instruments []domain.Instrument
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &instruments)
		if err == nil && found {
			// Return cached listings
			c.JSON(http.StatusOK, instruments)
			return
		}
		// If not in cache, fetch from DB with an equality filter
		if err := db.Where("type_id = ?", typeID).Find(&instruments).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instruments"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, instruments, utils.ListingCacheTTL) // Cache until the TTL or the next mutation
		c.JSON(http.StatusOK, instruments)                                  // Return the listings
	}
}

// ListAdvertisedHandler returns listings flagged for advertisement
func ListAdvertisedHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()              // Context for Redis operations
		cacheKey := "instruments:advertised"     // Cache key for advertised listings
		var instruments []domain.Instrument
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &instruments)
		if err == nil && found {
			// Return cached listings
			c.JSON(http.StatusOK, instruments)
			return
		}
		// If not in cache, fetch from DB
		if err := db.Where("advertise = ?", true).Find(&instruments).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instruments"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, instruments, utils.ListingCacheTTL) // Cache until the TTL or the next mutation
		c.JSON(http.StatusOK, instruments)                                  // Return the listings
	}
}

// MyProductsHandler returns the caller's own listings
func MyProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email") // Owner email, already checked against the token by RequireSelf
		var instruments []domain.Instrument
		// Fetch the seller's listings
		if err := db.Where("owner_email = ?", email).Find(&instruments).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch instruments"})
			return
		}
		c.JSON(http.StatusOK, instruments) // Return the listings
	}
}

// CreateInstrumentHandler creates a listing owned by the authenticated seller
func CreateInstrumentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email") // Get email from context
		// Check if email exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req InstrumentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Ownership comes from the token, never from the request body
		instrument := domain.Instrument{
			OwnerEmail:  email.(string),  // Owning seller
			TypeID:      req.TypeID,      // Category slug
			Name:        req.Name,        // Instrument name
			Brand:       req.Brand,       // Manufacturer
			Price:       req.Price,       // Asking price
			Description: req.Description, // Description
			ImageURL:    req.ImageURL,    // Product image
		}
		// Attempt to create the listing in the database
		if err := db.Create(&instrument).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"owner_email": email,       // Owning seller
				"type_id":     req.TypeID,  // Category slug
				"error":       err.Error(), // Error message
			}).Error("Failed to create instrument") // Log creation failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create instrument"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"owner_email":   email,         // Owning seller
			"instrument_id": instrument.ID, // New listing id
			"type_id":       req.TypeID,    // Category slug
		}).Info("Instrument created") // Log instrument creation
		invalidateListingCache(c, req.TypeID)                                                 // Drop staled public read caches
		c.JSON(http.StatusCreated, gin.H{"message": "Instrument created", "instrument": instrument}) // Return the new listing
	}
}

// AdvertiseInstrumentHandler sets advertise=true on a listing by id.
// Repeating the call is a no-op beyond the first: the final state is the same.
func AdvertiseInstrumentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Listing id from the path
		var instrument domain.Instrument
		// Fetch the listing first so a missing id is reported as not found
		if err := db.Where("id = ?", id).First(&instrument).Error; err != nil {
			// If listing not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found"})
			return
		}
		// Set the advertise flag (upsert-style: the field is created if absent)
		if err := db.Model(&instrument).Update("advertise", true).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update instrument"})
			return
		}
		invalidateListingCache(c, instrument.TypeID)                   // Drop staled public read caches
		c.JSON(http.StatusOK, gin.H{"message": "Instrument advertised"}) // Return success response
	}
}

// ReportInstrumentHandler sets report=true on a listing by id. Any
// authenticated principal may report; admins review via /showReports.
func ReportInstrumentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Listing id from the path
		var instrument domain.Instrument
		// Fetch the listing first so a missing id is reported as not found
		if err := db.Where("id = ?", id).First(&instrument).Error; err != nil {
			// If listing not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found"})
			return
		}
		// Set the report flag (upsert-style: the field is created if absent)
		if err := db.Model(&instrument).Update("report", true).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update instrument"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Instrument reported"}) // Return success response
	}
}

// DeleteInstrumentHandler removes a listing owned by the caller
func DeleteInstrumentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email") // Get email from context
		// Check if email exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id := c.Param("id") // Listing id from the path
		var instrument domain.Instrument
		// Fetch the listing to check ownership before deleting
		if err := db.Where("id = ?", id).First(&instrument).Error; err != nil {
			// If listing not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found"})
			return
		}
		// Only the owning seller may delete through this route
		if instrument.OwnerEmail != email.(string) {
			// If not the owner, return forbidden
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own instruments"})
			return
		}
		// Delete the listing
		if err := db.Delete(&instrument).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete instrument"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"owner_email":   email,         // Owning seller
			"instrument_id": instrument.ID, // Deleted listing id
		}).Info("Instrument deleted") // Log instrument deletion
		invalidateListingCache(c, instrument.TypeID)                 // Drop staled public read caches
		c.JSON(http.StatusOK, gin.H{"message": "Instrument deleted"}) // Return success response
	}
}
