package api

import (
	"instrument_market/internal/domain" // Importing domain models
	"net/http"                          // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// BookingRequest is the buyer's booking payload
type BookingRequest struct {
	BuyerEmail     string  `json:"buyerEmail" binding:"required,email"` // Buyer email must be provided and valid
	InstrumentID   uint    `json:"instrumentId" binding:"required"`     // Instrument must be provided
	InstrumentName string  `json:"instrumentName"`                      // Denormalized for order display
	Price          float64 `json:"price"`                               // Price at booking time
}

// WishlistRequest is the buyer's wishlist payload
type WishlistRequest struct {
	BuyerEmail     string  `json:"buyerEmail" binding:"required,email"` // Buyer email must be provided and valid
	InstrumentID   uint    `json:"instrumentId" binding:"required"`     // Instrument must be provided
	InstrumentName string  `json:"instrumentName"`                      // Denormalized for display
	Price          float64 `json:"price"`                               // Price at wishlist time
}

// CreateBookingHandler records a new unpaid booking
func CreateBookingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BookingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// New bookings always start unpaid; the payment flow flips them once
		booking := domain.Booking{
			BuyerEmail:     req.BuyerEmail,     // Booking buyer
			InstrumentID:   req.InstrumentID,   // Booked instrument
			InstrumentName: req.InstrumentName, // Display name
			Price:          req.Price,          // Price at booking time
		}
		// Attempt to create the booking in the database
		if err := db.Create(&booking).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"buyer_email":   req.BuyerEmail,   // Booking buyer
				"instrument_id": req.InstrumentID, // Booked instrument
				"error":         err.Error(),      // Error message
			}).Error("Failed to create booking") // Log creation failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
			return
		}
		// Return success response with the new booking
		c.JSON(http.StatusCreated, gin.H{"message": "Booking created", "booking": booking})
	}
}

// MyOrdersHandler returns the caller's bookings
func MyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email") // Buyer email, already checked against the token by RequireSelf
		var bookings []domain.Booking
		// Fetch the buyer's bookings
		if err := db.Where("buyer_email = ?", email).Find(&bookings).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
			return
		}
		c.JSON(http.StatusOK, bookings) // Return the bookings
	}
}

// CreateWishlistHandler records a new wishlist entry
func CreateWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WishlistRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Create the wishlist entry
		entry := domain.WishlistEntry{
			BuyerEmail:     req.BuyerEmail,     // Wishlist owner
			InstrumentID:   req.InstrumentID,   // Wishlisted instrument
			InstrumentName: req.InstrumentName, // Display name
			Price:          req.Price,          // Price at wishlist time
		}
		// Attempt to create the entry in the database
		if err := db.Create(&entry).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"buyer_email":   req.BuyerEmail,   // Wishlist owner
				"instrument_id": req.InstrumentID, // Wishlisted instrument
				"error":         err.Error(),      // Error message
			}).Error("Failed to create wishlist entry") // Log creation failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wishlist entry"})
			return
		}
		// Return success response with the new entry
		c.JSON(http.StatusCreated, gin.H{"message": "Wishlist entry created", "wishlist": entry})
	}
}

// MyWishlistHandler returns the caller's wishlist
func MyWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email") // Owner email, already checked against the token by RequireSelf
		var entries []domain.WishlistEntry
		// Fetch the owner's wishlist entries
		if err := db.Where("buyer_email = ?", email).Find(&entries).Error; err != nil {
			// Return internal server error on persistence failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, entries) // Return the wishlist
	}
}
