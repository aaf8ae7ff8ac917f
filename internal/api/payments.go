package api

import (
	"errors"                              // Error matching
	"instrument_market/internal/domain"   // Importing domain models
	"instrument_market/internal/payments" // Payment gateway
	"math"                                // Rounding to minor units
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateIntentRequest carries the order price to turn into a payment intent
type CreateIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"` // Order price in major units
}

// RecordPaymentRequest carries a confirmed payment to be recorded
type RecordPaymentRequest struct {
	OrderID       uint   `json:"orderId" binding:"required"`       // Booking the payment settles
	TransactionID string `json:"transactionId" binding:"required"` // Gateway transaction id
	Amount        int64  `json:"amount"`                           // Amount in minor units
}

// CreatePaymentIntentHandler requests a client-confirmable payment intent.
// This step is side-effect-free with respect to the data model: no booking
// state changes until the payment is recorded.
func CreatePaymentIntentHandler(gateway payments.IntentCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateIntentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Convert the price to integer minor units for the gateway
		amount := int64(math.Round(req.Price * 100))
		// Request the intent from the payment gateway
		clientSecret, err := gateway.CreateIntent(amount, "usd")
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"amount": amount,      // Amount in minor units
				"error":  err.Error(), // Error message
			}).Error("Failed to create payment intent") // Log gateway failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
			return
		}
		// Only the client secret leaves the server
		c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
	}
}

// RecordPaymentHandler appends the payment record and flips the referenced
// booking to paid with its transaction id, inside one transaction so a crash
// cannot leave an orphan payment record or an unpaid-but-settled booking.
func RecordPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecordPaymentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Atomic compound write: append payment, then mark the booking paid
		err := db.Transaction(func(tx *gorm.DB) error {
			// Append the payment record
			payment := domain.Payment{
				OrderID:       req.OrderID,       // Settled booking
				TransactionID: req.TransactionID, // Gateway transaction id
				Amount:        req.Amount,        // Amount in minor units
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err // Return error to rollback
			}
			// Flip the booking to paid with its transaction id, set exactly once
			result := tx.Model(&domain.Booking{}).Where("id = ?", req.OrderID).
				Updates(map[string]any{"paid": true, "transaction_id": req.TransactionID})
			if result.Error != nil {
				return result.Error // Return error to rollback
			}
			// A payment against a missing booking aborts the whole operation
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// A missing booking is the caller's mistake, not a server fault
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"order_id":       req.OrderID,       // Settled booking
				"transaction_id": req.TransactionID, // Gateway transaction id
				"error":          err.Error(),       // Error message
			}).Error("Payment recording failed") // Log recording failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}
		// Log successful payment
		logrus.WithFields(logrus.Fields{
			"order_id":       req.OrderID,       // Settled booking
			"transaction_id": req.TransactionID, // Gateway transaction id
			"amount":         req.Amount,        // Amount in minor units
		}).Info("Payment recorded") // Log payment success
		c.JSON(http.StatusOK, gin.H{"message": "Payment recorded"}) // Return success response
	}
}
