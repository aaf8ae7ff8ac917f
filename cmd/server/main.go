package main

import (
	"context"                               // context package is needed for Redis operations
	"instrument_market/internal/api"        // Custom package for API handlers
	"instrument_market/internal/config"     // Custom package for configuration
	"instrument_market/internal/identity"   // Custom package for role resolution
	"instrument_market/internal/middleware" // Custom package for middleware
	"instrument_market/internal/payments"   // Custom package for the payment gateway
	"log"                                   // log package is needed for logging

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	resolver := identity.NewResolver(db)                  // Role resolver, one lookup per guarded request
	gateway := payments.NewStripeGateway(cfg.StripeSecret) // Payment gateway

	// Guards of the access control chain; they compose left to right and the
	// first failure short-circuits the request
	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)       // Valid token required
	sellerOnly := middleware.RequireRole(resolver, "seller")  // Seller role required
	adminOnly := middleware.RequireRole(resolver, "admin")    // Admin role required
	self := middleware.RequireSelf("email")                   // Token email must match the email parameter
	// Inject the Redis client for handlers that invalidate listing caches
	withCache := func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Liveness
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Server Running") // Liveness text
	})

	// Auth routes
	r.POST("/users", api.RegisterHandler(db))                  // Signup endpoint
	r.GET("/jwt", api.IssueTokenHandler(db, cfg.JWTSecret))    // Token issuance endpoint
	r.GET("/users/admin/:email", api.IsAdminHandler(resolver)) // Admin role projection
	r.GET("/users/seller/:email", api.IsSellerHandler(resolver)) // Seller role projection

	// Public listing reads
	r.GET("/instrumentCategories", api.ListCategoriesHandler(db, redisClient)) // Static category list
	r.GET("/categories/:id", api.ListByCategoryHandler(db, redisClient))       // Listings by category
	r.GET("/advertiseproducts", api.ListAdvertisedHandler(db, redisClient))    // Advertised listings

	// Seller routes (protected by JWT + seller role)
	r.GET("/myproducts", auth, sellerOnly, self, api.MyProductsHandler(db))               // Caller's own listings
	r.POST("/instrument", auth, sellerOnly, withCache, api.CreateInstrumentHandler(db))   // Create listing
	r.PUT("/product/:id", auth, sellerOnly, withCache, api.AdvertiseInstrumentHandler(db)) // Advertise listing
	r.DELETE("/product/:id", auth, sellerOnly, withCache, api.DeleteInstrumentHandler(db)) // Delete own listing

	// Reporting routes
	r.PUT("/productReport/:id", auth, api.ReportInstrumentHandler(db))                       // Any signed-in principal may report
	r.GET("/showReports", auth, adminOnly, api.ListReportedHandler(db))                      // Reported listings
	r.DELETE("/reportedproduct/:id", auth, adminOnly, withCache, api.DeleteReportedHandler(db)) // Delete reported listing

	// Admin user management (protected, admin only)
	r.GET("/users/buyers", auth, adminOnly, api.ListUsersByRoleHandler(db, "buyer"))    // List buyers
	r.GET("/users/sellers", auth, adminOnly, api.ListUsersByRoleHandler(db, "seller")) // List sellers
	r.DELETE("/users/buyers/:id", auth, adminOnly, api.DeleteUserHandler(db))          // Delete buyer
	r.DELETE("/users/sellers/:id", auth, adminOnly, api.DeleteUserHandler(db))         // Delete seller
	r.POST("/users/sellers", auth, adminOnly, api.VerifySellerHandler(db))             // Verify seller (compound update)

	// Booking and wishlist routes
	r.POST("/bookings", api.CreateBookingHandler(db))            // Create booking
	r.GET("/myorders", auth, self, api.MyOrdersHandler(db))      // Caller's own bookings
	r.POST("/wishlist", api.CreateWishlistHandler(db))           // Create wishlist entry
	r.GET("/mywishlist", auth, self, api.MyWishlistHandler(db))  // Caller's own wishlist

	// Payment routes
	r.POST("/create-payment-intent", api.CreatePaymentIntentHandler(gateway)) // Client secret for the caller to confirm
	r.POST("/payments", api.RecordPaymentHandler(db))                         // Record payment + mark booking paid

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
