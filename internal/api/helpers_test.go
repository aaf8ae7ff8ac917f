package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"instrument_market/internal/domain"
	"instrument_market/internal/identity"
	"instrument_market/internal/middleware"
	"instrument_market/internal/payments"
	"instrument_market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret" // Signing secret shared by all handler tests

// fakeGateway records what the handler asked for and returns a canned secret
type fakeGateway struct {
	amount   int64  // Last requested amount in minor units
	currency string // Last requested currency
	secret   string // Client secret to return
	err      error  // Error to return, if any
}

func (f *fakeGateway) CreateIntent(amount int64, currency string) (string, error) {
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

// newTestDB opens an isolated in-memory database migrated to the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Shared-cache named memory DB so every pooled connection sees one store
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Instrument{},
		&domain.Booking{},
		&domain.WishlistEntry{},
		&domain.Payment{},
	))
	return db
}

// newTestRedis points at a closed port; cache calls fail fast and every read
// falls through to the database, which is the degradation path under test
func newTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

// newTestRouter mirrors the route wiring in cmd/server/main.go
func newTestRouter(db *gorm.DB, gateway payments.IntentCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	redisClient := newTestRedis()
	resolver := identity.NewResolver(db)

	auth := middleware.JWTAuthMiddleware(testSecret)
	sellerOnly := middleware.RequireRole(resolver, "seller")
	adminOnly := middleware.RequireRole(resolver, "admin")
	self := middleware.RequireSelf("email")
	withCache := func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	}

	r := gin.New()

	r.POST("/users", RegisterHandler(db))
	r.GET("/jwt", IssueTokenHandler(db, testSecret))
	r.GET("/users/admin/:email", IsAdminHandler(resolver))
	r.GET("/users/seller/:email", IsSellerHandler(resolver))

	r.GET("/instrumentCategories", ListCategoriesHandler(db, redisClient))
	r.GET("/categories/:id", ListByCategoryHandler(db, redisClient))
	r.GET("/advertiseproducts", ListAdvertisedHandler(db, redisClient))

	r.GET("/myproducts", auth, sellerOnly, self, MyProductsHandler(db))
	r.POST("/instrument", auth, sellerOnly, withCache, CreateInstrumentHandler(db))
	r.PUT("/product/:id", auth, sellerOnly, withCache, AdvertiseInstrumentHandler(db))
	r.DELETE("/product/:id", auth, sellerOnly, withCache, DeleteInstrumentHandler(db))

	r.PUT("/productReport/:id", auth, ReportInstrumentHandler(db))
	r.GET("/showReports", auth, adminOnly, ListReportedHandler(db))
	r.DELETE("/reportedproduct/:id", auth, adminOnly, withCache, DeleteReportedHandler(db))

	r.GET("/users/buyers", auth, adminOnly, ListUsersByRoleHandler(db, "buyer"))
	r.GET("/users/sellers", auth, adminOnly, ListUsersByRoleHandler(db, "seller"))
	r.DELETE("/users/buyers/:id", auth, adminOnly, DeleteUserHandler(db))
	r.DELETE("/users/sellers/:id", auth, adminOnly, DeleteUserHandler(db))
	r.POST("/users/sellers", auth, adminOnly, VerifySellerHandler(db))

	r.POST("/bookings", CreateBookingHandler(db))
	r.GET("/myorders", auth, self, MyOrdersHandler(db))
	r.POST("/wishlist", CreateWishlistHandler(db))
	r.GET("/mywishlist", auth, self, MyWishlistHandler(db))

	r.POST("/create-payment-intent", CreatePaymentIntentHandler(gateway))
	r.POST("/payments", RecordPaymentHandler(db))

	return r
}

// tokenFor issues a test token bound to an email
func tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := utils.GenerateJWT(email, testSecret)
	require.NoError(t, err)
	return token
}

// seedUser inserts a user row and returns it
func seedUser(t *testing.T, db *gorm.DB, email, role string) domain.User {
	t.Helper()
	user := domain.User{Email: email, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedInstrument inserts a listing row and returns it
func seedInstrument(t *testing.T, db *gorm.DB, owner, typeID, name string, price float64) domain.Instrument {
	t.Helper()
	instrument := domain.Instrument{OwnerEmail: owner, TypeID: typeID, Name: name, Price: price}
	require.NoError(t, db.Create(&instrument).Error)
	return instrument
}

// doJSON performs a request with an optional bearer token and JSON body
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a response body into dest
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
