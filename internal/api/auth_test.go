package api

import (
	"net/http"
	"testing"

	"instrument_market/internal/domain"
	"instrument_market/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserOnce(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, &fakeGateway{})

	w := doJSON(t, r, http.MethodPost, "/users", "", map[string]any{"email": "buyer@x.com", "name": "Buyer"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Repeating signup for the same email acknowledges without duplicating
	w = doJSON(t, r, http.MethodPost, "/users", "", map[string]any{"email": "buyer@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Where("email = ?", "buyer@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var user domain.User
	require.NoError(t, db.Where("email = ?", "buyer@x.com").First(&user).Error)
	assert.Equal(t, "buyer", user.Role) // Plain signup defaults to buyer
	assert.False(t, user.Verified)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, &fakeGateway{})

	w := doJSON(t, r, http.MethodPost, "/users", "", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Admin is never self-assignable
	w = doJSON(t, r, http.MethodPost, "/users", "", map[string]any{"email": "evil@x.com", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueTokenForKnownEmail(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "buyer@x.com", "buyer")
	r := newTestRouter(db, &fakeGateway{})

	w := doJSON(t, r, http.MethodGet, "/jwt?email=buyer@x.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)

	// The issued token decodes back to the requested email
	claims, err := utils.ParseJWT(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "buyer@x.com", claims.Email)
}

func TestIssueTokenRefusesUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, &fakeGateway{})

	// Unknown email never yields a usable token: explicit empty-token refusal
	w := doJSON(t, r, http.MethodGet, "/jwt?email=ghost@x.com", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp TokenResponse
	decodeBody(t, w, &resp)
	assert.Empty(t, resp.Token)

	// Missing email parameter is a bad request, not a refusal
	w = doJSON(t, r, http.MethodGet, "/jwt", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleProjections(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "admin@x.com", "admin")
	seedUser(t, db, "seller@x.com", "seller")
	r := newTestRouter(db, &fakeGateway{})

	var adminResp struct {
		Admin bool `json:"admin"`
	}
	w := doJSON(t, r, http.MethodGet, "/users/admin/admin@x.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &adminResp)
	assert.True(t, adminResp.Admin)

	w = doJSON(t, r, http.MethodGet, "/users/admin/seller@x.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &adminResp)
	assert.False(t, adminResp.Admin)

	var sellerResp struct {
		Seller bool `json:"seller"`
	}
	w = doJSON(t, r, http.MethodGet, "/users/seller/seller@x.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &sellerResp)
	assert.True(t, sellerResp.Seller)

	// Unknown email is simply not privileged, never an error
	w = doJSON(t, r, http.MethodGet, "/users/seller/ghost@x.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &sellerResp)
	assert.False(t, sellerResp.Seller)
}
