package identity

import (
	"instrument_market/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Resolver answers role questions about an email with a single lookup
type Resolver struct {
	db *gorm.DB // Injected persistence handle
}

// NewResolver wraps a database handle
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// RoleOf returns the stored role for an email; absence is a legitimate
// outcome (no privileged role), not an error
func (r *Resolver) RoleOf(email string) (string, bool) {
	var user domain.User // Fetch user from database
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", false // Unknown email carries no role
	}
	return user.Role, true // Return the stored role
}

// IsAdmin reports whether the email belongs to an admin
func (r *Resolver) IsAdmin(email string) bool {
	role, ok := r.RoleOf(email) // Resolve the role
	return ok && role == "admin"
}

// IsSeller reports whether the email belongs to a seller
func (r *Resolver) IsSeller(email string) bool {
	role, ok := r.RoleOf(email) // Resolve the role
	return ok && role == "seller"
}
