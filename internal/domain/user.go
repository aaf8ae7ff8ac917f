package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`       // Primary key
	Email    string `gorm:"unique;not null" json:"email"` // Unique email, the identity of every principal
	Name     string `json:"name"`                         // Display name
	Role     string `gorm:"default:buyer" json:"role"`    // Role: buyer, seller or admin
	Verified bool   `gorm:"default:false" json:"verified"` // Seller verification flag, set by an admin
}
