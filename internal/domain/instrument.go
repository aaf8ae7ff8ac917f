package domain

// Instrument Model (a seller's listing)
type Instrument struct {
	ID             uint    `gorm:"primaryKey" json:"id"`          // Primary key
	OwnerEmail     string  `gorm:"index;not null" json:"ownerEmail"` // Email of the owning seller
	TypeID         string  `gorm:"index;not null" json:"typeId"`     // Category slug the listing belongs to
	Name           string  `json:"name"`                             // Instrument name
	Brand          string  `json:"brand"`                            // Manufacturer
	Price          float64 `json:"price"`                            // Asking price in major units
	Description    string  `json:"description"`                      // Free-form description
	ImageURL       string  `json:"imageUrl"`                         // Product image
	Advertise      bool    `gorm:"default:false" json:"advertise"`   // Shown on the advertised-products page
	Report         bool    `gorm:"default:false" json:"report"`      // Flagged by a reporter, reviewed by admins
	SellerVerified bool    `gorm:"default:false" json:"sellerVerified"` // Mirrors the owner's verified flag
}
