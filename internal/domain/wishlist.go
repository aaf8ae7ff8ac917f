package domain

// WishlistEntry Model
type WishlistEntry struct {
	ID             uint    `gorm:"primaryKey" json:"id"`          // Primary key
	BuyerEmail     string  `gorm:"index;not null" json:"buyerEmail"` // Email of the wishlist owner
	InstrumentID   uint    `json:"instrumentId"`                     // Wishlisted instrument
	InstrumentName string  `json:"instrumentName"`                   // Denormalized for display
	Price          float64 `json:"price"`                            // Price at wishlist time
}
