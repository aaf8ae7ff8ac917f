package domain

// Booking Model
type Booking struct {
	ID             uint    `gorm:"primaryKey" json:"id"`          // Primary key
	BuyerEmail     string  `gorm:"index;not null" json:"buyerEmail"` // Email of the booking buyer
	InstrumentID   uint    `json:"instrumentId"`                     // Booked instrument
	InstrumentName string  `json:"instrumentName"`                   // Denormalized for order display
	Price          float64 `json:"price"`                            // Price at booking time
	Paid           bool    `gorm:"default:false" json:"paid"`        // Unpaid -> Paid, terminal
	TransactionID  string  `json:"transactionId"`                    // Set once by the payment flow
}
