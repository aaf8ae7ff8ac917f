package domain

// Payment Model (append-only record of a confirmed payment)
type Payment struct {
	ID            uint   `gorm:"primaryKey" json:"id"`              // Primary key
	OrderID       uint   `gorm:"index;not null" json:"orderId"`     // Booking the payment settles
	TransactionID string `gorm:"not null" json:"transactionId"`     // Gateway transaction id
	Amount        int64  `json:"amount"`                            // Amount in minor units
	CreatedAt     int64  `gorm:"autoCreateTime:milli" json:"createdAt"` // Timestamp of creation in milliseconds
}
