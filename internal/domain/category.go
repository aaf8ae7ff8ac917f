package domain

// Category Model (static reference data, seeded by migrate)
type Category struct {
	ID   string `gorm:"primaryKey" json:"id"` // Slug, e.g. "electric"
	Name string `json:"name"`                 // Display name
}
