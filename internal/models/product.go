package models

import "time"

// Product is the normalized storefront view of one catalog entry.
// The external catalog owns these records; the storefront only reads snapshots.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SortKey identifies a product ordering for catalog queries.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByCategory SortKey = "category"
	SortByDate     SortKey = "date"
)

// Filters narrows a catalog query. The zero value matches everything
// except unavailable products, which are always excluded.
type Filters struct {
	Category   string
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     SortKey
	Descending bool
}
