package models

// CartItem holds one selected product. Quantity is 1 in presence-only
// deployments and >= 1 when quantity tracking is enabled.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the persisted shopping cart: items in insertion order plus the
// derived total and item count. Total and ItemCount are never stored
// independently of Items; every mutation recomputes them.
type Cart struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// EmptyCart returns a cart with no items and zeroed totals.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}
