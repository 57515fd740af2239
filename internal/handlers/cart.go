package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mercadito-store/storefront-api/internal/cart"
	"github.com/mercadito-store/storefront-api/internal/checkout"
	"github.com/mercadito-store/storefront-api/internal/middleware"
	"github.com/mercadito-store/storefront-api/internal/models"
)

// CartHandler exposes the per-device cart over HTTP.
type CartHandler struct {
	store  *cart.Store
	links  *checkout.Builder
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, links *checkout.Builder, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:  store,
		links:  links,
		logger: logger,
	}
}

// AddItemRequest is the POST /api/cart/items payload. The client sends the
// full product snapshot; the cart stores what the buyer saw.
type AddItemRequest struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// UpdateItemRequest is the PUT /api/cart/items/{productId} payload.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse wraps cart state. Added is false when a presence-mode add
// found the product already in the cart.
type CartResponse struct {
	Cart  models.Cart `json:"cart"`
	Added bool        `json:"added"`
}

// CheckoutLinkResponse carries the pre-filled messaging link.
type CheckoutLinkResponse struct {
	URL       string `json:"url"`
	ItemCount int    `json:"itemCount"`
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.store.Get(r.Context(), middleware.DeviceIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, c)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Product.ID == "" {
		writeError(w, http.StatusBadRequest, "Product id is required")
		return
	}

	c, added, err := h.store.Add(r.Context(), middleware.DeviceIDFrom(r.Context()), req.Product, req.Quantity)
	if err != nil {
		h.logger.Error("failed to add cart item", "product_id", req.Product.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, CartResponse{Cart: c, Added: added})
}

// UpdateItem handles PUT /api/cart/items/{productId}
// Only meaningful in quantity mode; presence-mode deployments get a 400.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	c, err := h.store.UpdateQuantity(r.Context(), middleware.DeviceIDFrom(r.Context()), productID, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrQuantityUnsupported) {
			writeError(w, http.StatusBadRequest, "Quantity updates are not enabled")
			return
		}
		h.logger.Error("failed to update cart item", "product_id", productID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// RemoveItem handles DELETE /api/cart/items/{productId}
// Removing an id that isn't in the cart is a no-op, not an error.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	c, err := h.store.Remove(r.Context(), middleware.DeviceIDFrom(r.Context()), productID)
	if err != nil {
		h.logger.Error("failed to remove cart item", "product_id", productID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Clear(r.Context(), middleware.DeviceIDFrom(r.Context()))
	if err != nil {
		h.logger.Error("failed to clear cart", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// CheckoutLink handles GET /api/cart/checkout-link
func (h *CartHandler) CheckoutLink(w http.ResponseWriter, r *http.Request) {
	c := h.store.Get(r.Context(), middleware.DeviceIDFrom(r.Context()))

	writeJSON(w, http.StatusOK, CheckoutLinkResponse{
		URL:       h.links.Link(c),
		ItemCount: c.ItemCount,
	})
}
