// Package cart manages per-device shopping carts. Each cart lives in one
// persisted slot and is read, modified and written back whole on every
// operation. Two semantics exist: quantity mode tracks an integer count per
// item, presence mode tracks membership only. A deployment picks one mode
// and the store applies it to every operation, including totals.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mercadito-store/storefront-api/internal/config"
	"github.com/mercadito-store/storefront-api/internal/models"
	"github.com/mercadito-store/storefront-api/internal/storage"
)

// slotPrefix scopes cart slots away from any other slot users.
const slotPrefix = "cart:"

// ErrQuantityUnsupported is returned by UpdateQuantity in presence mode.
var ErrQuantityUnsupported = errors.New("quantity updates are not enabled in presence mode")

// Store persists carts in a slot store, one slot per device.
type Store struct {
	slots  storage.SlotStore
	mode   config.CartMode
	logger *slog.Logger
}

// NewStore creates a cart store with the given semantics.
func NewStore(slots storage.SlotStore, mode config.CartMode, logger *slog.Logger) *Store {
	return &Store{
		slots:  slots,
		mode:   mode,
		logger: logger,
	}
}

// Mode reports which cart semantics this deployment runs.
func (s *Store) Mode() config.CartMode {
	return s.mode
}

// Get returns the device's current cart. A missing or corrupt slot is an
// empty cart, never an error.
func (s *Store) Get(ctx context.Context, deviceID string) models.Cart {
	data, ok, err := s.slots.Get(ctx, slotKey(deviceID))
	if err != nil {
		s.logger.Error("failed to load cart", "device_id", deviceID, "error", err)
		return models.EmptyCart()
	}
	if !ok {
		return models.EmptyCart()
	}

	var c models.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Warn("discarding corrupt cart data", "device_id", deviceID, "error", err)
		return models.EmptyCart()
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return c
}

// Add puts a product in the cart. In quantity mode an existing item's
// quantity grows by the given amount (minimum 1); in presence mode a second
// add is a no-op and the returned flag is false.
func (s *Store) Add(ctx context.Context, deviceID string, product models.Product, quantity int) (models.Cart, bool, error) {
	if quantity < 1 {
		quantity = 1
	}
	if s.mode == config.CartModePresence {
		quantity = 1
	}

	c := s.Get(ctx, deviceID)

	for i, item := range c.Items {
		if item.Product.ID != product.ID {
			continue
		}
		if s.mode == config.CartModePresence {
			// Already in the cart; nothing to persist.
			return c, false, nil
		}
		c.Items[i].Quantity += quantity
		return s.persist(ctx, deviceID, c, true)
	}

	c.Items = append(c.Items, models.CartItem{Product: product, Quantity: quantity})
	return s.persist(ctx, deviceID, c, true)
}

// Remove deletes the matching item. Unknown product ids are a no-op.
func (s *Store) Remove(ctx context.Context, deviceID, productID string) (models.Cart, error) {
	c := s.Get(ctx, deviceID)

	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept

	cart, _, err := s.persist(ctx, deviceID, c, false)
	return cart, err
}

// UpdateQuantity sets an item's quantity; zero or less removes the item.
// Only valid in quantity mode. Unknown product ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, deviceID, productID string, quantity int) (models.Cart, error) {
	if s.mode != config.CartModeQuantity {
		return s.Get(ctx, deviceID), ErrQuantityUnsupported
	}

	c := s.Get(ctx, deviceID)

	for i, item := range c.Items {
		if item.Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		break
	}

	cart, _, err := s.persist(ctx, deviceID, c, false)
	return cart, err
}

// Contains reports membership without mutating the cart.
func (s *Store) Contains(ctx context.Context, deviceID, productID string) bool {
	c := s.Get(ctx, deviceID)
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

// Clear replaces the cart with an empty one and persists it.
func (s *Store) Clear(ctx context.Context, deviceID string) (models.Cart, error) {
	cart, _, err := s.persist(ctx, deviceID, models.EmptyCart(), false)
	return cart, err
}

// persist recomputes the derived totals and writes the cart back to its
// slot. Totals are never written independently of the item list.
func (s *Store) persist(ctx context.Context, deviceID string, c models.Cart, added bool) (models.Cart, bool, error) {
	s.recompute(&c)

	data, err := json.Marshal(c)
	if err != nil {
		return c, false, err
	}
	if err := s.slots.Put(ctx, slotKey(deviceID), data); err != nil {
		s.logger.Error("failed to save cart", "device_id", deviceID, "error", err)
		return c, false, err
	}
	return c, added, nil
}

func (s *Store) recompute(c *models.Cart) {
	var total float64
	count := 0

	for _, item := range c.Items {
		if s.mode == config.CartModeQuantity {
			total += item.Product.Price * float64(item.Quantity)
			count += item.Quantity
		} else {
			total += item.Product.Price
			count++
		}
	}

	c.Total = total
	c.ItemCount = count
}

func slotKey(deviceID string) string {
	return slotPrefix + deviceID
}
