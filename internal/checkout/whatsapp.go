// Package checkout turns a cart into a WhatsApp deep link pre-filled with
// the order summary. This stands in for a payment flow: the buyer sends the
// message, the seller replies.
package checkout

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mercadito-store/storefront-api/internal/config"
	"github.com/mercadito-store/storefront-api/internal/models"
)

// Builder renders carts into wa.me links. It is a pure function of its
// inputs: no network calls, no side effects.
type Builder struct {
	phoneNumber string
	template    string
	quantities  bool
}

// NewBuilder creates a link builder. Quantity suffixes on the item lines
// follow the deployment's cart mode.
func NewBuilder(cfg config.CheckoutConfig, mode config.CartMode) *Builder {
	return &Builder{
		phoneNumber: cfg.PhoneNumber,
		template:    cfg.Message,
		quantities:  mode == config.CartModeQuantity,
	}
}

// Message builds the plain-text order summary: the intro template, one
// bullet per item, then the total line. An empty cart produces a
// well-formed message with no items; callers should suppress checkout for
// empty carts rather than rely on this.
func (b *Builder) Message(c models.Cart) string {
	lines := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		price := item.Product.Price
		if b.quantities {
			lines = append(lines, fmt.Sprintf("• %s - €%s x%d = €%.2f",
				item.Product.Name, formatPrice(price), item.Quantity, price*float64(item.Quantity)))
		} else {
			lines = append(lines, fmt.Sprintf("• %s - €%s",
				item.Product.Name, formatPrice(price)))
		}
	}

	return fmt.Sprintf("%s\n\n%s\n\n*Total: €%.2f*", b.template, strings.Join(lines, "\n"), c.Total)
}

// Link returns the deep link with the summary percent-encoded as the text
// query parameter.
func (b *Builder) Link(c models.Cart) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.phoneNumber, url.QueryEscape(b.Message(c)))
}

// formatPrice renders a unit price without trailing zeros (800, 12.5).
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
