package catalog

import (
	"strings"

	"github.com/mercadito-store/storefront-api/internal/models"
)

// Property-name alias chains, tried in order. Catalogs show up with fields
// named in Italian, Spanish or English depending on who set them up.
var (
	nameAliases        = []string{"Nome", "Nombre", "Name"}
	priceAliases       = []string{"Prezzo", "Precio", "Price"}
	descriptionAliases = []string{"Descrizione", "Descripción", "Description"}
	categoryAliases    = []string{"Categorie", "Categoría", "Category"}
	imageAliases       = []string{"Foto", "Image", "foto"}
	statusAliases      = []string{"Status", "Disponible", "Available"}
)

// Status labels that mean the product is NOT for sale. Checked before the
// positive synonyms so "No disponible" never matches "disponible".
var unavailableLabels = []string{
	"no disponible",
	"non disponibile",
	"not available",
	"vendido",
	"venduto",
	"sold",
	"agotado",
	"no",
}

// Status labels that mean the product is for sale. Substring match.
var availableLabels = []string{
	"en venta",
	"in vendita",
	"disponible",
	"disponibile",
	"available",
	"activo",
	"attivo",
	"active",
}

// Bare yes tokens, matched exactly.
var yesTokens = []string{"si", "sí", "yes"}

// Normalize maps one raw catalog record to a Product. It is total: every
// missing or malformed field degrades to its default (empty string, zero
// price, available) instead of failing.
func Normalize(rec Record) models.Product {
	props := rec.Properties
	return models.Product{
		ID:          rec.ID,
		Name:        textOf(resolve(props, nameAliases)),
		Price:       numberOf(resolve(props, priceAliases)),
		Description: textOf(resolve(props, descriptionAliases)),
		Category:    textOf(resolve(props, categoryAliases)),
		Image:       imageOf(resolve(props, imageAliases)),
		Available:   availabilityOf(resolve(props, statusAliases)),
		CreatedAt:   rec.CreatedTime,
		UpdatedAt:   rec.LastEditedTime,
	}
}

// resolve returns the first property present under any of the aliases.
func resolve(props map[string]Property, aliases []string) *Property {
	for _, alias := range aliases {
		if p, ok := props[alias]; ok {
			return &p
		}
	}
	return nil
}

func textOf(p *Property) string {
	if p == nil {
		return ""
	}
	switch p.Type {
	case "title":
		if len(p.Title) > 0 {
			return p.Title[0].PlainText
		}
	case "rich_text":
		if len(p.RichText) > 0 {
			return p.RichText[0].PlainText
		}
	case "select":
		if p.Select != nil {
			return p.Select.Name
		}
	}
	return ""
}

func numberOf(p *Property) float64 {
	if p == nil || p.Type != "number" || p.Number == nil {
		return 0
	}
	return *p.Number
}

// imageOf extracts a URL from a files property. The first attachment wins,
// whether it is an external link or a file hosted by the catalog service.
func imageOf(p *Property) string {
	if p == nil || p.Type != "files" || len(p.Files) == 0 {
		return ""
	}
	f := p.Files[0]
	switch f.Type {
	case "external":
		if f.External != nil {
			return f.External.URL
		}
	case "file":
		if f.File != nil {
			return f.File.URL
		}
	}
	return ""
}

// availabilityOf reads a checkbox directly, or interprets a select label.
// Products default to available: a catalog with no status column sells
// everything it lists.
func availabilityOf(p *Property) bool {
	if p == nil {
		return true
	}
	switch p.Type {
	case "checkbox":
		if p.Checkbox != nil {
			return *p.Checkbox
		}
	case "select":
		if p.Select != nil && p.Select.Name != "" {
			return statusMeansAvailable(p.Select.Name)
		}
	}
	return true
}

func statusMeansAvailable(label string) bool {
	status := strings.ToLower(strings.TrimSpace(label))

	for _, neg := range unavailableLabels {
		if status == neg {
			return false
		}
	}
	for _, syn := range availableLabels {
		if strings.Contains(status, syn) {
			return true
		}
	}
	for _, tok := range yesTokens {
		if status == tok {
			return true
		}
	}
	// Unrecognized labels don't hide the product.
	return true
}
