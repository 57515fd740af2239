package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mercadito-store/storefront-api/internal/models"
	"github.com/mercadito-store/storefront-api/internal/service"
)

// ProductsHandler serves the catalog read endpoint.
type ProductsHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductsHandler creates a new products handler
func NewProductsHandler(service *service.CatalogService, logger *slog.Logger) *ProductsHandler {
	return &ProductsHandler{
		service: service,
		logger:  logger,
	}
}

// ProductsResponse is the listing payload.
type ProductsResponse struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
	Success  bool             `json:"success"`
}

// List handles GET /api/products
// Query parameters: search, category, mock, mode=diagnose, and the
// optional min_price/max_price/sort/order refinements.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if q.Get("mode") == "diagnose" {
		h.logger.Info("running catalog diagnosis")
		report := h.service.Diagnose(ctx)
		status := http.StatusOK
		if !report.Success {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, report)
		return
	}

	filters := models.Filters{
		Category:   q.Get("category"),
		Search:     q.Get("search"),
		MinPrice:   parsePrice(q.Get("min_price")),
		MaxPrice:   parsePrice(q.Get("max_price")),
		SortBy:     parseSortKey(q.Get("sort")),
		Descending: q.Get("order") == "desc",
	}
	forceMock := q.Get("mock") == "true"

	products := h.service.Query(ctx, filters, forceMock)

	writeJSON(w, http.StatusOK, ProductsResponse{
		Products: products,
		Count:    len(products),
		Success:  true,
	})
}

// parsePrice ignores malformed bounds rather than rejecting the request.
func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

func parseSortKey(raw string) models.SortKey {
	switch models.SortKey(raw) {
	case models.SortByName, models.SortByPrice, models.SortByCategory, models.SortByDate:
		return models.SortKey(raw)
	default:
		return ""
	}
}
