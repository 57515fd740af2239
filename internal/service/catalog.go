package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/mercadito-store/storefront-api/internal/catalog"
	"github.com/mercadito-store/storefront-api/internal/models"
)

// Fetcher is the catalog access the query service needs.
type Fetcher interface {
	Configured() bool
	QueryPage(ctx context.Context, pageSize int) ([]catalog.Record, bool, error)
	Schema(ctx context.Context) (*catalog.Database, error)
}

// CatalogService produces filtered product listings from the external
// catalog, or from the built-in sample set when no source is configured.
type CatalogService struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog query service
func NewCatalogService(fetcher Fetcher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Query returns the current product list, narrowed by filters. A failing
// or misconfigured source yields an empty list, never an error: the
// storefront renders an empty state and the operator reads the log.
func (s *CatalogService) Query(ctx context.Context, filters models.Filters, forceMock bool) []models.Product {
	products := s.fetch(ctx, forceMock)
	return applyFilters(products, filters)
}

func (s *CatalogService) fetch(ctx context.Context, forceMock bool) []models.Product {
	if forceMock || !s.fetcher.Configured() {
		return catalog.SampleProducts()
	}

	records, hasMore, err := s.fetcher.QueryPage(ctx, catalog.MaxPageSize)
	if err != nil {
		s.logger.Error("failed to fetch products from catalog", "error", err)
		return []models.Product{}
	}
	if hasMore {
		// Single-page reads only; bigger catalogs get truncated.
		s.logger.Warn("catalog has more records than one page", "page_size", catalog.MaxPageSize)
	}

	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, catalog.Normalize(rec))
	}
	return products
}

// applyFilters narrows and orders the list. Category, then search, then
// the availability gate; price bounds and sorting come last. Unavailable
// products never survive, whatever else matches.
func applyFilters(products []models.Product, f models.Filters) []models.Product {
	filtered := make([]models.Product, 0, len(products))

	search := strings.ToLower(f.Search)
	for _, p := range products {
		if f.Category != "" && f.Category != "all" &&
			!strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if !p.Available {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, f.SortBy, f.Descending)
	return filtered
}

func matchesSearch(p models.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}

func sortProducts(products []models.Product, key models.SortKey, descending bool) {
	if key == "" {
		return
	}

	less := func(a, b models.Product) bool {
		switch key {
		case models.SortByPrice:
			return a.Price < b.Price
		case models.SortByCategory:
			return a.Category < b.Category
		case models.SortByDate:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Name < b.Name
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		if descending {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}
