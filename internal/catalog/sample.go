package catalog

import (
	"time"

	"github.com/mercadito-store/storefront-api/internal/models"
)

var sampleTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// SampleProducts returns the built-in demo catalog, served whenever no
// external source is configured or the caller forces mock data.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "Laptop Dell XPS 13",
			Price:       800,
			Description: "Laptop Dell XPS 13 en excelente estado, ideal para trabajo y estudios.",
			Category:    "Tecnología",
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500",
			Available:   true,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
		{
			ID:          "2",
			Name:        "Refrigerador Samsung",
			Price:       1200,
			Description: "Refrigerador Samsung de 2 puertas, muy eficiente y espacioso.",
			Category:    "Electrodomésticos",
			Image:       "https://images.unsplash.com/photo-1571175443880-49e1d25b2bc5?w=500",
			Available:   true,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
		{
			ID:          "3",
			Name:        "Sofá de 3 plazas",
			Price:       400,
			Description: "Sofá cómodo de 3 plazas, color gris, perfecto para sala de estar.",
			Category:    "Muebles",
			Image:       "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=500",
			Available:   true,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
	}
}
