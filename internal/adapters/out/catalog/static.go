// Package catalog provides a read-only in-process medicine catalog.
package catalog

import (
	"context"
	"sort"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// StaticCatalog implements ports.Catalog over a fixed medicine list.
type StaticCatalog struct {
	byID  map[kernel.UUID]ports.Medicine
	order []kernel.UUID
}

// NewStaticCatalog creates a catalog with the default pharmacy stock.
func NewStaticCatalog() *StaticCatalog {
	return NewStaticCatalogWith(defaultStock())
}

// NewStaticCatalogWith creates a catalog over the given medicines,
// preserving their order.
func NewStaticCatalogWith(medicines []ports.Medicine) *StaticCatalog {
	c := &StaticCatalog{
		byID:  make(map[kernel.UUID]ports.Medicine, len(medicines)),
		order: make([]kernel.UUID, 0, len(medicines)),
	}
	for _, medicine := range medicines {
		if _, exists := c.byID[medicine.ID]; exists {
			continue
		}
		c.byID[medicine.ID] = medicine
		c.order = append(c.order, medicine.ID)
	}
	return c
}

// GetMedicine resolves an item id to its catalog entry.
func (c *StaticCatalog) GetMedicine(_ context.Context, id kernel.UUID) (ports.Medicine, error) {
	medicine, exists := c.byID[id]
	if !exists {
		return ports.Medicine{}, errs.NewObjectNotFoundError("medicine", id.String())
	}
	return medicine, nil
}

// ListMedicines returns the full catalog in stock order.
func (c *StaticCatalog) ListMedicines(_ context.Context) ([]ports.Medicine, error) {
	medicines := make([]ports.Medicine, 0, len(c.order))
	for _, id := range c.order {
		medicines = append(medicines, c.byID[id])
	}
	return medicines, nil
}

// ListCategories returns the distinct category names, sorted.
func (c *StaticCatalog) ListCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, id := range c.order {
		category := c.byID[id].Category
		if _, exists := seen[category]; exists {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

func defaultStock() []ports.Medicine {
	entry := func(name, category, price string, rx bool) ports.Medicine {
		return ports.Medicine{
			ID:                   kernel.NewUUID(),
			Name:                 name,
			Category:             category,
			Price:                decimal.RequireFromString(price),
			RequiresPrescription: rx,
		}
	}

	return []ports.Medicine{
		entry("Paracetamol 500mg", "Pain Relief", "24.50", false),
		entry("Ibuprofen 400mg", "Pain Relief", "38.00", false),
		entry("Cetirizine 10mg", "Allergy", "45.00", false),
		entry("Amoxicillin 500mg", "Antibiotics", "120.00", true),
		entry("Azithromycin 250mg", "Antibiotics", "185.50", true),
		entry("Metformin 500mg", "Diabetes", "62.75", true),
		entry("Omeprazole 20mg", "Digestive", "54.00", false),
		entry("Vitamin D3 1000IU", "Supplements", "210.00", false),
	}
}
