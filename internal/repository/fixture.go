package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"campervan_catalog/internal/models"
)

//go:embed data/products.json
var productsJSON []byte

var errEmptyFixture = errors.New("fixture dataset contains no products")

type fixtureFile struct {
	Items []models.Product `json:"items"`
}

// LoadFixture decodes the embedded dataset.
func LoadFixture() ([]models.Product, error) {
	return decodeFixture(productsJSON)
}

func decodeFixture(raw []byte) ([]models.Product, error) {
	var f fixtureFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, errEmptyFixture
	}
	for i, p := range f.Items {
		if len(p.Pictures) == 0 {
			return nil, fmt.Errorf("fixture item %d (%q) has no pictures", i, p.Name)
		}
	}
	return f.Items, nil
}

// FixtureCatalog is an in-memory CatalogRepo over the embedded dataset.
type FixtureCatalog struct {
	items []models.Product
}

var _ CatalogRepo = (*FixtureCatalog)(nil)

func NewFixtureCatalog() (*FixtureCatalog, error) {
	items, err := LoadFixture()
	if err != nil {
		return nil, err
	}
	return &FixtureCatalog{items: items}, nil
}

// List returns a copy so callers cannot reorder the shared dataset.
func (f *FixtureCatalog) List(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Product, len(f.items))
	copy(out, f.items)
	return out, nil
}
