package repository

import (
	"context"
	"database/sql"

	"campervan_catalog/internal/models"
)

// CatalogRepo is the read side of the backing dataset.
type CatalogRepo interface {
	List(ctx context.Context) ([]models.Product, error)
}

// CatalogSeeder replaces the stored dataset.
type CatalogSeeder interface {
	Seed(ctx context.Context, products []models.Product) error
}

type Repository struct {
	Catalog CatalogRepo
}

// NewRepository serves the dataset from SQLite.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Catalog: NewCatalogSQLite(db),
	}
}

// NewFixtureRepository serves the dataset straight from the embedded fixture.
func NewFixtureRepository() (*Repository, error) {
	fixture, err := NewFixtureCatalog()
	if err != nil {
		return nil, err
	}
	return &Repository{Catalog: fixture}, nil
}
