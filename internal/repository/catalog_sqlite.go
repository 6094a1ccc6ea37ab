package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campervan_catalog/internal/models"
)

type CatalogSQLite struct {
	db *sql.DB
}

var (
	_ CatalogRepo   = (*CatalogSQLite)(nil)
	_ CatalogSeeder = (*CatalogSQLite)(nil)
)

func NewCatalogSQLite(db *sql.DB) *CatalogSQLite {
	return &CatalogSQLite{db: db}
}

const (
	upsertProductSQL = `
		INSERT INTO products (position, location, instant_bookable, name, passengers_capacity,
			sleep_capacity, price, vehicle_type, toilet, shower, pictures)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(position) DO UPDATE SET
			location=excluded.location,
			instant_bookable=excluded.instant_bookable,
			name=excluded.name,
			passengers_capacity=excluded.passengers_capacity,
			sleep_capacity=excluded.sleep_capacity,
			price=excluded.price,
			vehicle_type=excluded.vehicle_type,
			toilet=excluded.toilet,
			shower=excluded.shower,
			pictures=excluded.pictures
	`

	trimProductsSQL = `DELETE FROM products WHERE position >= ?`

	selectProductsSQL = `
		SELECT location, instant_bookable, name, passengers_capacity, sleep_capacity,
			price, vehicle_type, toilet, shower, pictures
		FROM products ORDER BY position ASC
	`
)

func marshalPictures(pictures []string) (string, error) {
	b, err := json.Marshal(pictures)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalPictures(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var pictures []string
	if err := json.Unmarshal([]byte(s), &pictures); err != nil {
		return nil, err
	}
	return pictures, nil
}

// Seed upserts products by their position and drops any rows past the end.
func (r *CatalogSQLite) Seed(ctx context.Context, products []models.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, p := range products {
		pictures, err := marshalPictures(p.Pictures)
		if err != nil {
			return fmt.Errorf("marshal pictures of %q: %w", p.Name, err)
		}
		if _, err := tx.ExecContext(ctx, upsertProductSQL,
			i,
			p.Location,
			p.InstantBookable,
			p.Name,
			p.PassengersCapacity,
			p.SleepCapacity,
			p.Price,
			p.VehicleType,
			p.Toilet,
			p.Shower,
			pictures,
		); err != nil {
			return fmt.Errorf("upsert product %d: %w", i, err)
		}
	}
	if _, err := tx.ExecContext(ctx, trimProductsSQL, len(products)); err != nil {
		return fmt.Errorf("trim products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}

// List returns every product in dataset order.
func (r *CatalogSQLite) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProductsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Product, 0, 32)
	for rows.Next() {
		var p models.Product
		var pictures string
		if err := rows.Scan(
			&p.Location,
			&p.InstantBookable,
			&p.Name,
			&p.PassengersCapacity,
			&p.SleepCapacity,
			&p.Price,
			&p.VehicleType,
			&p.Toilet,
			&p.Shower,
			&pictures,
		); err != nil {
			return nil, err
		}
		if p.Pictures, err = unmarshalPictures(pictures); err != nil {
			return nil, fmt.Errorf("decode pictures of %q: %w", p.Name, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
