package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"campervan_catalog/internal/repository"
	"campervan_catalog/internal/repository/db"
)

func TestInitDB_SeedAndListRoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	defer conn.Close()

	items, err := repository.LoadFixture()
	if err != nil {
		t.Fatalf("LoadFixture() error = %v", err)
	}

	store := repository.NewCatalogSQLite(conn)
	ctx := context.Background()
	if err := store.Seed(ctx, items); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	// seeding twice must not duplicate rows
	if err := store.Seed(ctx, items[:10]); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 rows after reseed, got %d", len(got))
	}
	for i := range got {
		if got[i].Name != items[i].Name || got[i].Cover() != items[i].Cover() {
			t.Fatalf("row %d mismatch: got %+v want %+v", i, got[i], items[i])
		}
	}
}
