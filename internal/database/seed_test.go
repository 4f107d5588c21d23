package database

import (
	"context"
	"strings"
	"testing"

	"carlot/internal/translation"
)

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed only writes into an empty catalog, so calling it twice must be
	// safe even when other packages share the database.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var cars int
	if err := db.QueryRow("SELECT COUNT(*) FROM cars").Scan(&cars); err != nil {
		t.Fatalf("count cars: %v", err)
	}
	if cars < 1 {
		t.Errorf("expected seeded cars, got %d", cars)
	}

	var sedan string
	if err := db.QueryRow("SELECT name FROM car_types WHERE id = 'SEDAN'").Scan(&sedan); err != nil {
		t.Fatalf("read sedan type: %v", err)
	}
	if want := translation.Translate(translation.CarType, "SEDAN"); sedan != want {
		t.Errorf("sedan name: got %q, want %q", sedan, want)
	}
}

func TestSeedCarsValid(t *testing.T) {
	for _, c := range seedCars {
		if c.brand == "" || c.typ == "" || c.model == "" {
			t.Errorf("seed car missing required reference: %+v", c)
		}
		if c.brand != strings.ToUpper(c.brandName) {
			t.Errorf("seed car %s: brand id %q does not match name %q", c.model, c.brand, c.brandName)
		}
	}
}
