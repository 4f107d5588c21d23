package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"carlot/internal/slug"
	"carlot/internal/translation"
)

type seedCar struct {
	brand, brandName string
	typ, category    string
	model, subModel  string
	transmission     string
	color            string
	year             int
	engine           string
	capacity         int
	mileage          int
	price            float64
	images           []string
	active           bool
}

var seedBrands = [][3]string{
	{"TOYOTA", "Toyota", "brands/toyota.png"},
	{"HONDA", "Honda", "brands/honda.png"},
	{"ISUZU", "Isuzu", "brands/isuzu.png"},
	{"MAZDA", "Mazda", ""},
}

var seedTypes = [][2]string{
	{"SEDAN", "types/sedan.png"},
	{"SUV", "types/suv.png"},
	{"PICKUP", "types/pickup.png"},
}

var seedCategories = []string{"NEW"}

var seedCars = []seedCar{
	{brand: "TOYOTA", brandName: "Toyota", typ: "SUV", category: "NEW", model: "Fortuner", subModel: "Legender", transmission: "AUTOMATIC", color: "WHITE", year: 2021, engine: "DIESEL", capacity: 2800, mileage: 42000, price: 1189000, images: []string{"cars/fortuner-1.jpg", "cars/fortuner-2.jpg"}, active: true},
	{brand: "TOYOTA", brandName: "Toyota", typ: "SEDAN", model: "Yaris", subModel: "Ativ", transmission: "AUTOMATIC", color: "RED", year: 2022, engine: "GASOLINE", capacity: 1200, mileage: 18000, price: 459000, active: true},
	{brand: "TOYOTA", brandName: "Toyota", typ: "PICKUP", model: "Hilux Revo", subModel: "Rocco", transmission: "MANUAL", color: "GRAY", year: 2019, engine: "DIESEL", capacity: 2400, mileage: 96000, price: 729000, active: true},
	{brand: "HONDA", brandName: "Honda", typ: "SEDAN", category: "NEW", model: "Civic", subModel: "RS", transmission: "AUTOMATIC", color: "BLACK", year: 2023, engine: "HYBRID", capacity: 2000, mileage: 9000, price: 1099000, active: true},
	{brand: "HONDA", brandName: "Honda", typ: "SEDAN", model: "City", subModel: "SV", transmission: "AUTOMATIC", color: "WHITE", year: 2020, engine: "GASOLINE", capacity: 1000, price: 439000, active: true},
	{brand: "HONDA", brandName: "Honda", typ: "SUV", model: "HR-V", subModel: "EL", transmission: "AUTOMATIC", color: "SILVER", year: 2018, engine: "GASOLINE", capacity: 1800, mileage: 110000, price: 519000, active: false},
	{brand: "ISUZU", brandName: "Isuzu", typ: "PICKUP", model: "D-Max", subModel: "Hi-Lander", transmission: "MANUAL", color: "DARK_BLUE", year: 2021, engine: "DIESEL", capacity: 1900, mileage: 51000, price: 629000, active: true},
	{brand: "MAZDA", brandName: "Mazda", typ: "SEDAN", model: "Mazda2", subModel: "Skyactiv", transmission: "AUTOMATIC", color: "GRAY", year: 2019, engine: "DIESEL", capacity: 1500, mileage: 73000, price: 369000, active: true},
}

// Seed populates an empty catalog with development data. It does nothing
// when any car already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cars").Scan(&count); err != nil {
		return fmt.Errorf("seed check cars: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, b := range seedBrands {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO car_brands (id, name, image) VALUES ($1, $2, NULLIF($3, ''))
			ON CONFLICT (id) DO NOTHING`, b[0], b[1], b[2]); err != nil {
			return fmt.Errorf("seed brand %s: %w", b[0], err)
		}
	}
	for _, t := range seedTypes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO car_types (id, name, image) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING`, t[0], translation.Translate(translation.CarType, t[0]), t[1]); err != nil {
			return fmt.Errorf("seed type %s: %w", t[0], err)
		}
	}
	for _, id := range seedCategories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO car_categories (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING`, id, translation.Translate(translation.CarCategory, id)); err != nil {
			return fmt.Errorf("seed category %s: %w", id, err)
		}
	}

	// Spread creation times so listings have a stable newest-first order.
	base := time.Now().Add(-time.Duration(len(seedCars)) * time.Hour)
	for i, c := range seedCars {
		created := base.Add(time.Duration(i) * time.Hour)
		images := c.images
		if images == nil {
			images = []string{}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cars (slug, brand_id, type_id, category_id, model, sub_model,
			                  transmission, color, model_year, engine_type, engine_capacity,
			                  mileage, price, images, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11,
			        NULLIF($12, 0), $13, $14, $15, $16, $16)`,
			slug.Car(c.brandName, c.model, c.subModel, c.year, created),
			c.brand, c.typ, c.category, c.model, c.subModel,
			c.transmission, c.color, c.year, c.engine, c.capacity,
			c.mileage, c.price, images, c.active, created,
		); err != nil {
			return fmt.Errorf("seed car %s %s: %w", c.brand, c.model, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development catalog", "cars", len(seedCars))
	return nil
}
