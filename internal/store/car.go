// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"carlot/internal/catalog"
	"carlot/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write collides with a unique key.
	ErrConflict = errors.New("already exists")
	// ErrInvalidReference is returned when a car points at a brand, type
	// or category that does not exist.
	ErrInvalidReference = errors.New("unknown reference")
)

// PostgreSQL SQLSTATE codes translated into the errors above.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateWriteError maps constraint violations to store errors, keeping
// the driver error in the chain.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}
	return err
}

// CarStore reads the car catalog from PostgreSQL. It implements
// catalog.Catalog and is safe for concurrent use.
type CarStore struct {
	db *sql.DB
}

// NewCarStore returns a new CarStore.
func NewCarStore(db *sql.DB) *CarStore {
	return &CarStore{db: db}
}

var _ catalog.Catalog = (*CarStore)(nil)

// CountBy groups the cars matched by q on g.Column and counts each group.
func (s *CarStore) CountBy(ctx context.Context, q catalog.Query, g catalog.Grouping) ([]catalog.Group, error) {
	stmt, err := countByQuery(q, g)
	if err != nil {
		return nil, fmt.Errorf("count cars by %s: %w", g.Column, err)
	}

	rows, err := s.db.QueryContext(ctx, stmt.String(), stmt.args...)
	if err != nil {
		return nil, fmt.Errorf("count cars by %s: %w", g.Column, err)
	}
	defer rows.Close()

	var groups []catalog.Group
	for rows.Next() {
		var gr catalog.Group
		if err := rows.Scan(&gr.Value, &gr.Image, &gr.Count); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, gr)
	}
	return groups, rows.Err()
}

// Find returns one page of cars matched by q, newest first, with the names
// of their joined reference rows.
func (s *CarStore) Find(ctx context.Context, q catalog.Query, p catalog.Page) ([]models.CarRow, error) {
	stmt, err := findQuery(q, p)
	if err != nil {
		return nil, fmt.Errorf("find cars: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, stmt.String(), stmt.args...)
	if err != nil {
		return nil, fmt.Errorf("find cars: %w", err)
	}
	defer rows.Close()

	// pgtype.Map is not safe for concurrent use; one per query.
	types := pgtype.NewMap()
	items := []models.CarRow{}
	for rows.Next() {
		row, err := scanCarRow(rows, types)
		if err != nil {
			return nil, fmt.Errorf("scan car: %w", err)
		}
		items = append(items, *row)
	}
	return items, rows.Err()
}

// Count returns the number of cars matched by q.
func (s *CarStore) Count(ctx context.Context, q catalog.Query) (int, error) {
	stmt, err := countQuery(q)
	if err != nil {
		return 0, fmt.Errorf("count cars: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, stmt.String(), stmt.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cars: %w", err)
	}
	return n, nil
}

// FindBySlug returns an active car and the names of its live references.
// Returns ErrNotFound when no active car carries the slug.
func (s *CarStore) FindBySlug(ctx context.Context, slug string) (*models.CarDetail, error) {
	stmt := &sqlQuery{}
	stmt.write(carSelect)
	stmt.writeFrom(true)
	stmt.write("\nWHERE c.slug = ", stmt.bind(slug), " AND c.is_active")

	row := s.db.QueryRowContext(ctx, stmt.String(), stmt.args...)
	r, err := scanCarRow(row, pgtype.NewMap())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find car by slug: %w", err)
	}

	return &models.CarDetail{
		Car:      r.Car,
		Brand:    r.BrandName,
		Type:     r.TypeName,
		Category: r.CategoryName,
	}, nil
}

// Create inserts a car and returns it with its generated timestamps.
func (s *CarStore) Create(ctx context.Context, c *models.Car) (*models.Car, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Images == nil {
		c.Images = []string{}
	}

	out := *c
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO cars (id, slug, brand_id, type_id, category_id, model, sub_model,
		                  transmission, color, model_year, engine_type, engine_capacity,
		                  mileage, price, images, previous_license_plate,
		                  current_license_plate, is_active, sales_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at`,
		c.ID, c.Slug, c.BrandID, c.TypeID, c.CategoryID, c.Model, c.SubModel,
		string(c.Transmission), c.Color, c.ModelYear, string(c.EngineType), c.EngineCapacity,
		c.Mileage, c.Price, c.Images, c.PreviousLicensePlate,
		c.CurrentLicensePlate, c.IsActive, string(c.SalesType),
	).Scan(&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create car: %w", translateWriteError(err))
	}
	return &out, nil
}

// scanCarRow scans the columns of carSelect. The text[] images column is
// decoded through types.
func scanCarRow(scanner interface{ Scan(...any) error }, types *pgtype.Map) (*models.CarRow, error) {
	var (
		r                    models.CarRow
		brandName, typeName  sql.NullString
		transmission, engine string
		salesType            string
	)
	err := scanner.Scan(
		&r.ID, &r.Slug, &r.BrandID, &r.TypeID, &r.CategoryID,
		&r.Model, &r.SubModel, &transmission, &r.Color, &r.ModelYear,
		&engine, &r.EngineCapacity, &r.Mileage, &r.Price, types.SQLScanner(&r.Images),
		&r.PreviousLicensePlate, &r.CurrentLicensePlate, &r.IsActive,
		&salesType, &r.CreatedAt, &r.UpdatedAt,
		&brandName, &typeName, &r.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	r.Transmission = models.Transmission(transmission)
	r.EngineType = models.EngineType(engine)
	r.SalesType = models.SalesType(salesType)
	r.BrandName = brandName.String
	r.TypeName = typeName.String
	return &r, nil
}
