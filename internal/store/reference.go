// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"carlot/internal/models"
)

// referenceTables maps each reference kind to its table.
var referenceTables = map[models.ReferenceKind]string{
	models.ReferenceBrand:    "car_brands",
	models.ReferenceType:     "car_types",
	models.ReferenceCategory: "car_categories",
}

// ReferenceStore reads brands, car types and car categories.
type ReferenceStore struct {
	db *sql.DB
}

// NewReferenceStore returns a new ReferenceStore.
func NewReferenceStore(db *sql.DB) *ReferenceStore {
	return &ReferenceStore{db: db}
}

// List returns the live rows of one reference table ordered by name.
// Soft-deleted rows are left out.
func (s *ReferenceStore) List(ctx context.Context, kind models.ReferenceKind) ([]models.Reference, error) {
	table, ok := referenceTables[kind]
	if !ok {
		return nil, fmt.Errorf("list references: unknown kind %q", kind)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, image, deleted_at
		FROM `+table+`
		WHERE deleted_at IS NULL
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	items := []models.Reference{}
	for rows.Next() {
		var r models.Reference
		if err := rows.Scan(&r.ID, &r.Name, &r.Image, &r.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// Upsert inserts a reference row or refreshes its name and image. A
// previously soft-deleted row stays deleted.
func (s *ReferenceStore) Upsert(ctx context.Context, kind models.ReferenceKind, r models.Reference) error {
	table, ok := referenceTables[kind]
	if !ok {
		return fmt.Errorf("upsert reference: unknown kind %q", kind)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (id, name, image)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, image = EXCLUDED.image, updated_at = NOW()
	`, r.ID, r.Name, r.Image)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

// SoftDelete marks a reference row deleted. Cars keep pointing at it.
func (s *ReferenceStore) SoftDelete(ctx context.Context, kind models.ReferenceKind, id string) error {
	table, ok := referenceTables[kind]
	if !ok {
		return fmt.Errorf("soft delete reference: unknown kind %q", kind)
	}

	res, err := s.db.ExecContext(ctx, `UPDATE `+table+` SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
