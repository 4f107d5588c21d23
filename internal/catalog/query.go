// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the faceted search over the car catalog: the
// self-excluding facet aggregator and the paginated listing builder. Both
// describe what to fetch as plain Query values and hand them to a Catalog,
// which the store package implements on PostgreSQL.
package catalog

import (
	"context"
	"strings"

	"carlot/internal/models"
)

// Column is a qualified catalog column such as "car.model" or "brand.id".
// The prefix names the row it lives on: the car itself or one of the
// joined reference tables.
type Column string

const (
	ColBrandID        Column = "brand.id"
	ColBrandImage     Column = "brand.image"
	ColTypeID         Column = "type.id"
	ColTypeImage      Column = "type.image"
	ColCategoryID     Column = "category.id"
	ColModel          Column = "car.model"
	ColSubModel       Column = "car.sub_model"
	ColTransmission   Column = "car.transmission"
	ColColor          Column = "car.color"
	ColModelYear      Column = "car.model_year"
	ColEngineType     Column = "car.engine_type"
	ColEngineCapacity Column = "car.engine_capacity"
	ColPrice          Column = "car.price"
	ColMileage        Column = "car.mileage"
	ColIsActive       Column = "car.is_active"
	ColSalesType      Column = "car.sales_type"
)

// Entity returns the reference table the column belongs to, or "" for
// columns on the car row.
func (c Column) Entity() models.ReferenceKind {
	table, _, _ := strings.Cut(string(c), ".")
	switch table {
	case "brand":
		return models.ReferenceBrand
	case "type":
		return models.ReferenceType
	case "category":
		return models.ReferenceCategory
	}
	return ""
}

// Op is a predicate operator.
type Op int

const (
	// OpEq matches rows whose column equals Value.
	OpEq Op = iota
	// OpGte matches rows whose column is >= Value.
	OpGte
	// OpLte matches rows whose column is <= Value.
	OpLte
	// OpContainsFold matches rows where any of Columns contains Value as a
	// case-insensitive substring.
	OpContainsFold
)

// Predicate is one condition of a Query. Value is a string, int, float64
// or bool.
type Predicate struct {
	Op      Op
	Column  Column
	Columns []Column
	Value   any
}

// Eq builds an equality predicate.
func Eq(col Column, v any) Predicate { return Predicate{Op: OpEq, Column: col, Value: v} }

// Gte builds an inclusive lower bound.
func Gte(col Column, v any) Predicate { return Predicate{Op: OpGte, Column: col, Value: v} }

// Lte builds an inclusive upper bound.
func Lte(col Column, v any) Predicate { return Predicate{Op: OpLte, Column: col, Value: v} }

// ContainsFold builds a case-insensitive substring match OR'd across cols.
func ContainsFold(v string, cols ...Column) Predicate {
	return Predicate{Op: OpContainsFold, Columns: cols, Value: v}
}

// Query describes a set of catalog rows: the car table left-joined to its
// brand, type and category, restricted by every predicate in Where.
// When ActiveOnly is set, soft-deleted reference rows drop out of the joins.
type Query struct {
	Where      []Predicate
	ActiveOnly bool
}

// Grouping selects the column to group by and an optional image column
// carried along in the group key.
type Grouping struct {
	Column Column
	Image  Column
}

// Group is one row of a group-by-with-count. Value and Image are nil when
// the underlying column is NULL.
type Group struct {
	Value *string
	Image *string
	Count int
}

// Page is a skip/limit window.
type Page struct {
	Offset int
	Limit  int
}

// Catalog is the queryable car catalog the aggregator and listing run
// against. Implementations must be safe for concurrent use.
type Catalog interface {
	// CountBy groups the rows matched by q and counts each group. Values
	// are rendered as text; groups come back ordered by the grouped column.
	CountBy(ctx context.Context, q Query, g Grouping) ([]Group, error)
	// Find returns one page of matching cars with their reference names,
	// newest first.
	Find(ctx context.Context, q Query, p Page) ([]models.CarRow, error)
	// Count returns the number of rows matched by q, ignoring pagination.
	Count(ctx context.Context, q Query) (int, error)
}
