// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"strconv"
	"strings"

	"carlot/internal/catalog"
)

// columnSQL whitelists the catalog columns the store knows how to render.
// Predicates naming any other column are rejected before reaching SQL.
var columnSQL = map[catalog.Column]string{
	catalog.ColBrandID:        "b.id",
	catalog.ColBrandImage:     "b.image",
	catalog.ColTypeID:         "t.id",
	catalog.ColTypeImage:      "t.image",
	catalog.ColCategoryID:     "cat.id",
	catalog.ColModel:          "c.model",
	catalog.ColSubModel:       "c.sub_model",
	catalog.ColTransmission:   "c.transmission",
	catalog.ColColor:          "c.color",
	catalog.ColModelYear:      "c.model_year",
	catalog.ColEngineType:     "c.engine_type",
	catalog.ColEngineCapacity: "c.engine_capacity",
	catalog.ColPrice:          "c.price",
	catalog.ColMileage:        "c.mileage",
	catalog.ColIsActive:       "c.is_active",
	catalog.ColSalesType:      "c.sales_type",
}

func columnExpr(col catalog.Column) (string, error) {
	expr, ok := columnSQL[col]
	if !ok {
		return "", fmt.Errorf("unknown column %q", col)
	}
	return expr, nil
}

// sqlQuery accumulates a statement and its positional arguments.
type sqlQuery struct {
	sb   strings.Builder
	args []any
}

// bind appends v to the argument list and returns its placeholder.
func (q *sqlQuery) bind(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *sqlQuery) write(parts ...string) {
	for _, p := range parts {
		q.sb.WriteString(p)
	}
}

func (q *sqlQuery) String() string { return q.sb.String() }

// writeFrom renders the car table joined to its references. Under an
// active-only query soft-deleted reference rows are left out of the join,
// so their columns read as NULL.
func (q *sqlQuery) writeFrom(activeOnly bool) {
	live := ""
	if activeOnly {
		live = " AND %s.deleted_at IS NULL"
	}
	join := func(table, alias, fk string) {
		q.write("\nLEFT JOIN ", table, " ", alias, " ON ", alias, ".id = c.", fk)
		if live != "" {
			q.write(fmt.Sprintf(live, alias))
		}
	}
	q.write("\nFROM cars c")
	join("car_brands", "b", "brand_id")
	join("car_types", "t", "type_id")
	join("car_categories", "cat", "category_id")
}

// writeWhere renders every predicate joined with AND.
func (q *sqlQuery) writeWhere(where []catalog.Predicate) error {
	for i, p := range where {
		if i == 0 {
			q.write("\nWHERE ")
		} else {
			q.write("\n  AND ")
		}
		if err := q.writePredicate(p); err != nil {
			return err
		}
	}
	return nil
}

func (q *sqlQuery) writePredicate(p catalog.Predicate) error {
	switch p.Op {
	case catalog.OpEq:
		col, err := columnExpr(p.Column)
		if err != nil {
			return err
		}
		q.write(col, " = ", q.bind(p.Value))
		return nil

	case catalog.OpGte, catalog.OpLte:
		col, err := columnExpr(p.Column)
		if err != nil {
			return err
		}
		// Bounds arrive as float64. Casting the placeholder keeps the
		// comparison exact against integer columns such as mileage and
		// lets bounds beyond int4 through as "unbounded".
		op := " >= "
		if p.Op == catalog.OpLte {
			op = " <= "
		}
		q.write(col, op, q.bind(p.Value), "::numeric")
		return nil

	case catalog.OpContainsFold:
		needle, ok := p.Value.(string)
		if !ok {
			return fmt.Errorf("substring match needs a string, got %T", p.Value)
		}
		if len(p.Columns) == 0 {
			return fmt.Errorf("substring match without columns")
		}
		arg := q.bind("%" + escapeLike(needle) + "%")
		q.write("(")
		for i, c := range p.Columns {
			col, err := columnExpr(c)
			if err != nil {
				return err
			}
			if i > 0 {
				q.write(" OR ")
			}
			q.write(col, " ILIKE ", arg, ` ESCAPE '\'`)
		}
		q.write(")")
		return nil
	}
	return fmt.Errorf("unsupported operator %d", p.Op)
}

// escapeLike escapes the LIKE metacharacters so a keyword matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// countByQuery renders the group-by-with-count for one facet.
func countByQuery(cq catalog.Query, g catalog.Grouping) (*sqlQuery, error) {
	col, err := columnExpr(g.Column)
	if err != nil {
		return nil, err
	}
	img := "NULL"
	groupBy := col
	if g.Image != "" {
		if img, err = columnExpr(g.Image); err != nil {
			return nil, err
		}
		groupBy += ", " + img
	}

	q := &sqlQuery{}
	q.write("SELECT ", col, "::text, ", img, ", COUNT(*)")
	q.writeFrom(cq.ActiveOnly)
	if err := q.writeWhere(cq.Where); err != nil {
		return nil, err
	}
	q.write("\nGROUP BY ", groupBy, "\nORDER BY ", col)
	return q, nil
}

// carSelect lists the car columns followed by the joined reference names.
const carSelect = `SELECT c.id, c.slug, c.brand_id, c.type_id, c.category_id,
       c.model, c.sub_model, c.transmission, c.color, c.model_year,
       c.engine_type, c.engine_capacity, c.mileage, c.price, c.images,
       c.previous_license_plate, c.current_license_plate, c.is_active,
       c.sales_type, c.created_at, c.updated_at,
       b.name, t.name, cat.name`

// findQuery renders one page of cars, newest first.
func findQuery(cq catalog.Query, p catalog.Page) (*sqlQuery, error) {
	q := &sqlQuery{}
	q.write(carSelect)
	q.writeFrom(cq.ActiveOnly)
	if err := q.writeWhere(cq.Where); err != nil {
		return nil, err
	}
	q.write("\nORDER BY c.created_at DESC, c.id")
	q.write("\nLIMIT ", q.bind(p.Limit), " OFFSET ", q.bind(p.Offset))
	return q, nil
}

// countQuery renders the unpaginated total for a query.
func countQuery(cq catalog.Query) (*sqlQuery, error) {
	q := &sqlQuery{}
	q.write("SELECT COUNT(*)")
	q.writeFrom(cq.ActiveOnly)
	if err := q.writeWhere(cq.Where); err != nil {
		return nil, err
	}
	return q, nil
}
