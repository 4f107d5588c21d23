// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"carlot/internal/models"
	"carlot/internal/translation"
)

// ErrListingFailed is returned when the listing rows or total cannot be
// fetched.
var ErrListingFailed = errors.New("listing failed")

// Pagination defaults applied to missing or invalid input.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Projection selects how reference columns appear in a CarSummary.
type Projection int

const (
	// DisplayNames renders brand, type and category names and the
	// translated transmission. Used by the public listing.
	DisplayNames Projection = iota
	// RawIDs renders the stored reference ids and codes. Used by the
	// administrative listing.
	RawIDs
)

// Range is an inclusive numeric range; either bound may be absent.
type Range struct {
	Min *float64
	Max *float64
}

// IsSet reports whether either bound is present.
func (r Range) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// ListingRequest is everything a listing page depends on. Filters carries
// the facet filters and the optional isActive scope.
type ListingRequest struct {
	Filters    FilterSelection
	Page       int
	PageSize   int
	Keyword    string
	Price      Range
	Mileage    Range
	SalesType  models.SalesType
	Projection Projection
}

// ParseListingRequest reads a listing request from query parameters.
// Invalid values are dropped rather than rejected.
func ParseListingRequest(q url.Values) ListingRequest {
	req := ListingRequest{
		Filters: ParseFilterSelection(q),
		Keyword: q.Get("keyword"),
		Price:   parseRange(q.Get("minPrice"), q.Get("maxPrice")),
		Mileage: parseRange(q.Get("minMileage"), q.Get("maxMileage")),
	}
	if n, ok := parseInt(q.Get("page")); ok {
		req.Page = n
	}
	if n, ok := parseInt(q.Get("pageSize")); ok {
		req.PageSize = n
	}
	if st := models.SalesType(q.Get("salesType")); st.Valid() {
		req.SalesType = st
	}
	return req.normalize()
}

// parseRange reads a pair of bounds. Negative bounds are treated as absent.
func parseRange(minRaw, maxRaw string) Range {
	var r Range
	if v, ok := parseFloat(minRaw); ok && v >= 0 {
		r.Min = &v
	}
	if v, ok := parseFloat(maxRaw); ok && v >= 0 {
		r.Max = &v
	}
	return r
}

// normalize coerces page and pageSize to usable values.
func (r ListingRequest) normalize() ListingRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// window returns the skip/limit for the request's page.
func (r ListingRequest) window() Page {
	return Page{Offset: (r.Page - 1) * r.PageSize, Limit: r.PageSize}
}

// BuildListingQuery returns the query for a listing: every filter applied,
// with no self-exclusion.
func BuildListingQuery(r ListingRequest) Query {
	where := r.Filters.predicates("")

	if r.SalesType != "" {
		where = append(where, Eq(ColSalesType, string(r.SalesType)))
	}
	where = appendRange(where, ColMileage, r.Mileage)
	where = appendRange(where, ColPrice, r.Price)

	if r.Keyword != "" {
		where = append(where, ContainsFold(r.Keyword, ColModel, ColSubModel))
	}

	return Query{Where: where, ActiveOnly: r.Filters.activeOnly()}
}

// appendRange adds the bounds of rng. A missing minimum becomes 0 and a
// missing maximum is left open.
func appendRange(where []Predicate, col Column, rng Range) []Predicate {
	if !rng.IsSet() {
		return where
	}
	lo := 0.0
	if rng.Min != nil {
		lo = *rng.Min
	}
	where = append(where, Gte(col, lo))
	if rng.Max != nil {
		where = append(where, Lte(col, *rng.Max))
	}
	return where
}

// Lister produces paginated listing pages.
type Lister struct {
	catalog Catalog
}

// NewLister creates a Lister over c.
func NewLister(c Catalog) *Lister {
	return &Lister{catalog: c}
}

// Listing returns one page of cars matching r. The page rows and the
// total are queried concurrently over the same predicates.
func (l *Lister) Listing(ctx context.Context, r ListingRequest) (models.ListingPage[models.CarSummary], error) {
	r = r.normalize()
	q := BuildListingQuery(r)

	var (
		rows  []models.CarRow
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = l.catalog.Find(gctx, q, r.window())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = l.catalog.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.ListingPage[models.CarSummary]{}, fmt.Errorf("%w: %w", ErrListingFailed, err)
	}

	items := make([]models.CarSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, summarize(row, r.Projection))
	}

	return models.ListingPage[models.CarSummary]{
		Items:    items,
		Total:    total,
		Page:     r.Page,
		PageSize: r.PageSize,
	}, nil
}

// summarize maps a joined row to the list projection.
func summarize(row models.CarRow, p Projection) models.CarSummary {
	s := models.CarSummary{
		ID:                   row.ID,
		Slug:                 row.Slug,
		Images:               row.Images,
		Model:                row.Model,
		SubModel:             row.SubModel,
		ModelYear:            row.ModelYear,
		Mileage:              row.Mileage,
		Price:                row.Price,
		PreviousLicensePlate: row.PreviousLicensePlate,
		CurrentLicensePlate:  row.CurrentLicensePlate,
		IsActive:             row.IsActive,
	}
	if s.Images == nil {
		s.Images = []string{}
	}

	if p == RawIDs {
		s.Brand = row.BrandID
		s.Type = row.TypeID
		s.Category = row.CategoryID
		s.Transmission = string(row.Transmission)
		return s
	}

	s.Brand = orDefault(row.BrandName, row.BrandID)
	s.Type = orDefault(row.TypeName, row.TypeID)
	s.Category = row.CategoryName
	s.Transmission = translation.Translate(translation.Transmission, string(row.Transmission))
	return s
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
