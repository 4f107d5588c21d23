// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"carlot/internal/models"
)

// ErrAggregationFailed is returned when any facet query fails. No partial
// facet results are returned alongside it.
var ErrAggregationFailed = errors.New("aggregation failed")

// DefaultConcurrency is the number of facet queries run at once when the
// caller does not choose.
const DefaultConcurrency = 10

// Aggregator computes the option list and counts of every facet for a
// filter selection.
type Aggregator struct {
	catalog     Catalog
	facets      []Facet
	concurrency int
}

// NewAggregator creates an aggregator over the default facet set. A
// concurrency of 1 runs the facet queries one after another; values below
// 1 fall back to DefaultConcurrency.
func NewAggregator(c Catalog, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Aggregator{catalog: c, facets: DefaultFacets(), concurrency: concurrency}
}

// Facets returns one option list per facet, in facet-definition order
// regardless of which query finished first.
func (a *Aggregator) Facets(ctx context.Context, sel FilterSelection) (models.Facets, error) {
	start := time.Now()
	results := make(models.Facets, len(a.facets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, f := range a.facets {
		g.Go(func() error {
			opts, err := a.facet(gctx, f, sel)
			if err != nil {
				return fmt.Errorf("%w: facet %s: %w", ErrAggregationFailed, f.Name, err)
			}
			results[i] = models.FacetResult{Name: f.Name, Options: opts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("facets aggregated",
		"filters", sel.Len(),
		"duration", time.Since(start).String(),
	)
	return results, nil
}

// facet runs the self-excluding group-by for one facet and maps the rows.
func (a *Aggregator) facet(ctx context.Context, f Facet, sel FilterSelection) ([]models.FacetOption, error) {
	groups, err := a.catalog.CountBy(ctx, buildFacetQuery(f, sel), f.grouping())
	if err != nil {
		return nil, err
	}
	return toOptions(f, groups), nil
}

// toOptions drops NULL groups and maps the rest to facet options.
func toOptions(f Facet, groups []Group) []models.FacetOption {
	opts := make([]models.FacetOption, 0, len(groups))
	for _, g := range groups {
		if g.Value == nil {
			continue
		}
		opt := models.FacetOption{ID: *g.Value, Name: *g.Value, Count: g.Count}
		if f.Translate != nil {
			opt.Name = f.Translate(opt.ID)
		}
		if f.Image != "" && g.Image != nil && *g.Image != "" {
			img := *g.Image
			opt.Image = &img
		}
		opts = append(opts, opt)
	}
	if f.NumericSort {
		slices.SortStableFunc(opts, compareNumericID)
	}
	return opts
}

// compareNumericID orders by the numeric value of the id. Ids that are
// not numbers sort after all numeric ones, by string.
func compareNumericID(a, b models.FacetOption) int {
	an, aerr := strconv.ParseFloat(a.ID, 64)
	bn, berr := strconv.ParseFloat(b.ID, 64)
	switch {
	case aerr == nil && berr == nil:
		return cmp.Compare(an, bn)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return cmp.Compare(a.ID, b.ID)
}
