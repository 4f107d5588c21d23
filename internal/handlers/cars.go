// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carlot/internal/catalog"
	"carlot/internal/models"
	"carlot/internal/store"
)

// FacetAggregator computes the filter options for a selection.
type FacetAggregator interface {
	Facets(ctx context.Context, sel catalog.FilterSelection) (models.Facets, error)
}

// CarLister returns one page of the catalog.
type CarLister interface {
	Listing(ctx context.Context, req catalog.ListingRequest) (models.ListingPage[models.CarSummary], error)
}

// CarFinder looks up a single active car.
type CarFinder interface {
	FindBySlug(ctx context.Context, slug string) (*models.CarDetail, error)
}

// ReferenceLister lists the live rows of a reference table.
type ReferenceLister interface {
	List(ctx context.Context, kind models.ReferenceKind) ([]models.Reference, error)
}

// ImageResolver turns stored image keys into loadable URLs.
// *storage.Client satisfies it, including a nil one.
type ImageResolver interface {
	Resolve(ctx context.Context, key string) (string, error)
	ResolveAll(ctx context.Context, keys []string) ([]string, error)
}

// Cars groups the public catalog handlers.
type Cars struct {
	facets FacetAggregator
	lister CarLister
	finder CarFinder
	refs   ReferenceLister
	images ImageResolver
}

// NewCars creates the public handler group.
func NewCars(facets FacetAggregator, lister CarLister, finder CarFinder, refs ReferenceLister, images ImageResolver) *Cars {
	return &Cars{
		facets: facets,
		lister: lister,
		finder: finder,
		refs:   refs,
		images: images,
	}
}

// Filters serves the facet options for the current selection. Without an
// explicit isActive parameter only active cars are counted.
func (h *Cars) Filters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel := catalog.ParseFilterSelection(r.URL.Query())
	if _, ok := sel.Active(); !ok {
		sel = sel.WithActive(true)
	}

	facets, err := h.facets.Facets(ctx, sel)
	if err != nil {
		slog.Error("aggregate facets failed", "error", err, "filters", sel.Len())
		writeError(w, http.StatusInternalServerError, "failed to load filters")
		return
	}

	for _, f := range facets {
		for i := range f.Options {
			if err := h.resolveOptional(ctx, &f.Options[i].Image); err != nil {
				slog.Warn("resolve facet image failed", "error", err, "facet", f.Name)
			}
		}
	}

	writeJSON(w, http.StatusOK, facets)
}

// List serves a page of active cars with display names.
func (h *Cars) List(w http.ResponseWriter, r *http.Request) {
	req := catalog.ParseListingRequest(r.URL.Query())
	if _, ok := req.Filters.Active(); !ok {
		req.Filters = req.Filters.WithActive(true)
	}
	req.Projection = catalog.DisplayNames

	serveListing(w, r, h.lister, h.images, req)
}

// Detail serves one active car by slug. Slugs contain a slash, so the
// route captures them with a wildcard.
func (h *Cars) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "*")
	if slug == "" {
		writeError(w, http.StatusNotFound, "car not found")
		return
	}

	car, err := h.finder.FindBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "car not found")
		return
	}
	if err != nil {
		slog.Error("find car failed", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "failed to load car")
		return
	}

	if resolved, err := h.images.ResolveAll(ctx, car.Images); err != nil {
		slog.Warn("resolve car images failed", "error", err, "slug", slug)
	} else {
		car.Images = resolved
	}
	if car.Images == nil {
		car.Images = []string{}
	}

	writeJSON(w, http.StatusOK, car)
}

// References returns a handler listing the live rows of one reference table.
func (h *Cars) References(kind models.ReferenceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := h.refs.List(ctx, kind)
		if err != nil {
			slog.Error("list references failed", "error", err, "kind", kind)
			writeError(w, http.StatusInternalServerError, "failed to load "+string(kind)+" list")
			return
		}
		for i := range items {
			if err := h.resolveOptional(ctx, &items[i].Image); err != nil {
				slog.Warn("resolve reference image failed", "error", err, "kind", kind, "id", items[i].ID)
			}
		}

		writeJSON(w, http.StatusOK, items)
	}
}

// resolveOptional replaces *img with its URL. On failure the key is kept.
func (h *Cars) resolveOptional(ctx context.Context, img **string) error {
	if *img == nil {
		return nil
	}
	u, err := h.images.Resolve(ctx, **img)
	if err != nil {
		return err
	}
	*img = &u
	return nil
}

// serveListing runs req and writes the page with image keys resolved.
func serveListing(w http.ResponseWriter, r *http.Request, lister CarLister, images ImageResolver, req catalog.ListingRequest) {
	ctx := r.Context()

	page, err := lister.Listing(ctx, req)
	if err != nil {
		slog.Error("list cars failed", "error", err, "page", req.Page, "page_size", req.PageSize)
		writeError(w, http.StatusInternalServerError, "failed to list cars")
		return
	}

	for i := range page.Items {
		resolved, err := images.ResolveAll(ctx, page.Items[i].Images)
		if err != nil {
			slog.Warn("resolve listing images failed", "error", err, "car", page.Items[i].ID)
			continue
		}
		page.Items[i].Images = resolved
	}

	writeJSON(w, http.StatusOK, page)
}
