// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory collaborators for the handler tests
// and the request helpers they share.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"carlot/internal/catalog"
	"carlot/internal/models"
	"carlot/internal/store"
)

type fakeFacets struct {
	got    catalog.FilterSelection
	called bool
	out    models.Facets
	err    error
}

func (f *fakeFacets) Facets(_ context.Context, sel catalog.FilterSelection) (models.Facets, error) {
	f.got, f.called = sel, true
	return f.out, f.err
}

type fakeLister struct {
	got  catalog.ListingRequest
	page models.ListingPage[models.CarSummary]
	err  error
}

func (f *fakeLister) Listing(_ context.Context, req catalog.ListingRequest) (models.ListingPage[models.CarSummary], error) {
	f.got = req
	return f.page, f.err
}

type fakeFinder struct {
	cars map[string]*models.CarDetail
	err  error
}

func (f *fakeFinder) FindBySlug(_ context.Context, slug string) (*models.CarDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.cars[slug]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

type fakeRefs struct {
	items    map[models.ReferenceKind][]models.Reference
	upserted []models.Reference
	deleted  []string
	err      error
}

func (f *fakeRefs) List(_ context.Context, kind models.ReferenceKind) ([]models.Reference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items[kind], nil
}

func (f *fakeRefs) Upsert(_ context.Context, kind models.ReferenceKind, r models.Reference) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, r)
	return nil
}

func (f *fakeRefs) SoftDelete(_ context.Context, kind models.ReferenceKind, id string) error {
	if f.err != nil {
		return f.err
	}
	for _, r := range f.items[kind] {
		if r.ID == id {
			f.deleted = append(f.deleted, string(kind)+":"+id)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeCreator struct {
	got *models.Car
	err error
}

func (f *fakeCreator) Create(_ context.Context, c *models.Car) (*models.Car, error) {
	f.got = c
	if f.err != nil {
		return nil, f.err
	}
	out := *c
	return &out, nil
}

// prefixImages resolves keys by prefixing a CDN host.
type prefixImages struct {
	err error
}

func (p prefixImages) Resolve(_ context.Context, key string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if key == "" || strings.HasPrefix(key, "https://") {
		return key, nil
	}
	return "https://cdn.test/" + key, nil
}

func (p prefixImages) ResolveAll(ctx context.Context, keys []string) ([]string, error) {
	out := make([]string, len(keys))
	for i, k := range keys {
		u, err := p.Resolve(ctx, k)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}

// serve routes req through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a JSON response body into T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	body, _ := io.ReadAll(rec.Body)
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return v
}

func strPtr(s string) *string { return &s }
