// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"carlot/internal/catalog"
	"carlot/internal/middleware"
	"carlot/internal/models"
	"carlot/internal/slug"
	"carlot/internal/store"
)

// ReferencePaths maps the URL segment of each reference table to its kind.
// Public lists live at /<segment>, admin writes at /admin/<segment>/{id}.
var ReferencePaths = map[string]models.ReferenceKind{
	"car-brands":     models.ReferenceBrand,
	"car-types":      models.ReferenceType,
	"car-categories": models.ReferenceCategory,
}

// CarCreator stores a new car.
type CarCreator interface {
	Create(ctx context.Context, c *models.Car) (*models.Car, error)
}

// ReferenceWriter maintains brands, types and categories.
type ReferenceWriter interface {
	Upsert(ctx context.Context, kind models.ReferenceKind, r models.Reference) error
	SoftDelete(ctx context.Context, kind models.ReferenceKind, id string) error
}

// Admin groups the handlers mounted behind the admin token guard.
type Admin struct {
	lister CarLister
	cars   CarCreator
	refs   ReferenceWriter
	images ImageResolver
	now    func() time.Time
}

// NewAdmin creates the admin handler group.
func NewAdmin(lister CarLister, cars CarCreator, refs ReferenceWriter, images ImageResolver) *Admin {
	return &Admin{
		lister: lister,
		cars:   cars,
		refs:   refs,
		images: images,
		now:    time.Now,
	}
}

// ListCars serves the administrative listing: raw reference codes, and
// both active and inactive cars unless isActive narrows it.
func (a *Admin) ListCars(w http.ResponseWriter, r *http.Request) {
	req := catalog.ParseListingRequest(r.URL.Query())
	req.Projection = catalog.RawIDs

	serveListing(w, r, a.lister, a.images, req)
}

// CreateCar validates the body, derives the slug and stores a new car.
func (a *Admin) CreateCar(w http.ResponseWriter, r *http.Request) {
	var in carInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateCar(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	car := carFromInput(in)
	car.Slug = slug.Car(car.BrandID, car.Model, car.SubModel, car.ModelYear, a.now())

	created, err := a.cars.Create(r.Context(), car)
	switch {
	case errors.Is(err, store.ErrInvalidReference):
		writeError(w, http.StatusUnprocessableEntity, "brandId, typeId or categoryId does not exist")
		return
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "a car with this slug already exists")
		return
	case err != nil:
		slog.Error("create car failed", "error", err, "brand", car.BrandID, "model", car.Model)
		writeError(w, http.StatusInternalServerError, "failed to create car")
		return
	}

	slog.Info("car created", "id", created.ID, "slug", created.Slug, "admin", adminID(r))
	writeJSON(w, http.StatusCreated, created)
}

// PutReference creates or renames a brand, type or category.
func (a *Admin) PutReference(w http.ResponseWriter, r *http.Request) {
	kind, ok := ReferencePaths[chi.URLParam(r, "kind")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown reference list")
		return
	}
	id := chi.URLParam(r, "id")

	var in referenceInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateReference(id, in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ref := models.Reference{ID: id, Name: strings.TrimSpace(in.Name), Image: in.Image}
	if err := a.refs.Upsert(r.Context(), kind, ref); err != nil {
		slog.Error("upsert reference failed", "error", err, "kind", kind, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to save "+string(kind))
		return
	}

	slog.Info("reference saved", "kind", kind, "id", id, "admin", adminID(r))
	writeJSON(w, http.StatusOK, ref)
}

// DeleteReference soft-deletes a brand, type or category. Cars keep their
// reference; active-only queries stop showing it.
func (a *Admin) DeleteReference(w http.ResponseWriter, r *http.Request) {
	kind, ok := ReferencePaths[chi.URLParam(r, "kind")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown reference list")
		return
	}
	id := chi.URLParam(r, "id")

	err := a.refs.SoftDelete(r.Context(), kind, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, string(kind)+" not found")
		return
	}
	if err != nil {
		slog.Error("delete reference failed", "error", err, "kind", kind, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete "+string(kind))
		return
	}

	slog.Info("reference deleted", "kind", kind, "id", id, "admin", adminID(r))
	w.WriteHeader(http.StatusNoContent)
}

// carFromInput maps a validated request onto a new car. New cars are
// active and owner-sold unless the request says otherwise.
func carFromInput(in carInput) *models.Car {
	c := &models.Car{
		BrandID:              in.BrandID,
		TypeID:               in.TypeID,
		CategoryID:           in.CategoryID,
		Model:                strings.TrimSpace(in.Model),
		SubModel:             strings.TrimSpace(in.SubModel),
		Transmission:         models.Transmission(in.Transmission),
		Color:                strings.TrimSpace(in.Color),
		ModelYear:            in.ModelYear,
		EngineType:           models.EngineType(in.EngineType),
		EngineCapacity:       in.EngineCapacity,
		Mileage:              in.Mileage,
		Price:                in.Price,
		Images:               in.Images,
		PreviousLicensePlate: in.PreviousLicensePlate,
		CurrentLicensePlate:  in.CurrentLicensePlate,
		IsActive:             true,
		SalesType:            models.SalesTypeOwner,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.SalesType != "" {
		c.SalesType = models.SalesType(in.SalesType)
	}
	if c.Images == nil {
		c.Images = []string{}
	}
	return c
}

func adminID(r *http.Request) string {
	if claims := middleware.ClaimsFromCtx(r.Context()); claims != nil {
		return claims.ID
	}
	return ""
}
