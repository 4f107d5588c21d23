// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"carlot/internal/models"
	"carlot/internal/translation"
)

// Facet names as they appear in the aggregated result.
const (
	FacetBrands           = "brands"
	FacetTypes            = "types"
	FacetCategories       = "categories"
	FacetModels           = "models"
	FacetSubModels        = "subModels"
	FacetModelYears       = "modelYears"
	FacetTransmissions    = "transmissions"
	FacetColors           = "colors"
	FacetEngineTypes      = "engineTypes"
	FacetEngineCapacities = "engineCapacities"
)

// Facet describes one filterable attribute. Entity is set when the facet
// groups on a joined reference row instead of a column of the car itself;
// Image is only meaningful for such facets.
type Facet struct {
	Name        string
	Key         FilterKey
	Entity      models.ReferenceKind
	Column      Column
	Image       Column
	Translate   func(string) string
	NumericSort bool
}

func refFacet(name string, key FilterKey, entity models.ReferenceKind, id, image Column) Facet {
	return Facet{Name: name, Key: key, Entity: entity, Column: id, Image: image}
}

func carFacet(name string, key FilterKey, col Column) Facet {
	return Facet{Name: name, Key: key, Column: col}
}

// DefaultFacets returns the storefront facet set in display order.
func DefaultFacets() []Facet {
	transmissions := carFacet(FacetTransmissions, KeyTransmission, ColTransmission)
	transmissions.Translate = translation.Func(translation.Transmission)

	colors := carFacet(FacetColors, KeyColor, ColColor)
	colors.Translate = translation.Func(translation.Color)

	engineTypes := carFacet(FacetEngineTypes, KeyEngineType, ColEngineType)
	engineTypes.Translate = translation.Func(translation.EngineType)

	capacities := carFacet(FacetEngineCapacities, KeyEngineCapacity, ColEngineCapacity)
	capacities.Translate = translation.EngineCapacity
	capacities.NumericSort = true

	return []Facet{
		refFacet(FacetBrands, KeyBrand, models.ReferenceBrand, ColBrandID, ColBrandImage),
		refFacet(FacetTypes, KeyType, models.ReferenceType, ColTypeID, ColTypeImage),
		refFacet(FacetCategories, KeyCategory, models.ReferenceCategory, ColCategoryID, ""),
		carFacet(FacetModels, KeyModel, ColModel),
		carFacet(FacetSubModels, KeySubModel, ColSubModel),
		carFacet(FacetModelYears, KeyModelYear, ColModelYear),
		transmissions,
		colors,
		engineTypes,
		capacities,
	}
}

// buildFacetQuery returns a fresh query for facet f: every selected filter
// except f's own, so a facet never narrows its own options.
func buildFacetQuery(f Facet, sel FilterSelection) Query {
	return Query{
		Where:      sel.predicates(f.Key),
		ActiveOnly: sel.activeOnly(),
	}
}

// grouping returns the group-by spec for f.
func (f Facet) grouping() Grouping {
	return Grouping{Column: f.Column, Image: f.Image}
}
