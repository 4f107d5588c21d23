// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"maps"
	"net/url"

	"carlot/internal/models"
)

// FilterKey is the query-string name of a facet filter.
type FilterKey string

const (
	KeyBrand          FilterKey = "brand"
	KeyType           FilterKey = "type"
	KeyCategory       FilterKey = "category"
	KeyModel          FilterKey = "model"
	KeySubModel       FilterKey = "subModel"
	KeyTransmission   FilterKey = "transmission"
	KeyColor          FilterKey = "color"
	KeyModelYear      FilterKey = "modelYear"
	KeyEngineType     FilterKey = "engineType"
	KeyEngineCapacity FilterKey = "engineCapacity"
)

// filterDef ties a filter key to the column it restricts.
type filterDef struct {
	key     FilterKey
	column  Column
	numeric bool
	valid   func(string) bool
}

// filterDefs lists every equality filter in the order predicates are
// emitted. Brand, type and category compare on the reference row's id.
var filterDefs = []filterDef{
	{key: KeyType, column: ColTypeID},
	{key: KeyBrand, column: ColBrandID},
	{key: KeyCategory, column: ColCategoryID},
	{key: KeyModel, column: ColModel},
	{key: KeySubModel, column: ColSubModel},
	{key: KeyTransmission, column: ColTransmission, valid: func(s string) bool {
		return models.Transmission(s).Valid()
	}},
	{key: KeyColor, column: ColColor},
	{key: KeyModelYear, column: ColModelYear, numeric: true},
	{key: KeyEngineType, column: ColEngineType, valid: func(s string) bool {
		return models.EngineType(s).Valid()
	}},
	{key: KeyEngineCapacity, column: ColEngineCapacity, numeric: true},
}

func lookupFilter(key FilterKey) (filterDef, bool) {
	for _, d := range filterDefs {
		if d.key == key {
			return d, true
		}
	}
	return filterDef{}, false
}

// FilterSelection is the set of facet values a caller currently has
// selected, plus an optional active/inactive scope. It is built once per
// request and never modified afterwards; the With methods return copies.
type FilterSelection struct {
	values   map[FilterKey]any
	isActive *bool
}

// NewFilterSelection builds a selection from raw key/value pairs. Unknown
// keys, empty values, malformed numbers and unknown enum codes are dropped
// so that they behave exactly like an absent key.
func NewFilterSelection(raw map[string]string) FilterSelection {
	s := FilterSelection{values: make(map[FilterKey]any, len(raw))}
	for k, v := range raw {
		def, ok := lookupFilter(FilterKey(k))
		if !ok || v == "" {
			continue
		}
		if def.numeric {
			n, ok := parseInt(v)
			if !ok {
				continue
			}
			s.values[def.key] = n
			continue
		}
		if def.valid != nil && !def.valid(v) {
			continue
		}
		s.values[def.key] = v
	}
	return s
}

// ParseFilterSelection reads the facet filters and the isActive scope from
// query parameters. Only the first value of a repeated key is used.
func ParseFilterSelection(q url.Values) FilterSelection {
	raw := make(map[string]string, len(filterDefs))
	for _, d := range filterDefs {
		raw[string(d.key)] = q.Get(string(d.key))
	}
	s := NewFilterSelection(raw)
	if active, ok := parseBool(q.Get("isActive")); ok {
		s = s.WithActive(active)
	}
	return s
}

// WithActive returns a copy of s scoped to active or inactive cars.
func (s FilterSelection) WithActive(active bool) FilterSelection {
	out := FilterSelection{values: maps.Clone(s.values), isActive: &active}
	if out.values == nil {
		out.values = map[FilterKey]any{}
	}
	return out
}

// Value returns the selected value for key. Numeric filters hold an int,
// all others a string.
func (s FilterSelection) Value(key FilterKey) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Active returns the active scope and whether one was set.
func (s FilterSelection) Active() (bool, bool) {
	if s.isActive == nil {
		return false, false
	}
	return *s.isActive, true
}

// Len returns the number of facet filters set.
func (s FilterSelection) Len() int {
	return len(s.values)
}

// predicates returns the equality predicates of s in filterDefs order,
// skipping the filter named by except. The scope predicate comes last.
func (s FilterSelection) predicates(except FilterKey) []Predicate {
	var out []Predicate
	for _, d := range filterDefs {
		if d.key == except {
			continue
		}
		if v, ok := s.values[d.key]; ok {
			out = append(out, Eq(d.column, v))
		}
	}
	if active, ok := s.Active(); ok {
		out = append(out, Eq(ColIsActive, active))
	}
	return out
}

// activeOnly reports whether soft-deleted reference rows must be hidden.
func (s FilterSelection) activeOnly() bool {
	active, ok := s.Active()
	return ok && active
}
