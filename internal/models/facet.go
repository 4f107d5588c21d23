// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
)

// FacetOption is one selectable value of a facet together with the number
// of catalog items that would match it.
type FacetOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Image *string `json:"image,omitempty"`
}

// FacetResult holds the options computed for one facet.
type FacetResult struct {
	Name    string
	Options []FacetOption
}

// Facets is the ordered set of facet results for one request. It encodes
// as a JSON object whose keys keep the slice order.
type Facets []FacetResult

// Get returns the options of the named facet and whether it was present.
func (f Facets) Get(name string) ([]FacetOption, bool) {
	for _, r := range f {
		if r.Name == name {
			return r.Options, true
		}
	}
	return nil, false
}

// Names returns the facet names in order.
func (f Facets) Names() []string {
	names := make([]string, len(f))
	for i, r := range f {
		names[i] = r.Name
	}
	return names
}

// MarshalJSON writes {"brands":[...],"types":[...],...} in slice order.
// Empty option lists encode as [] rather than null.
func (f Facets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		opts := r.Options
		if opts == nil {
			opts = []FacetOption{}
		}
		val, err := json.Marshal(opts)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ListingPage is one page of a listing plus the unpaginated total.
type ListingPage[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
