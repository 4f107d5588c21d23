// memcatalog_test.go provides an in-memory Catalog that evaluates Query
// values the same way the PostgreSQL store renders them, so the aggregator
// and listing can be tested without a database.
package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"carlot/internal/models"
)

type memRef struct {
	name    string
	image   string
	deleted bool
}

type memCatalog struct {
	cars       []models.Car
	brands     map[string]memRef
	types      map[string]memRef
	categories map[string]memRef

	// failOn makes CountBy fail when grouping on this column.
	failOn Column
	// failFind makes Find and Count fail.
	failFind bool

	mu      sync.Mutex
	queries []Query
}

var errStoreDown = errors.New("connection refused")

func newMemCatalog() *memCatalog {
	return &memCatalog{
		brands:     map[string]memRef{},
		types:      map[string]memRef{},
		categories: map[string]memRef{},
	}
}

func (m *memCatalog) record(q Query) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
}

// ref resolves a reference row, honouring the active-only join condition.
func (m *memCatalog) ref(table map[string]memRef, id *string, activeOnly bool) (memRef, bool) {
	if id == nil {
		return memRef{}, false
	}
	r, ok := table[*id]
	if !ok || (activeOnly && r.deleted) {
		return memRef{}, false
	}
	return r, true
}

// value returns the column value for a car, or nil for SQL NULL.
func (m *memCatalog) value(col Column, c models.Car, activeOnly bool) any {
	switch col {
	case ColBrandID:
		if _, ok := m.ref(m.brands, &c.BrandID, activeOnly); ok {
			return c.BrandID
		}
		return nil
	case ColBrandImage:
		if r, ok := m.ref(m.brands, &c.BrandID, activeOnly); ok && r.image != "" {
			return r.image
		}
		return nil
	case ColTypeID:
		if _, ok := m.ref(m.types, &c.TypeID, activeOnly); ok {
			return c.TypeID
		}
		return nil
	case ColTypeImage:
		if r, ok := m.ref(m.types, &c.TypeID, activeOnly); ok && r.image != "" {
			return r.image
		}
		return nil
	case ColCategoryID:
		if _, ok := m.ref(m.categories, c.CategoryID, activeOnly); ok {
			return *c.CategoryID
		}
		return nil
	case ColModel:
		return c.Model
	case ColSubModel:
		return c.SubModel
	case ColTransmission:
		return string(c.Transmission)
	case ColColor:
		return c.Color
	case ColModelYear:
		return c.ModelYear
	case ColEngineType:
		return string(c.EngineType)
	case ColEngineCapacity:
		return c.EngineCapacity
	case ColPrice:
		return c.Price
	case ColMileage:
		if c.Mileage == nil {
			return nil
		}
		return *c.Mileage
	case ColIsActive:
		return c.IsActive
	case ColSalesType:
		return string(c.SalesType)
	}
	panic("memCatalog: unknown column " + string(col))
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	panic(fmt.Sprintf("memCatalog: not a number: %v", v))
}

func (m *memCatalog) matches(q Query, c models.Car) bool {
	for _, p := range q.Where {
		switch p.Op {
		case OpEq:
			v := m.value(p.Column, c, q.ActiveOnly)
			if v == nil || fmt.Sprint(v) != fmt.Sprint(p.Value) {
				return false
			}
		case OpGte, OpLte:
			v := m.value(p.Column, c, q.ActiveOnly)
			if v == nil {
				return false
			}
			if p.Op == OpGte && toFloat(v) < toFloat(p.Value) {
				return false
			}
			if p.Op == OpLte && toFloat(v) > toFloat(p.Value) {
				return false
			}
		case OpContainsFold:
			needle := strings.ToLower(p.Value.(string))
			found := false
			for _, col := range p.Columns {
				v := m.value(col, c, q.ActiveOnly)
				if v != nil && strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
					found = true
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (m *memCatalog) filter(q Query) []models.Car {
	var out []models.Car
	for _, c := range m.cars {
		if m.matches(q, c) {
			out = append(out, c)
		}
	}
	return out
}

type memGroup struct {
	raw   any
	image any
	count int
}

func (m *memCatalog) CountBy(ctx context.Context, q Query, g Grouping) ([]Group, error) {
	m.record(q)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.failOn != "" && g.Column == m.failOn {
		return nil, errStoreDown
	}

	var groups []*memGroup
	for _, c := range m.filter(q) {
		v := m.value(g.Column, c, q.ActiveOnly)
		var img any
		if g.Image != "" {
			img = m.value(g.Image, c, q.ActiveOnly)
		}
		idx := slices.IndexFunc(groups, func(x *memGroup) bool {
			return x.raw == v && x.image == img
		})
		if idx < 0 {
			groups = append(groups, &memGroup{raw: v, image: img})
			idx = len(groups) - 1
		}
		groups[idx].count++
	}

	// ORDER BY column: NULLs last, numbers numerically, text by string.
	slices.SortStableFunc(groups, func(a, b *memGroup) int {
		switch {
		case a.raw == nil && b.raw == nil:
			return 0
		case a.raw == nil:
			return 1
		case b.raw == nil:
			return -1
		}
		if an, ok := a.raw.(int); ok {
			return cmp.Compare(an, b.raw.(int))
		}
		return cmp.Compare(fmt.Sprint(a.raw), fmt.Sprint(b.raw))
	})

	out := make([]Group, 0, len(groups))
	for _, x := range groups {
		gr := Group{Count: x.count}
		if x.raw != nil {
			s := fmt.Sprint(x.raw)
			gr.Value = &s
		}
		if x.image != nil {
			s := fmt.Sprint(x.image)
			gr.Image = &s
		}
		out = append(out, gr)
	}
	return out, nil
}

func (m *memCatalog) Find(ctx context.Context, q Query, p Page) ([]models.CarRow, error) {
	m.record(q)
	if m.failFind {
		return nil, errStoreDown
	}
	cars := m.filter(q)
	slices.SortStableFunc(cars, func(a, b models.Car) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	if p.Offset >= len(cars) {
		return []models.CarRow{}, nil
	}
	cars = cars[p.Offset:]
	if len(cars) > p.Limit {
		cars = cars[:p.Limit]
	}

	rows := make([]models.CarRow, 0, len(cars))
	for _, c := range cars {
		row := models.CarRow{Car: c}
		if r, ok := m.ref(m.brands, &c.BrandID, q.ActiveOnly); ok {
			row.BrandName = r.name
		}
		if r, ok := m.ref(m.types, &c.TypeID, q.ActiveOnly); ok {
			row.TypeName = r.name
		}
		if r, ok := m.ref(m.categories, c.CategoryID, q.ActiveOnly); ok {
			name := r.name
			row.CategoryName = &name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *memCatalog) Count(ctx context.Context, q Query) (int, error) {
	m.record(q)
	if m.failFind {
		return 0, errStoreDown
	}
	return len(m.filter(q)), nil
}

// carSpec is a compact fixture description.
type carSpec struct {
	brand, typ   string
	category     string
	model, sub   string
	transmission models.Transmission
	color        string
	year         int
	engine       models.EngineType
	capacity     int
	price        float64
	mileage      int
	inactive     bool
	sales        models.SalesType
}

var fixtureEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func (m *memCatalog) add(specs ...carSpec) {
	for _, s := range specs {
		n := len(m.cars)
		c := models.Car{
			ID:             uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("car-%d", n))),
			Slug:           fmt.Sprintf("car-%d", n),
			BrandID:        s.brand,
			TypeID:         s.typ,
			Model:          s.model,
			SubModel:       s.sub,
			Transmission:   s.transmission,
			Color:          s.color,
			ModelYear:      s.year,
			EngineType:     s.engine,
			EngineCapacity: s.capacity,
			Price:          s.price,
			IsActive:       !s.inactive,
			SalesType:      s.sales,
			CreatedAt:      fixtureEpoch.Add(time.Duration(n) * time.Hour),
		}
		if s.category != "" {
			cat := s.category
			c.CategoryID = &cat
		}
		if s.mileage > 0 {
			mil := s.mileage
			c.Mileage = &mil
		}
		if c.SalesType == "" {
			c.SalesType = models.SalesTypeOwner
		}
		if c.Transmission == "" {
			c.Transmission = models.TransmissionAutomatic
		}
		if c.EngineType == "" {
			c.EngineType = models.EngineTypeGasoline
		}
		m.cars = append(m.cars, c)
	}
}

// toyotaHondaCatalog is 3 Toyota SUVs (2 manual, 1 automatic) and 2 Honda
// sedans (both automatic).
func toyotaHondaCatalog() *memCatalog {
	m := newMemCatalog()
	m.brands["Toyota"] = memRef{name: "Toyota", image: "brands/toyota.png"}
	m.brands["Honda"] = memRef{name: "Honda", image: "brands/honda.png"}
	m.types["SUV"] = memRef{name: "SUV", image: "types/suv.png"}
	m.types["SEDAN"] = memRef{name: "เก๋ง", image: "types/sedan.png"}
	m.categories["NEW"] = memRef{name: "มาใหม่"}

	m.add(
		carSpec{brand: "Toyota", typ: "SUV", category: "NEW", model: "Fortuner", sub: "Legender", transmission: models.TransmissionManual, color: "WHITE", year: 2021, capacity: 2800, price: 1_200_000, mileage: 30_000},
		carSpec{brand: "Toyota", typ: "SUV", model: "Fortuner", sub: "V", transmission: models.TransmissionManual, color: "BLACK", year: 2019, engine: models.EngineTypeDiesel, capacity: 2400, price: 950_000, mileage: 80_000},
		carSpec{brand: "Toyota", typ: "SUV", model: "Corolla Cross", sub: "Hybrid", transmission: models.TransmissionAutomatic, color: "WHITE", year: 2022, engine: models.EngineTypeHybrid, capacity: 1800, price: 990_000, mileage: 15_000},
		carSpec{brand: "Honda", typ: "SEDAN", category: "NEW", model: "Civic", sub: "RS", transmission: models.TransmissionAutomatic, color: "RED", year: 2022, capacity: 1500, price: 1_050_000, mileage: 12_000},
		carSpec{brand: "Honda", typ: "SEDAN", model: "City", sub: "SV", transmission: models.TransmissionAutomatic, color: "GRAY", year: 2020, capacity: 1000, price: 520_000},
	)
	return m
}
