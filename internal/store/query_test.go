package store

import (
	"reflect"
	"strings"
	"testing"

	"carlot/internal/catalog"
)

func TestWriteFrom(t *testing.T) {
	q := &sqlQuery{}
	q.writeFrom(false)
	if strings.Contains(q.String(), "deleted_at") {
		t.Errorf("unscoped joins should keep soft-deleted references:\n%s", q)
	}

	q = &sqlQuery{}
	q.writeFrom(true)
	for _, alias := range []string{"b", "t", "cat"} {
		if !strings.Contains(q.String(), alias+".deleted_at IS NULL") {
			t.Errorf("active-only join on %s should exclude soft-deleted rows:\n%s", alias, q)
		}
	}
}

func TestWriteWhere(t *testing.T) {
	tests := []struct {
		name     string
		where    []catalog.Predicate
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "empty",
			where:    nil,
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name:     "equality",
			where:    []catalog.Predicate{catalog.Eq(catalog.ColBrandID, "TOYOTA"), catalog.Eq(catalog.ColModelYear, 2021)},
			wantSQL:  "\nWHERE b.id = $1\n  AND c.model_year = $2",
			wantArgs: []any{"TOYOTA", 2021},
		},
		{
			name:     "range",
			where:    []catalog.Predicate{catalog.Gte(catalog.ColPrice, 0.0), catalog.Lte(catalog.ColPrice, 500000.0)},
			wantSQL:  "\nWHERE c.price >= $1::numeric\n  AND c.price <= $2::numeric",
			wantArgs: []any{0.0, 500000.0},
		},
		{
			name:     "fractional and oversized mileage bounds stay numeric",
			where:    []catalog.Predicate{catalog.Gte(catalog.ColMileage, 1000.5), catalog.Lte(catalog.ColMileage, 1e12)},
			wantSQL:  "\nWHERE c.mileage >= $1::numeric\n  AND c.mileage <= $2::numeric",
			wantArgs: []any{1000.5, 1e12},
		},
		{
			name:     "keyword over two columns shares one argument",
			where:    []catalog.Predicate{catalog.ContainsFold("civic", catalog.ColModel, catalog.ColSubModel)},
			wantSQL:  "\nWHERE (c.model ILIKE $1 ESCAPE '\\' OR c.sub_model ILIKE $1 ESCAPE '\\')",
			wantArgs: []any{"%civic%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &sqlQuery{}
			if err := q.writeWhere(tt.where); err != nil {
				t.Fatalf("writeWhere: %v", err)
			}
			if q.String() != tt.wantSQL {
				t.Errorf("sql:\ngot  %q\nwant %q", q.String(), tt.wantSQL)
			}
			if !reflect.DeepEqual(q.args, tt.wantArgs) {
				t.Errorf("args: got %#v, want %#v", q.args, tt.wantArgs)
			}
		})
	}
}

func TestWriteWhereRejectsUnknownColumns(t *testing.T) {
	tests := []catalog.Predicate{
		catalog.Eq("car.id; DROP TABLE cars", "x"),
		catalog.ContainsFold("x", catalog.ColModel, "car.secret"),
		catalog.ContainsFold("x"),
		{Op: catalog.OpContainsFold, Columns: []catalog.Column{catalog.ColModel}, Value: 42},
	}
	for _, p := range tests {
		q := &sqlQuery{}
		if err := q.writeWhere([]catalog.Predicate{p}); err == nil {
			t.Errorf("expected error for %+v, got sql %q", p, q)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"civic":   "civic",
		"100%":    `100\%`,
		"type_r":  `type\_r`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCountByQuery(t *testing.T) {
	q, err := countByQuery(
		catalog.Query{Where: []catalog.Predicate{catalog.Eq(catalog.ColIsActive, true)}, ActiveOnly: true},
		catalog.Grouping{Column: catalog.ColBrandID, Image: catalog.ColBrandImage},
	)
	if err != nil {
		t.Fatalf("countByQuery: %v", err)
	}

	sql := q.String()
	for _, want := range []string{
		"SELECT b.id::text, b.image, COUNT(*)",
		"WHERE c.is_active = $1",
		"GROUP BY b.id, b.image",
		"ORDER BY b.id",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in:\n%s", want, sql)
		}
	}

	q, err = countByQuery(catalog.Query{}, catalog.Grouping{Column: catalog.ColEngineCapacity})
	if err != nil {
		t.Fatalf("countByQuery without image: %v", err)
	}
	if !strings.Contains(q.String(), "SELECT c.engine_capacity::text, NULL, COUNT(*)") {
		t.Errorf("unexpected select:\n%s", q)
	}
	if strings.Contains(q.String(), "WHERE") {
		t.Errorf("unfiltered query has a WHERE clause:\n%s", q)
	}

	if _, err := countByQuery(catalog.Query{}, catalog.Grouping{Column: "car.nope"}); err == nil {
		t.Error("expected error for unknown grouping column")
	}
}

func TestFindQuery(t *testing.T) {
	q, err := findQuery(
		catalog.Query{Where: []catalog.Predicate{catalog.Eq(catalog.ColColor, "RED")}},
		catalog.Page{Offset: 5, Limit: 5},
	)
	if err != nil {
		t.Fatalf("findQuery: %v", err)
	}
	if !strings.HasSuffix(q.String(), "ORDER BY c.created_at DESC, c.id\nLIMIT $2 OFFSET $3") {
		t.Errorf("unexpected tail:\n%s", q)
	}
	if want := []any{"RED", 5, 5}; !reflect.DeepEqual(q.args, want) {
		t.Errorf("args: got %#v, want %#v", q.args, want)
	}
}

func TestCountQuery(t *testing.T) {
	q, err := countQuery(catalog.Query{})
	if err != nil {
		t.Fatalf("countQuery: %v", err)
	}
	if !strings.HasPrefix(q.String(), "SELECT COUNT(*)\nFROM cars c") {
		t.Errorf("unexpected query:\n%s", q)
	}
	if len(q.args) != 0 {
		t.Errorf("args: got %v, want none", q.args)
	}
}
