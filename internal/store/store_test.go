// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"carlot/internal/database"
	"carlot/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "carlot")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "carlot")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// seedReferences inserts reference rows used by a test under unique ids
// and removes them, with their cars, when the test finishes.
func seedReferences(t *testing.T, db *sql.DB, kind models.ReferenceKind, refs ...models.Reference) {
	t.Helper()
	s := NewReferenceStore(db)
	for _, r := range refs {
		if err := s.Upsert(context.Background(), kind, r); err != nil {
			t.Fatalf("seed %s %s: %v", kind, r.ID, err)
		}
	}

	table := referenceTables[kind]
	fk := map[models.ReferenceKind]string{
		models.ReferenceBrand:    "brand_id",
		models.ReferenceType:     "type_id",
		models.ReferenceCategory: "category_id",
	}[kind]
	t.Cleanup(func() {
		for _, r := range refs {
			db.Exec("DELETE FROM cars WHERE "+fk+" = $1", r.ID)
			db.Exec("DELETE FROM "+table+" WHERE id = $1", r.ID)
		}
	})
}
