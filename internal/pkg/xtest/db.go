package xtest

import (
	"database/sql"
	"testing"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/cowrite/cowrite/internal/pkg/sqlite"
)

// NewSQLiteDriver opens a private in-memory SQLite database closed with the test.
func NewSQLiteDriver(t testing.TB) *entsql.Driver {
	t.Helper()

	db, err := sql.Open(sqlite.DriverName, sqlite.MemoryDSN(uuid.NewString()))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	// Shared-cache memory databases vanish with their last connection.
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(0)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return entsql.OpenDB(dialect.SQLite, db)
}
