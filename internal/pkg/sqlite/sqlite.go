// Package sqlite registers the pure Go modernc.org/sqlite driver under the
// "sqlite3" name used by the ent dialect.
package sqlite

import (
	"database/sql"

	"modernc.org/sqlite"
)

// DriverName is the database/sql driver name registered by this package.
const DriverName = "sqlite3"

//nolint:gochecknoinits // database/sql drivers register on import.
func init() {
	sql.Register(DriverName, &sqlite.Driver{})
}

// MemoryDSN returns a DSN for a private shared-cache in-memory database with
// foreign keys enabled.
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
}
