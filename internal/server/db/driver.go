package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-sql-driver/mysql"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/pkg/sqlite"
	"github.com/cowrite/cowrite/internal/store"
)

// Open opens the configured database and returns an ent SQL driver for it.
func Open(cfg Config) (*entsql.Driver, error) {
	var (
		driverName string
		dbDialect  string
		dsn        = cfg.DSN
	)

	switch strings.ToLower(cfg.Dialect) {
	case "postgres", "pgx", "postgresdb", "pg", "postgresql":
		driverName, dbDialect = "pgx", dialect.Postgres
	case "sqlite3", "sqlite":
		driverName, dbDialect = sqlite.DriverName, dialect.SQLite
	case "mysql", "tidb":
		var err error

		dsn, err = mysqlDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}

		driverName, dbDialect = "mysql", dialect.MySQL
	default:
		return nil, fmt.Errorf("invalid dialect: %s", cfg.Dialect)
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbDialect, err)
	}

	return entsql.OpenDB(dbDialect, sqlDB), nil
}

// mysqlDSN makes UPDATE report matched rows instead of changed rows, so an
// update that rewrites identical values still counts as applied.
func mysqlDSN(dsn string) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}

	mc.ClientFoundRows = true
	mc.ParseTime = true

	return mc.FormatDSN(), nil
}

// NewDriver opens the database and migrates the schema. It panics on failure
// since nothing can run without storage.
func NewDriver(cfg Config) *entsql.Driver {
	drv, err := Open(cfg)
	if err != nil {
		panic(err)
	}

	if err := store.Migrate(context.Background(), drv); err != nil {
		panic(fmt.Errorf("failed to migrate schema: %w", err))
	}

	log.Info(context.Background(), "database ready", log.String("dialect", drv.Dialect()))

	return drv
}
