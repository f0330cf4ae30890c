package repository

import (
	"context"
	"fmt"
)

// Inbox store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// OpenContactStore opens the inbox store for driver. dsn is a Postgres
// connection string or a SQLite file path.
func OpenContactStore(ctx context.Context, driver, dsn string) (ContactStore, error) {
	switch driver {
	case DriverPostgres:
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return NewPgContactRepository(pool), nil
	case DriverSQLite:
		repo, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown inbox driver %q", driver)
	}
}
