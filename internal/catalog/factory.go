package catalog

import (
	"context"
	"fmt"

	"denticore/internal/catalog/memory"
	"denticore/internal/catalog/postgres"
	"denticore/internal/catalog/sqlite"
)

// Options selects and parameterises a catalog backend.
type Options struct {
	Driver      Driver
	SQLitePath  string
	PostgresDSN string
}

// Open constructs the catalog store described by opts. An empty driver
// selects memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverMemory
	}
	switch driver {
	case DriverMemory:
		return memory.NewStore(), nil
	case DriverSQLite:
		return sqlite.NewStore(opts.SQLitePath)
	case DriverPostgres:
		return postgres.NewStore(ctx, opts.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown catalog driver %s", driver)
	}
}
