package sim

import (
	"context"
	"fmt"
	"os"

	"genedrive/internal/infra/persistence/memory"
	"genedrive/internal/infra/persistence/postgres"
	"genedrive/internal/infra/persistence/sqlite"
	"genedrive/pkg/report"
)

// StorageDriver identifies a concrete report store implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenReportStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	GENEDRIVE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	GENEDRIVE_SQLITE_PATH: path to sqlite file (default ./genedrive.db)
//	GENEDRIVE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenReportStore(ctx context.Context) (report.Store, error) {
	driver := os.Getenv("GENEDRIVE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("GENEDRIVE_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.NewStore(ctx, os.Getenv("GENEDRIVE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
