package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/service-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/service-reports/pkg/services/config"
	"github.com/de-tools/service-reports/pkg/services/extract"
	"github.com/de-tools/service-reports/pkg/services/s3sync"
	"github.com/de-tools/service-reports/pkg/store/duckdb"
	"github.com/de-tools/service-reports/pkg/store/duckdb/reports"
)

// S3ClientFactory builds the bucket client for sync-s3.
type S3ClientFactory func(ctx context.Context, profile, region string) (s3sync.Client, error)

// Env is shared by every command. Config is filled in by the root command
// before any of them runs.
type Env struct {
	Config      *config.Config
	Extractor   extract.Extractor
	Reporter    *export.Reporter
	NewS3Client S3ClientFactory
}

// openStore opens the report database at path. An empty path means results
// are only written to disk, and the returned store is nil.
func openStore(path string, threads int) (reports.Store, func() error, error) {
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: path, Threads: threads})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	store, err := reports.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create report store: %w", err)
	}
	return store, db.Close, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
