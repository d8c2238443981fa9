package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ParsedReportsSchema = `
	CREATE TABLE IF NOT EXISTS parsed_reports (
		source VARCHAR NOT NULL,
		report_type VARCHAR NOT NULL,
		date_from VARCHAR NULL,
		date_to VARCHAR NULL,
		body JSON NOT NULL,
		parsed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (source)
	);
`
const ConsolidatedReportsSchema = `
	CREATE TABLE IF NOT EXISTS consolidated_reports (
		month VARCHAR NOT NULL,
		sources INTEGER NOT NULL,
		body JSON NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (month)
	);
`

var bootQueries = []string{
	ParsedReportsSchema,
	ConsolidatedReportsSchema,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads < 1 {
		threads = 4
	}
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
