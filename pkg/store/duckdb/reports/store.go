package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/service-reports/pkg/models/store"
	"github.com/de-tools/service-reports/pkg/store/duckdb"
)

var ErrNotFound = errors.New("report not found")

// Store keeps parsed reports and the last consolidation in DuckDB.
type Store interface {
	SaveParsed(ctx context.Context, report store.ParsedReport) error
	// SaveConsolidated replaces every stored month with reports.
	SaveConsolidated(ctx context.Context, reports []store.ConsolidatedReport) error
	ListConsolidated(ctx context.Context) ([]store.ConsolidatedReport, error)
	GetConsolidated(ctx context.Context, month string) (*store.ConsolidatedReport, error)
}

type reportStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{
		db:  db,
		now: time.Now,
	}, nil
}

func (s *reportStore) SaveParsed(ctx context.Context, report store.ParsedReport) error {
	query := `
		INSERT OR REPLACE INTO parsed_reports (
			source, report_type, date_from, date_to, body, parsed_at
		) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, query,
		report.Source,
		report.ReportType,
		nullString(report.DateFrom),
		nullString(report.DateTo),
		string(report.Body),
		s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert parsed report: %w", err)
	}
	return nil
}

func (s *reportStore) SaveConsolidated(ctx context.Context, reports []store.ConsolidatedReport) error {
	return duckdb.InTransaction(ctx, s.db, func(ctx context.Context) error {
		conn := duckdb.Conn(ctx, s.db)
		if _, err := conn.ExecContext(ctx, `DELETE FROM consolidated_reports`); err != nil {
			return fmt.Errorf("clear consolidated reports: %w", err)
		}
		if len(reports) == 0 {
			return nil
		}

		stmt, err := conn.PrepareContext(ctx, `
			INSERT INTO consolidated_reports (month, sources, body, updated_at)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare statement: %w", err)
		}
		defer stmt.Close()

		updatedAt := s.now().UTC()
		for _, report := range reports {
			if _, err := stmt.ExecContext(ctx, report.Month, report.Sources, string(report.Body), updatedAt); err != nil {
				return fmt.Errorf("insert month %s: %w", report.Month, err)
			}
		}
		return nil
	})
}

func (s *reportStore) ListConsolidated(ctx context.Context) ([]store.ConsolidatedReport, error) {
	query := `
		SELECT month, sources, CAST(body AS VARCHAR), updated_at
		FROM consolidated_reports
		ORDER BY month
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query consolidated reports: %w", err)
	}
	defer rows.Close()

	reports := make([]store.ConsolidatedReport, 0)
	for rows.Next() {
		report, err := scanConsolidated(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consolidated reports: %w", err)
	}
	return reports, nil
}

func (s *reportStore) GetConsolidated(ctx context.Context, month string) (*store.ConsolidatedReport, error) {
	query := `
		SELECT month, sources, CAST(body AS VARCHAR), updated_at
		FROM consolidated_reports
		WHERE month = ?
	`
	report, err := scanConsolidated(s.db.QueryRowContext(ctx, query, month))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, month)
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConsolidated(row scanner) (store.ConsolidatedReport, error) {
	var (
		report store.ConsolidatedReport
		body   string
	)
	if err := row.Scan(&report.Month, &report.Sources, &body, &report.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return report, err
		}
		return report, fmt.Errorf("scan consolidated report: %w", err)
	}
	report.Body = []byte(body)
	return report, nil
}
