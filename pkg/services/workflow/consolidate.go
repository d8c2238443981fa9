package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/de-tools/service-reports/pkg/adapters"
	"github.com/de-tools/service-reports/pkg/models/value"
	"github.com/de-tools/service-reports/pkg/services/consolidate"
	"github.com/de-tools/service-reports/pkg/services/export"
	"github.com/de-tools/service-reports/pkg/store/fs"
	"github.com/rs/zerolog"
)

// ConsolidateReports merges every parsed report below in into one record per
// month and writes consolidated.json, consolidated.csv and consolidated.xlsx
// into out.
func (r *Runner) ConsolidateReports(ctx context.Context, in, out string) ([]consolidate.Month, error) {
	logger := zerolog.Ctx(ctx)

	names, docs, err := readReports(ctx, in)
	if err != nil {
		return nil, err
	}
	reports := make([]value.Value, 0, len(docs))
	for i, doc := range docs {
		v, err := value.Parse(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", names[i], err)
		}
		reports = append(reports, v)
	}

	months := consolidate.Reports(reports)
	for _, month := range months {
		logger.Info().Str("month", month.From).Int("reports", month.Sources).Msg("handled month")
	}
	if excluded := len(reports) - countSources(months); excluded > 0 {
		logger.Warn().Int("reports", excluded).Msg("reports without a single-month date range were left out")
	}

	if err := writeConsolidated(out, months); err != nil {
		return nil, err
	}
	if r.store != nil {
		records, err := adapters.MapMonthsToStore(months)
		if err != nil {
			return nil, err
		}
		if err := r.store.SaveConsolidated(ctx, records); err != nil {
			return nil, fmt.Errorf("failed to store consolidated reports: %w", err)
		}
	}
	return months, nil
}

func countSources(months []consolidate.Month) int {
	n := 0
	for _, m := range months {
		n += m.Sources
	}
	return n
}

func writeConsolidated(out string, months []consolidate.Month) error {
	fields := make([]*value.Map, len(months))
	rows := make([]export.Row, len(months))
	for i, m := range months {
		fields[i] = m.Fields
		rows[i] = export.Flatten(m.Fields)
	}

	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal consolidated reports: %w", err)
	}
	if err := fs.WriteFile(filepath.Join(out, ConsolidatedJSON), data); err != nil {
		return err
	}

	var csvBuf bytes.Buffer
	if err := export.WriteCSV(&csvBuf, rows); err != nil {
		return err
	}
	if err := fs.WriteFile(filepath.Join(out, ConsolidatedCSV), csvBuf.Bytes()); err != nil {
		return err
	}

	var xlsxBuf bytes.Buffer
	if err := export.WriteXLSX(&xlsxBuf, rows); err != nil {
		return err
	}
	return fs.WriteFile(filepath.Join(out, ConsolidatedXLSX), xlsxBuf.Bytes())
}
