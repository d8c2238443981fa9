// Package workflow runs the report pipelines over directories: PDF to text,
// PDF to parsed JSON, and parsed JSON to consolidated months.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/de-tools/service-reports/pkg/adapters"
	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/models/store"
	"github.com/de-tools/service-reports/pkg/parser"
	"github.com/de-tools/service-reports/pkg/services/extract"
	"github.com/de-tools/service-reports/pkg/store/fs"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	ConsolidatedJSON = "consolidated.json"
	ConsolidatedCSV  = "consolidated.csv"
	ConsolidatedXLSX = "consolidated.xlsx"
)

// ReportStore persists pipeline results next to the files.
type ReportStore interface {
	SaveParsed(ctx context.Context, report store.ParsedReport) error
	SaveConsolidated(ctx context.Context, reports []store.ConsolidatedReport) error
}

type RunnerConfig struct {
	// Workers bounds the documents processed at once.
	Workers int
}

type Runner struct {
	extractor extract.Extractor
	store     ReportStore
	config    RunnerConfig
}

// NewRunner builds a runner. reports may be nil, in which case results are only
// written to disk.
func NewRunner(extractor extract.Extractor, reports ReportStore, config RunnerConfig) *Runner {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Runner{
		extractor: extractor,
		store:     reports,
		config:    config,
	}
}

// Summary counts what a pipeline did with the files it found.
type Summary struct {
	Processed int64
	Skipped   int64
}

// ToText writes the full text of every PDF below in to the mirrored .txt path
// below out.
func (r *Runner) ToText(ctx context.Context, in, out string) (Summary, error) {
	return r.eachPDF(ctx, in, func(ctx context.Context, file string) (bool, error) {
		doc, err := r.extractor.Extract(ctx, file)
		if err != nil {
			return false, err
		}
		target, err := fs.Mirror(in, out, file, ".txt")
		if err != nil {
			return false, err
		}
		zerolog.Ctx(ctx).Info().Str("file", file).Str("target", target).Msg("saving text")
		return true, fs.WriteFile(target, []byte(doc.FullText()))
	})
}

// ParseReports parses every PDF below in and writes the report as indented
// JSON to the mirrored .json path below out. Documents that are not a known
// report are skipped.
func (r *Runner) ParseReports(ctx context.Context, in, out string) (Summary, error) {
	return r.eachPDF(ctx, in, func(ctx context.Context, file string) (bool, error) {
		logger := zerolog.Ctx(ctx)

		doc, err := r.extractor.Extract(ctx, file)
		if err != nil {
			return false, err
		}
		report, err := parser.Parse(doc)
		if errors.Is(err, domain.ErrUnknownReport) {
			logger.Warn().Str("file", file).Msg("skipping report because it could not be identified")
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		logger.Info().Str("file", file).Str("report_type", string(report.ReportType)).Msg("identified report")

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return false, fmt.Errorf("failed to marshal %s: %w", file, err)
		}
		target, err := fs.Mirror(in, out, file, ".json")
		if err != nil {
			return false, err
		}
		if err := fs.WriteFile(target, data); err != nil {
			return false, err
		}

		if r.store != nil {
			source, err := fs.Relative(in, file)
			if err != nil {
				return false, err
			}
			record, err := adapters.MapDomainParsedReportToStore(source, report)
			if err != nil {
				return false, err
			}
			if err := r.store.SaveParsed(ctx, record); err != nil {
				return false, fmt.Errorf("failed to store %s: %w", file, err)
			}
		}
		return true, nil
	})
}

// eachPDF runs fn for every PDF below in on a bounded pool of workers.
// Non-PDF files are skipped. The first error stops the remaining files.
func (r *Runner) eachPDF(
	ctx context.Context,
	in string,
	fn func(ctx context.Context, file string) (bool, error),
) (Summary, error) {
	logger := zerolog.Ctx(ctx)

	files, err := fs.Crawl(ctx, in)
	if err != nil {
		return Summary{}, err
	}

	var processed, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)
	for _, file := range files {
		if gctx.Err() != nil {
			break
		}
		if !fs.HasExt(file, ".pdf") {
			logger.Warn().Str("file", file).Msg("skipping non-PDF file")
			skipped.Add(1)
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := fn(gctx, file)
			if err != nil {
				return err
			}
			if ok {
				processed.Add(1)
			} else {
				skipped.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()
	return Summary{Processed: processed.Load(), Skipped: skipped.Load()}, err
}

// readReports decodes every .json file below in, in path order.
func readReports(ctx context.Context, in string) ([]string, [][]byte, error) {
	files, err := fs.Crawl(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	var (
		names []string
		docs  [][]byte
	)
	for _, file := range files {
		if !fs.HasExt(file, ".json") {
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		names = append(names, file)
		docs = append(docs, data)
	}
	return names, docs, nil
}
