// Package parser turns the text of a monthly service report into a
// domain.ParsedReport. Each report family implements Family; Parse picks one
// with Identify.
package parser

import (
	"fmt"
	"regexp"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/parser/text"
)

// Family is the grammar of one report family.
type Family interface {
	Type() domain.ReportType
	// parseDate recognises the reporting period line.
	parseDate(line string) (*domain.DateRange, bool)
	// parseHeader recognises a section header at lines[i], consumes the
	// section into r and returns the index of the last consumed line.
	parseHeader(lines []string, i int, r *domain.ParsedReport) (int, bool)
}

var families = map[domain.ReportType]Family{
	domain.PantryStats:    pantryStats{},
	domain.ProgramStats:   programStats{},
	domain.ServiceSummary: serviceSummary{},
}

// ForType returns the family registered for reportType.
func ForType(reportType domain.ReportType) (Family, error) {
	f, ok := families[reportType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownReport, reportType)
	}
	return f, nil
}

// Source is a document as handed over by text extraction.
type Source interface {
	// FullText is every page of the document, used for identification.
	FullText() string
	// Body is the text that gets parsed.
	Body() string
}

// Parse identifies src and parses its body with the matching family.
func Parse(src Source) (*domain.ParsedReport, error) {
	reportType := Identify(src.FullText())
	if reportType == domain.UnknownReport {
		return nil, domain.ErrUnknownReport
	}
	return ParseText(reportType, src.Body())
}

// ParseText parses raw with the family registered for reportType.
func ParseText(reportType domain.ReportType, raw string) (*domain.ParsedReport, error) {
	f, err := ForType(reportType)
	if err != nil {
		return nil, err
	}
	report := Lines(f, text.ToLines(raw))
	report.ReportType = reportType
	return report, nil
}

// Lines walks already normalized lines with f. The result has no report type
// set.
func Lines(f Family, lines []string) *domain.ParsedReport {
	r := &domain.ParsedReport{}
	for i := 0; i < len(lines); i++ {
		if dateRange, ok := f.parseDate(lines[i]); ok {
			r.DateRange = dateRange
			continue
		}
		if last, ok := f.parseHeader(lines, i, r); ok {
			i = last
		}
	}
	return r
}

var (
	bareDateRange = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4})\s+to\s+(\d{1,2}/\d{1,2}/\d{4})$`)

	numberedHeader = regexp.MustCompile(`^\d+\.\s+`)
)

func matchDateRange(re *regexp.Regexp, line string) (*domain.DateRange, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &domain.DateRange{From: m[1], To: m[2]}, true
}
