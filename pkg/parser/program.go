package parser

import (
	"regexp"
	"strings"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/parser/section"
)

var (
	programDateRange = regexp.MustCompile(`All people active from (\d{1,2}/\d{1,2}/\d{4}) to (\d{1,2}/\d{1,2}/\d{4})`)
	// "1. Age groups People"
	programHeader = regexp.MustCompile(`^(\d+)\.\s+(.+?)(?:\s+People)?\s*$`)
)

// programStats parses the Program Statistics report: numbered sections with
// "<count> <label>" rows.
type programStats struct{}

func (programStats) Type() domain.ReportType { return domain.ProgramStats }

func (programStats) parseDate(line string) (*domain.DateRange, bool) {
	return matchDateRange(programDateRange, line)
}

func (p programStats) parseHeader(lines []string, i int, r *domain.ParsedReport) (int, bool) {
	m := programHeader.FindStringSubmatch(lines[i])
	if m == nil {
		return i, false
	}
	last, _ := section.Scan(lines, i, &r.Sections, strings.TrimSpace(m[2]), p.boundary, nil,
		section.Stateless(p.lineGrammar), struct{}{})
	return last, true
}

func (programStats) boundary(line string) bool {
	return numberedHeader.MatchString(line)
}

func (programStats) lineGrammar(line string) (section.Item, bool) {
	return section.CountThenLabel(line)
}
