package parser

import (
	"regexp"
	"strings"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/parser/section"
)

var (
	// "A. Number of households 75 Households without children"
	pantryHeaderWithRow = regexp.MustCompile(`^([A-F])\.\s+(.+?)\s+(\d+)\s+(.+)$`)
	pantryHeader        = regexp.MustCompile(`^([A-F])\.\s+(.+)$`)
	pantryBoundary      = regexp.MustCompile(`^[A-F]\.\s+`)
)

// pantryStats parses the Pantry Statistical Report: lettered sections A-F
// whose rows read "<count> <label>".
type pantryStats struct{}

func (pantryStats) Type() domain.ReportType { return domain.PantryStats }

func (pantryStats) parseDate(line string) (*domain.DateRange, bool) {
	return matchDateRange(bareDateRange, line)
}

func (p pantryStats) parseHeader(lines []string, i int, r *domain.ParsedReport) (int, bool) {
	title, initial, ok := p.header(lines[i])
	if !ok {
		return i, false
	}
	last, _ := section.Scan(lines, i, &r.Sections, title, p.boundary, initial,
		section.Stateless(p.lineGrammar), struct{}{})
	return last, true
}

// header returns the section title and, when the header line also carries the
// first row ("<title> <count> <label>"), that row.
func (pantryStats) header(line string) (string, *section.Item, bool) {
	if m := pantryHeaderWithRow.FindStringSubmatch(line); m != nil {
		if count, ok := section.ParseCount(m[3]); ok {
			return strings.TrimSpace(m[2]), &section.Item{Label: strings.TrimSpace(m[4]), Count: count}, true
		}
	}
	if m := pantryHeader.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2]), nil, true
	}
	return "", nil, false
}

func (pantryStats) boundary(line string) bool {
	return pantryBoundary.MatchString(line)
}

func (pantryStats) lineGrammar(line string) (section.Item, bool) {
	return section.CountThenLabel(line)
}
