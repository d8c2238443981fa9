package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/parser/section"
)

const (
	ClientTypes          = "Client types"
	ClientVisitFrequency = "Client visit frequency"
	Services             = "Services"
)

var (
	clientTypesHeader    = regexp.MustCompile(`(?i)^1\.\s+Client types$`)
	visitFrequencyHeader = regexp.MustCompile(`(?i)^2\.\s+Client visit frequency`)
	servicesHeader       = regexp.MustCompile(`(?i)^3\.\s+Services`)
	volunteerHoursHeader = regexp.MustCompile(`(?i)^4\.\s+Volunteer hours$`)
	operatingDaysHeader  = regexp.MustCompile(`(?i)^5\.\s+Operating days$`)

	bareCount     = regexp.MustCompile(`^\d+$`)
	bareDecimal   = regexp.MustCompile(`^([\d.]+)\s*$`)
	bareInteger   = regexp.MustCompile(`^(\d+)\s*$`)
	trailingCount = regexp.MustCompile(`\s+(\d+)\s*$`)

	clientTypeRow   = regexp.MustCompile(`(?i)^([a-e])\.\s+(.+?)\s+(\d+)\s*$`)
	clientTypeLabel = regexp.MustCompile(`(?i)^([a-e])\.\s+(.+)$`)
	clientTypeStart = regexp.MustCompile(`(?i)^[a-e]\.`)
	visitRow        = regexp.MustCompile(`(?i)^([a-c])\.\s+(.+?)\s+(\d+)\s*$`)
	serviceRow      = regexp.MustCompile(`^(.+?)\s+(\d+)\s*$`)
)

// serviceSummary parses the Service summary report: three itemized sections
// followed by the volunteer hours and operating days figures.
type serviceSummary struct{}

func (serviceSummary) Type() domain.ReportType { return domain.ServiceSummary }

func (serviceSummary) parseDate(line string) (*domain.DateRange, bool) {
	return matchDateRange(bareDateRange, line)
}

func (s serviceSummary) parseHeader(lines []string, i int, r *domain.ParsedReport) (int, bool) {
	line := lines[i]
	switch {
	case clientTypesHeader.MatchString(line):
		last, state := section.Scan(lines, i, &r.Sections, ClientTypes, s.boundary, nil,
			clientTypesGrammar, pendingLabel{})
		if state.set {
			sec, _ := r.Section(ClientTypes)
			sec.Items.Set(state.label, 0)
		}
		return last, true

	case visitFrequencyHeader.MatchString(line):
		last, _ := section.Scan(lines, i, &r.Sections, ClientVisitFrequency, s.boundary, nil,
			section.Stateless(visitFrequencyLine), struct{}{})
		return last, true

	case servicesHeader.MatchString(line):
		last, _ := section.Scan(lines, i, &r.Sections, Services, s.boundary, nil,
			section.Stateless(serviceLine), struct{}{})
		return last, true

	case volunteerHoursHeader.MatchString(line) && i+1 < len(lines):
		if m := bareDecimal.FindStringSubmatch(lines[i+1]); m != nil {
			if hours, err := strconv.ParseFloat(m[1], 64); err == nil {
				r.VolunteerHours = &hours
				return i + 1, true
			}
		}
		return i, true

	case operatingDaysHeader.MatchString(line) && i+1 < len(lines):
		if m := bareInteger.FindStringSubmatch(lines[i+1]); m != nil {
			if days, ok := section.ParseCount(m[1]); ok {
				r.OperatingDays = &days
				return i + 1, true
			}
		}
		return i, true
	}
	return i, false
}

func (serviceSummary) boundary(line string) bool {
	return numberedHeader.MatchString(line)
}

// pendingLabel is a client type label still waiting for its count.
type pendingLabel struct {
	label string
	set   bool
}

func (p pendingLabel) extend(fragment string) pendingLabel {
	return pendingLabel{label: p.label + " " + fragment, set: true}
}

// clientTypesGrammar handles labels that wrap over several lines and counts
// printed on a line of their own:
//
//	a. Households 120         -> Households: 120
//	b. Individuals in         -> pending "Individuals in"
//	households                -> pending "Individuals in households"
//	340                       -> Individuals in households: 340
//
// A new lettered label abandons an unresolved pending one.
func clientTypesGrammar(line string, pending pendingLabel) (section.Item, bool, pendingLabel) {
	trimmed := strings.TrimSpace(line)

	if pending.set && bareCount.MatchString(trimmed) {
		count, ok := section.ParseCount(trimmed)
		return section.Item{Label: pending.label, Count: count}, ok, pendingLabel{}
	}

	if m := clientTypeRow.FindStringSubmatch(line); m != nil {
		count, ok := section.ParseCount(m[3])
		return section.Item{Label: strings.TrimSpace(m[2]), Count: count}, ok, pendingLabel{}
	}

	if m := clientTypeLabel.FindStringSubmatch(line); m != nil {
		label := strings.TrimSpace(m[2])
		if n := trailingCount.FindStringSubmatch(label); n != nil {
			count, ok := section.ParseCount(n[1])
			label = strings.TrimSpace(trailingCount.ReplaceAllString(label, ""))
			return section.Item{Label: label, Count: count}, ok, pendingLabel{}
		}
		return section.Item{}, false, pendingLabel{label: label, set: true}
	}

	if pending.set && !clientTypeStart.MatchString(line) {
		return section.Item{}, false, pending.extend(trimmed)
	}
	return section.Item{}, false, pending
}

func visitFrequencyLine(line string) (section.Item, bool) {
	m := visitRow.FindStringSubmatch(line)
	if m == nil {
		return section.Item{}, false
	}
	count, ok := section.ParseCount(m[3])
	return section.Item{Label: strings.TrimSpace(m[2]), Count: count}, ok
}

func serviceLine(line string) (section.Item, bool) {
	m := serviceRow.FindStringSubmatch(line)
	if m == nil {
		return section.Item{}, false
	}
	count, ok := section.ParseCount(m[2])
	return section.Item{Label: strings.TrimSpace(m[1]), Count: count}, ok
}
