// Package consolidate merges parsed reports of different types that cover the
// same calendar month into one flat record per month.
package consolidate

import (
	"sort"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/models/value"
)

const (
	dateRangeKey  = "daterange"
	reportTypeKey = "reporttype"
)

// Month is the merged record for one reporting month.
type Month struct {
	// From is the start date shared by every merged report, as printed.
	From string
	// Sources is the number of reports merged into Fields.
	Sources int
	Fields  *value.Map
}

// Reports cleans the keys of every report, keeps only the ones covering a
// single month and merges those sharing a start date. Months come back sorted
// by their start date as plain strings, so "10/1/2025" sorts before
// "2/1/2025". Within a month later reports overwrite earlier ones key by key;
// the report type is never copied.
func Reports(reports []value.Value) []Month {
	var (
		byDate = make(map[string][]*value.Map)
		dates  []string
	)
	for _, report := range reports {
		cleaned, ok := CleanupKeys(report).(*value.Map)
		if !ok {
			continue
		}
		dateRange, ok := reportDateRange(cleaned)
		if !ok || !dateRange.SameMonth() {
			continue
		}
		if _, seen := byDate[dateRange.From]; !seen {
			dates = append(dates, dateRange.From)
		}
		byDate[dateRange.From] = append(byDate[dateRange.From], cleaned)
	}
	sort.Strings(dates)

	months := make([]Month, 0, len(dates))
	for _, date := range dates {
		merged := value.NewMap()
		for _, report := range byDate[date] {
			report.Each(func(key string, v value.Value) {
				if key != reportTypeKey {
					merged.Set(key, v)
				}
			})
		}
		months = append(months, Month{From: date, Sources: len(byDate[date]), Fields: merged})
	}
	return months
}

// ParsedReports is Reports over freshly parsed reports.
func ParsedReports(reports []*domain.ParsedReport) ([]Month, error) {
	values := make([]value.Value, 0, len(reports))
	for _, report := range reports {
		v, err := value.From(report)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return Reports(values), nil
}

// reportDateRange reads the cleaned "daterange" entry. Reports without one
// cannot be placed in a month.
func reportDateRange(report *value.Map) (domain.DateRange, bool) {
	dr, ok := report.GetMap(dateRangeKey)
	if !ok {
		return domain.DateRange{}, false
	}
	from, okFrom := dr.GetString("from")
	to, okTo := dr.GetString("to")
	if !okFrom || !okTo {
		return domain.DateRange{}, false
	}
	return domain.DateRange{From: from, To: to}, true
}
