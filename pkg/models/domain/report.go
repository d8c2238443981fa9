package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// ReportType names one of the known report families.
type ReportType string

const (
	UnknownReport  ReportType = ""
	PantryStats    ReportType = "pantry-stats"
	ProgramStats   ReportType = "program-stats"
	ServiceSummary ReportType = "service-summary"
)

var ErrUnknownReport = errors.New("unknown report type")

// DateRange keeps the dates exactly as printed on the report ("M/D/YYYY").
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SameMonth reports whether both ends carry the same leading month token.
func (d DateRange) SameMonth() bool {
	return monthToken(d.From) == monthToken(d.To)
}

func monthToken(date string) string {
	month, _, _ := strings.Cut(date, "/")
	return month
}

type Items = OrderedMap[int]

// Section is one labeled-count block of a report.
type Section struct {
	Items Items `json:"items"`
}

type Sections = OrderedMap[*Section]

// ParsedReport is the structured form of one source document. Service
// summaries additionally carry the volunteer hours and operating days scalars.
type ParsedReport struct {
	ReportType     ReportType `json:"reportType,omitempty"`
	DateRange      *DateRange `json:"dateRange"`
	Sections       Sections   `json:"sections"`
	VolunteerHours *float64   `json:"volunteerHours"`
	OperatingDays  *int       `json:"operatingDays"`
}

func (r *ParsedReport) Section(title string) (*Section, bool) {
	return r.Sections.Get(title)
}

func (r ParsedReport) MarshalJSON() ([]byte, error) {
	type base struct {
		ReportType ReportType `json:"reportType,omitempty"`
		DateRange  *DateRange `json:"dateRange"`
		Sections   Sections   `json:"sections"`
	}
	b := base{ReportType: r.ReportType, DateRange: r.DateRange, Sections: r.Sections}
	if r.ReportType != ServiceSummary {
		return json.Marshal(b)
	}
	return json.Marshal(struct {
		base
		VolunteerHours *float64 `json:"volunteerHours"`
		OperatingDays  *int     `json:"operatingDays"`
	}{b, r.VolunteerHours, r.OperatingDays})
}
