package parser

import (
	"strings"

	"github.com/de-tools/service-reports/pkg/models/domain"
)

// markers are checked in order; documents can carry more than one of them.
var markers = []struct {
	text       string
	reportType domain.ReportType
}{
	{"Pantry Statistical Report", domain.PantryStats},
	{"Program Statistics", domain.ProgramStats},
	{"Service summary", domain.ServiceSummary},
}

// Identify classifies raw, uncleaned report text. It returns
// domain.UnknownReport when no marker is present.
func Identify(raw string) domain.ReportType {
	for _, m := range markers {
		if strings.Contains(raw, m.text) {
			return m.reportType
		}
	}
	return domain.UnknownReport
}
