package parser

import (
	"errors"
	"testing"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textSource struct {
	full string
	body string
}

func (s textSource) FullText() string { return s.full }
func (s textSource) Body() string     { return s.body }

func itemsOf(t *testing.T, r *domain.ParsedReport, title string) map[string]int {
	t.Helper()
	sec, ok := r.Section(title)
	require.True(t, ok, "section %q missing, have %v", title, r.Sections.Keys())
	out := make(map[string]int)
	for _, label := range sec.Items.Keys() {
		out[label], _ = sec.Items.Get(label)
	}
	return out
}

func TestParse_UsesFullTextToIdentifyAndBodyToParse(t *testing.T) {
	src := textSource{
		full: "Pantry Statistical Report\n1/1/2025 to 1/31/2025\nA. Totals 3 Boxes\nlast page",
		body: "Pantry Statistical Report\n1/1/2025 to 1/31/2025\nA. Totals 3 Boxes",
	}

	report, err := Parse(src)

	require.NoError(t, err)
	assert.Equal(t, domain.PantryStats, report.ReportType)
	assert.Equal(t, map[string]int{"Boxes": 3}, itemsOf(t, report, "Totals"))
}

func TestParse_UnknownReport(t *testing.T) {
	_, err := Parse(textSource{full: "Annual letter", body: "Annual letter"})
	assert.True(t, errors.Is(err, domain.ErrUnknownReport))

	_, err = ParseText("financials", "anything")
	assert.ErrorIs(t, err, domain.ErrUnknownReport)
}

func TestParseText_NoHeadersYieldsEmptySections(t *testing.T) {
	for _, reportType := range []domain.ReportType{domain.PantryStats, domain.ProgramStats, domain.ServiceSummary} {
		t.Run(string(reportType), func(t *testing.T) {
			report, err := ParseText(reportType, "just some words\nand more words\n42 things")

			require.NoError(t, err)
			assert.Equal(t, reportType, report.ReportType)
			assert.Zero(t, report.Sections.Len())
			assert.Nil(t, report.DateRange)
		})
	}
}

func TestForType(t *testing.T) {
	f, err := ForType(domain.ServiceSummary)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceSummary, f.Type())

	_, err = ForType(domain.UnknownReport)
	assert.ErrorIs(t, err, domain.ErrUnknownReport)
}
