package parser

import (
	"testing"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/parser/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceReport = `Service summary
1/1/2025 to 1/31/2025
1. Client types
a. Households 120
b. Individuals in
households
340
c. Seniors / Disabled
d. Veterans 4
e. Homeless
2. Client visit frequency
a. First visit 10
b. Returning 90
c. Other
3. Services
Food boxes 110
Hygiene kits 25
4. Volunteer hours
62.5
5. Operating days
12
`

func TestServiceSummary(t *testing.T) {
	report, err := ParseText(domain.ServiceSummary, serviceReport)
	require.NoError(t, err)

	assert.Equal(t, &domain.DateRange{From: "1/1/2025", To: "1/31/2025"}, report.DateRange)
	assert.Equal(t, []string{ClientTypes, ClientVisitFrequency, Services}, report.Sections.Keys())

	assert.Equal(t, map[string]int{
		"Households":                120,
		"Individuals in households": 340,
		"Veterans":                  4,
		"Homeless":                  0,
	}, itemsOf(t, report, ClientTypes))
	assert.Equal(t, map[string]int{"First visit": 10, "Returning": 90}, itemsOf(t, report, ClientVisitFrequency))
	assert.Equal(t, map[string]int{"Food boxes": 110, "Hygiene kits": 25}, itemsOf(t, report, Services))

	require.NotNil(t, report.VolunteerHours)
	assert.Equal(t, 62.5, *report.VolunteerHours)
	require.NotNil(t, report.OperatingDays)
	assert.Equal(t, 12, *report.OperatingDays)
}

func TestServiceSummary_ClientTypesStopsAtNextHeader(t *testing.T) {
	lines := []string{"1. Client types", "a. Households 120", "2. Client visit frequency"}
	r := &domain.ParsedReport{}

	last, ok := serviceSummary{}.parseHeader(lines, 0, r)

	require.True(t, ok)
	assert.Equal(t, 1, last)
	assert.Equal(t, map[string]int{"Households": 120}, itemsOf(t, r, ClientTypes))
}

func TestServiceSummary_ScalarsNeedANumber(t *testing.T) {
	report, err := ParseText(domain.ServiceSummary, "4. Volunteer hours\nnone\n5. Operating days\n1.5")
	require.NoError(t, err)

	assert.Nil(t, report.VolunteerHours)
	assert.Nil(t, report.OperatingDays)
	assert.Zero(t, report.Sections.Len())
}

func TestClientTypesGrammar(t *testing.T) {
	none := pendingLabel{}
	tests := []struct {
		name        string
		line        string
		pending     pendingLabel
		wantItem    *section.Item
		wantPending pendingLabel
	}{
		{
			name:        "single line row",
			line:        "a. Households 120",
			pending:     pendingLabel{label: "Old", set: true},
			wantItem:    &section.Item{Label: "Households", Count: 120},
			wantPending: none,
		},
		{
			name:        "label without count becomes pending",
			line:        "b. Individuals in",
			pending:     none,
			wantPending: pendingLabel{label: "Individuals in", set: true},
		},
		{
			name:        "new label replaces pending",
			line:        "C. Seniors",
			pending:     pendingLabel{label: "Old", set: true},
			wantPending: pendingLabel{label: "Seniors", set: true},
		},
		{
			name:        "continuation is appended",
			line:        " households ",
			pending:     pendingLabel{label: "Individuals in", set: true},
			wantPending: pendingLabel{label: "Individuals in households", set: true},
		},
		{
			name:        "bare count completes pending",
			line:        "340",
			pending:     pendingLabel{label: "Individuals in households", set: true},
			wantItem:    &section.Item{Label: "Individuals in households", Count: 340},
			wantPending: none,
		},
		{
			name:        "bare count without pending is noise",
			line:        "340",
			pending:     none,
			wantPending: none,
		},
		{
			name:        "letter without label keeps pending",
			line:        "f. Outside range",
			pending:     pendingLabel{label: "Homeless", set: true},
			wantPending: pendingLabel{label: "Homeless f. Outside range", set: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item, ok, next := clientTypesGrammar(tc.line, tc.pending)
			if tc.wantItem == nil {
				assert.False(t, ok)
			} else {
				require.True(t, ok)
				assert.Equal(t, *tc.wantItem, item)
			}
			assert.Equal(t, tc.wantPending, next)
		})
	}
}

func TestVisitFrequencyAndServiceLines(t *testing.T) {
	item, ok := visitFrequencyLine("b. Returning 90")
	require.True(t, ok)
	assert.Equal(t, "Returning", item.Label)
	assert.Equal(t, 90, item.Count)

	_, ok = visitFrequencyLine("d. Out of range 3")
	assert.False(t, ok)

	item, ok = serviceLine("Clothing vouchers 7")
	require.True(t, ok)
	assert.Equal(t, "Clothing vouchers", item.Label)
	assert.Equal(t, 7, item.Count)

	_, ok = serviceLine("Clothing vouchers")
	assert.False(t, ok)
}
