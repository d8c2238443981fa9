package parser

import (
	"testing"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pantryReport = `Pantry Statistical Report
1/1/2025 to 1/31/2025
A. Number of households	75	Households without children
40 Households with children
-- 1 of 2 --
Page 1 of 2
B. Number of individuals
120 Adults
60 Children
see totals below
C. Age groups 12 Under 5
30 5 to 17
12 Under 5
Report printed from TARA on 2/2/2025
`

func TestPantryStats(t *testing.T) {
	report, err := ParseText(domain.PantryStats, pantryReport)
	require.NoError(t, err)

	assert.Equal(t, &domain.DateRange{From: "1/1/2025", To: "1/31/2025"}, report.DateRange)
	assert.Equal(t, []string{"Number of households", "Number of individuals", "Age groups"}, report.Sections.Keys())

	assert.Equal(t, map[string]int{
		"Households without children": 75,
		"Households with children":    40,
	}, itemsOf(t, report, "Number of households"))
	assert.Equal(t, map[string]int{"Adults": 120, "Children": 60}, itemsOf(t, report, "Number of individuals"))
	assert.Equal(t, map[string]int{"Under 5": 12, "5 to 17": 30}, itemsOf(t, report, "Age groups"))

	assert.Nil(t, report.VolunteerHours)
	assert.Nil(t, report.OperatingDays)
}

func TestPantryStats_InlineFirstRow(t *testing.T) {
	report, err := ParseText(domain.PantryStats, "A. Number of households 75 Households without children")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Households without children": 75}, itemsOf(t, report, "Number of households"))
}

func TestPantryStats_IgnoresLettersOutsideAF(t *testing.T) {
	report, err := ParseText(domain.PantryStats, "A. Totals\n1 One\nG. Not a section\n2 Two")
	require.NoError(t, err)

	assert.Equal(t, []string{"Totals"}, report.Sections.Keys())
	assert.Equal(t, map[string]int{"One": 1, "Two": 2}, itemsOf(t, report, "Totals"))
}
