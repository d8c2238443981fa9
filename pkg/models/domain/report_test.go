package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange_SameMonth(t *testing.T) {
	assert.True(t, DateRange{From: "1/1/2025", To: "1/31/2025"}.SameMonth())
	assert.False(t, DateRange{From: "1/15/2025", To: "2/14/2025"}.SameMonth())
	// only the month token is compared
	assert.True(t, DateRange{From: "1/1/2024", To: "1/31/2025"}.SameMonth())
}

func TestParsedReport_JSONKeepsSectionOrder(t *testing.T) {
	r := ParsedReport{
		ReportType: PantryStats,
		DateRange:  &DateRange{From: "1/1/2025", To: "1/31/2025"},
	}
	b := &Section{}
	b.Items.Set("Zeta", 1)
	b.Items.Set("Alpha", 2)
	r.Sections.Set("B. Later", b)
	r.Sections.Set("A. Earlier", &Section{})

	data, err := json.Marshal(r)

	require.NoError(t, err)
	assert.Equal(t,
		`{"reportType":"pantry-stats","dateRange":{"from":"1/1/2025","to":"1/31/2025"},`+
			`"sections":{"B. Later":{"items":{"Zeta":1,"Alpha":2}},"A. Earlier":{"items":{}}}}`,
		string(data))
}

func TestParsedReport_ServiceSummaryCarriesScalars(t *testing.T) {
	days := 12
	data, err := json.Marshal(ParsedReport{ReportType: ServiceSummary, OperatingDays: &days})

	require.NoError(t, err)
	assert.Equal(t,
		`{"reportType":"service-summary","dateRange":null,"sections":{},"volunteerHours":null,"operatingDays":12}`,
		string(data))
}

func TestParsedReport_RoundTrip(t *testing.T) {
	doc := `{"reportType":"service-summary","dateRange":{"from":"1/1/2025","to":"1/31/2025"},` +
		`"sections":{"Services":{"items":{"Food boxes":110,"Hygiene kits":25}},"Client types":{"items":{"Households":120}}},` +
		`"volunteerHours":62.5,"operatingDays":12}`

	var r ParsedReport
	require.NoError(t, json.Unmarshal([]byte(doc), &r))

	assert.Equal(t, []string{"Services", "Client types"}, r.Sections.Keys())
	services, ok := r.Section("Services")
	require.True(t, ok)
	assert.Equal(t, []string{"Food boxes", "Hygiene kits"}, services.Items.Keys())
	require.NotNil(t, r.VolunteerHours)
	assert.Equal(t, 62.5, *r.VolunteerHours)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, doc, string(out))
}

func TestOrderedMap_SetOverwritesInPlace(t *testing.T) {
	var m OrderedMap[int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestOrderedMap_UnmarshalRejectsNonObject(t *testing.T) {
	var m OrderedMap[int]
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &m))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Zero(t, m.Len())
}
