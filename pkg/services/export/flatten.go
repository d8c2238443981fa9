// Package export writes consolidated months as spreadsheet rows.
package export

import (
	"sort"
	"strconv"

	"github.com/de-tools/service-reports/pkg/models/value"
)

const keySeparator = "."

// Row is one month flattened to dotted column names.
type Row map[string]value.Value

// Flatten turns nested maps and lists into a single level:
// {"services": {"food_boxes": 110}} becomes {"services.food_boxes": 110}.
// Empty maps and lists disappear.
func Flatten(m *value.Map) Row {
	row := make(Row)
	flattenInto(row, "", m)
	return row
}

func flattenInto(row Row, prefix string, v value.Value) {
	switch t := v.(type) {
	case *value.Map:
		t.Each(func(key string, child value.Value) {
			flattenInto(row, join(prefix, key), child)
		})
	case value.List:
		for i, child := range t {
			flattenInto(row, join(prefix, strconv.Itoa(i)), child)
		}
	default:
		row[prefix] = v
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + keySeparator + key
}

// Columns is the sorted union of every row's keys.
func Columns(rows []Row) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			seen[key] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}

// Cell renders a leaf for a text cell. Null and missing values are empty.
func Cell(v value.Value) string {
	switch t := v.(type) {
	case value.String:
		return string(t)
	case value.Number:
		return t.String()
	case value.Bool:
		return strconv.FormatBool(bool(t))
	default:
		return ""
	}
}
