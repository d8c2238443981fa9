package consolidate

import (
	"regexp"
	"strings"

	"github.com/de-tools/service-reports/pkg/models/value"
)

// Keys that only exist because of how sections are scanned. Their children are
// lifted into the enclosing map.
const (
	itemsKey    = "items"
	sectionsKey = "sections"
)

var (
	parenthesized  = regexp.MustCompile(`\(.*\)`)
	numberedPrefix = regexp.MustCompile(`^\w\. `)
)

// CleanupKey turns a report label into a column-friendly key:
// "A. Pantry Stats (2024)" becomes "pantry_stats" and "Seniors / Disabled"
// becomes "seniors_disabled".
func CleanupKey(key string) string {
	key = strings.TrimSpace(key)
	key = replaceFirst(parenthesized, key)
	key = replaceFirst(numberedPrefix, key)
	key = strings.ReplaceAll(key, " / ", "_")
	key = strings.TrimSpace(key)
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ToLower(key)
}

func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// CleanupKeys rewrites every map key in the tree with CleanupKey. The children
// of "sections" and "items" are moved up into the map that held them and the
// wrapper keys are dropped. Leaves are returned unchanged.
func CleanupKeys(v value.Value) value.Value {
	switch t := v.(type) {
	case *value.Map:
		return cleanupMap(t)
	case value.List:
		out := make(value.List, len(t))
		for i, elem := range t {
			out[i] = CleanupKeys(elem)
		}
		return out
	default:
		return v
	}
}

func cleanupMap(m *value.Map) *value.Map {
	out := value.NewMap()
	m.Each(func(key string, child value.Value) {
		if key == itemsKey || key == sectionsKey {
			return
		}
		out.Set(CleanupKey(key), CleanupKeys(child))
	})
	for _, wrapper := range []string{sectionsKey, itemsKey} {
		lifted, ok := m.GetMap(wrapper)
		if !ok {
			continue
		}
		lifted.Each(func(key string, child value.Value) {
			out.Set(CleanupKey(key), CleanupKeys(child))
		})
	}
	return out
}
