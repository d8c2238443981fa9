// Package section consumes the body lines of one labeled-count section.
//
// A section starts on a header line and runs until the first line accepted by
// a Boundary. Each body line goes through a Grammar which either yields an
// Item or returns nothing, optionally carrying state forward to the next line
// (labels split over several lines). The boundary line itself is never
// consumed so the caller sees it on its next iteration.
package section

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/de-tools/service-reports/pkg/models/domain"
)

// Item is one label and its count.
type Item struct {
	Label string
	Count int
}

// Boundary reports whether line opens the next section.
type Boundary func(line string) bool

// Grammar parses one body line. It returns the item found on the line, if
// any, and the state to hand to the next line.
type Grammar[S any] func(line string, state S) (item Item, ok bool, next S)

// Stateless adapts a grammar that needs no state between lines.
func Stateless(parse func(line string) (Item, bool)) Grammar[struct{}] {
	return func(line string, state struct{}) (Item, bool, struct{}) {
		item, ok := parse(line)
		return item, ok, state
	}
}

// BoundaryPattern returns a Boundary matching lines against re.
func BoundaryPattern(re *regexp.Regexp) Boundary {
	return re.MatchString
}

// Scan reads the section whose header is lines[header] and stores it in sink
// under title, replacing any earlier section with the same title. initial,
// when set, is recorded before any body line. Later items with the same label
// overwrite earlier ones.
//
// It returns the index of the last consumed line and the grammar state after
// that line.
func Scan[S any](
	lines []string,
	header int,
	sink *domain.Sections,
	title string,
	boundary Boundary,
	initial *Item,
	grammar Grammar[S],
	state S,
) (int, S) {
	sec := &domain.Section{}
	if initial != nil {
		sec.Items.Set(initial.Label, initial.Count)
	}

	i := header + 1
	for ; i < len(lines); i++ {
		if boundary(lines[i]) {
			break
		}
		var (
			item Item
			ok   bool
		)
		item, ok, state = grammar(lines[i], state)
		if ok {
			sec.Items.Set(item.Label, item.Count)
		}
	}

	sink.Set(title, sec)
	return i - 1, state
}

var countThenLabel = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// CountThenLabel is the default body grammar: "<count> <label>".
func CountThenLabel(line string) (Item, bool) {
	m := countThenLabel.FindStringSubmatch(line)
	if m == nil {
		return Item{}, false
	}
	count, ok := ParseCount(m[1])
	if !ok {
		return Item{}, false
	}
	return Item{Label: strings.TrimSpace(m[2]), Count: count}, true
}

// ParseCount converts a run of digits into a count. Values that do not fit
// an int are rejected and the caller drops the row.
func ParseCount(digits string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil {
		return 0, false
	}
	return n, true
}
