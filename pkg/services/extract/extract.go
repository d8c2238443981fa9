// Package extract pulls the plain text out of report PDFs.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/rs/zerolog"
)

// Document is the text of one report, page by page.
type Document struct {
	Path  string
	Pages []string
}

// FullText joins every page. Report identification looks at all of it.
func (d Document) FullText() string {
	return strings.Join(d.Pages, "\n")
}

// Body joins every page but the last one, which only carries the printing
// software's notice.
func (d Document) Body() string {
	if len(d.Pages) == 0 {
		return ""
	}
	return strings.Join(d.Pages[:len(d.Pages)-1], "\n")
}

// Extractor reads documents from disk.
type Extractor interface {
	Extract(ctx context.Context, path string) (Document, error)
}

type pdfExtractor struct{}

func NewPDFExtractor() Extractor {
	return pdfExtractor{}
}

func (pdfExtractor) Extract(ctx context.Context, path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return FromBytes(ctx, path, data)
}

// FromBytes decodes an in-memory PDF. Pages that cannot be decoded come back
// empty so page positions are kept.
func FromBytes(ctx context.Context, path string, data []byte) (Document, error) {
	logger := zerolog.Ctx(ctx)

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}

	doc := Document{Path: path, Pages: make([]string, 0, r.NumPage())}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		content, err := pageText(page)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Int("page", i).Msg("failed to extract page text")
			content = ""
		}
		doc.Pages = append(doc.Pages, content)
	}
	return doc, nil
}

// pageText lays the page's glyphs out as rows, top to bottom. Runs on a row
// that are separated by more than a character width are joined by a tab.
func pageText(page pdf.Page) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()
	return layoutRows(page.Content().Text), nil
}

type row struct {
	y      float64
	glyphs []pdf.Text
}

func layoutRows(glyphs []pdf.Text) string {
	var rows []*row
	byY := make(map[int64]*row)
	for _, g := range glyphs {
		key := int64(math.Round(g.Y))
		r, ok := byY[key]
		if !ok {
			r = &row{y: g.Y}
			byY[key] = r
			rows = append(rows, r)
		}
		r.glyphs = append(r.glyphs, g)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.glyphs, func(i, j int) bool { return r.glyphs[i].X < r.glyphs[j].X })
		var b strings.Builder
		var end float64
		for i, g := range r.glyphs {
			if i > 0 && g.X-end > math.Max(g.FontSize, 1) {
				b.WriteByte('\t')
			}
			b.WriteString(g.S)
			end = math.Max(end, g.X+g.W)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// FromText wraps text that was extracted earlier, one string per page.
func FromText(path string, pages ...string) Document {
	return Document{Path: path, Pages: pages}
}
