package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/service-reports/pkg/models/domain"
	"github.com/de-tools/service-reports/pkg/parser"
	"github.com/dslipak/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal PDF with one page per content stream, all pages
// sharing a Helvetica font named F1.
func buildPDF(pages ...string) []byte {
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, content := range pages {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

var summaryPages = []string{
	"BT /F1 12 Tf 72 720 Td (Service summary) Tj 0 -14 Td (1/1/2025 to 1/31/2025) Tj " +
		"0 -14 Td (3. Services) Tj 0 -14 Td (Food boxes) Tj 228 0 Td (110) Tj ET",
	"BT /F1 12 Tf 72 720 Td (This document was created with the Win2PDF) Tj ET",
}

func TestDocument_BodyDropsLastPage(t *testing.T) {
	doc := FromText("r.pdf", "Service summary\n1/1/2025 to 1/31/2025", "3. Services\nFood boxes 110", "This document was created with the Win2PDF")

	assert.Equal(t, "Service summary\n1/1/2025 to 1/31/2025\n3. Services\nFood boxes 110", doc.Body())
	assert.Contains(t, doc.FullText(), "Win2PDF")
}

func TestDocument_SinglePageHasEmptyBody(t *testing.T) {
	assert.Empty(t, FromText("r.pdf", "only page").Body())
	assert.Empty(t, Document{}.Body())
	assert.Empty(t, Document{}.FullText())
}

func TestFromBytes_PositionedLines(t *testing.T) {
	doc, err := FromBytes(context.Background(), "summary.pdf", buildPDF(summaryPages...))

	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "Service summary\n1/1/2025 to 1/31/2025\n3. Services\nFood boxes\t110", doc.Pages[0])
	assert.Equal(t, "This document was created with the Win2PDF", doc.Pages[1])
	assert.Equal(t, doc.Pages[0], doc.Body())

	report, err := parser.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceSummary, report.ReportType)
	assert.Equal(t, &domain.DateRange{From: "1/1/2025", To: "1/31/2025"}, report.DateRange)
	services, ok := report.Section(parser.Services)
	require.True(t, ok)
	count, ok := services.Items.Get("Food boxes")
	require.True(t, ok)
	assert.Equal(t, 110, count)
}

func TestExtract_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.pdf")
	require.NoError(t, os.WriteFile(path, buildPDF(summaryPages...), 0o644))

	doc, err := NewPDFExtractor().Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Len(t, doc.Pages, 2)
}

func TestLayoutRows(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []pdf.Text
		want   string
	}{
		{
			name:   "rows top to bottom",
			glyphs: []pdf.Text{
				{X: 72, Y: 700, S: "b", FontSize: 12},
				{X: 72, Y: 714, S: "a", FontSize: 12},
			},
			want: "a\nb",
		},
		{
			name:   "adjacent glyphs join",
			glyphs: []pdf.Text{
				{X: 78, Y: 700, W: 6, S: "o", FontSize: 12},
				{X: 72, Y: 700, W: 6, S: "N", FontSize: 12},
			},
			want: "No",
		},
		{
			name:   "distant runs split by tab",
			glyphs: []pdf.Text{
				{X: 72, Y: 700.2, W: 6, S: "A", FontSize: 12},
				{X: 300, Y: 699.9, W: 6, S: "7", FontSize: 12},
				{X: 306, Y: 700, W: 6, S: "5", FontSize: 12},
			},
			want: "A\t75",
		},
		{
			name: "empty page",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layoutRows(tt.glyphs))
		})
	}
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := NewPDFExtractor().Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestFromBytes_NotAPDF(t *testing.T) {
	_, err := FromBytes(context.Background(), "bad.pdf", []byte("plain text"))
	assert.Error(t, err)
}
