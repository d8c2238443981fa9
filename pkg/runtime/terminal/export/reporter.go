package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/service-reports/pkg/services/consolidate"
)

type TableConfig struct {
	MonthWidth   int
	KeysWidth    int
	SourcesWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MonthWidth:   12,
		KeysWidth:    8,
		SourcesWidth: 8,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Summary is what one pipeline command did.
type Summary struct {
	Title     string
	Processed int64
	Skipped   int64
	Output    string
}

func (c *Reporter) HandleSummary(summary Summary) error {
	tmpl := `{{.Title}}: {{.Processed}} processed, {{.Skipped}} skipped{{if .Output}}
Output: {{.Output}}{{end}}
`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}

type monthRow struct {
	Month   string
	Keys    int
	Sources int
}

// HandleMonths prints one table row per consolidated month.
func (c *Reporter) HandleMonths(months []consolidate.Month) error {
	rows := make([]monthRow, 0, len(months))
	for _, m := range months {
		rows = append(rows, monthRow{Month: m.From, Keys: m.Fields.Len(), Sources: m.Sources})
	}

	funcMap := template.FuncMap{
		"formatRow": func(month string, keys interface{}, sources interface{}) string {
			return fmt.Sprintf("| %-*s | %*v | %*v |",
				c.config.MonthWidth, month,
				c.config.KeysWidth, keys,
				c.config.SourcesWidth, sources)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.MonthWidth+2),
				strings.Repeat("-", c.config.KeysWidth+2),
				strings.Repeat("-", c.config.SourcesWidth+2))
		},
	}

	tmpl := `Consolidated months: {{len .}}
{{separator}}
{{formatRow "Month" "Keys" "Reports"}}
{{separator}}
{{range .}}{{formatRow .Month .Keys .Sources}}
{{end}}{{separator}}
`

	t, err := template.New("months").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, rows)
}
