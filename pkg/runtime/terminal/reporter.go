package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/pidim-smart/report-dashboard/pkg/models/domain"
)

// Reporter outputs report tables to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// Handle prints each table with its rows and totals footer.
func (c *Reporter) Handle(tables []domain.Table) error {
	tmpl := `
{{- range . }}
=== {{.Title}}{{if .Subtitle}} ({{.Subtitle}}){{end}} ===
{{join .Headers}}
{{- if .Rows}}
{{- range .Rows}}
{{join .Cells}}
{{- end}}
{{- else}}
(no data)
{{- end}}
{{- if .Footer}}
Totals: {{join .Footer}}
{{- end}}
{{ end -}}
`
	t, err := template.New("report").Funcs(template.FuncMap{
		"join": func(cells []string) string { return strings.Join(cells, " | ") },
	}).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, tables)
}
