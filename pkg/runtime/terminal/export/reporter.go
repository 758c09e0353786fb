package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

type TableConfig struct {
	LabelWidth  int
	AmountWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth:  24,
		AmountWidth: 16,
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

type analysisView struct {
	PeriodLabel     string
	Dimension       string
	CurrentTotal    float64
	ComparisonTotal float64
	Delta           float64
	Percent         string
	Summary         string
	Drivers         []domain.DriverRow
	Digest          []digestView
}

type digestView struct {
	Title string
	Rows  []domain.DriverRow
}

func (c *Reporter) HandleAnalysis(result *domain.AnalysisResult, summary string) error {
	view := analysisView{
		PeriodLabel:     result.PeriodLabel,
		Dimension:       result.Dimension.Label(),
		CurrentTotal:    result.CurrentTotal,
		ComparisonTotal: result.ComparisonTotal,
		Delta:           result.Delta,
		Percent:         percentDisplay(result.PercentDelta),
		Summary:         summary,
		Drivers:         result.Drivers,
	}
	for _, entry := range result.SecondaryDigest {
		view.Digest = append(view.Digest, digestView{
			Title: entry.Dimension.Label(),
			Rows:  entry.Top,
		})
	}

	tmpl := `
{{.PeriodLabel}} ({{.Dimension}})

Current Total:    {{amount .CurrentTotal}}
Comparison Total: {{amount .ComparisonTotal}}
Delta:            {{amount .Delta}} ({{.Percent}})

{{.Summary}}

{{separator}}
{{formatRow "Label" "Current" "Comparison" "Delta"}}
{{separator}}
{{range .Drivers}}{{formatRow .Label (amount .CurrentSales) (amount .ComparisonSales) (amount .Delta)}}
{{end}}{{separator}}
{{range .Digest}}
=== {{.Title}} ===
{{separator}}
{{formatRow "Label" "Current" "Comparison" "Delta"}}
{{separator}}
{{range .Rows}}{{formatRow .Label (amount .CurrentSales) (amount .ComparisonSales) (amount .Delta)}}
{{end}}{{separator}}
{{end}}
`
	return c.render("analysis", tmpl, view)
}

func (c *Reporter) HandleLookup(result *domain.EntityLookupResult, summary string) error {
	view := struct {
		Summary string
		Rows    []domain.EntityRow
	}{Summary: summary, Rows: result.Rows}

	tmpl := `
{{.Summary}}
{{if .Rows}}
{{separator}}
{{formatRow "Name" "Amount" "Quantity" ""}}
{{separator}}
{{range .Rows}}{{formatRow .Name (amount .TotalAmount) .TotalQuantity ""}}
{{end}}{{separator}}
{{end}}
`
	return c.render("lookup", tmpl, view)
}

func (c *Reporter) HandleDrivers(title string, rows []domain.DriverRow) error {
	view := struct {
		Title string
		Rows  []domain.DriverRow
	}{Title: title, Rows: rows}

	tmpl := `
{{.Title}}
{{if .Rows}}
{{separator}}
{{formatRow "Label" "Current" "Comparison" "Delta"}}
{{separator}}
{{range .Rows}}{{formatRow .Label (amount .CurrentSales) (amount .ComparisonSales) (amount .Delta)}}
{{end}}{{separator}}
{{else}}
(no rows)
{{end}}
`
	return c.render("drivers", tmpl, view)
}

func (c *Reporter) render(name, tmpl string, view interface{}) error {
	funcMap := template.FuncMap{
		"amount": func(v float64) string {
			return fmt.Sprintf("%.0f", v)
		},
		"formatRow": func(label string, current, comparison, delta interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*v | %-*v |",
				c.config.LabelWidth, label,
				c.config.AmountWidth, current,
				c.config.AmountWidth, comparison,
				c.config.AmountWidth, delta)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.LabelWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2))
		},
	}

	t, err := template.New(name).Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}

func percentDisplay(percentDelta float64) string {
	switch {
	case math.IsInf(percentDelta, 1):
		return "+∞"
	case math.IsInf(percentDelta, -1):
		return "-∞"
	}
	return fmt.Sprintf("%.1f%%", percentDelta)
}
