package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"ProfitChart/internal/model"
)

//go:embed templates/page.html.tmpl
var pageTemplate string

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"f2":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"addf": func(a, b float64) float64 { return a + b },
	"lineY": func(base float64, i int) string {
		return fmt.Sprintf("%.2f", base+float64(i)*tooltipLine+16)
	},
}).Parse(pageTemplate))

// PageOptions configures Page.
type PageOptions struct {
	Labels Labels
	Chart  ChartOptions
}

type pageData struct {
	Labels  Labels
	State   model.ViewState
	Chart   Chart
	HasData bool
}

// Page writes the HTML document for one view state.
func Page(w io.Writer, state model.ViewState, opts PageOptions) error {
	data := pageData{Labels: opts.Labels, State: state}
	if state.Kind == model.ViewReady && len(state.Points) > 0 {
		data.HasData = true
		data.Chart = BuildChart(state.Points, opts.Chart, opts.Labels)
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}
