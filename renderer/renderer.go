package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates holds every embedded template, named after its file.
var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"cell": escapeCell,
}).ParseFS(templateFS, "templates/*.md"))

// RenderOverview renders the Overview of a workbook to a markdown string.
func RenderOverview(o *Overview) string {
	return execute("overview.md", o)
}

// execute runs the named template. Failures are rendered in place of the
// document so that the command still prints something useful.
func execute(name string, data any) string {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("error rendering %s: %v", name, err)
	}
	return b.String()
}
