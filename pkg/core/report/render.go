// Package report renders run results as Markdown and HTML.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"io/fs"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"hospitality_proforma/pkg/core/pipeline"
)

//go:embed templates/*.md
var templateFS embed.FS

// Options selects report sections
type Options struct {
	Title          string // defaults to the scenario name
	SkipProperties bool
	SkipFindings   bool
}

var partials = map[string]string{
	"table":    "table.md",
	"returns":  "returns.md",
	"property": "property.md",
	"rejected": "rejected.md",
	"findings": "findings.md",
}

// Markdown renders the full report
func Markdown(res *pipeline.Result, opts Options) (string, error) {
	if res == nil {
		return "", fmt.Errorf("nil result")
	}
	return renderTemplate("report", "report.md", partials, buildView(res, opts))
}

// ReturnsMarkdown renders only the returns table
func ReturnsMarkdown(res *pipeline.Result) (string, error) {
	if res == nil {
		return "", fmt.Errorf("nil result")
	}
	return renderTemplate("returns", "returns.md", nil, buildView(res, Options{SkipProperties: true, SkipFindings: true}))
}

// renderTemplate executes a main template that depends on several partials
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) (string, error) {
	templates, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return "", err
	}
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return "", fmt.Errorf("error reading main template %q: %w", mainFile, err)
	}

	funcs := template.FuncMap{"join": strings.Join}
	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return "", fmt.Errorf("error parsing main template %q: %w", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return "", fmt.Errorf("error reading partial template %q: %w", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return "", fmt.Errorf("error parsing partial template %q for %q: %w", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return "", fmt.Errorf("error executing template %q: %w", templateName, err)
	}
	return b.String(), nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts Markdown to an HTML fragment with GFM tables
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #ccc; padding: 0.25em 0.6em; }
td { text-align: right; }
td:first-child { text-align: left; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLDocument renders the report as a standalone HTML page
func HTMLDocument(res *pipeline.Result, opts Options) (string, error) {
	md, err := Markdown(res, opts)
	if err != nil {
		return "", err
	}
	body, err := RenderHTML(md)
	if err != nil {
		return "", err
	}
	title := opts.Title
	if title == "" {
		title = res.Scenario
	}
	return fmt.Sprintf(page, html.EscapeString(title), body), nil
}
