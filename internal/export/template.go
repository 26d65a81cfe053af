// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/pdiddy/freidok/pkg/types"
)

//go:embed templates
var builtin embed.FS

// executor is satisfied by both text and html templates.
type executor interface {
	Execute(w io.Writer, data any) error
}

// templateExporter renders a payload through a template. The template sees
// .Items (the record slice), .Envelope (the typed collection) and
// .Datetime (the export time).
type templateExporter struct {
	tmpl executor
}

type templateData struct {
	Items    any
	Envelope Items
	Datetime string
}

func (e templateExporter) Export(w io.Writer, p Payload) error {
	if p.Items == nil {
		return fmt.Errorf("no records to export")
	}
	data := templateData{Envelope: p.Items, Datetime: p.Generated.Format("2006-01-02 15:04 MST")}
	switch items := p.Items.(type) {
	case *types.Publications:
		data.Items = items.Docs
	case *types.Institutions:
		data.Items = items.Docs
	default:
		return fmt.Errorf("unsupported record collection %T", p.Items)
	}
	if err := e.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}
	return nil
}

func builtinTemplate(format types.OutputFormat, itemType string) (Exporter, error) {
	dir := map[string]string{types.TypePublication: "publications", types.TypeInstitution: "institutions"}[itemType]
	if dir == "" {
		return nil, fmt.Errorf("no built-in template for item type %q", itemType)
	}
	name := "simple-list.md.tmpl"
	if format == types.OutputHTML {
		name = "simple-list.html.tmpl"
	}
	path := "templates/" + dir + "/" + name
	src, err := builtin.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading built-in template %s: %w", path, err)
	}
	return parseTemplate(name, string(src), format == types.OutputHTML)
}

func fileTemplate(path string) (Exporter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return parseTemplate(filepath.Base(path), string(src), ext == ".html" || ext == ".htm")
}

func parseTemplate(name, src string, html bool) (Exporter, error) {
	var (
		t   executor
		err error
	)
	if html {
		t, err = htmltemplate.New(name).Funcs(htmltemplate.FuncMap(funcs)).Parse(src)
	} else {
		t, err = texttemplate.New(name).Funcs(texttemplate.FuncMap(funcs)).Parse(src)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return templateExporter{tmpl: t}, nil
}
