// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders normalized records as Markdown, HTML, JSON,
// CSL-YAML, or through a user-supplied template.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/freidok/internal/tree"
	"github.com/pdiddy/freidok/pkg/types"
)

// Items is a typed record collection.
type Items interface {
	ItemType() string
	Len() int
}

// Payload is what an exporter renders.
type Payload struct {
	// Items is *types.Publications or *types.Institutions.
	Items Items
	// Tree is the pruned payload as retrieved.
	Tree tree.Node
	// Generated is the export timestamp shown by templates.
	Generated time.Time
}

// Exporter writes a payload to w.
type Exporter interface {
	Export(w io.Writer, p Payload) error
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(w io.Writer, p Payload) error

// Export calls f.
func (f ExporterFunc) Export(w io.Writer, p Payload) error { return f(w, p) }

// New returns the exporter for format and item type. templatePath is
// required for OutputTemplate and ignored otherwise.
func New(format types.OutputFormat, itemType, templatePath string) (Exporter, error) {
	switch format {
	case types.OutputMarkdown, types.OutputHTML:
		return builtinTemplate(format, itemType)
	case types.OutputJSON:
		return ExporterFunc(exportJSON), nil
	case types.OutputCSL:
		if itemType != types.TypePublication {
			return nil, fmt.Errorf("csl export supports publications only, not %s", itemType)
		}
		return ExporterFunc(exportCSL), nil
	case types.OutputTemplate:
		if templatePath == "" {
			return nil, fmt.Errorf("template format needs a template file")
		}
		return fileTemplate(templatePath)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// DetectFormat picks the output format. A template file wins, then an
// explicit format, then the extension of the output file. Markdown is the
// default.
func DetectFormat(explicit types.OutputFormat, templatePath, outPath string) types.OutputFormat {
	if templatePath != "" {
		return types.OutputTemplate
	}
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".htm", ".html":
		return types.OutputHTML
	case ".json":
		return types.OutputJSON
	case ".yaml", ".yml":
		return types.OutputCSL
	}
	return types.OutputMarkdown
}

// Formats lists the accepted --format values.
func Formats() []types.OutputFormat {
	return []types.OutputFormat{types.OutputMarkdown, types.OutputHTML, types.OutputJSON, types.OutputCSL}
}

func exportJSON(w io.Writer, p Payload) error {
	if p.Tree == nil {
		return fmt.Errorf("no payload tree to export")
	}
	return tree.WriteIndent(w, p.Tree, "  ")
}
