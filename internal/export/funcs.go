// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/freidok/pkg/types"
)

// funcs are available in every template.
var funcs = map[string]any{
	"bestTitle": bestTitle,
	"doiLink":   doiLink,
	"join":      strings.Join,
	"field":     field,
	"year":      year,
	"source":    source,
}

// bestTitle returns the first title. Titles are already reduced to the
// preferred language when this runs.
func bestTitle(titles []types.LocalizedText) string {
	if len(titles) == 0 {
		return ""
	}
	return titles[0].Value
}

// doiLink returns the link of the first DOI, else the first identifier's.
func doiLink(ids []types.Identifier) string {
	for _, id := range ids {
		if id.Type == "doi" && id.Link != "" {
			return id.Link
		}
	}
	if len(ids) > 0 {
		return ids[0].Link
	}
	return ""
}

type fielder interface {
	Field(name string) any
}

// field returns a pass-through field as text. Objects yield their "value"
// member and lists their first element.
func field(rec fielder, name string) string {
	return text(rec.Field(name))
}

func year(doc types.Doc) string {
	return field(doc, "publication_year")
}

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	case map[string]any:
		return text(v["value"])
	case []any:
		if len(v) == 0 {
			return ""
		}
		return text(v[0])
	default:
		return fmt.Sprint(v)
	}
}

var (
	emptyRuns   = regexp.MustCompile(` [ ,]+`)
	emptyParens = regexp.MustCompile(`\(\s*\)`)
)

// source formats the first source journal as
// "title volume (year) issue, pages", dropping empty parts.
func source(doc types.Doc) string {
	j := firstObject(doc.Field("source_journal"))
	if j == nil {
		return ""
	}
	s := fmt.Sprintf("%s %s (%s) %s, %s",
		text(j["title"]), text(j["volume"]), text(j["year"]), text(j["issue"]), text(j["page"]))
	s = emptyParens.ReplaceAllString(s, "")
	s = emptyRuns.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,")
}
