// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/freidok/pkg/types"
)

// CSLItem is a bibliographic entry in CSL-YAML form, readable by Pandoc
// and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

func exportCSL(w io.Writer, p Payload) error {
	pubs, ok := p.Items.(*types.Publications)
	if !ok {
		return fmt.Errorf("csl export needs publications, got %T", p.Items)
	}
	items := make([]CSLItem, len(pubs.Docs))
	for i, d := range pubs.Docs {
		items[i] = toCSLItem(d)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(d types.Doc) CSLItem {
	item := CSLItem{
		ID:        "freidok-" + strconv.FormatInt(d.ID, 10),
		Type:      "document",
		Title:     bestTitle(d.Titles),
		Publisher: field(d, "publisher"),
		URL:       d.Link,
	}
	if len(d.Abstracts) > 0 {
		item.Abstract = d.Abstracts[0].Value
	}

	for _, p := range d.Persons {
		switch {
		case p.Surname != "":
			item.Author = append(item.Author, CSLName{Family: p.Surname, Given: p.Forename})
		case p.Value != "":
			item.Author = append(item.Author, CSLName{Literal: p.Value})
		}
	}

	if y, err := strconv.Atoi(year(d)); err == nil && y > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}

	for _, id := range d.PubIDs {
		if id.Type == "doi" {
			item.DOI = id.Value
			break
		}
	}

	if j := firstObject(d.Field("source_journal")); j != nil {
		item.Type = "article-journal"
		item.ContainerTitle = text(j["title"])
		item.Volume = text(j["volume"])
		item.Issue = text(j["issue"])
		item.Page = text(j["page"])
	} else if c := firstObject(d.Field("source_compilation")); c != nil {
		item.Type = "chapter"
		item.ContainerTitle = text(c["title"])
		item.Page = text(c["page"])
	}
	return item
}

// firstObject returns v as an object, or its first element if v is a list.
func firstObject(v any) map[string]any {
	if l, ok := v.([]any); ok {
		if len(l) == 0 {
			return nil
		}
		v = l[0]
	}
	m, _ := v.(map[string]any)
	return m
}
