// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the freidok pipeline:
// the typed publication and institution records produced by schema
// validation, and the configuration values passed into each stage.
package types

import (
	"encoding/json"
)

// Item type values carried in the "type" field of an API response.
const (
	TypePublication = "publication"
	TypeInstitution = "institution"
)

// LocalizedText is a unit of text tagged with a language code
// (e.g. a title or an abstract).
type LocalizedText struct {
	// Language is the 3-letter language code (e.g. "eng", "deu").
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// LanguageValue is the language-dependent name of the language.
	LanguageValue string `json:"language_value,omitempty" yaml:"language_value,omitempty"`

	// Value is the text itself.
	Value string `json:"value" yaml:"value"`
}

// Identifier is a typed external reference such as a DOI or URN.
type Identifier struct {
	// Type names the identifier scheme (e.g. "doi", "urn", "isbn").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Link is the resolvable URL for the identifier.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// Value is the bare identifier.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Extra holds fields the engine does not interpret.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Person is one author or contributor of a publication.
type Person struct {
	ID       int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Link     string `json:"link,omitempty" yaml:"link,omitempty"`
	Forename string `json:"forename,omitempty" yaml:"forename,omitempty"`
	Surname  string `json:"surname,omitempty" yaml:"surname,omitempty"`

	// Value is the pre-composed display name delivered by the source.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Extra holds fields the engine does not interpret.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Doc is a single publication record. Only the fields the engine reads or
// writes are typed; every other field of the source record is kept in Extra
// and written back unchanged.
type Doc struct {
	ID        int64           `json:"id,omitempty" yaml:"id,omitempty"`
	Link      string          `json:"link,omitempty" yaml:"link,omitempty"`
	Titles    []LocalizedText `json:"titles,omitempty" yaml:"titles,omitempty"`
	Abstracts []LocalizedText `json:"abstracts,omitempty" yaml:"abstracts,omitempty"`
	PubIDs    []Identifier    `json:"pub_ids,omitempty" yaml:"pub_ids,omitempty"`
	Persons   []Person        `json:"persons,omitempty" yaml:"persons,omitempty"`

	// ComposedAuthors is the derived, pre-formatted author list. It is
	// computed by the engine and never read from input.
	ComposedAuthors string `json:"_extras_authors,omitempty" yaml:"composed_authors,omitempty"`

	// Extra holds fields the engine does not interpret.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Field decodes the pass-through field name. It returns nil when the field
// is absent or cannot be decoded.
func (d Doc) Field(name string) any {
	return decodeExtra(d.Extra, name)
}

// Publications is the response envelope for a publication query.
type Publications struct {
	NumFound int    `json:"numFound" yaml:"num_found"`
	Start    int    `json:"start" yaml:"start"`
	MaxRows  int    `json:"maxRows" yaml:"max_rows"`
	Type     string `json:"type" yaml:"type"`
	Docs     []Doc  `json:"docs" yaml:"docs"`
}

// NewPublications returns an envelope with the source API's defaults.
func NewPublications() Publications {
	return Publications{MaxRows: 25, Type: TypePublication}
}

// ItemType reports the envelope type.
func (p *Publications) ItemType() string { return p.Type }

// Len returns the number of records.
func (p *Publications) Len() int { return len(p.Docs) }

type docFields Doc

func (d *Doc) UnmarshalJSON(data []byte) error {
	var f docFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtras(data, docFields{})
	if err != nil {
		return err
	}
	f.ComposedAuthors = ""
	f.Extra = extra
	*d = Doc(f)
	return nil
}

func (d Doc) MarshalJSON() ([]byte, error) {
	return mergeExtras(docFields(d), d.Extra)
}

type personFields Person

func (p *Person) UnmarshalJSON(data []byte) error {
	var f personFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtras(data, personFields{})
	if err != nil {
		return err
	}
	f.Extra = extra
	*p = Person(f)
	return nil
}

func (p Person) MarshalJSON() ([]byte, error) {
	return mergeExtras(personFields(p), p.Extra)
}

type identifierFields Identifier

func (i *Identifier) UnmarshalJSON(data []byte) error {
	var f identifierFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtras(data, identifierFields{})
	if err != nil {
		return err
	}
	f.Extra = extra
	*i = Identifier(f)
	return nil
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	return mergeExtras(identifierFields(i), i.Extra)
}
