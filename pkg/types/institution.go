// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// Lifetime records when an institution existed.
type Lifetime struct {
	From  string `json:"global,omitempty" yaml:"from,omitempty"`
	Until string `json:"until,omitempty" yaml:"until,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Director is a head of an institution.
type Director struct {
	Link       string `json:"link,omitempty" yaml:"link,omitempty"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty"`
	Forename   string `json:"forename,omitempty" yaml:"forename,omitempty"`
	Surname    string `json:"surname,omitempty" yaml:"surname,omitempty"`
	TimeActive string `json:"time_active,omitempty" yaml:"time_active,omitempty"`
}

// InstitutionDoc is a single institution record.
type InstitutionDoc struct {
	ID        int64           `json:"id,omitempty" yaml:"id,omitempty"`
	Link      string          `json:"link,omitempty" yaml:"link,omitempty"`
	Names     []LocalizedText `json:"names,omitempty" yaml:"names,omitempty"`
	Directors []Director      `json:"directors,omitempty" yaml:"directors,omitempty"`
	Lifetime  *Lifetime       `json:"lifetime,omitempty" yaml:"lifetime,omitempty"`

	// Extra holds fields the engine does not interpret.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Field decodes the pass-through field name.
func (d InstitutionDoc) Field(name string) any {
	return decodeExtra(d.Extra, name)
}

type institutionFields InstitutionDoc

func (d *InstitutionDoc) UnmarshalJSON(data []byte) error {
	var f institutionFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtras(data, institutionFields{})
	if err != nil {
		return err
	}
	f.Extra = extra
	*d = InstitutionDoc(f)
	return nil
}

func (d InstitutionDoc) MarshalJSON() ([]byte, error) {
	return mergeExtras(institutionFields(d), d.Extra)
}

// Institutions is the response envelope for an institution query.
type Institutions struct {
	NumFound int              `json:"numFound" yaml:"num_found"`
	Start    int              `json:"start" yaml:"start"`
	MaxRows  int              `json:"maxRows" yaml:"max_rows"`
	Type     string           `json:"type" yaml:"type"`
	Docs     []InstitutionDoc `json:"docs" yaml:"docs"`
}

// NewInstitutions returns an envelope with the source API's defaults.
func NewInstitutions() Institutions {
	return Institutions{MaxRows: 25, Type: TypeInstitution}
}

// ItemType reports the envelope type.
func (i *Institutions) ItemType() string { return i.Type }

// Len returns the number of records.
func (i *Institutions) Len() int { return len(i.Docs) }
