// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package modify

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/freidok/pkg/types"
)

// DefaultAuthorSeparator joins authors in a composed author list.
const DefaultAuthorSeparator = ", "

// NameFormat controls how author names are rendered.
type NameFormat struct {
	// Abbrev, when non-nil, abbreviates forenames with *Abbrev after each
	// initial.
	Abbrev *string

	// Reverse renders "surname forename".
	Reverse bool

	// Separator joins authors; empty means DefaultAuthorSeparator.
	Separator string
}

// Abbreviate reduces name to the upper-cased first letter of each
// whitespace-separated part, each followed by sep. Full Unicode case
// mapping applies, so an initial may expand ("ß" becomes "SS"):
//
//	Abbreviate("Maria Theresa", "-") == "M-T-"
//	Abbreviate("Roland Werner Friedrich", "") == "RWF"
func Abbreviate(name, sep string) string {
	upper := cases.Upper(language.Und)
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		_, size := utf8.DecodeRuneInString(part)
		b.WriteString(upper.String(part[:size]))
		b.WriteString(sep)
	}
	return b.String()
}

// ComposeName joins forename and surname with a single space, surname
// first when reverse is set. A non-nil abbrev abbreviates the forename
// first. Missing parts leave no stray whitespace.
func ComposeName(forename, surname string, abbrev *string, reverse bool) string {
	if abbrev != nil {
		forename = Abbreviate(forename, *abbrev)
	}
	if reverse {
		return strings.TrimSpace(surname + " " + forename)
	}
	return strings.TrimSpace(forename + " " + surname)
}

// PersonName renders one person. When the source carries neither forename
// nor surname, the pre-composed display value is used.
func PersonName(p types.Person, f NameFormat) string {
	if name := ComposeName(p.Forename, p.Surname, f.Abbrev, f.Reverse); name != "" {
		return name
	}
	return strings.TrimSpace(p.Value)
}

// AuthorList renders all persons of doc joined by the format's separator.
func AuthorList(doc types.Doc, f NameFormat) string {
	sep := f.Separator
	if sep == "" {
		sep = DefaultAuthorSeparator
	}
	names := make([]string, 0, len(doc.Persons))
	for _, p := range doc.Persons {
		if name := PersonName(p, f); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, sep)
}

// ComposeAuthors stores the rendered author list on every record.
func ComposeAuthors(docs []types.Doc, f NameFormat) {
	for i := range docs {
		docs[i].ComposedAuthors = AuthorList(docs[i], f)
	}
}

// ShortenForenames replaces every non-empty forename with its abbreviation.
func ShortenForenames(docs []types.Doc, sep string) {
	for i := range docs {
		for j := range docs[i].Persons {
			p := &docs[i].Persons[j]
			if p.Forename != "" {
				p.Forename = Abbreviate(p.Forename, sep)
			}
		}
	}
}
