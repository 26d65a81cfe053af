// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package modify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/freidok/pkg/types"
)

// foldString normalizes s to NFC and applies Unicode case folding, so
// that comparisons ignore case and composed/decomposed accents.
func foldString(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// patterns is a set of folded substrings matched with OR semantics.
type patterns []string

func newPatterns(raw []string) patterns {
	p := make(patterns, len(raw))
	for i, s := range raw {
		p[i] = foldString(s)
	}
	return p
}

func (p patterns) matchAny(value string) bool {
	if len(p) == 0 {
		return false
	}
	folded := foldString(value)
	for _, pat := range p {
		if strings.Contains(folded, pat) {
			return true
		}
	}
	return false
}

// MatchesAnyAuthor reports whether any author name of doc, rendered as
// "forename surname", contains any of the patterns, ignoring case.
func MatchesAnyAuthor(doc types.Doc, pats []string) bool {
	return authorMatcher(newPatterns(pats))(doc)
}

// MatchesAnyTitle reports whether any title of doc contains any of the
// patterns, ignoring case.
func MatchesAnyTitle(doc types.Doc, pats []string) bool {
	return titleMatcher(newPatterns(pats))(doc)
}

func authorMatcher(p patterns) func(types.Doc) bool {
	return func(doc types.Doc) bool {
		for _, person := range doc.Persons {
			if p.matchAny(PersonName(person, NameFormat{})) {
				return true
			}
		}
		return false
	}
}

func titleMatcher(p patterns) func(types.Doc) bool {
	return func(doc types.Doc) bool {
		for _, t := range doc.Titles {
			if p.matchAny(t.Value) {
				return true
			}
		}
		return false
	}
}

// ExcludeByAuthor returns the records without an author matching any
// pattern, in their original order. docs is not modified.
func ExcludeByAuthor(docs []types.Doc, pats []string) []types.Doc {
	return exclude(docs, authorMatcher(newPatterns(pats)))
}

// ExcludeByTitle returns the records without a title matching any
// pattern, in their original order. docs is not modified.
func ExcludeByTitle(docs []types.Doc, pats []string) []types.Doc {
	return exclude(docs, titleMatcher(newPatterns(pats)))
}

func exclude(docs []types.Doc, match func(types.Doc) bool) []types.Doc {
	kept := make([]types.Doc, 0, len(docs))
	for _, d := range docs {
		if !match(d) {
			kept = append(kept, d)
		}
	}
	return kept
}
