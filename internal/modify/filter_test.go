// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package modify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/freidok/pkg/types"
)

func filterDocs() []types.Doc {
	return []types.Doc{
		{
			ID:      1,
			Titles:  []types.LocalizedText{{Language: "eng", Value: "Deep Learning for Plants"}},
			Persons: []types.Person{{Forename: "Jane", Surname: "Smith"}},
		},
		{
			ID:      2,
			Titles:  []types.LocalizedText{{Language: "deu", Value: "Über Bäume"}},
			Persons: []types.Person{{Forename: "Alan", Surname: "Doe"}},
		},
	}
}

func docIDs(docs []types.Doc) []int64 {
	ids := make([]int64, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

func TestExcludeByAuthor(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     []int64
	}{
		{"removes matching record only", []string{"smith"}, []int64{2}},
		{"empty pattern list keeps all", nil, []int64{1, 2}},
		{"matches across forename and surname", []string{"jane smith"}, []int64{2}},
		{"reversed order does not match", []string{"smith jane"}, []int64{1, 2}},
		{"any pattern matches", []string{"nomatch", "DOE"}, []int64{1}},
		{"all records removed", []string{"a"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := filterDocs()
			got := ExcludeByAuthor(docs, tt.patterns)
			assert.Equal(t, tt.want, docIDs(got))
			assert.Len(t, docs, 2, "input must not be modified")
		})
	}
}

func TestExcludeByTitle(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     []int64
	}{
		{"case insensitive", []string{"DEEP"}, []int64{2}},
		{"umlaut folding", []string{"ÜBER"}, []int64{1}},
		{"empty list keeps all", []string{}, []int64{1, 2}},
		{"no match keeps all", []string{"quantum"}, []int64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExcludeByTitle(filterDocs(), tt.patterns)
			assert.Equal(t, tt.want, docIDs(got))
		})
	}
}

func TestMatchesAnyTitle_DecomposedAccents(t *testing.T) {
	doc := filterDocs()[1]
	// Pattern spelled with a combining diaeresis, title precomposed.
	assert.True(t, MatchesAnyTitle(doc, []string{"ba\u0308ume"}))
}

func TestMatchesAnyAuthor_NoPersons(t *testing.T) {
	assert.False(t, MatchesAnyAuthor(types.Doc{}, []string{"x"}))
	assert.False(t, MatchesAnyTitle(types.Doc{}, []string{"x"}))
}

func TestMatchesAnyAuthor_UsesDisplayValueFallback(t *testing.T) {
	doc := types.Doc{Persons: []types.Person{{Value: "Freiburg Research Group"}}}
	assert.True(t, MatchesAnyAuthor(doc, []string{"research group"}))
}
