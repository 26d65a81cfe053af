// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/freidok/internal/tree"
)

func loadTree(t *testing.T, name string) tree.Node {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	n, err := tree.Parse(data)
	require.NoError(t, err)
	return n
}

func parse(t *testing.T, s string) tree.Node {
	t.Helper()
	n, err := tree.Parse([]byte(s))
	require.NoError(t, err)
	return n
}

func TestPublications(t *testing.T) {
	pubs, err := Publications(loadTree(t, "publications.json"))
	require.NoError(t, err)

	assert.Equal(t, 2, pubs.NumFound)
	assert.Equal(t, 25, pubs.MaxRows)
	assert.Equal(t, "publication", pubs.Type)
	require.Equal(t, 2, pubs.Len())

	doc := pubs.Docs[0]
	assert.Equal(t, int64(235841), doc.ID)
	require.Len(t, doc.Titles, 2)
	assert.Equal(t, "deu", doc.Titles[0].Language)
	assert.Equal(t, "Deutsch", doc.Titles[0].LanguageValue)
	require.Len(t, doc.Persons, 2)
	assert.Equal(t, "Maria Theresa", doc.Persons[0].Forename)
	assert.Equal(t, "Groß", doc.Persons[1].Surname)
	require.Len(t, doc.PubIDs, 2)
	assert.Equal(t, "urn", doc.PubIDs[0].Type)
}

func TestPublicationsIgnoresComposedAuthorsInInput(t *testing.T) {
	pubs, err := Publications(loadTree(t, "publications.json"))
	require.NoError(t, err)
	assert.Empty(t, pubs.Docs[0].ComposedAuthors)
}

func TestPublicationsKeepsUninterpretedFields(t *testing.T) {
	pubs, err := Publications(loadTree(t, "publications.json"))
	require.NoError(t, err)
	doc := pubs.Docs[0]

	assert.Equal(t, map[string]any{"value": "2023"}, doc.Field("publication_year"))
	assert.Nil(t, doc.Field("publisher"))
	assert.JSONEq(t, `"author"`, string(doc.Persons[0].Extra["role"]))

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Contains(t, back, "source_journal")
	assert.Contains(t, back, "publication_year")
	assert.NotContains(t, back, "_extras_authors")
}

func TestPublicationsDefaults(t *testing.T) {
	pubs, err := Publications(parse(t, `{"docs":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "publication", pubs.Type)
	assert.Equal(t, 25, pubs.MaxRows)
	assert.Equal(t, 0, pubs.NumFound)
}

func TestPublicationsRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"negative numFound", `{"numFound":-1,"docs":[]}`},
		{"negative start", `{"start":-5,"docs":[]}`},
		{"maxRows above limit", `{"maxRows":101,"docs":[]}`},
		{"negative maxRows", `{"maxRows":-1,"docs":[]}`},
		{"wrong item type", `{"type":"institution","docs":[]}`},
		{"array root", `[{"id":1}]`},
		{"scalar root", `"publication"`},
		{"docs not a list", `{"docs":{"id":1}}`},
		{"id not a number", `{"docs":[{"id":"abc"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Publications(parse(t, tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestPublicationsAcceptsMaxRowsBounds(t *testing.T) {
	for _, in := range []string{`{"maxRows":0}`, `{"maxRows":100}`} {
		_, err := Publications(parse(t, in))
		assert.NoError(t, err, in)
	}
}

func TestInstitutions(t *testing.T) {
	insts, err := Institutions(loadTree(t, "institutions.json"))
	require.NoError(t, err)

	assert.Equal(t, "institution", insts.Type)
	require.Equal(t, 1, insts.Len())
	inst := insts.Docs[0]
	assert.Equal(t, int64(3), inst.ID)
	require.Len(t, inst.Names, 2)
	assert.Equal(t, "Institute of Forest Sciences", inst.Names[1].Value)
	require.Len(t, inst.Directors, 1)
	assert.Equal(t, "2019-", inst.Directors[0].TimeActive)
	require.NotNil(t, inst.Lifetime)
	assert.Equal(t, "1920", inst.Lifetime.From)
	assert.Equal(t, float64(1), inst.Field("parent"))
}

func TestInstitutionsRejectsPublicationPayload(t *testing.T) {
	_, err := Institutions(loadTree(t, "publications.json"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
