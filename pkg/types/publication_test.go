// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocKeepsUnknownFields(t *testing.T) {
	in := `{
		"id": 7,
		"titles": [{"language": "eng", "value": "Soil"}],
		"persons": [{"forename": "Jan", "surname": "Groß", "orcid": "0000-0001"}],
		"peerreviewed": true,
		"keywords": ["soil", "forest"]
	}`

	var doc Doc
	require.NoError(t, json.Unmarshal([]byte(in), &doc))

	assert.Equal(t, int64(7), doc.ID)
	assert.Equal(t, true, doc.Field("peerreviewed"))
	assert.Equal(t, []any{"soil", "forest"}, doc.Field("keywords"))
	assert.Nil(t, doc.Field("missing"))
	assert.JSONEq(t, `"0000-0001"`, string(doc.Persons[0].Extra["orcid"]))

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"titles": [{"language": "eng", "value": "Soil"}],
		"persons": [{"forename": "Jan", "surname": "Groß", "orcid": "0000-0001"}],
		"peerreviewed": true,
		"keywords": ["soil", "forest"]
	}`, string(out))
}

func TestDocComposedAuthors(t *testing.T) {
	var doc Doc
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "_extras_authors": "stale"}`), &doc))
	assert.Empty(t, doc.ComposedAuthors)
	assert.NotContains(t, doc.Extra, "_extras_authors")

	doc.ComposedAuthors = "Jan Groß"
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 1, "_extras_authors": "Jan Groß"}`, string(out))
}

func TestInstitutionDocLifetime(t *testing.T) {
	var doc InstitutionDoc
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "lifetime": {"global": "1920", "value": "1920-"}, "parent": 1}`), &doc))
	require.NotNil(t, doc.Lifetime)
	assert.Equal(t, "1920", doc.Lifetime.From)
	assert.Equal(t, float64(1), doc.Field("parent"))
}
