// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// publicationFields lists the fields the publications endpoint accepts.
var publicationFields = []string{
	"id", "link", "abstracts", "researchdata_descriptions", "descriptions",
	"messages", "classifications", "pub_ids", "pub_ids_internal", "pubtype",
	"languages", "edition", "keywords", "keywords_uncontrolled",
	"publication_year", "peerreviewed", "day_of_exam", "system_time",
	"titles", "title_parents", "persons", "persons_stat", "affiliations_list",
	"functions_list", "institutions", "relations", "reverse_relations",
	"publisher", "source_journal", "source_compilation", "size", "series",
	"contract", "license_metadata", "license", "contact", "fundings",
	"preview_image", "files_stat", "files", "files_external", "oa_status",
	"revision", "acquisition_type", "fachsigel", "state", "locked", "issued",
	"created_by", "submission_type", "current_person_affiliations",
	"current_institution_affiliations", "current_project_affiliations",
	"current_activity_affiliations",
}

const fieldsetEnvPrefix = "FREIDOK_FIELDSET_PUBLICATION_"

// fieldsets returns the named field lists: the built-in default, sets
// from the "fieldsets" config key, and sets from
// FREIDOK_FIELDSET_PUBLICATION_<NAME> variables, later sources winning.
func fieldsets(environ []string) map[string][]string {
	sets := map[string][]string{
		"default": strings.Fields("id link publication_year titles publisher persons persons_stat " +
			"pubtype source_journal source_compilation pub_ids preview_image"),
	}
	for name, v := range viper.GetStringMapStringSlice("fieldsets") {
		sets[strings.ToLower(name)] = splitList(strings.Join(v, ","))
	}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, fieldsetEnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, fieldsetEnvPrefix))
		if name != "" {
			sets[name] = splitList(value)
		}
	}
	return sets
}

// unknownFields returns the entries of fields the API does not accept.
func unknownFields(fields []string) []string {
	var bad []string
	for _, f := range fields {
		if !slices.Contains(publicationFields, f) {
			bad = append(bad, f)
		}
	}
	return bad
}

// sortFields orders results newest first when the requested fields allow it.
func sortFields(fields []string) []string {
	var sort []string
	if slices.Contains(fields, "publication_year") {
		sort = append(sort, "publication_year+desc")
	}
	if slices.Contains(fields, "id") {
		sort = append(sort, "id+desc")
	}
	return sort
}
