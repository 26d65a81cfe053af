// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine runs the normalization pipeline over a retrieved payload:
// language pruning on the raw tree, typing, record filtering, author
// composition and identifier ordering.
//
// The engine does no I/O and keeps no state between calls. Callers pass
// an EngineConfig that has been checked with Validate; the entry points
// validate it again and fail before touching any record.
package engine

import (
	"fmt"

	"github.com/pdiddy/freidok/internal/modify"
	"github.com/pdiddy/freidok/internal/schema"
	"github.com/pdiddy/freidok/internal/tree"
	"github.com/pdiddy/freidok/pkg/types"
)

// PruneTree reduces multilingual lists in n to the preferred languages.
// With the "ALL" wildcard n is returned as is.
func PruneTree(n tree.Node, cfg types.EngineConfig) tree.Node {
	if pruneAll(cfg) {
		return n
	}
	return tree.PruneLanguages(n, cfg.LanguageAttr, cfg.Languages)
}

// Publications prunes n, types it as a publication list and applies the
// record stages in order: author exclusion, title exclusion, author list
// composition, forename abbreviation, identifier sorting.
//
// The pruned tree is returned alongside the records for exporters that
// pass the raw payload through.
func Publications(n tree.Node, cfg types.EngineConfig) (*types.Publications, tree.Node, error) {
	if err := Validate(cfg); err != nil {
		return nil, nil, err
	}
	pruned := PruneTree(n, cfg)
	pubs, err := schema.Publications(pruned)
	if err != nil {
		return nil, nil, fmt.Errorf("reading publications: %w", err)
	}

	docs := modify.ExcludeByAuthor(pubs.Docs, cfg.ExcludeAuthors)
	docs = modify.ExcludeByTitle(docs, cfg.ExcludeTitles)

	modify.ComposeAuthors(docs, modify.NameFormat{
		Abbrev:    cfg.AuthorsAbbrev,
		Reverse:   cfg.AuthorsReverse,
		Separator: cfg.AuthorsSep,
	})
	if cfg.AuthorsAbbrev != nil {
		modify.ShortenForenames(docs, *cfg.AuthorsAbbrev)
	}
	modify.SortIdentifiers(docs, cfg.PreferredIDTypes)

	pubs.Docs = docs
	return pubs, pruned, nil
}

// Institutions prunes n and types it as an institution list.
func Institutions(n tree.Node, cfg types.EngineConfig) (*types.Institutions, tree.Node, error) {
	if err := Validate(cfg); err != nil {
		return nil, nil, err
	}
	pruned := PruneTree(n, cfg)
	insts, err := schema.Institutions(pruned)
	if err != nil {
		return nil, nil, fmt.Errorf("reading institutions: %w", err)
	}
	return insts, pruned, nil
}
