// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package modify

import (
	"cmp"
	"slices"

	"github.com/pdiddy/freidok/pkg/types"
)

// DefaultIdentifierTypes are moved to the front of identifier lists when
// nothing else is configured.
var DefaultIdentifierTypes = []string{"doi"}

// SortByPreference stably reorders items in place so that items whose key
// appears earlier in preferred come first. Items with unlisted keys keep
// their relative order after all preferred ones.
func SortByPreference[E any, K comparable](items []E, key func(E) K, preferred []K) {
	if len(items) < 2 || len(preferred) == 0 {
		return
	}
	slices.SortStableFunc(items, func(a, b E) int {
		return cmp.Compare(Rank(key(a), preferred), Rank(key(b), preferred))
	})
}

// SortIdentifiers moves the preferred identifier types to the front of
// every record's pub_ids. Records without identifiers are skipped.
func SortIdentifiers(docs []types.Doc, preferred []string) {
	for i := range docs {
		SortByPreference(docs[i].PubIDs, identifierType, preferred)
	}
}

func identifierType(id types.Identifier) string { return id.Type }
