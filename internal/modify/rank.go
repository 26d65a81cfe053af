// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package modify reorders, formats and filters typed publication records.
//
// Record-level operations (SortIdentifiers, ComposeAuthors,
// ShortenForenames) update the records of the slice they are given in
// place. Collection-level filters (ExcludeByAuthor, ExcludeByTitle) return a
// new slice and leave their input untouched. Nothing in this package reads
// global state; every setting arrives as an argument.
package modify

import "slices"

// Rank returns the index of value in preferred, or len(preferred) when the
// value is not listed. Used as a stable sort key, it moves preferred values
// to the front while unlisted values keep their relative order:
//
//	items: [4 7 8 2 9 1 6], preferred: [1 2 3] -> [1 2 4 7 8 9 6]
func Rank[T comparable](value T, preferred []T) int {
	if i := slices.Index(preferred, value); i >= 0 {
		return i
	}
	return len(preferred)
}
