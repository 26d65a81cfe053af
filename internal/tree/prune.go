// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"cmp"
	"slices"

	"github.com/pdiddy/freidok/internal/modify"
)

// DefaultLanguageAttr is the object key that carries a language code.
const DefaultLanguageAttr = "language"

// UniformlyTagged reports whether l is a list of two or more objects that
// all carry attr. Only such lists are pruned; lists mixing tagged and
// untagged objects are left alone.
func UniformlyTagged(l List, attr string) bool {
	if len(l) < 2 {
		return false
	}
	for _, item := range l {
		m, ok := item.(Map)
		if !ok || !m.Has(attr) {
			return false
		}
	}
	return true
}

// PruneLanguages returns a copy of n in which every uniformly tagged list
// (see UniformlyTagged) is reduced to the objects in the best available
// language. The list is stably sorted by the rank of each object's attr
// value in preferred, then truncated after the leading run of objects that
// share the first object's value. The walk visits every map value and every
// surviving list element. n itself is never modified.
//
// Callers handle the "ALL" wildcard themselves by not calling the pruner.
func PruneLanguages(n Node, attr string, preferred []string) Node {
	if attr == "" {
		attr = DefaultLanguageAttr
	}
	return prune(n, attr, preferred)
}

func prune(n Node, attr string, preferred []string) Node {
	switch v := n.(type) {
	case Map:
		if len(v) == 0 {
			return v
		}
		out := make(Map, len(v))
		for i, f := range v {
			out[i] = Field{Key: f.Key, Value: prune(f.Value, attr, preferred)}
		}
		return out

	case List:
		if len(v) == 0 {
			return v
		}
		items := []Node(v)
		if UniformlyTagged(v, attr) {
			items = bestLanguageRun(v, attr, preferred)
		}
		out := make(List, len(items))
		for i, item := range items {
			out[i] = prune(item, attr, preferred)
		}
		return out

	default:
		return n
	}
}

// bestLanguageRun sorts a copy of l by language preference and returns the
// leading run sharing the first element's language.
func bestLanguageRun(l List, attr string, preferred []string) List {
	sorted := slices.Clone(l)
	slices.SortStableFunc(sorted, func(a, b Node) int {
		return cmp.Compare(languageRank(a, attr, preferred), languageRank(b, attr, preferred))
	})

	first := attrValue(sorted[0], attr)
	k := 1
	for k < len(sorted) && Equal(attrValue(sorted[k], attr), first) {
		k++
	}
	return sorted[:k]
}

func attrValue(n Node, attr string) Node {
	v, _ := n.(Map).Get(attr)
	return v
}

// languageRank ranks non-string language values after every listed language.
func languageRank(n Node, attr string, preferred []string) int {
	if s, ok := attrValue(n, attr).(Scalar); ok {
		if lang, ok := s.String(); ok {
			return modify.Rank(lang, preferred)
		}
	}
	return len(preferred)
}
