// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tree models a decoded API payload as a generic, order-preserving
// tree and prunes multilingual sub-records down to a preferred language.
//
// A Node is one of Map, List or Scalar. Trees are decoded from JSON with
// Parse or Decode and written back with json.Marshal; object key order and
// number literals survive the round trip.
package tree

// Node is a sealed interface: only Map, List and Scalar implement it.
type Node interface {
	node()
}

// Field is one member of a Map.
type Field struct {
	Key   string
	Value Node
}

// Map is a JSON object with its members in source order. Keys are unique.
type Map []Field

func (Map) node() {}

// Get returns the value stored under key.
func (m Map) Get(key string) (Node, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set replaces the value under key or appends a new member.
func (m Map) Set(key string, value Node) Map {
	for i, f := range m {
		if f.Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, Field{Key: key, Value: value})
}

// List is a JSON array.
type List []Node

func (List) node() {}

// Scalar is a JSON string, number, boolean or null. Value holds a string,
// a json.Number, a bool, or nil.
type Scalar struct {
	Value any
}

func (Scalar) node() {}

// String returns the scalar's string value, if it is one.
func (s Scalar) String() (string, bool) {
	str, ok := s.Value.(string)
	return str, ok
}

// IsNull reports whether the scalar is JSON null.
func (s Scalar) IsNull() bool {
	return s.Value == nil
}

// Str is shorthand for a string scalar.
func Str(s string) Scalar { return Scalar{Value: s} }

// Null is the JSON null scalar.
var Null = Scalar{}

// Equal reports whether two trees are structurally identical, including
// object key order.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Map:
		y, ok := b.(Map)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i].Key != y[i].Key || !Equal(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Scalar:
		y, ok := b.(Scalar)
		return ok && x.Value == y.Value
	default:
		return a == nil && b == nil
	}
}
