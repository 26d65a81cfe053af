// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema turns a decoded payload tree into typed records and
// rejects envelopes that violate the API's documented ranges.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pdiddy/freidok/internal/tree"
	"github.com/pdiddy/freidok/pkg/types"
)

// ErrInvalidPayload is returned for payloads that cannot be typed.
var ErrInvalidPayload = errors.New("invalid payload")

// maxRowsLimit is the API's upper bound for maxRows.
const maxRowsLimit = 100

// Publications validates n as a publication list.
func Publications(n tree.Node) (*types.Publications, error) {
	pubs := types.NewPublications()
	if err := decode(n, types.TypePublication, &pubs); err != nil {
		return nil, err
	}
	if err := checkEnvelope(pubs.NumFound, pubs.Start, pubs.MaxRows); err != nil {
		return nil, err
	}
	return &pubs, nil
}

// Institutions validates n as an institution list.
func Institutions(n tree.Node) (*types.Institutions, error) {
	insts := types.NewInstitutions()
	if err := decode(n, types.TypeInstitution, &insts); err != nil {
		return nil, err
	}
	if err := checkEnvelope(insts.NumFound, insts.Start, insts.MaxRows); err != nil {
		return nil, err
	}
	return &insts, nil
}

func decode(n tree.Node, wantType string, dst any) error {
	root, ok := n.(tree.Map)
	if !ok {
		return fmt.Errorf("%w: top-level value is %s, want object", ErrInvalidPayload, kind(n))
	}
	if t, ok := root.Get("type"); ok {
		if sc, ok := t.(tree.Scalar); ok {
			if s, ok := sc.String(); ok && s != wantType {
				return fmt.Errorf("%w: type is %q, want %q", ErrInvalidPayload, s, wantType)
			}
		}
	}

	data, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func checkEnvelope(numFound, start, maxRows int) error {
	switch {
	case numFound < 0:
		return fmt.Errorf("%w: numFound %d is negative", ErrInvalidPayload, numFound)
	case start < 0:
		return fmt.Errorf("%w: start %d is negative", ErrInvalidPayload, start)
	case maxRows < 0 || maxRows > maxRowsLimit:
		return fmt.Errorf("%w: maxRows %d outside 0..%d", ErrInvalidPayload, maxRows, maxRowsLimit)
	}
	return nil
}

func kind(n tree.Node) string {
	switch n.(type) {
	case tree.Map:
		return "object"
	case tree.List:
		return "array"
	case tree.Scalar:
		return "scalar"
	default:
		return "empty"
	}
}
