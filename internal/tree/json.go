// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Parse decodes a complete JSON document into a tree.
func Parse(data []byte) (Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one JSON document from r. Numbers are kept as json.Number
// so they re-encode exactly as received. Trailing data is an error.
func Decode(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON tree: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding JSON tree: unexpected data after top-level value")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return Scalar{Value: tok}, nil
	}

	switch delim {
	case '{':
		m := Map{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not string", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			// Duplicate keys: the last value wins, the first position is kept.
			m = m.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil

	case '[':
		l := List{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", len(l), err)
			}
			l = append(l, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return l, nil

	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// MarshalJSON writes the members in their stored order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalNode(f.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes the elements in order; a nil List encodes as [].
func (l List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, n := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		val, err := marshalNode(n)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		buf.Write(val)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	switch v := s.Value.(type) {
	case nil:
		return []byte("null"), nil
	case string, bool, json.Number:
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported scalar type %T", v)
	}
}

func marshalNode(n Node) ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n)
}

// WriteIndent writes n as indented JSON followed by a newline.
func WriteIndent(w io.Writer, n Node, indent string) error {
	data, err := marshalNode(n)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}
