// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var knownKeysCache sync.Map // reflect.Type -> map[string]bool

// knownKeys returns the JSON names of the exported, non-skipped fields of
// the struct type of v.
func knownKeys(v any) map[string]bool {
	t := reflect.TypeOf(v)
	if cached, ok := knownKeysCache.Load(t); ok {
		return cached.(map[string]bool)
	}
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[name] = true
	}
	knownKeysCache.Store(t, keys)
	return keys
}

// splitExtras returns the members of the JSON object data that are not
// covered by the fields of typed. A nil map means no extra members.
func splitExtras(data []byte, typed any) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := knownKeys(typed)
	for k := range raw {
		if known[k] {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtras marshals typed and adds the extra members. Typed fields win
// on a key collision.
func mergeExtras(typed any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(typed)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func decodeExtra(extra map[string]json.RawMessage, name string) any {
	raw, ok := extra[name]
	if !ok {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
