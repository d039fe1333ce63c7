// SPDX-License-Identifier: Apache-2.0

package ddm

import (
	"sort"

	"github.com/BurntSushi/toml"
)

// ParseTOML decodes raw TOML text into the same ordered value tree as
// [ParseYAML]. BurntSushi/toml decodes tables into map[string]any, which
// loses file order on its own, so this reconstructs order from
// [toml.MetaData.Keys] — the decoder's record of every key path in the
// order it appeared in the source.
//
// Array-of-tables elements share one reconstructed key order (derived from
// every element's keys together) rather than each element's own exact file
// order; this is a best-effort approximation, not an exact per-element
// replay.
func ParseTOML(raw []byte) (any, error) {
	var data map[string]any
	meta, err := toml.Decode(string(raw), &data)
	if err != nil {
		return nil, err
	}
	return buildOrderedTOML(data, meta.Keys(), nil), nil
}

// buildOrderedTOML converts the map[string]any subtree at path (taken from
// the decoded document) into an [Object], ordering its direct keys by their
// first appearance in keys.
func buildOrderedTOML(data map[string]any, keys []toml.Key, path []string) Object {
	order := orderedChildNames(data, keys, path)
	result := make(Object, 0, len(order))
	for _, name := range order {
		val, ok := data[name]
		if !ok {
			continue
		}
		childPath := append(append([]string{}, path...), name)
		result = append(result, Entry{Key: name, Value: convertTOMLValue(val, keys, childPath)})
	}
	return result
}

func orderedChildNames(data map[string]any, keys []toml.Key, path []string) []string {
	var order []string
	seen := make(map[string]bool, len(data))
	for _, k := range keys {
		if len(k) <= len(path) {
			continue
		}
		matched := true
		for i, seg := range path {
			if k[i] != seg {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		name := k[len(path)]
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	if len(order) == 0 {
		for name := range data {
			order = append(order, name)
		}
		sort.Strings(order)
	}
	return order
}

// convertTOMLValue recurses into nested tables and table arrays, leaving
// primitives (and primitive arrays) as decoded.
func convertTOMLValue(v any, keys []toml.Key, path []string) any {
	switch vv := v.(type) {
	case map[string]any:
		return buildOrderedTOML(vv, keys, path)
	case []map[string]any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = buildOrderedTOML(item, keys, path)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			if m, ok := item.(map[string]any); ok {
				out[i] = buildOrderedTOML(m, keys, path)
			} else {
				out[i] = item
			}
		}
		return out
	default:
		return vv
	}
}

// MarshalTOML encodes an ordered value tree back to TOML text. TOML has no
// facility for emitting an arbitrary, independently-ordered set of table
// keys, so the [Object] tree is first flattened to plain maps — the
// resulting document is correct but its key order follows toml.Marshal's
// own (alphabetical) convention rather than the merge's key order.
func MarshalTOML(v any) ([]byte, error) {
	return toml.Marshal(flattenForTOML(v))
}

func flattenForTOML(v any) any {
	switch vv := v.(type) {
	case Object:
		out := make(map[string]any, len(vv))
		for _, e := range vv {
			out[e.Key] = flattenForTOML(e.Value)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = flattenForTOML(item)
		}
		return out
	default:
		return vv
	}
}
