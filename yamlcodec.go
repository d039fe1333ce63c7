// SPDX-License-Identifier: Apache-2.0

package ddm

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// ParseYAML decodes raw YAML text into the ordered value tree — Object for
// mappings, []any for sequences, and the usual primitives — that [Merge]
// operates on. Mapping order is preserved via goccy/go-yaml's
// [yaml.UseOrderedMap] decode option.
func ParseYAML(raw []byte) (any, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(raw, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromMapSlice(v)
}

// ParseJSON decodes raw JSON text into the same ordered value tree as
// [ParseYAML]. JSON is valid YAML, so the same order-preserving decoder
// handles both; a dedicated JSON-only decoder would only duplicate it.
func ParseJSON(raw []byte) (any, error) {
	return ParseYAML(raw)
}

// MarshalYAML encodes an ordered value tree (as produced by [Merge],
// [ParseYAML], or [ParseJSON]) back to YAML text, converting the engine's
// [Object] into the [yaml.MapSlice] shape goccy/go-yaml's encoder expects
// for order-preserving output.
func MarshalYAML(v any) ([]byte, error) {
	return yaml.Marshal(toMapSlice(v))
}

// fromMapSlice converts a value decoded by goccy/go-yaml with
// [yaml.UseOrderedMap] — where every mapping surfaces as a [yaml.MapSlice]
// of [yaml.MapItem] — into the engine's own ordered [Object] tree.
func fromMapSlice(v any) (any, error) {
	switch vv := v.(type) {
	case yaml.MapSlice:
		out := make(Object, 0, len(vv))
		for _, item := range vv {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("ddm: non-string mapping key %v (%T)", item.Key, item.Key)
			}
			val, err := fromMapSlice(item.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Key: key, Value: val})
		}
		return out, nil
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			val, err := fromMapSlice(item)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		return vv, nil
	}
}

// toMapSlice is the inverse of [fromMapSlice]: it converts the engine's
// [Object] tree into [yaml.MapSlice] so goccy/go-yaml's encoder emits keys
// in their merged order rather than the unordered map it would otherwise
// require.
func toMapSlice(v any) any {
	switch vv := v.(type) {
	case Object:
		out := make(yaml.MapSlice, len(vv))
		for i, e := range vv {
			out[i] = yaml.MapItem{Key: e.Key, Value: toMapSlice(e.Value)}
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = toMapSlice(item)
		}
		return out
	default:
		return vv
	}
}
