// SPDX-License-Identifier: Apache-2.0

package ddm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes o preserving key order. encoding/json cannot do this
// on its own for map[string]any, so each entry is written in sequence
// rather than delegated to the default map-encoding path.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes raw into o, preserving the source key order. It
// token-scans rather than unmarshaling into map[string]any, since Go's map
// iteration order is unspecified and would discard the ordering the
// protocol treats as semantic.
func (o *Object) UnmarshalJSON(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("ddm: expected JSON object, got %v", tok)
	}

	result, err := decodeObjectBody(dec)
	if err != nil {
		return err
	}
	*o = result
	return nil
}

// decodeObjectBody reads key/value pairs from dec until the matching '}',
// which the caller's opening '{' has already been consumed past.
func decodeObjectBody(dec *json.Decoder) (Object, error) {
	var result Object
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("ddm: expected object key, got %v", keyTok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		result = append(result, Entry{Key: key, Value: val})
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return result, nil
}

// decodeValue reads one JSON value from dec, recursing into objects (as
// Object, to preserve order) and arrays (as []any, decoding each element
// the same way).
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObjectBody(dec)
		case '[':
			var arr []any
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("ddm: unexpected delimiter %v", t)
		}
	default:
		return tok, nil
	}
}

// MarshalJSONValue encodes an ordered value tree (as produced by [Merge] or
// [ParseJSON]) back to JSON text.
func MarshalJSONValue(v any) ([]byte, error) {
	return json.Marshal(v)
}
