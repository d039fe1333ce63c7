// SPDX-License-Identifier: Apache-2.0

package ddm

import "encoding/json"

// MergeInto merges layers (JSON-encoded byte documents) with the given
// options and decodes the result into dst. It is the typed counterpart to
// [MergeMarshal] for callers whose documents are Go struct types rather
// than a free-form value tree: it round-trips through the engine's ordered
// [Object] codec so the struct's own json tags still govern field names
// without the caller touching the merge internals.
//
// dst must be a non-nil pointer. layers are merged left to right exactly
// as in [Merge], with layers[0] treated as the base.
func MergeInto[T any](opts Options, dst *T, layers ...[]byte) error {
	merged, err := MergeMarshal(opts, unmarshalJSONValue, MarshalJSONValue, layers...)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, dst)
}

// unmarshalJSONValue decodes raw into an ordered [Object]/[]any/primitive
// tree via [ParseJSON] when out is a *any, whatever the root value's kind;
// any other out is decoded with plain json.Unmarshal.
func unmarshalJSONValue(raw []byte, out any) error {
	ptr, ok := out.(*any)
	if !ok {
		return json.Unmarshal(raw, out)
	}
	v, err := ParseJSON(raw)
	if err != nil {
		return err
	}
	*ptr = v
	return nil
}
