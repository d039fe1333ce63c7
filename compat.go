// SPDX-License-Identifier: Apache-2.0

package ddm

import jsonpatch "github.com/evanphx/json-patch/v5"

// ApplyMergePatch applies patch to base as an RFC 7386 JSON Merge Patch,
// independently of the engine's own Merge. It exists for callers who want
// plain merge-patch semantics — no identity-matched array alignment, no
// control keys, no reordering — available side by side with [Merge], and
// as an oracle: for an override that carries none of Options' five control
// keys, no null values and no arrays anywhere in its tree, the object-shaped
// subtrees of Merge's result and ApplyMergePatch's result must agree, since
// DDM's object combinator degenerates to RFC 7386 semantics in that case. A
// null in the override differs: RFC 7386 removes the key, Merge stores null.
// Arrays differ too: RFC 7386 replaces them, Merge aligns and appends items.
func ApplyMergePatch(base, patch []byte) ([]byte, error) {
	return jsonpatch.MergePatch(base, patch)
}
