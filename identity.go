// SPDX-License-Identifier: Apache-2.0

package ddm

const deleteDirective = "delete"

// identity returns the string at v[opts.IDKey] iff v is an Object and the
// entry is a string. Objects without a well-formed identity are
// "anonymous" and never match during array alignment.
func identity(v any, opts Options) (string, bool) {
	obj, ok := asObject(v)
	if !ok {
		return "", false
	}
	raw, found := obj.Get(opts.IDKey)
	if !found {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return s, true
}

// isDeleteMarker reports whether v is an object whose patch-key entry is
// the literal string "delete".
func isDeleteMarker(v any, opts Options) bool {
	obj, ok := asObject(v)
	if !ok {
		return false
	}
	raw, found := obj.Get(opts.PatchKey)
	if !found {
		return false
	}
	s, ok := raw.(string)
	return ok && s == deleteDirective
}

// stripControlKeys returns v with its position, anchor, and patch entries
// removed if v is an Object; non-objects (and the value key) pass through
// unchanged. The value key is never stripped here: it is left for the
// value combinator's wrapper-extraction step to consume.
func stripControlKeys(v any, opts Options) any {
	obj, ok := asObject(v)
	if !ok {
		return v
	}
	obj = obj.clone()
	obj = obj.without(opts.PositionKey)
	obj = obj.without(opts.AnchorKey)
	obj = obj.without(opts.PatchKey)
	return obj
}

// unescapeKey collapses a single leading doubled prefix character: when
// the configured options have a prefix character (the id key begins with
// a non-alphanumeric character) and raw begins with that character
// doubled, the unescaped key is raw with its first character removed.
// Only one level of escaping is ever collapsed, so "$$$id" unescapes to
// "$$id".
func unescapeKey(raw string, prefix rune, hasPrefix bool) string {
	if !hasPrefix {
		return raw
	}
	runes := []rune(raw)
	if len(runes) < 2 {
		return raw
	}
	if runes[0] == prefix && runes[1] == prefix {
		return string(runes[1:])
	}
	return raw
}

// shouldPreservePrimitive implements the primitive-preservation rule: a
// base primitive (or null) survives an override that carries only
// metadata — at least one of position/anchor/patch, and no value key.
func shouldPreservePrimitive(base, override any, opts Options) bool {
	if isComposite(base) {
		return false
	}
	ov, ok := asObject(override)
	if !ok {
		return false
	}
	if ov.Has(opts.ValueKey) {
		return false
	}
	return ov.Has(opts.PositionKey) || ov.Has(opts.AnchorKey) || ov.Has(opts.PatchKey)
}
