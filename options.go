// SPDX-License-Identifier: Apache-2.0

package ddm

import "fmt"

// AnchorPolicy controls what happens when a reorder directive names an
// anchor that is not present in the merged collection.
type AnchorPolicy int

const (
	// AnchorStrict fails the merge with an [AnchorMissingError] when a
	// named anchor cannot be found. This is the zero value, matching the
	// protocol's documented default (strict-anchor = true).
	AnchorStrict AnchorPolicy = iota
	// AnchorLenient silently degrades a missing anchor to an append at
	// the end of the collection.
	AnchorLenient
)

func (p AnchorPolicy) String() string {
	switch p {
	case AnchorStrict:
		return "AnchorStrict"
	case AnchorLenient:
		return "AnchorLenient"
	default:
		return fmt.Sprintf("AnchorPolicy(%d)", p)
	}
}

// Options configures the control-key vocabulary and identity semantics
// used by Merge. The zero value is valid: empty key names are replaced
// with their documented defaults by [NewMerger], and the zero
// [AnchorPolicy] is [AnchorStrict].
type Options struct {
	// IDKey names the object field that carries an array item's identity.
	// Default: "$id".
	IDKey string
	// PositionKey names the field that marks a reorder directive.
	// Default: "$position".
	PositionKey string
	// AnchorKey names the field that carries a reorder's anchor reference.
	// Default: "$anchor".
	AnchorKey string
	// PatchKey names the field whose value "delete" marks a delete
	// directive. Default: "$patch".
	PatchKey string
	// ValueKey names the field that marks a typed-value wrapper in an
	// override. Default: "$value".
	ValueKey string
	// Anchor selects strict or lenient handling of a missing reorder
	// anchor. Default: AnchorStrict.
	Anchor AnchorPolicy
	// MaxDepth bounds recursion depth to guard against pathological
	// inputs. Zero (the default) means unbounded.
	MaxDepth int
}

// DefaultOptions returns the protocol's documented defaults.
func DefaultOptions() Options {
	return Options{
		IDKey:       "$id",
		PositionKey: "$position",
		AnchorKey:   "$anchor",
		PatchKey:    "$patch",
		ValueKey:    "$value",
		Anchor:      AnchorStrict,
	}
}

// withDefaults fills empty key names with their documented defaults,
// leaving any explicitly-configured key name and the Anchor policy alone.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.IDKey == "" {
		o.IDKey = d.IDKey
	}
	if o.PositionKey == "" {
		o.PositionKey = d.PositionKey
	}
	if o.AnchorKey == "" {
		o.AnchorKey = d.AnchorKey
	}
	if o.PatchKey == "" {
		o.PatchKey = d.PatchKey
	}
	if o.ValueKey == "" {
		o.ValueKey = d.ValueKey
	}
	return o
}

// validate checks that the five control keys are mutually distinct; a
// collision would make the control-key vocabulary ambiguous at the wire
// level.
func (o Options) validate() error {
	seen := map[string]string{}
	names := []struct{ val, field string }{
		{o.IDKey, "IDKey"}, {o.PositionKey, "PositionKey"},
		{o.AnchorKey, "AnchorKey"}, {o.PatchKey, "PatchKey"},
		{o.ValueKey, "ValueKey"},
	}
	for _, n := range names {
		if prev, dup := seen[n.val]; dup {
			return fmt.Errorf("%w: %s and %s both use control key %q", ErrInvalidOptions, prev, n.field, n.val)
		}
		seen[n.val] = n.field
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("%w: MaxDepth must be non-negative, got %d", ErrInvalidOptions, o.MaxDepth)
	}
	return nil
}

// prefixChar returns the leading character of idKey when that character is
// not alphanumeric, and whether such a character exists. This is computed
// once per Options set at [NewMerger] time and cached on the Merger, per
// the protocol's recommendation.
func prefixChar(idKey string) (rune, bool) {
	if idKey == "" {
		return 0, false
	}
	r := []rune(idKey)[0]
	if isAlnum(r) {
		return 0, false
	}
	return r, true
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
