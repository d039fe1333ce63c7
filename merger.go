// SPDX-License-Identifier: Apache-2.0

package ddm

// Merger performs document merging with the configured options. It tracks
// the current document path for detailed error reporting and caches the
// options' derived escape-prefix character.
//
// A Merger can be safely reused for multiple merge operations, but is not
// safe to use concurrently: each merge mutates the Merger's path stack.
// Unrelated merges should use separate Mergers, or call the package-level
// [Merge] / [MergeMarshal], which construct one per call.
type Merger struct {
	opts      Options
	prefix    rune
	hasPrefix bool
	path      []string
}

// NewMerger creates a new Merger with the given options. Empty control-key
// fields are replaced with their documented defaults. Returns an error if
// the resulting options are invalid (colliding control keys, negative
// MaxDepth).
func NewMerger(opts Options) (*Merger, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	prefix, hasPrefix := prefixChar(opts.IDKey)
	return &Merger{opts: opts, prefix: prefix, hasPrefix: hasPrefix}, nil
}

// Options returns the effective options (after defaulting) configured for
// this Merger.
func (m *Merger) Options() Options {
	return m.opts
}

// Merge merges a base document (layers[0]) and its ordered overrides
// (layers[1:]) left to right. Merge(opts, layers...) is equivalent to
// constructing a Merger and calling [Merger.Merge].
func Merge(opts Options, layers ...any) (any, error) {
	m, err := NewMerger(opts)
	if err != nil {
		return nil, err
	}
	return m.Merge(layers...)
}

// Merge merges layers left to right: each later layer is an override
// applied on top of the merge of everything before it. A layer that is
// nil (absent or a JSON null) collapses the running result to nil,
// per the protocol's primitive-override semantics — nil is itself the
// null primitive, and any primitive override replaces the base outright.
func (m *Merger) Merge(layers ...any) (any, error) {
	var result any
	for _, layer := range layers {
		m.path = m.path[:0]
		merged, err := m.mergeValue(result, layer, 0)
		if err != nil {
			return nil, err
		}
		result = merged
	}
	return result, nil
}

// MergeMarshal merges byte documents using the provided unmarshal and
// marshal functions. unmarshal is handed a *any and must store the decoded
// layer there, as an ordered [Object] for object-shaped layers. [ParseJSON],
// [ParseYAML], and [ParseTOML] return such a tree rather than storing it, so
// they are passed through a small adapter of that shape (as [MergeInto]
// does for JSON). Returns an empty slice if layers is empty.
func (m *Merger) MergeMarshal(
	unmarshal func([]byte, any) error,
	marshal func(any) ([]byte, error),
	layers ...[]byte,
) ([]byte, error) {
	if len(layers) == 0 {
		return []byte{}, nil
	}

	parsed := make([]any, len(layers))
	for i, raw := range layers {
		var v any
		if err := unmarshal(raw, &v); err != nil {
			return nil, &MarshalError{Err: err, LayerIndex: i}
		}
		parsed[i] = v
	}

	result, err := m.Merge(parsed...)
	if err != nil {
		return nil, err
	}
	return marshal(result)
}

// MergeMarshal merges byte documents. See [Merger.MergeMarshal].
func MergeMarshal(
	opts Options,
	unmarshal func([]byte, any) error,
	marshal func(any) ([]byte, error),
	layers ...[]byte,
) ([]byte, error) {
	m, err := NewMerger(opts)
	if err != nil {
		return nil, err
	}
	return m.MergeMarshal(unmarshal, marshal, layers...)
}

func (m *Merger) push(segment string) {
	m.path = append(m.path, segment)
}

func (m *Merger) pop() {
	if len(m.path) == 0 {
		panic("ddm: unbalanced Merger pop")
	}
	m.path = m.path[:len(m.path)-1]
}

func (m *Merger) pathSnapshot() []string {
	return append([]string(nil), m.path...)
}

func (m *Merger) checkDepth(depth int) error {
	if m.opts.MaxDepth > 0 && depth > m.opts.MaxDepth {
		return &DepthExceededError{Path: m.pathSnapshot(), MaxDepth: m.opts.MaxDepth}
	}
	return nil
}

func (m *Merger) unescapeKey(raw string) string {
	return unescapeKey(raw, m.prefix, m.hasPrefix)
}
