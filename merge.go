// SPDX-License-Identifier: Apache-2.0

package ddm

// mergeValue is the value combinator: it dispatches on the type pair
// (base, override) and returns the merged value, delegating to
// mergeObject and mergeArray for composite types.
func (m *Merger) mergeValue(base, override any, depth int) (any, error) {
	if err := m.checkDepth(depth); err != nil {
		return nil, err
	}

	// Step 1: override absent or null — the null primitive always wins,
	// discarding base, same as any other primitive override.
	if override == nil {
		return nil, nil
	}

	// Step 2: override is a typed-value wrapper.
	if ov, ok := asObject(override); ok {
		if wrapped, has := ov.Get(m.opts.ValueKey); has {
			return deepCopy(wrapped), nil
		}
	}

	// Step 3: override is a primitive (non-object, non-array).
	if !isComposite(override) {
		return deepCopy(override), nil
	}

	// Steps 4-8: composite dispatch. When base isn't the same composite
	// kind as override (absent, null, primitive, or the other composite
	// kind), it is treated as an empty counterpart so override's control
	// keys are still processed and stripped.
	switch ov := override.(type) {
	case Object:
		baseObj, _ := asObject(base)
		return m.mergeObject(baseObj, ov, depth)
	case []any:
		baseArr, _ := asArray(base)
		return m.mergeArray(baseArr, ov, depth)
	default:
		return deepCopy(override), nil
	}
}
