// SPDX-License-Identifier: Apache-2.0

package ddm

// mergeObject is the object combinator: it deep-merges override into base by
// key, collecting reorder requests and applying deletions along the way,
// then applies the collected reorder pass once the per-key scan is done.
func (m *Merger) mergeObject(base, override Object, depth int) (Object, error) {
	result := deepCopy(base).(Object)
	var moves []Move

	for _, entry := range override {
		k := m.unescapeKey(entry.Key)
		v := entry.Value

		if vObj, ok := asObject(v); ok {
			if mv, ok := moveFromObject(k, vObj, m.opts); ok {
				moves = append(moves, mv)
			}
			if isDeleteMarker(v, m.opts) && !vObj.Has(m.opts.ValueKey) {
				result = result.without(k)
				continue
			}
		}

		bv, present := result.Get(k)
		if shouldPreservePrimitive(bv, v, m.opts) {
			if present {
				continue
			}
			// k is a brand-new key with no base counterpart: a
			// metadata-only override has nothing to merge against, so it
			// is kept verbatim rather than stripped down to nothing.
			result = result.set(k, deepCopy(v))
			continue
		}

		var baseForMerge any
		if present {
			baseForMerge = bv
		}

		m.push(k)
		merged, err := m.mergeValue(baseForMerge, stripControlKeys(v, m.opts), depth+1)
		m.pop()
		if err != nil {
			return nil, err
		}
		result = result.set(k, merged)
	}

	if len(moves) > 0 {
		reordered, err := m.reorderObjectKeys(result, moves)
		if err != nil {
			return nil, err
		}
		result = reordered
	}

	return result, nil
}

// moveFromObject extracts a reorder move from an override value v keyed by
// subject, iff v has a string-valued position key.
func moveFromObject(subject string, v Object, opts Options) (Move, bool) {
	posRaw, ok := v.Get(opts.PositionKey)
	if !ok {
		return Move{}, false
	}
	pos, ok := posRaw.(string)
	if !ok {
		return Move{}, false
	}
	mv := Move{Subject: subject, Position: pos}
	if aRaw, ok := v.Get(opts.AnchorKey); ok {
		if a, ok := aRaw.(string); ok {
			mv.Anchor, mv.HasAnchor = a, true
		}
	}
	return mv, true
}
