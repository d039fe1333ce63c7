// SPDX-License-Identifier: Apache-2.0

package ddm

import "fmt"

// arrayItem tracks one base-array element through the align and materialize
// phases: whether it has already been replaced by an owned merge result
// (fresh), and whether an override delete marker tombstoned it.
type arrayItem struct {
	element any
	fresh   bool
	deleted bool
}

// mergeArray is the array combinator: it identity-aligns override items
// against base, deep-merges matched pairs, appends unmatched items, applies
// deletions, then runs the reorder pass and strips control keys.
func (m *Merger) mergeArray(base, override []any, depth int) ([]any, error) {
	work := make([]arrayItem, len(base))
	index := map[string]int{}
	for i, item := range base {
		work[i] = arrayItem{element: item}
		if id, ok := identity(item, m.opts); ok {
			if _, exists := index[id]; !exists {
				index[id] = i
			}
		}
	}

	var appended []any
	for _, o := range override {
		id, hasID := identity(o, m.opts)
		if hasID {
			if i, ok := index[id]; ok {
				if isDeleteMarker(o, m.opts) {
					work[i].deleted = true
					continue
				}
				m.push(id)
				merged, err := m.mergeValue(work[i].element, o, depth+1)
				m.pop()
				if err != nil {
					return nil, err
				}
				work[i] = arrayItem{element: merged, fresh: true}
				continue
			}
		}

		if isDeleteMarker(o, m.opts) {
			continue
		}
		m.push(fmt.Sprintf("[%d]", len(work)+len(appended)))
		merged, err := m.mergeValue(nil, o, depth+1)
		m.pop()
		if err != nil {
			return nil, err
		}
		appended = append(appended, merged)
	}

	result := make([]any, 0, len(work)+len(appended))
	for _, item := range work {
		if item.deleted {
			continue
		}
		if item.fresh {
			result = append(result, item.element)
		} else {
			result = append(result, deepCopy(item.element))
		}
	}
	result = append(result, appended...)

	var moves []Move
	for i, item := range result {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		mv, ok := moveFromObject(tagForItem(item, i, m.opts), obj, m.opts)
		if !ok {
			continue
		}
		moves = append(moves, mv)
	}
	if len(moves) > 0 {
		reordered, err := m.reorderArrayItems(result, moves)
		if err != nil {
			return nil, err
		}
		result = reordered
	}

	for i, item := range result {
		result[i] = stripControlKeys(item, m.opts)
	}

	return result, nil
}

// anonymousTagPrefix marks a synthetic reorder subject/anchor handle
// assigned to an array item with no well-formed identity. It is a control
// character sequence that can never collide with a real identity string
// decoded from JSON text.
const anonymousTagPrefix = "\x00#"

// tagForItem returns the handle used to locate item during the array
// reorder pass: its identity if well-formed, otherwise a synthetic tag
// derived from its scan-time index. A synthetic tag is stable for the
// duration of one reorder pass (assigned once, before any move is applied)
// but, per the protocol, cannot be referenced as an anchor by another
// item's move, since nothing observable names it.
func tagForItem(item any, idx int, opts Options) string {
	if id, ok := identity(item, opts); ok {
		return id
	}
	return fmt.Sprintf("%s%d", anonymousTagPrefix, idx)
}
