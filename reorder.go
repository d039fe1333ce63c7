// SPDX-License-Identifier: Apache-2.0

package ddm

import "strings"

// Move is a recorded reorder request: a subject (a key name in object
// context, an identity in array context), the position directive, and an
// optional anchor.
type Move struct {
	Subject   string
	Position  string
	Anchor    string
	HasAnchor bool
}

const (
	positionStart  = "start"
	positionEnd    = "end"
	positionBefore = "before"
	positionAfter  = "after"
)

// applyMoves rewrites seq by applying each move in order: locate the
// subject, remove it, compute a target index from the position and
// optional anchor, and reinsert it there. A move whose subject cannot be
// located is skipped. Locate is shared between the object form (by key
// name) and the array form (by identity) so both reorder passes are one
// implementation.
func applyMoves[T any](seq []T, moves []Move, locate func([]T, string) (int, bool), strict bool, missing func(Move) error) ([]T, error) {
	for _, mv := range moves {
		idx, found := locate(seq, mv.Subject)
		if !found {
			continue
		}
		item := seq[idx]
		seq = removeAt(seq, idx)

		target, err := targetIndex(seq, mv, locate, strict, missing)
		if err != nil {
			return nil, err
		}
		seq = insertAt(seq, target, item)
	}
	return seq, nil
}

func targetIndex[T any](seq []T, mv Move, locate func([]T, string) (int, bool), strict bool, missing func(Move) error) (int, error) {
	switch mv.Position {
	case positionStart:
		return 0, nil
	case positionEnd:
		return len(seq), nil
	case positionBefore, positionAfter:
		if !mv.HasAnchor {
			return len(seq), nil
		}
		anchorIdx, found := locate(seq, mv.Anchor)
		if !found {
			if strict {
				return 0, missing(mv)
			}
			return len(seq), nil
		}
		if mv.Position == positionBefore {
			return anchorIdx, nil
		}
		return anchorIdx + 1, nil
	default:
		// Unknown position values default to "end" with no error, to
		// match existing wire-format semantics.
		return len(seq), nil
	}
}

// removeAt returns seq with the element at idx removed, closing the gap.
func removeAt[T any](seq []T, idx int) []T {
	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:idx]...)
	out = append(out, seq[idx+1:]...)
	return out
}

// insertAt returns seq with item inserted at idx, clamped to [0, len(seq)].
func insertAt[T any](seq []T, idx int, item T) []T {
	if idx < 0 {
		idx = 0
	}
	if idx > len(seq) {
		idx = len(seq)
	}
	out := make([]T, 0, len(seq)+1)
	out = append(out, seq[:idx]...)
	out = append(out, item)
	out = append(out, seq[idx:]...)
	return out
}

// reorderObjectKeys applies moves to obj's key order, locating subjects by
// key name.
func (m *Merger) reorderObjectKeys(obj Object, moves []Move) (Object, error) {
	locate := func(seq []Entry, key string) (int, bool) {
		for i, e := range seq {
			if e.Key == key {
				return i, true
			}
		}
		return -1, false
	}
	missing := func(mv Move) error {
		return &AnchorMissingError{
			Anchor:  mv.Anchor,
			Subject: mv.Subject,
			Kind:    "object",
			Path:    m.pathSnapshot(),
		}
	}
	reordered, err := applyMoves([]Entry(obj), moves, locate, m.opts.Anchor == AnchorStrict, missing)
	if err != nil {
		return nil, err
	}
	return Object(reordered), nil
}

// taggedItem pairs an array element with the handle (identity, or a
// synthetic per-item tag) that the reorder pass uses to locate it.
type taggedItem struct {
	value any
	tag   string
}

// reorderArrayItems applies moves to items' positional order, locating
// subjects and anchors by the tag assigned in [tagForItem] — an item's
// identity when well-formed, otherwise a synthetic tag that only that
// item's own move (not any other item's anchor) can reference.
func (m *Merger) reorderArrayItems(items []any, moves []Move) ([]any, error) {
	tagged := make([]taggedItem, len(items))
	for i, it := range items {
		tagged[i] = taggedItem{value: it, tag: tagForItem(it, i, m.opts)}
	}

	locate := func(seq []taggedItem, tag string) (int, bool) {
		for i, t := range seq {
			if t.tag == tag {
				return i, true
			}
		}
		return -1, false
	}
	missing := func(mv Move) error {
		return &AnchorMissingError{
			Anchor:  mv.Anchor,
			Subject: displaySubject(mv.Subject),
			Kind:    "array",
			Path:    m.pathSnapshot(),
		}
	}

	reordered, err := applyMoves(tagged, moves, locate, m.opts.Anchor == AnchorStrict, missing)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(reordered))
	for i, t := range reordered {
		out[i] = t.value
	}
	return out, nil
}

// displaySubject blanks a synthetic anonymous-item tag so it never leaks
// into an error message as if it were a real identity.
func displaySubject(subject string) string {
	if strings.HasPrefix(subject, anonymousTagPrefix) {
		return ""
	}
	return subject
}
