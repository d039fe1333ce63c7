// SPDX-License-Identifier: Apache-2.0

package ddm

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for simple error checking with [errors.Is]. For detailed
// error information, use [errors.As] with the typed errors below.
var (
	// ErrAnchorMissing indicates a reorder directive named an anchor that
	// is not present in the merged collection, under [AnchorStrict].
	ErrAnchorMissing = errors.New("ddm: anchor missing")
	// ErrDepthExceeded indicates recursion depth exceeded Options.MaxDepth.
	ErrDepthExceeded = errors.New("ddm: max recursion depth exceeded")
	// ErrInvalidOptions indicates invalid merge options were provided.
	ErrInvalidOptions = errors.New("ddm: invalid options")
	// ErrMarshal indicates a layer could not be unmarshaled.
	ErrMarshal = errors.New("ddm: marshal error")
)

// AnchorMissingError is returned when a reorder directive names an anchor
// that cannot be located, and Options.Anchor is [AnchorStrict].
type AnchorMissingError struct {
	// Anchor is the missing anchor value.
	Anchor string
	// Subject is the key (object context) or identity (array context) of
	// the item that requested the move. Empty if the subject was itself
	// anonymous (no identity).
	Subject string
	// Kind is "object" or "array", identifying which reorder pass failed.
	Kind string
	// Path is the document path at which the reorder was attempted.
	Path []string
}

func (e *AnchorMissingError) Error() string {
	path := strings.Join(e.Path, ".")
	if path == "" {
		path = "(root)"
	}
	if e.Subject == "" {
		return fmt.Sprintf("ddm: anchor %q not found at path %s (%s reorder)", e.Anchor, path, e.Kind)
	}
	return fmt.Sprintf("ddm: anchor %q not found for %q at path %s (%s reorder)", e.Anchor, e.Subject, path, e.Kind)
}

func (e *AnchorMissingError) Is(target error) bool {
	return target == ErrAnchorMissing
}

// DepthExceededError is returned when recursion depth exceeds
// Options.MaxDepth.
type DepthExceededError struct {
	// Path is the document path at which the bound was hit.
	Path []string
	// MaxDepth is the configured bound.
	MaxDepth int
}

func (e *DepthExceededError) Error() string {
	path := strings.Join(e.Path, ".")
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("ddm: recursion depth exceeded %d at path %s", e.MaxDepth, path)
}

func (e *DepthExceededError) Is(target error) bool {
	return target == ErrDepthExceeded
}

// MarshalError is returned when unmarshaling a layer fails. An error from
// the marshal function that encodes the merged result is returned as is,
// not wrapped in a MarshalError.
type MarshalError struct {
	// Err is the underlying error returned by the unmarshal function.
	Err error
	// LayerIndex tells which layer the error occurred on.
	LayerIndex int
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("ddm: cannot marshal layer %d: %v", e.LayerIndex, e.Err)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

func (e *MarshalError) Is(target error) bool {
	return target == ErrMarshal
}
