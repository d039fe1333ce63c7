// SPDX-License-Identifier: Apache-2.0

// Package ddm implements a deterministic deep merge over JSON-shaped
// documents.
//
// Given an ordered sequence of layers — a base document followed by one or
// more overrides — Merge produces a single merged document. Objects are
// deep-merged by key. Array items are matched by a configurable identity
// field rather than by position, so an override can update, delete, or
// reorder a specific item without restating the whole array. A small
// vocabulary of control keys, configurable via Options, lets an override
// delete a key or item, reorder object keys or array items relative to a
// named anchor, or replace a base value with a typed wrapper while keeping
// the override's own control keys out of the result.
//
// The package works with any document source that can produce the ordered
// value tree described by [Object]: a custom decoder, or the bundled
// [ParseJSON], [ParseYAML], and [ParseTOML] helpers.
package ddm
