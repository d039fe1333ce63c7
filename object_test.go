// SPDX-License-Identifier: Apache-2.0

package ddm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddm-project/ddm"
)

func TestMergeObject_NewKeysAreAppended(t *testing.T) {
	base := ddm.NewObject("a", 1, "b", 2)
	overlay := ddm.NewObject("c", 3, "d", 4)

	result, err := ddm.Merge(ddm.DefaultOptions(), base, overlay)
	require.NoError(t, err)

	obj := result.(ddm.Object)
	assert.Equal(t, []string{"a", "b", "c", "d"}, obj.Keys())
	v, _ := obj.Get("c")
	assert.Equal(t, 3, v)
}

func TestMergeObject_ScalarOverrideReplacesInPlace(t *testing.T) {
	base := ddm.NewObject("name", "foo", "count", 10)
	overlay := ddm.NewObject("count", 20)

	result, err := ddm.Merge(ddm.DefaultOptions(), base, overlay)
	require.NoError(t, err)

	obj := result.(ddm.Object)
	// position of "count" is preserved even though its value changed.
	assert.Equal(t, []string{"name", "count"}, obj.Keys())
	v, _ := obj.Get("count")
	assert.Equal(t, 20, v)
}

func TestMergeObject_NilOverlayValueReplacesBase(t *testing.T) {
	base := ddm.NewObject("foo", "bar")
	overlay := ddm.NewObject("foo", nil)

	result, err := ddm.Merge(ddm.DefaultOptions(), base, overlay)
	require.NoError(t, err)

	obj := result.(ddm.Object)
	v, _ := obj.Get("foo")
	assert.Nil(t, v)
}

func TestMergeObject_DeepNestedMerge(t *testing.T) {
	base := ddm.NewObject(
		"server", ddm.NewObject("host", "localhost", "port", 8080),
	)
	overlay := ddm.NewObject(
		"server", ddm.NewObject("port", 9090),
	)

	result, err := ddm.Merge(ddm.DefaultOptions(), base, overlay)
	require.NoError(t, err)

	srvRaw, ok := result.(ddm.Object).Get("server")
	require.True(t, ok)
	srv := srvRaw.(ddm.Object)
	host, _ := srv.Get("host")
	port, _ := srv.Get("port")
	assert.Equal(t, "localhost", host)
	assert.Equal(t, 9090, port)
}

func TestMergeObject_DeleteNonExistentKeyIsNoop(t *testing.T) {
	base := ddm.NewObject("a", 1)
	overlay := ddm.NewObject("b", ddm.NewObject("$patch", "delete"))

	result, err := ddm.Merge(ddm.DefaultOptions(), base, overlay)
	require.NoError(t, err)

	obj := result.(ddm.Object)
	assert.False(t, obj.Has("b"))
	a, _ := obj.Get("a")
	assert.Equal(t, 1, a)
}

func TestMergeObject_ValueKeySiblingControlKeysDiscarded(t *testing.T) {
	base := ddm.NewObject("x", ddm.NewObject("old", true))
	overlay := ddm.NewObject(
		"x", ddm.NewObject("$value", "replacement", "$position", "start", "$patch", "delete"),
	)

	result, err := ddm.Merge(ddm.DefaultOptions(), base, overlay)
	require.NoError(t, err)

	obj := result.(ddm.Object)
	v, _ := obj.Get("x")
	assert.Equal(t, "replacement", v)
}

func TestMergeObject_EmptyOverlayDeepEqualsBase(t *testing.T) {
	base := ddm.NewObject("a", 1, "b", ddm.NewObject("c", 2))
	overlay := ddm.NewObject()

	result, err := ddm.Merge(ddm.DefaultOptions(), base, overlay)
	require.NoError(t, err)

	assert.Equal(t, base, result)
}

func TestMergeObject_NewMetadataOnlyKeyIsRetainedAsIs(t *testing.T) {
	// Open question in the protocol resolved conservatively: a brand-new
	// key whose override value is metadata-only (no base counterpart) is
	// retained as that metadata-only object, not dropped.
	base := ddm.NewObject("a", 1)
	overlay := ddm.NewObject("b", ddm.NewObject("$position", "start"))

	result, err := ddm.Merge(ddm.DefaultOptions(), base, overlay)
	require.NoError(t, err)

	obj := result.(ddm.Object)
	v, ok := obj.Get("b")
	require.True(t, ok)
	bv := v.(ddm.Object)
	assert.True(t, bv.Has("$position"))
}

func TestMergeObject_CustomControlKeys(t *testing.T) {
	opts := ddm.Options{
		IDKey:       "@id",
		PositionKey: "@pos",
		AnchorKey:   "@anchor",
		PatchKey:    "@op",
		ValueKey:    "@val",
	}
	base := ddm.NewObject("a", 1, "b", 2)
	overlay := ddm.NewObject("a", ddm.NewObject("@op", "delete"))

	result, err := ddm.Merge(opts, base, overlay)
	require.NoError(t, err)

	obj := result.(ddm.Object)
	assert.False(t, obj.Has("a"))
	b, _ := obj.Get("b")
	assert.Equal(t, 2, b)
}

func TestMergeObject_DuplicateControlKeysRejected(t *testing.T) {
	opts := ddm.Options{IDKey: "$id", PositionKey: "$id"}
	_, err := ddm.NewMerger(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ddm.ErrInvalidOptions)
}
