// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"testing"

	"github.com/ddm-project/ddm"
)

const (
	numUsers    = 100
	numServices = 50
	basePort    = 8000
)

// generateLargeBase creates a large base configuration with multiple
// identity-bearing sections.
func generateLargeBase() ddm.Object {
	users := make([]any, numUsers)
	for i := 0; i < numUsers; i++ {
		users[i] = ddm.NewObject(
			"$id", fmt.Sprintf("user%d", i),
			"email", fmt.Sprintf("user%d@example.com", i),
			"role", "member",
			"settings", ddm.NewObject(
				"notifications", true,
				"theme", "light",
				"language", "en",
			),
		)
	}

	services := make([]any, numServices)
	for i := 0; i < numServices; i++ {
		services[i] = ddm.NewObject(
			"$id", fmt.Sprintf("service%d", i),
			"port", basePort+i,
			"config", ddm.NewObject(
				"timeout", 30,
				"retries", 3,
				"compression", true,
			),
		)
	}

	return ddm.NewObject(
		"version", "1.0",
		"users", users,
		"services", services,
		"global", ddm.NewObject(
			"debug", false,
			"logging", "info",
			"region", "us-east-1",
		),
	)
}

// generateOverlays creates multiple overlays that touch different parts of
// the base, identity-matching into its users and services arrays.
func generateOverlays(count int) []any {
	overlays := make([]any, count)
	for i := 0; i < count; i++ {
		overlays[i] = ddm.NewObject(
			"users", []any{
				ddm.NewObject("$id", fmt.Sprintf("user%d", i*2), "role", "admin"),
				ddm.NewObject(
					"$id", fmt.Sprintf("user%d", i*2+1),
					"settings", ddm.NewObject("theme", "dark"),
				),
			},
			"services", []any{
				ddm.NewObject(
					"$id", fmt.Sprintf("service%d", i),
					"config", ddm.NewObject("timeout", 60),
				),
			},
		)
	}
	return overlays
}

func BenchmarkMerge_Small(b *testing.B) {
	base := ddm.NewObject(
		"users", []any{
			ddm.NewObject("$id", "alice"),
			ddm.NewObject("$id", "bob"),
		},
	)
	overlay := ddm.NewObject(
		"users", []any{
			ddm.NewObject("$id", "alice", "role", "admin"),
		},
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), base, overlay)
	}
}

func BenchmarkMerge_Medium(b *testing.B) {
	base := generateLargeBase()
	overlays := generateOverlays(5)

	layers := make([]any, len(overlays)+1)
	layers[0] = base
	copy(layers[1:], overlays)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), layers...)
	}
}

func BenchmarkMerge_Large(b *testing.B) {
	base := generateLargeBase()
	overlays := generateOverlays(20)

	layers := make([]any, len(overlays)+1)
	layers[0] = base
	copy(layers[1:], overlays)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), layers...)
	}
}

func BenchmarkMerge_DeepNesting(b *testing.B) {
	base := ddm.NewObject(
		"level1", ddm.NewObject(
			"level2", ddm.NewObject(
				"level3", ddm.NewObject(
					"level4", ddm.NewObject(
						"items", []any{
							ddm.NewObject("$id", "1", "value", "a"),
							ddm.NewObject("$id", "2", "value", "b"),
						},
					),
				),
			),
		),
	)

	overlay := ddm.NewObject(
		"level1", ddm.NewObject(
			"level2", ddm.NewObject(
				"level3", ddm.NewObject(
					"level4", ddm.NewObject(
						"items", []any{
							ddm.NewObject("$id", "1", "value", "updated"),
							ddm.NewObject("$id", "3", "value", "c"),
						},
					),
				),
			),
		),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), base, overlay)
	}
}

func BenchmarkMerge_ListsWithoutIdentity(b *testing.B) {
	base := ddm.NewObject(
		"tags", []any{"tag1", "tag2", "tag3", "tag4", "tag5"},
	)
	overlay := ddm.NewObject(
		"tags", []any{"tag6", "tag7", "tag8"},
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), base, overlay)
	}
}

func BenchmarkMerge_ManySmallOverlays(b *testing.B) {
	base := generateLargeBase()
	overlays := generateOverlays(50)

	layers := make([]any, len(overlays)+1)
	layers[0] = base
	copy(layers[1:], overlays)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), layers...)
	}
}

func BenchmarkMerge_ScalarOverridesOnly(b *testing.B) {
	base := ddm.NewObject(
		"a", 1, "b", 2, "c", 3, "d", 4, "e", 5,
		"f", ddm.NewObject("g", 6, "h", 7, "i", 8),
	)
	overlay := ddm.NewObject(
		"a", 10, "c", 30,
		"f", ddm.NewObject("h", 70),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), base, overlay)
	}
}

func BenchmarkMerge_ReorderHeavy_Small(b *testing.B) {
	base := ddm.NewObject(
		"items", []any{
			ddm.NewObject("$id", "a"),
			ddm.NewObject("$id", "b"),
			ddm.NewObject("$id", "c"),
			ddm.NewObject("$id", "d"),
			ddm.NewObject("$id", "e"),
		},
	)
	overlay := ddm.NewObject(
		"items", []any{
			ddm.NewObject("$id", "e", "$position", "start"),
			ddm.NewObject("$id", "c", "$position", "after", "$anchor", "a"),
			ddm.NewObject("$id", "b", "$position", "end"),
		},
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), base, overlay)
	}
}

func BenchmarkMerge_ReorderHeavy_Large(b *testing.B) {
	const n = 200
	items := make([]any, n)
	for i := 0; i < n; i++ {
		items[i] = ddm.NewObject("$id", fmt.Sprintf("item%d", i))
	}
	base := ddm.NewObject("items", items)

	moves := make([]any, n)
	for i := 0; i < n; i++ {
		moves[i] = ddm.NewObject("$id", fmt.Sprintf("item%d", n-1-i), "$position", "start")
	}
	overlay := ddm.NewObject("items", moves)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), base, overlay)
	}
}

func BenchmarkMerge_DeleteHeavy(b *testing.B) {
	const n = 200
	items := make([]any, n)
	for i := 0; i < n; i++ {
		items[i] = ddm.NewObject("$id", fmt.Sprintf("item%d", i), "value", i)
	}
	base := ddm.NewObject("items", items)

	deletes := make([]any, n/2)
	for i := 0; i < n/2; i++ {
		deletes[i] = ddm.NewObject("$id", fmt.Sprintf("item%d", i*2), "$patch", "delete")
	}
	overlay := ddm.NewObject("items", deletes)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ddm.Merge(ddm.DefaultOptions(), base, overlay)
	}
}
