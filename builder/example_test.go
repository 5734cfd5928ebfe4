// SPDX-License-Identifier: MIT

package builder_test

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/builder"
	"github.com/katalvlaran/softbody/schedule"
)

// ExampleCreatePatch builds a 3×3 cloth pinned at its two top corners.
func ExampleCreatePatch() {
	b, err := builder.CreatePatch(
		r3.Vec{}, r3.Vec{X: 2}, r3.Vec{Y: 2}, r3.Vec{X: 2, Y: 2},
		3, 3, builder.Corner00|builder.Corner10, false,
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s := b.Stats()
	fmt.Printf("nodes=%d fixed=%d links=%d faces=%d\n", s.Nodes, s.FixedNodes, s.Links, s.Faces)

	// Output:
	// nodes=9 fixed=2 links=12 faces=8
}

// ExampleCreateFromVolume glues two tetras on a shared face; the shared face
// cancels, leaving six boundary triangles.
func ExampleCreateFromVolume() {
	positions := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 1, Z: 1}}
	tetras := [][4]int{{0, 1, 2, 3}, {4, 3, 2, 1}}

	b, err := builder.CreateFromVolume(positions, tetras)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("links:", b.LinkCount(), "faces:", b.FaceCount(), "tetras:", b.TetraCount())

	// Output:
	// links: 9 faces: 6 tetras: 2
}

// ExampleWithReorderLinks schedules a rope built alongside a second rope so
// that the two chains interleave.
func ExampleWithReorderLinks() {
	b, err := builder.BuildBody(
		[]builder.BuilderOption{builder.WithReorderLinks()},
		builder.Rope(r3.Vec{}, r3.Vec{X: 2}, 1, 0),
		builder.Rope(r3.Vec{Y: 1}, r3.Vec{X: 2, Y: 1}, 1, 0),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	parts := make([]string, 0, b.LinkCount())
	for _, l := range b.Links() {
		parts = append(parts, fmt.Sprintf("(%d,%d)", l.A, l.B))
	}
	fmt.Println(strings.Join(parts, " "))
	fmt.Println("adjacent conflicts:", schedule.AdjacentConflicts(b.Links()))

	// Output:
	// (0,1) (3,4) (1,2) (4,5)
	// adjacent conflicts: 0
}
