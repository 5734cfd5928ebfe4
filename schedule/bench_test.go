// SPDX-License-Identifier: MIT

package schedule_test

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/builder"
	"github.com/katalvlaran/softbody/schedule"
	"github.com/katalvlaran/softbody/topology"
)

// patchLinks returns the links of an n×n cloth patch with diagonals.
func patchLinks(b *testing.B, n int) []topology.Link {
	b.Helper()
	body, err := builder.CreatePatch(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{X: 1, Y: 1}, n, n, 0, true)
	if err != nil {
		b.Fatal(err)
	}
	return body.Links()
}

// BenchmarkOrder_Patch64 schedules a 64×64 patch (~12k links) in its
// construction order, where most neighbours share a node.
func BenchmarkOrder_Patch64(b *testing.B) {
	links := patchLinks(b, 64)

	b.ReportAllocs()
	b.SetBytes(int64(len(links)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = schedule.Order(links)
	}
}

// BenchmarkReorder_Patch256 copies out the scheduled order of a 256×256
// patch (~200k links).
func BenchmarkReorder_Patch256(b *testing.B) {
	links := patchLinks(b, 256)

	b.ReportAllocs()
	b.SetBytes(int64(len(links)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = schedule.Reorder(links)
	}
}
