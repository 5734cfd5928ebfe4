// SPDX-License-Identifier: MIT

package boundary_test

import (
	"testing"

	"github.com/katalvlaran/softbody/boundary"
)

// BenchmarkFaces_Cube measures face cancellation on a 16³ cube lattice
// (24576 tetras, 3072 boundary faces).
func BenchmarkFaces_Cube(b *testing.B) {
	tets := cubeTetras(16)

	b.ReportAllocs()
	b.SetBytes(int64(len(tets)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _, _ = boundary.Faces(tets)
	}
}

// BenchmarkFaces_CubeWorkers runs the same lattice with four derive workers.
func BenchmarkFaces_CubeWorkers(b *testing.B) {
	tets := cubeTetras(16)

	b.ReportAllocs()
	b.SetBytes(int64(len(tets)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _, _ = boundary.Faces(tets, boundary.WithWorkers(4))
	}
}
