// SPDX-License-Identifier: MIT

package boundary_test

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/boundary"
	"github.com/katalvlaran/softbody/topology"
)

func TestFaces_SingleTetra(t *testing.T) {
	faces, st, err := boundary.Faces([][4]int{{0, 1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, [][3]int{{1, 0, 2}, {3, 0, 1}, {3, 1, 2}, {2, 0, 3}}, faces)
	assert.Equal(t, boundary.Stats{Tetras: 1, Derived: 4, Survived: 4}, st)
}

func TestFaces_TwoGluedTetras(t *testing.T) {
	// Shared face {1,2,3}: tet A yields (3,1,2), tet B yields (1,3,2).
	tets := [][4]int{{0, 1, 2, 3}, {4, 3, 2, 1}}
	faces, st, err := boundary.Faces(tets)
	require.NoError(t, err)
	assert.Len(t, faces, 6)
	assert.Equal(t, 1, st.Cancelled)
	assert.Equal(t, 6, st.Survived)
	for _, f := range faces {
		assert.NotEqual(t, [3]int{1, 2, 3}, sorted(f), "shared face must cancel")
	}
	// Survivors keep insertion order: tet A's three outer faces first.
	assert.Equal(t, [][3]int{{1, 0, 2}, {3, 0, 1}, {2, 0, 3}}, faces[:3])
}

func TestFaces_Empty(t *testing.T) {
	faces, st, err := boundary.Faces(nil)
	require.NoError(t, err)
	assert.Empty(t, faces)
	assert.Zero(t, st.Survived)
}

func TestFaces_NegativeIndex(t *testing.T) {
	_, _, err := boundary.Faces([][4]int{{0, 1, -2, 3}})
	assert.ErrorIs(t, err, boundary.ErrNegativeIndex)
}

func TestFaces_NonManifoldPolicy(t *testing.T) {
	// Three tets fanned around face {1,2,3}.
	tets := [][4]int{{0, 1, 2, 3}, {4, 1, 2, 3}, {5, 1, 2, 3}}

	faces, st, err := boundary.Faces(tets)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Repeated)
	// Third occurrence re-inserted: 3+3+3 outer faces plus the shared one.
	assert.Len(t, faces, 10)
	shared := 0
	for _, f := range faces {
		if sorted(f) == [3]int{1, 2, 3} {
			shared++
			assert.Equal(t, [3]int{3, 1, 2}, f)
		}
	}
	assert.Equal(t, 1, shared)
	assert.Equal(t, [3]int{2, 5, 3}, faces[len(faces)-1])

	_, _, err = boundary.Faces(tets, boundary.WithStrict())
	assert.ErrorIs(t, err, boundary.ErrNonManifold)
}

func TestFaces_WorkersMatchSerial(t *testing.T) {
	tets := cubeTetras(4)
	want, wantSt, err := boundary.Faces(tets)
	require.NoError(t, err)
	for _, n := range []int{2, 3, 8} {
		got, gotSt, err := boundary.Faces(tets, boundary.WithWorkers(n), boundary.WithContext(context.Background()))
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", n)
		assert.Equal(t, wantSt, gotSt)
	}
	// A 4x4x4 lattice of cubes, 6 tets per cube, has 6*16*2 boundary triangles.
	assert.Len(t, want, 6*4*4*2)
}

func TestFaces_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := boundary.Faces(cubeTetras(3), boundary.WithWorkers(2), boundary.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithWorkers_Panics(t *testing.T) {
	assert.Panics(t, func() { boundary.WithWorkers(0) })
}

func TestApply(t *testing.T) {
	b := topology.NewBody()
	_, err := b.AddNodes([]r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 1, Z: 1}}, nil)
	require.NoError(t, err)
	_, err = b.AddTetra(0, 1, 2, 3)
	require.NoError(t, err)
	_, err = b.AddTetra(4, 3, 2, 1)
	require.NoError(t, err)

	st, err := boundary.Apply(b)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Survived)
	assert.Equal(t, 6, b.FaceCount())
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "tolerant", boundary.Tolerant.String())
	assert.Equal(t, "strict", boundary.Strict.String())
	assert.Equal(t, "Policy(7)", boundary.Policy(7).String())
}

func TestBoundaryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("lattice boundary is closed: every edge used twice", prop.ForAll(
		func(n int) bool {
			faces, _, err := boundary.Faces(cubeTetras(n))
			if err != nil {
				return false
			}
			if len(faces) != 12*n*n {
				return false
			}
			uses := map[uint64]int{}
			for _, f := range faces {
				for j, k := 2, 0; k < 3; j, k = k, k+1 {
					uses[topology.PairKey(f[j], f[k])]++
				}
			}
			for _, u := range uses {
				if u != 2 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 4),
	))

	properties.Property("boundary is independent of worker count", prop.ForAll(
		func(n, w int) bool {
			tets := cubeTetras(n)
			a, _, err1 := boundary.Faces(tets)
			b, _, err2 := boundary.Faces(tets, boundary.WithWorkers(w))
			if err1 != nil || err2 != nil || len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 4),
		gen.IntRange(1, 6),
	))

	properties.TestingRun(t)
}

func sorted(f [3]int) [3]int {
	a, b, c := f[0], f[1], f[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]int{a, b, c}
}

// cubeTetras splits an n×n×n lattice of unit cubes into 6 tetras each
// (Kuhn subdivision along the main diagonal), giving a conforming mesh.
func cubeTetras(n int) [][4]int {
	v := func(x, y, z int) int { return (z*(n+1)+y)*(n+1) + x }
	var tets [][4]int
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				c := [8]int{
					v(x, y, z), v(x+1, y, z), v(x, y+1, z), v(x+1, y+1, z),
					v(x, y, z+1), v(x+1, y, z+1), v(x, y+1, z+1), v(x+1, y+1, z+1),
				}
				// Paths from corner 0 to corner 7 through the three axes in every order.
				for _, p := range [6][2]int{{1, 3}, {1, 5}, {2, 3}, {2, 6}, {4, 5}, {4, 6}} {
					tets = append(tets, [4]int{c[0], c[p[0]], c[p[1]], c[7]})
				}
			}
		}
	}
	return tets
}
