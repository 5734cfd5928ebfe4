// SPDX-License-Identifier: MIT
//
// Package edgeset emits each undirected edge of a polygon or tetra stream
// exactly once, in first-discovery order.
//
// Membership is a test over ordered pairs (i,j). For a dense node range the
// test is a bitset over (maxIndex+1)² cells with both (i,j) and (j,i) marked on
// insertion; for a sparse or very large range it is a hash set keyed by the
// normalized pair. Both give O(1) Offer.
//
// Edge orders (these define the initial link order a scheduler sees):
//
//	triangle (t0,t1,t2): (t2,t0), (t0,t1), (t1,t2)
//	tetra (n0..n3):      01, 12, 20, 03, 13, 23
package edgeset

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/softbody/topology"
)

// ErrNegativeIndex indicates an edge endpoint below zero.
var ErrNegativeIndex = errors.New("edgeset: negative node index")

// DenseLimit is the largest (maxIndex+1)² for which New chooses the bitset.
// 1<<26 bits is 8 MiB.
const DenseLimit = denseSide * denseSide

// denseSide is the bit matrix side at DenseLimit. New compares maxIndex
// against it rather than squaring, which overflows for large ranges.
const denseSide = 1 << 13

// Edge is an undirected edge as first offered.
type Edge struct {
	A, B int
}

// Set is a membership filter over undirected edges.
type Set interface {
	// Offer records {i,j} and reports true if it had not been seen before.
	Offer(i, j int) bool
	// Len is the number of distinct edges recorded.
	Len() int
}

// New returns a Set suitable for node indices in [0, maxIndex].
func New(maxIndex int) Set {
	if maxIndex >= 0 && maxIndex < denseSide {
		return newDense(maxIndex)
	}

	return newSparse()
}

// dense marks both orientations of every edge in an n×n bit matrix.
// Indices outside [0,n) spill into a sparse set.
type dense struct {
	n     uint
	bits  *bitset.BitSet
	spill *sparse
	size  int
}

func newDense(maxIndex int) *dense {
	n := uint(maxIndex + 1)
	return &dense{n: n, bits: bitset.New(n * n)}
}

func (d *dense) Offer(i, j int) bool {
	if uint(i) >= d.n || uint(j) >= d.n {
		if d.spill == nil {
			d.spill = newSparse()
		}
		if !d.spill.Offer(i, j) {
			return false
		}
		d.size++
		return true
	}
	ij := d.n*uint(i) + uint(j)
	if d.bits.Test(ij) {
		return false
	}
	d.bits.Set(ij)
	d.bits.Set(d.n*uint(j) + uint(i))
	d.size++

	return true
}

func (d *dense) Len() int { return d.size }

// sparse keys each edge by its normalized pair.
type sparse struct {
	seen map[uint64]struct{}
}

func newSparse() *sparse {
	return &sparse{seen: make(map[uint64]struct{})}
}

func (s *sparse) Offer(i, j int) bool {
	key := topology.PairKey(i, j)
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}

	return true
}

func (s *sparse) Len() int { return len(s.seen) }

// Builder couples a Set with an ordered output list.
type Builder struct {
	set   Set
	edges []Edge
}

// NewBuilder returns a Builder for node indices in [0, maxIndex].
func NewBuilder(maxIndex int) *Builder {
	return &Builder{set: New(maxIndex)}
}

// Add offers {i,j}; if new it is appended to the output and true is returned.
// Degenerate edges (i == j) are ignored.
func (b *Builder) Add(i, j int) bool {
	if i == j {
		return false
	}
	if !b.set.Offer(i, j) {
		return false
	}
	b.edges = append(b.edges, Edge{A: i, B: j})

	return true
}

// AddTriangle offers the three edges of (t0,t1,t2) in triangle order.
func (b *Builder) AddTriangle(t [3]int) {
	for j, k := 2, 0; k < 3; j, k = k, k+1 {
		b.Add(t[j], t[k])
	}
}

// AddTetra offers the six edges of a tetra in tetra order.
func (b *Builder) AddTetra(t [4]int) {
	for _, e := range topology.TetraEdges(t) {
		b.Add(e[0], e[1])
	}
}

// Edges returns the distinct edges in first-discovery order.
func (b *Builder) Edges() []Edge { return b.edges }

// Len is the number of distinct edges.
func (b *Builder) Len() int { return len(b.edges) }

// FromTriangles returns the distinct edges of a triangle list.
func FromTriangles(tris [][3]int) ([]Edge, error) {
	maxIdx, err := maxIndex3(tris)
	if err != nil {
		return nil, err
	}
	b := NewBuilder(maxIdx)
	for _, t := range tris {
		b.AddTriangle(t)
	}

	return b.Edges(), nil
}

// FromTetras returns the distinct edges of a tetra list.
func FromTetras(tets [][4]int) ([]Edge, error) {
	maxIdx := -1
	for ti, t := range tets {
		for _, v := range t {
			if v < 0 {
				return nil, fmt.Errorf("FromTetras: tetra %d has index %d: %w", ti, v, ErrNegativeIndex)
			}
			maxIdx = max(maxIdx, v)
		}
	}
	b := NewBuilder(maxIdx)
	for _, t := range tets {
		b.AddTetra(t)
	}

	return b.Edges(), nil
}

func maxIndex3(tris [][3]int) (int, error) {
	maxIdx := -1
	for ti, t := range tris {
		for _, v := range t {
			if v < 0 {
				return -1, fmt.Errorf("FromTriangles: triangle %d has index %d: %w", ti, v, ErrNegativeIndex)
			}
			maxIdx = max(maxIdx, v)
		}
	}

	return maxIdx, nil
}
