// SPDX-License-Identifier: MIT
// Package topology_test verifies Body append/query/edit contracts.

package topology_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/topology"
)

// square builds four unit-square nodes 0..3 (counter-clockwise) with unit mass.
func square(t *testing.T) *topology.Body {
	t.Helper()
	b := topology.NewBody()
	_, err := b.AddNodes([]r3.Vec{{X: 0}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}, nil)
	require.NoError(t, err)

	return b
}

func TestBody_AddNode(t *testing.T) {
	b := topology.NewBody()
	i, err := b.AddNode(r3.Vec{X: 2}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	n, err := b.Node(0)
	require.NoError(t, err)
	assert.Equal(t, 0, n.Index)
	assert.Equal(t, 0.5, n.InverseMass)
	assert.False(t, n.Fixed())

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = b.AddNode(r3.Vec{}, bad)
		assert.ErrorIs(t, err, topology.ErrBadMass)
	}
	assert.Equal(t, 1, b.NodeCount())
}

func TestBody_AddNodesMasses(t *testing.T) {
	b := topology.NewBody()
	first, err := b.AddNodes([]r3.Vec{{}, {X: 1}, {X: 2}}, []float64{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, first)
	assert.Equal(t, 0.5, b.Nodes()[0].InverseMass)
	assert.True(t, b.Nodes()[1].Fixed())
	assert.Equal(t, 3.0, b.TotalMass())

	_, err = b.AddNodes([]r3.Vec{{}}, []float64{1, 2})
	assert.ErrorIs(t, err, topology.ErrBadMass)
	_, err = b.AddNodes([]r3.Vec{{}, {}}, []float64{1, -3})
	assert.ErrorIs(t, err, topology.ErrBadMass)
	assert.Equal(t, 3, b.NodeCount(), "failed AddNodes must not leave partial nodes")
}

func TestBody_AddLink(t *testing.T) {
	b := square(t)

	i, err := b.AddLink(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	l, err := b.Link(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, l.RestLength, 1e-12)

	_, err = b.AddLink(0, 2, topology.WithRestLength(7))
	require.NoError(t, err)
	assert.Equal(t, 7.0, b.Links()[1].RestLength)

	_, err = b.AddLink(1, 0)
	assert.ErrorIs(t, err, topology.ErrDuplicateLink)
	_, err = b.AddLink(3, 3)
	assert.ErrorIs(t, err, topology.ErrSelfLink)
	_, err = b.AddLink(0, 4)
	assert.ErrorIs(t, err, topology.ErrNodeOutOfRange)
	_, err = b.AddLink(-1, 0)
	assert.ErrorIs(t, err, topology.ErrNodeOutOfRange)

	assert.True(t, b.HasLink(1, 0))
	assert.Equal(t, 1, b.LinkIndex(2, 0))
	assert.Equal(t, -1, b.LinkIndex(2, 3))
	_, err = b.Link(5)
	assert.ErrorIs(t, err, topology.ErrLinkOutOfRange)
}

func TestBody_FacesTetrasAnchors(t *testing.T) {
	b := square(t)

	_, err := b.AddFace(0, 1, 2)
	require.NoError(t, err)
	_, err = b.AddFace(0, 0, 2)
	assert.ErrorIs(t, err, topology.ErrDegenerateElement)
	_, err = b.AddFace(0, 1, 9)
	assert.ErrorIs(t, err, topology.ErrNodeOutOfRange)

	_, err = b.AddTetra(0, 1, 2, 3)
	require.NoError(t, err)
	_, err = b.AddTetra(0, 1, 2, 2)
	assert.ErrorIs(t, err, topology.ErrDegenerateElement)
	assert.Equal(t, [][4]int{{0, 1, 2, 3}}, b.TetraIndices())

	a, err := b.AddAnchor(2)
	require.NoError(t, err)
	assert.True(t, b.Nodes()[2].Attached)
	_, err = b.AddAnchor(2)
	require.NoError(t, err)
	require.NoError(t, b.RemoveAnchor(a))
	assert.True(t, b.Nodes()[2].Attached, "second anchor still holds node 2")
	require.NoError(t, b.RemoveAnchor(0))
	assert.False(t, b.Nodes()[2].Attached)
	assert.ErrorIs(t, b.RemoveAnchor(0), topology.ErrAnchorOutOfRange)

	s := b.Stats()
	assert.Equal(t, topology.Stats{Nodes: 4, Links: 0, Faces: 1, Tetras: 1}, s)
}

func TestTetraFacesAndEdges(t *testing.T) {
	tet := topology.Tetra{N: [4]int{10, 11, 12, 13}}
	assert.Equal(t, [4][3]int{{11, 10, 12}, {13, 10, 11}, {13, 11, 12}, {12, 10, 13}}, tet.Faces())
	assert.Equal(t, [6][2]int{{10, 11}, {11, 12}, {12, 10}, {10, 13}, {11, 13}, {12, 13}}, tet.Edges())
}

func TestBody_SetLinks(t *testing.T) {
	b := square(t)
	for _, p := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		_, err := b.AddLink(p[0], p[1])
		require.NoError(t, err)
	}
	orig := append([]topology.Link(nil), b.Links()...)

	rev := []topology.Link{orig[3], orig[2], orig[1], orig[0]}
	require.NoError(t, b.SetLinks(rev))
	assert.Equal(t, rev, b.Links())
	assert.Equal(t, 0, b.LinkIndex(3, 0))

	assert.ErrorIs(t, b.SetLinks(rev[:3]), topology.ErrNotPermutation)
	assert.ErrorIs(t, b.SetLinks([]topology.Link{orig[0], orig[0], orig[1], orig[2]}), topology.ErrNotPermutation)
	assert.ErrorIs(t, b.SetLinks([]topology.Link{{A: 0, B: 2}, orig[1], orig[2], orig[3]}), topology.ErrNotPermutation)
}

func TestBody_RestLengthEditsKeepPairIndex(t *testing.T) {
	b := square(t)
	for _, p := range [][2]int{{0, 1}, {1, 2}, {2, 3}} {
		_, err := b.AddLink(p[0], p[1])
		require.NoError(t, err)
	}

	b.Links()[0].RestLength = 0.5
	require.NoError(t, b.SetRestLength(2, 2))
	assert.ErrorIs(t, b.SetRestLength(3, 1), topology.ErrLinkOutOfRange)
	assert.InDelta(t, 3.5, b.RestLength(), 1e-12)

	l, err := b.Link(0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, l.RestLength)
	assert.Equal(t, 2, b.LinkIndex(3, 2))

	// A reordering keeps the edited lengths and re-keys the pair index.
	links := b.Links()
	require.NoError(t, b.SetLinks([]topology.Link{links[2], links[0], links[1]}))
	assert.Equal(t, 0, b.LinkIndex(2, 3))
	assert.Equal(t, 2.0, b.Links()[0].RestLength)
}

func TestBody_RemoveNode(t *testing.T) {
	b := square(t)
	for _, p := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}} {
		_, err := b.AddLink(p[0], p[1])
		require.NoError(t, err)
	}
	_, err := b.AddFace(0, 1, 2)
	require.NoError(t, err)
	_, err = b.AddFace(0, 2, 3)
	require.NoError(t, err)
	_, err = b.AddAnchor(3)
	require.NoError(t, err)

	require.NoError(t, b.RemoveNode(1))

	assert.Equal(t, 3, b.NodeCount())
	for i, n := range b.Nodes() {
		assert.Equal(t, i, n.Index)
	}
	// Surviving links (2,3),(3,0),(0,2) renumbered to (1,2),(2,0),(0,1).
	require.Equal(t, 3, b.LinkCount())
	assert.True(t, b.HasLink(1, 2))
	assert.True(t, b.HasLink(2, 0))
	assert.True(t, b.HasLink(0, 1))
	require.Equal(t, 1, b.FaceCount())
	assert.Equal(t, [3]int{0, 1, 2}, b.Faces()[0].N)
	assert.Equal(t, 2, b.Anchors()[0].Node)
	assert.True(t, b.Nodes()[2].Attached)

	assert.ErrorIs(t, b.RemoveNode(3), topology.ErrNodeOutOfRange)
}

func TestBody_RemoveLinkAndLengths(t *testing.T) {
	b := square(t)
	for _, p := range [][2]int{{0, 1}, {1, 2}, {2, 3}} {
		_, err := b.AddLink(p[0], p[1])
		require.NoError(t, err)
	}
	assert.InDelta(t, 3.0, b.RestLength(), 1e-12)
	assert.InDelta(t, 3.0, b.LengthByPositions(), 1e-12)

	b.Nodes()[3].Position = r3.Vec{X: 1, Y: 3}
	assert.InDelta(t, 4.0, b.LengthByPositions(), 1e-12)
	assert.InDelta(t, 3.0, b.RestLength(), 1e-12)

	require.NoError(t, b.RemoveLink(1))
	assert.False(t, b.HasLink(1, 2))
	assert.Equal(t, 1, b.LinkIndex(2, 3))
	assert.ErrorIs(t, b.RemoveLink(2), topology.ErrLinkOutOfRange)

	lo, hi := b.Bounds()
	assert.Equal(t, r3.Vec{}, lo)
	assert.Equal(t, r3.Vec{X: 1, Y: 3}, hi)
}

func TestBody_CloneIsDeep(t *testing.T) {
	id := uuid.MustParse("6f1b0f4e-6a55-4c3e-9a43-3a4e0a0cbb41")
	b := topology.NewBody(topology.WithID(id), topology.WithCapacity(4, 4))
	_, err := b.AddNodes([]r3.Vec{{}, {X: 1}}, nil)
	require.NoError(t, err)
	_, err = b.AddLink(0, 1)
	require.NoError(t, err)

	c := b.Clone()
	assert.Equal(t, id, c.ID)
	c.Nodes()[0].Position = r3.Vec{X: 9}
	require.NoError(t, c.RemoveLink(0))

	assert.Equal(t, r3.Vec{}, b.Nodes()[0].Position)
	assert.True(t, b.HasLink(0, 1))
	assert.False(t, c.HasLink(0, 1))
}

func TestBody_SetMass(t *testing.T) {
	b := square(t)
	require.NoError(t, b.SetMass(0, 0))
	require.NoError(t, b.SetMass(1, 4))
	require.NoError(t, b.SetInverseMass(2, 0))
	assert.True(t, b.Nodes()[0].Fixed())
	assert.Equal(t, 0.25, b.Nodes()[1].InverseMass)
	assert.Equal(t, 2, b.Stats().FixedNodes)
	assert.ErrorIs(t, b.SetMass(7, 1), topology.ErrNodeOutOfRange)
	assert.ErrorIs(t, b.SetMass(0, -2), topology.ErrBadMass)
	assert.ErrorIs(t, b.SetInverseMass(0, math.NaN()), topology.ErrBadMass)
}

func TestPairKeySymmetric(t *testing.T) {
	assert.Equal(t, topology.PairKey(3, 9), topology.PairKey(9, 3))
	assert.NotEqual(t, topology.PairKey(3, 9), topology.PairKey(3, 8))
	assert.True(t, topology.Link{A: 1, B: 2}.Shares(topology.Link{A: 2, B: 5}))
	assert.False(t, topology.Link{A: 1, B: 2}.Shares(topology.Link{A: 3, B: 5}))
}
