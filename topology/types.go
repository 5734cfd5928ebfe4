// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node, Link, Face, Tetra, Anchor and Body types, sentinel errors, options,
// NewBody.
// Ownership:
//   - Every reference is a dense integer index into the owning Body's arrays.
//   - A Body is owned by exactly one goroutine while it is being built; it carries
//     no locks. Hand it to the solver only after construction has returned.
//
// Errors:
//
//	ErrNodeOutOfRange      - a link/face/tetra/anchor names a node index outside the body.
//	ErrLinkOutOfRange      - a link index is outside the body.
//	ErrSelfLink            - a link with identical endpoints.
//	ErrDuplicateLink       - a second link over the same unordered node pair.
//	ErrDegenerateElement   - a face or tetra repeats a node.
//	ErrBadMass             - negative or non-finite mass / inverse mass.
//	ErrNotPermutation      - SetLinks was given something other than a permutation.

package topology

import (
	"errors"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for topology operations.
var (
	// ErrNodeOutOfRange indicates a reference to a node index that does not exist.
	ErrNodeOutOfRange = errors.New("topology: node index out of range")

	// ErrLinkOutOfRange indicates a reference to a link index that does not exist.
	ErrLinkOutOfRange = errors.New("topology: link index out of range")

	// ErrFaceOutOfRange indicates a reference to a face index that does not exist.
	ErrFaceOutOfRange = errors.New("topology: face index out of range")

	// ErrAnchorOutOfRange indicates a reference to an anchor index that does not exist.
	ErrAnchorOutOfRange = errors.New("topology: anchor index out of range")

	// ErrSelfLink indicates a link whose two endpoints are the same node.
	ErrSelfLink = errors.New("topology: link endpoints must differ")

	// ErrDuplicateLink indicates a link over an unordered node pair that is already linked.
	ErrDuplicateLink = errors.New("topology: duplicate link")

	// ErrDegenerateElement indicates a face or tetra naming the same node twice.
	ErrDegenerateElement = errors.New("topology: degenerate element")

	// ErrBadMass indicates a negative, NaN or infinite mass value.
	ErrBadMass = errors.New("topology: bad mass")

	// ErrNotPermutation indicates a replacement link array that is not a
	// permutation of the current one.
	ErrNotPermutation = errors.New("topology: links are not a permutation")
)

// Node is a point mass of a deformable body.
type Node struct {
	// Index is the node's identity within its body; it always equals the
	// node's position in Body.Nodes().
	Index int

	Position r3.Vec
	Velocity r3.Vec
	Force    r3.Vec

	// InverseMass of zero pins the node in place.
	InverseMass float64

	// Area is the lumped surface area assigned by the solver; zero at construction.
	Area float64

	// Attached reports that at least one anchor references this node.
	Attached bool
}

// Fixed reports whether the node has infinite mass.
func (n Node) Fixed() bool { return n.InverseMass == 0 }

// Link is an undirected distance constraint between nodes A and B.
type Link struct {
	A, B       int
	RestLength float64
}

// Shares reports whether l and o touch a common node.
func (l Link) Shares(o Link) bool {
	return l.A == o.A || l.A == o.B || l.B == o.A || l.B == o.B
}

// Key returns an orientation-independent identifier for the link's node pair.
func (l Link) Key() uint64 { return PairKey(l.A, l.B) }

// Face is a triangle; the order of N defines its winding.
type Face struct {
	N [3]int
}

// Tetra is a volumetric element over four nodes.
type Tetra struct {
	N [4]int
}

// Anchor pins a node to an external frame. The frame itself lives outside
// this package; only the node reference is tracked here.
type Anchor struct {
	Node int
}

// Stats is a point-in-time summary of a body.
type Stats struct {
	Nodes      int
	FixedNodes int
	Links      int
	Faces      int
	Tetras     int
	Anchors    int
}

// BodyOption configures a Body before the first append.
type BodyOption func(b *Body)

// WithID overrides the randomly generated body ID. Useful for golden tests.
func WithID(id uuid.UUID) BodyOption {
	return func(b *Body) { b.ID = id }
}

// WithCapacity pre-sizes the node and link arrays.
func WithCapacity(nodes, links int) BodyOption {
	return func(b *Body) {
		if nodes > 0 {
			b.nodes = make([]Node, 0, nodes)
		}
		if links > 0 {
			b.links = make([]Link, 0, links)
			b.pairs = make(map[uint64]int, links)
		}
	}
}

// LinkOption configures a single link as it is appended.
type LinkOption func(l *Link)

// WithRestLength supplies the rest length instead of deriving it from the
// current node distance.
func WithRestLength(rest float64) LinkOption {
	return func(l *Link) { l.RestLength = rest }
}

// Body is the topology store of one deformable body: nodes, links, faces,
// tetras and anchors. All arrays are append-only during construction.
//
// Indices:
//   - Every element refers to nodes by dense index into Nodes().
//   - pairs indexes links by their unordered node pair so that AddLink can
//     reject duplicates in O(1); every method that moves links keeps it in
//     step (SetLinks, ShuffleLinks, RemoveLink, RemoveNode).
//
// Ownership:
//   - Nodes() and Links() alias storage for in-place solver updates of
//     positions, velocities, masses and rest lengths. Structure changes only
//     through methods.
//
// Concurrency:
//   - A Body has no locks. Construct it on one goroutine; afterwards
//     concurrent readers are safe as long as nothing writes.
type Body struct {
	ID uuid.UUID

	nodes   []Node
	links   []Link
	faces   []Face
	tetras  []Tetra
	anchors []Anchor

	pairs map[uint64]int // PairKey(a,b) -> link index
}

// NewBody returns an empty body with a fresh random ID (uuid v4).
// WithID and WithCapacity override the ID and preallocate the arrays.
// Complexity: O(1) without WithCapacity.
func NewBody(opts ...BodyOption) *Body {
	b := &Body{
		ID:    uuid.New(),
		pairs: make(map[uint64]int),
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// PairKey packs an unordered pair of node indices into one key.
// The smaller index occupies the high 32 bits.
func PairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}

	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

// tetraFaceTable maps a tetra's local corners to its four oriented faces.
var tetraFaceTable = [4][3]int{
	{1, 0, 2},
	{3, 0, 1},
	{3, 1, 2},
	{2, 0, 3},
}

// tetraEdgeTable lists a tetra's six edges in discovery order 01,12,20,03,13,23.
var tetraEdgeTable = [6][2]int{
	{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3},
}

// Faces returns the four oriented faces induced by t.
func (t Tetra) Faces() [4][3]int { return TetraFaces(t.N) }

// Edges returns the six edges induced by t in discovery order.
func (t Tetra) Edges() [6][2]int { return TetraEdges(t.N) }

// TetraFaces returns the four oriented faces of the tetra (n0,n1,n2,n3):
// (n1,n0,n2), (n3,n0,n1), (n3,n1,n2), (n2,n0,n3).
func TetraFaces(n [4]int) [4][3]int {
	var out [4][3]int
	for f, loc := range tetraFaceTable {
		out[f] = [3]int{n[loc[0]], n[loc[1]], n[loc[2]]}
	}

	return out
}

// TetraEdges returns the six edges of the tetra (n0,n1,n2,n3) in the order
// 01, 12, 20, 03, 13, 23.
func TetraEdges(n [4]int) [6][2]int {
	var out [6][2]int
	for e, loc := range tetraEdgeTable {
		out[e] = [2]int{n[loc[0]], n[loc[1]]}
	}

	return out
}
