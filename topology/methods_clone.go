// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Cloning and whole-body measurements.

package topology

import "gonum.org/v1/gonum/spatial/r3"

// Clone returns a deep copy of the body with the same ID.
// Complexity: O(V + L + F + T + A).
func (b *Body) Clone() *Body {
	c := &Body{
		ID:      b.ID,
		nodes:   append([]Node(nil), b.nodes...),
		links:   append([]Link(nil), b.links...),
		faces:   append([]Face(nil), b.faces...),
		tetras:  append([]Tetra(nil), b.tetras...),
		anchors: append([]Anchor(nil), b.anchors...),
	}
	c.rebuildPairs()

	return c
}

// LengthByPositions sums the current Euclidean length of every link.
func (b *Body) LengthByPositions() float64 {
	var total float64
	for _, l := range b.links {
		total += r3.Norm(r3.Sub(b.nodes[l.B].Position, b.nodes[l.A].Position))
	}

	return total
}

// RestLength sums the rest length of every link.
func (b *Body) RestLength() float64 {
	var total float64
	for _, l := range b.links {
		total += l.RestLength
	}

	return total
}

// TotalMass sums the mass of all movable nodes; fixed nodes contribute nothing.
func (b *Body) TotalMass() float64 {
	var total float64
	for _, n := range b.nodes {
		if n.InverseMass > 0 {
			total += 1 / n.InverseMass
		}
	}

	return total
}

// Bounds returns the axis-aligned bounding box of the node positions.
// An empty body yields two zero vectors.
func (b *Body) Bounds() (lo, hi r3.Vec) {
	if len(b.nodes) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	lo, hi = b.nodes[0].Position, b.nodes[0].Position
	for _, n := range b.nodes[1:] {
		p := n.Position
		lo = r3.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = r3.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}

	return lo, hi
}
