// SPDX-License-Identifier: MIT
//
// File: methods_elements.go
// Role: Faces, tetras and anchors: append and read access.

package topology

import "fmt"

// AddFace appends the triangle (a, c, d) with that winding and returns its index.
//
// Errors: ErrNodeOutOfRange, ErrDegenerateElement.
// Complexity: O(1) amortized.
func (b *Body) AddFace(a, c, d int) (int, error) {
	n := [3]int{a, c, d}
	for _, i := range n {
		if err := b.checkNode("AddFace", i); err != nil {
			return -1, err
		}
	}
	if a == c || c == d || a == d {
		return -1, fmt.Errorf("AddFace: (%d,%d,%d): %w", a, c, d, ErrDegenerateElement)
	}
	b.faces = append(b.faces, Face{N: n})

	return len(b.faces) - 1, nil
}

// AddTetra appends the tetra (n0, n1, n2, n3) and returns its index.
// Links and boundary faces are not derived here; see the edgeset and
// boundary packages.
//
// Errors: ErrNodeOutOfRange, ErrDegenerateElement.
// Complexity: O(1) amortized.
func (b *Body) AddTetra(n0, n1, n2, n3 int) (int, error) {
	n := [4]int{n0, n1, n2, n3}
	for _, i := range n {
		if err := b.checkNode("AddTetra", i); err != nil {
			return -1, err
		}
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if n[i] == n[j] {
				return -1, fmt.Errorf("AddTetra: %v: %w", n, ErrDegenerateElement)
			}
		}
	}
	b.tetras = append(b.tetras, Tetra{N: n})

	return len(b.tetras) - 1, nil
}

// AddAnchor pins node i to an external frame and marks it attached.
func (b *Body) AddAnchor(i int) (int, error) {
	if err := b.checkNode("AddAnchor", i); err != nil {
		return -1, err
	}
	b.anchors = append(b.anchors, Anchor{Node: i})
	b.nodes[i].Attached = true

	return len(b.anchors) - 1, nil
}

// Face returns a copy of face i.
func (b *Body) Face(i int) (Face, error) {
	if i < 0 || i >= len(b.faces) {
		return Face{}, fmt.Errorf("Face: %d not in [0,%d): %w", i, len(b.faces), ErrFaceOutOfRange)
	}

	return b.faces[i], nil
}

// Faces exposes the face array.
func (b *Body) Faces() []Face { return b.faces }

// FaceCount returns the number of faces.
func (b *Body) FaceCount() int { return len(b.faces) }

// Tetras exposes the tetra array.
func (b *Body) Tetras() []Tetra { return b.tetras }

// TetraCount returns the number of tetras.
func (b *Body) TetraCount() int { return len(b.tetras) }

// TetraIndices returns the tetras as plain index quadruples.
func (b *Body) TetraIndices() [][4]int {
	out := make([][4]int, len(b.tetras))
	for i, t := range b.tetras {
		out[i] = t.N
	}

	return out
}

// Anchors exposes the anchor array.
func (b *Body) Anchors() []Anchor { return b.anchors }

// AnchorCount returns the number of anchors.
func (b *Body) AnchorCount() int { return len(b.anchors) }

// ShuffleFaces permutes the face array with the supplied swap-based shuffler,
// typically (*rand.Rand).Shuffle.
func (b *Body) ShuffleFaces(shuffle func(n int, swap func(i, j int))) {
	shuffle(len(b.faces), func(i, j int) { b.faces[i], b.faces[j] = b.faces[j], b.faces[i] })
}

// ShuffleLinks permutes the link array with the supplied shuffler and keeps
// the pair index consistent.
func (b *Body) ShuffleLinks(shuffle func(n int, swap func(i, j int))) {
	shuffle(len(b.links), func(i, j int) { b.links[i], b.links[j] = b.links[j], b.links[i] })
	b.rebuildPairs()
}

// Stats returns counts of every element kind.
// Complexity: O(V) for the fixed-node count.
func (b *Body) Stats() Stats {
	s := Stats{
		Nodes:   len(b.nodes),
		Links:   len(b.links),
		Faces:   len(b.faces),
		Tetras:  len(b.tetras),
		Anchors: len(b.anchors),
	}
	for _, n := range b.nodes {
		if n.Fixed() {
			s.FixedNodes++
		}
	}

	return s
}
