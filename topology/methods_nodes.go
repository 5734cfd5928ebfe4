// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle and queries: AddNode/AddNodes/Node/Nodes/SetMass/SetInverseMass.

package topology

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AddNode appends a node at pos with the given inverse mass and returns its index.
// An inverse mass of zero makes the node immovable.
//
// Errors: ErrBadMass when inverseMass is negative, NaN or infinite.
// Complexity: O(1) amortized.
func (b *Body) AddNode(pos r3.Vec, inverseMass float64) (int, error) {
	if !validMass(inverseMass) {
		return -1, fmt.Errorf("AddNode: inverse mass %g: %w", inverseMass, ErrBadMass)
	}
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{
		Index:       idx,
		Position:    pos,
		InverseMass: inverseMass,
	})

	return idx, nil
}

// AddNodes appends one node per position. masses holds per-node masses, not
// inverse masses; a mass of zero fixes the node. A nil masses slice gives every
// node unit mass. It returns the index of the first appended node.
//
// Errors: ErrBadMass for a bad entry, or a length mismatch between the slices.
// Complexity: O(n).
func (b *Body) AddNodes(positions []r3.Vec, masses []float64) (int, error) {
	if masses != nil && len(masses) != len(positions) {
		return -1, fmt.Errorf("AddNodes: %d positions but %d masses: %w", len(positions), len(masses), ErrBadMass)
	}
	first := len(b.nodes)
	for i, p := range positions {
		m := 1.0
		if masses != nil {
			m = masses[i]
		}
		if !validMass(m) {
			b.nodes = b.nodes[:first]
			return -1, fmt.Errorf("AddNodes: mass[%d]=%g: %w", i, m, ErrBadMass)
		}
		if _, err := b.AddNode(p, inverse(m)); err != nil {
			b.nodes = b.nodes[:first]
			return -1, err
		}
	}

	return first, nil
}

// Node returns a copy of node i.
func (b *Body) Node(i int) (Node, error) {
	if err := b.checkNode("Node", i); err != nil {
		return Node{}, err
	}

	return b.nodes[i], nil
}

// Nodes exposes the node array. The slice aliases the body's storage so the
// solver can update positions in place; do not append to it.
func (b *Body) Nodes() []Node { return b.nodes }

// NodeCount returns the number of nodes.
func (b *Body) NodeCount() int { return len(b.nodes) }

// SetMass sets node i's mass. A mass of zero pins the node.
func (b *Body) SetMass(i int, mass float64) error {
	if err := b.checkNode("SetMass", i); err != nil {
		return err
	}
	if !validMass(mass) {
		return fmt.Errorf("SetMass: node %d mass %g: %w", i, mass, ErrBadMass)
	}
	b.nodes[i].InverseMass = inverse(mass)

	return nil
}

// SetInverseMass sets node i's inverse mass directly.
func (b *Body) SetInverseMass(i int, inverseMass float64) error {
	if err := b.checkNode("SetInverseMass", i); err != nil {
		return err
	}
	if !validMass(inverseMass) {
		return fmt.Errorf("SetInverseMass: node %d inverse mass %g: %w", i, inverseMass, ErrBadMass)
	}
	b.nodes[i].InverseMass = inverseMass

	return nil
}

// checkNode reports ErrNodeOutOfRange for an index outside [0, NodeCount).
func (b *Body) checkNode(method string, i int) error {
	if i < 0 || i >= len(b.nodes) {
		return fmt.Errorf("%s: node %d not in [0,%d): %w", method, i, len(b.nodes), ErrNodeOutOfRange)
	}

	return nil
}

func validMass(m float64) bool {
	return m >= 0 && !math.IsInf(m, 0) && !math.IsNaN(m)
}

func inverse(m float64) float64 {
	if m == 0 {
		return 0
	}

	return 1 / m
}
