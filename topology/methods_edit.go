// SPDX-License-Identifier: MIT
//
// File: methods_edit.go
// Role: Structural edits after construction: RemoveLink/RemoveAnchor/RemoveNode.
// Invariants preserved:
//   - Node.Index equals position after renumbering.
//   - No element references a removed node.
//   - Pair index stays consistent with the link array.

package topology

import "fmt"

// RemoveLink deletes link i, keeping the relative order of the others.
// Complexity: O(L).
func (b *Body) RemoveLink(i int) error {
	if i < 0 || i >= len(b.links) {
		return fmt.Errorf("RemoveLink: %d not in [0,%d): %w", i, len(b.links), ErrLinkOutOfRange)
	}
	b.links = append(b.links[:i], b.links[i+1:]...)
	b.rebuildPairs()

	return nil
}

// RemoveAnchor deletes anchor i. The node stays attached if another anchor
// still references it.
func (b *Body) RemoveAnchor(i int) error {
	if i < 0 || i >= len(b.anchors) {
		return fmt.Errorf("RemoveAnchor: %d not in [0,%d): %w", i, len(b.anchors), ErrAnchorOutOfRange)
	}
	node := b.anchors[i].Node
	b.anchors = append(b.anchors[:i], b.anchors[i+1:]...)
	b.nodes[node].Attached = false
	for _, a := range b.anchors {
		if a.Node == node {
			b.nodes[node].Attached = true
			break
		}
	}

	return nil
}

// RemoveNode deletes node i together with every link, face, tetra and anchor
// touching it, then renumbers nodes above i down by one.
// Complexity: O(V + L + F + T + A).
func (b *Body) RemoveNode(i int) error {
	if err := b.checkNode("RemoveNode", i); err != nil {
		return err
	}
	renum := func(n int) int {
		if n > i {
			return n - 1
		}
		return n
	}

	b.nodes = append(b.nodes[:i], b.nodes[i+1:]...)
	for k := i; k < len(b.nodes); k++ {
		b.nodes[k].Index = k
	}

	links := b.links[:0]
	for _, l := range b.links {
		if l.A == i || l.B == i {
			continue
		}
		l.A, l.B = renum(l.A), renum(l.B)
		links = append(links, l)
	}
	b.links = links
	b.rebuildPairs()

	faces := b.faces[:0]
	for _, f := range b.faces {
		if f.N[0] == i || f.N[1] == i || f.N[2] == i {
			continue
		}
		f.N = [3]int{renum(f.N[0]), renum(f.N[1]), renum(f.N[2])}
		faces = append(faces, f)
	}
	b.faces = faces

	tetras := b.tetras[:0]
	for _, t := range b.tetras {
		if t.N[0] == i || t.N[1] == i || t.N[2] == i || t.N[3] == i {
			continue
		}
		t.N = [4]int{renum(t.N[0]), renum(t.N[1]), renum(t.N[2]), renum(t.N[3])}
		tetras = append(tetras, t)
	}
	b.tetras = tetras

	anchors := b.anchors[:0]
	for _, a := range b.anchors {
		if a.Node == i {
			continue
		}
		a.Node = renum(a.Node)
		anchors = append(anchors, a)
	}
	b.anchors = anchors

	return nil
}
