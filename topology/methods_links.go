// SPDX-License-Identifier: MIT
//
// File: methods_links.go
// Role: Link lifecycle & queries: AddLink/HasLink/LinkIndex/Link/Links/SetRestLength/SetLinks.
// Invariants:
//   - No two links share an unordered node pair (pairs index).
//   - Link order is discovery order until SetLinks installs a permutation.

package topology

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// AddLink appends a link between nodes a and b and returns its index.
// The rest length is the current distance between the nodes unless
// WithRestLength is given.
//
// Steps:
//  1. Range-check both endpoints (ErrNodeOutOfRange).
//  2. Reject a == b (ErrSelfLink).
//  3. Reject an already linked pair (ErrDuplicateLink).
//  4. Derive rest length, apply opts, append.
//
// Complexity: O(1) amortized.
func (b *Body) AddLink(a, c int, opts ...LinkOption) (int, error) {
	if err := b.checkNode("AddLink", a); err != nil {
		return -1, err
	}
	if err := b.checkNode("AddLink", c); err != nil {
		return -1, err
	}
	if a == c {
		return -1, fmt.Errorf("AddLink: (%d,%d): %w", a, c, ErrSelfLink)
	}
	key := PairKey(a, c)
	if prev, ok := b.pairs[key]; ok {
		return -1, fmt.Errorf("AddLink: (%d,%d) already link %d: %w", a, c, prev, ErrDuplicateLink)
	}

	l := Link{A: a, B: c, RestLength: r3.Norm(r3.Sub(b.nodes[c].Position, b.nodes[a].Position))}
	for _, opt := range opts {
		opt(&l)
	}
	idx := len(b.links)
	b.links = append(b.links, l)
	b.pairs[key] = idx

	return idx, nil
}

// HasLink reports whether nodes a and c are linked, in either orientation.
func (b *Body) HasLink(a, c int) bool {
	_, ok := b.pairs[PairKey(a, c)]
	return ok
}

// LinkIndex returns the index of the link over {a, c}, or -1.
func (b *Body) LinkIndex(a, c int) int {
	if idx, ok := b.pairs[PairKey(a, c)]; ok {
		return idx
	}

	return -1
}

// Link returns a copy of link i.
func (b *Body) Link(i int) (Link, error) {
	if i < 0 || i >= len(b.links) {
		return Link{}, fmt.Errorf("Link: %d not in [0,%d): %w", i, len(b.links), ErrLinkOutOfRange)
	}

	return b.links[i], nil
}

// Links exposes the link array in its current order.
//
// The slice aliases the body's storage so a solver can iterate it without
// copying. Only RestLength may be written through it (or via SetRestLength).
// A and B are indexed by the pair map: reorder with SetLinks and remove with
// RemoveLink, never by assigning endpoints or appending to the slice.
//
// Concurrency: the same as the body; no locking.
func (b *Body) Links() []Link { return b.links }

// SetRestLength sets the rest length of link i.
func (b *Body) SetRestLength(i int, rest float64) error {
	if i < 0 || i >= len(b.links) {
		return fmt.Errorf("SetRestLength: %d not in [0,%d): %w", i, len(b.links), ErrLinkOutOfRange)
	}
	b.links[i].RestLength = rest

	return nil
}

// LinkCount returns the number of links.
func (b *Body) LinkCount() int { return len(b.links) }

// SetLinks replaces the link array with order, which must be a permutation of
// the current links (same unordered pairs, each exactly once). Rest lengths are
// taken from order. This is how a scheduled link order is handed back to the body.
//
// Complexity: O(L) time and space.
func (b *Body) SetLinks(order []Link) error {
	if len(order) != len(b.links) {
		return fmt.Errorf("SetLinks: got %d links, body has %d: %w", len(order), len(b.links), ErrNotPermutation)
	}
	next := make(map[uint64]int, len(order))
	for i, l := range order {
		key := l.Key()
		if _, ok := b.pairs[key]; !ok {
			return fmt.Errorf("SetLinks: link (%d,%d) not in body: %w", l.A, l.B, ErrNotPermutation)
		}
		if _, dup := next[key]; dup {
			return fmt.Errorf("SetLinks: link (%d,%d) repeated: %w", l.A, l.B, ErrNotPermutation)
		}
		next[key] = i
	}
	b.links = append(b.links[:0:0], order...)
	b.pairs = next

	return nil
}

// rebuildPairs recomputes the pair index after a structural edit.
func (b *Body) rebuildPairs() {
	b.pairs = make(map[uint64]int, len(b.links))
	for i, l := range b.links {
		b.pairs[l.Key()] = i
	}
}
