// SPDX-License-Identifier: MIT
//
// Package schedule reorders a body's links so that consecutive links rarely
// touch the same node, while never moving a link ahead of one it depends on.
//
// Dependency rule: link L depends on the link that most recently touched each
// of its endpoints, in discovery (input) order. Every link therefore has at
// most two predecessors, all earlier than itself, so the dependency graph is
// acyclic. Order runs Kahn's algorithm over that graph with a FIFO ready queue:
// among links that become ready together, the first discovered goes first.
// Dependents of a link are released in their discovery order.
//
// Complexity: O(N+M) time and space for N links over M nodes.
package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/softbody/topology"
)

// ErrInvalidLink indicates a link with a negative or repeated endpoint.
var ErrInvalidLink = errors.New("schedule: invalid link")

// cancelEvery is the number of queue pops between context checks.
const cancelEvery = 1024

// Option configures a scheduling run.
type Option func(*options)

type options struct {
	ctx context.Context
}

// WithCancelContext sets the cancellation context. Passing nil has no effect.
func WithCancelContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

func resolve(opts []Option) options {
	o := options{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Order returns the scheduled permutation of links as indices into links.
func Order(links []topology.Link, opts ...Option) ([]int, error) {
	o := resolve(opts)
	maxNode, err := validate(links)
	if err != nil {
		return nil, err
	}

	n := len(links)
	last := make([]int, maxNode+1) // node -> last link touching it
	for i := range last {
		last[i] = -1
	}
	pending := make([]uint8, n)
	dependents := make([][]int, n)
	queue := make([]int, 0, n)

	for i, l := range links {
		for _, v := range [2]int{l.A, l.B} {
			if w := last[v]; w >= 0 {
				pending[i]++
				dependents[w] = append(dependents[w], i)
			}
		}
		if pending[i] == 0 {
			queue = append(queue, i)
		}
		last[l.A], last[l.B] = i, i
	}

	order := make([]int, 0, n)
	for head := 0; head < len(queue); head++ {
		if head%cancelEvery == 0 {
			if err = o.ctx.Err(); err != nil {
				return nil, fmt.Errorf("Order: %w", err)
			}
		}
		cur := queue[head]
		order = append(order, cur)
		for _, d := range dependents[cur] {
			pending[d]--
			if pending[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	return order, nil
}

// Reorder returns a new slice holding links in scheduled order.
func Reorder(links []topology.Link, opts ...Option) ([]topology.Link, error) {
	order, err := Order(links, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]topology.Link, len(order))
	for i, idx := range order {
		out[i] = links[idx]
	}

	return out, nil
}

// Report describes one Apply run.
type Report struct {
	Links           int
	ConflictsBefore int
	ConflictsAfter  int
	Batches         int
}

// Apply reorders b's links in place.
func Apply(b *topology.Body, opts ...Option) (Report, error) {
	links := b.Links()
	rep := Report{Links: len(links), ConflictsBefore: AdjacentConflicts(links)}

	reordered, err := Reorder(links, opts...)
	if err != nil {
		return rep, err
	}
	if err = b.SetLinks(reordered); err != nil {
		return rep, fmt.Errorf("Apply: %w", err)
	}
	rep.ConflictsAfter = AdjacentConflicts(reordered)
	rep.Batches = len(Batches(reordered))

	return rep, nil
}

// AdjacentConflicts counts consecutive pairs in links that share a node.
func AdjacentConflicts(links []topology.Link) int {
	c := 0
	for i := 1; i < len(links); i++ {
		if links[i].Shares(links[i-1]) {
			c++
		}
	}

	return c
}

// Batches groups links into wavefronts whose members touch pairwise disjoint
// nodes. A link lands one wave after the latest earlier link it shares a node
// with, so applying the waves in sequence preserves every dependency. Each
// wave lists indices into links in ascending order. Invalid links are skipped.
func Batches(links []topology.Link) [][]int {
	level := map[int]int{} // node -> 1 + wave of the last link touching it
	var waves [][]int
	for i, l := range links {
		if l.A < 0 || l.B < 0 || l.A == l.B {
			continue
		}
		w := max(level[l.A], level[l.B])
		if w == len(waves) {
			waves = append(waves, nil)
		}
		waves[w] = append(waves[w], i)
		level[l.A], level[l.B] = w+1, w+1
	}

	return waves
}

func validate(links []topology.Link) (int, error) {
	maxNode := -1
	for i, l := range links {
		if l.A < 0 || l.B < 0 || l.A == l.B {
			return 0, fmt.Errorf("Order: link %d (%d,%d): %w", i, l.A, l.B, ErrInvalidLink)
		}
		maxNode = max(maxNode, l.A, l.B)
	}

	return maxNode, nil
}
