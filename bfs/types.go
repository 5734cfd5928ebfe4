// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/softbody/topology"
)

// Sentinel errors for BFS execution.
var (
	// ErrBodyNil is returned if a nil body is passed.
	ErrBodyNil = errors.New("bfs: body is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNoPath is returned by PathTo for a node the search did not reach.
	ErrNoPath = errors.New("bfs: node not reached")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when BFS
// is invoked.
type Option func(*Options)

// Options holds parameters and callbacks for one search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a node. Returning an error aborts the
	// search and propagates that error.
	OnVisit func(node, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterNeighbor can skip a link by returning false for cur→neighbor.
	FilterNeighbor func(cur, neighbor int) bool

	err error
}

// DefaultOptions returns Options with a background context, no depth limit,
// no filtering and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnVisit:        func(int, int) error { return nil },
		FilterNeighbor: func(_, _ int) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit.
func WithOnVisit(fn func(node, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at depth d (inclusive). d == 0 means no
// limit; d < 0 is ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor(fn func(cur, neighbor int) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// Result holds the outcome of a search. Depth and Parent are indexed by node;
// unreached nodes have Depth -1, and sources and unreached nodes have Parent -1.
type Result struct {
	Order  []int
	Depth  []int
	Parent []int
}

// Reached reports whether node i was visited.
func (r *Result) Reached(i int) bool {
	return i >= 0 && i < len(r.Depth) && r.Depth[i] >= 0
}

// PathTo reconstructs the node path from the nearest source to dest.
func (r *Result) PathTo(dest int) ([]int, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("PathTo: node %d: %w", dest, ErrNoPath)
	}
	path := make([]int, 0, r.Depth[dest]+1)
	for cur := dest; cur >= 0; cur = r.Parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// Adjacency is a compressed neighbor table of a body's link graph.
// Neighbors of node i are listed in link order.
type Adjacency struct {
	offs []int
	nbrs []int
}

// NewAdjacency builds the neighbor table of b.
// Complexity: O(N + L).
func NewAdjacency(b *topology.Body) *Adjacency {
	n := b.NodeCount()
	links := b.Links()
	offs := make([]int, n+1)
	for _, l := range links {
		offs[l.A+1]++
		offs[l.B+1]++
	}
	for i := 1; i <= n; i++ {
		offs[i] += offs[i-1]
	}
	fill := make([]int, n)
	copy(fill, offs[:n])
	nbrs := make([]int, 2*len(links))
	for _, l := range links {
		nbrs[fill[l.A]] = l.B
		fill[l.A]++
		nbrs[fill[l.B]] = l.A
		fill[l.B]++
	}

	return &Adjacency{offs: offs, nbrs: nbrs}
}

// Len is the number of nodes.
func (a *Adjacency) Len() int { return len(a.offs) - 1 }

// Neighbors returns the nodes linked to i. The slice aliases the table.
func (a *Adjacency) Neighbors(i int) []int { return a.nbrs[a.offs[i]:a.offs[i+1]] }

// Degree is the number of links at node i.
func (a *Adjacency) Degree(i int) int { return a.offs[i+1] - a.offs[i] }
