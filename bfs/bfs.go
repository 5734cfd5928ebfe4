// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"

	"github.com/katalvlaran/softbody/topology"
)

// walker encapsulates mutable BFS state.
type walker struct {
	adj   *Adjacency
	opts  Options
	queue []int
	res   *Result
}

// BFS searches b's link graph from sources. Every source starts at depth 0;
// a node reachable from several sources gets the smallest depth, ties going
// to the source listed first.
//
// Errors: ErrBodyNil, ErrOptionViolation, topology.ErrNodeOutOfRange for a
// bad source, the context's error, or an OnVisit error.
func BFS(b *topology.Body, sources []int, opts ...Option) (*Result, error) {
	if b == nil {
		return nil, ErrBodyNil
	}
	return search(NewAdjacency(b), sources, opts...)
}

// FromFixed runs BFS from every fixed or anchored node of b, in node order.
func FromFixed(b *topology.Body, opts ...Option) (*Result, error) {
	if b == nil {
		return nil, ErrBodyNil
	}
	var sources []int
	for _, n := range b.Nodes() {
		if n.Fixed() || n.Attached {
			sources = append(sources, n.Index)
		}
	}

	return search(NewAdjacency(b), sources, opts...)
}

func search(adj *Adjacency, sources []int, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := adj.Len()
	w := &walker{
		adj:   adj,
		opts:  o,
		queue: make([]int, 0, n),
		res: &Result{
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]int, n),
		},
	}
	for i := range w.res.Depth {
		w.res.Depth[i], w.res.Parent[i] = -1, -1
	}
	for _, s := range sources {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("BFS: source %d not in [0,%d): %w", s, n, topology.ErrNodeOutOfRange)
		}
		if w.res.Depth[s] < 0 {
			w.enqueue(s, 0, -1)
		}
	}

	return w.res, w.loop()
}

// enqueue marks node visited at depth d and records its parent.
func (w *walker) enqueue(node, d, parent int) {
	w.res.Depth[node] = d
	w.res.Parent[node] = parent
	w.queue = append(w.queue, node)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		cur := w.queue[head]
		d := w.res.Depth[cur]
		w.res.Order = append(w.res.Order, cur)
		if err := w.opts.OnVisit(cur, d); err != nil {
			return fmt.Errorf("bfs: OnVisit error at node %d: %w", cur, err)
		}
		if w.opts.MaxDepth > 0 && d+1 > w.opts.MaxDepth {
			continue
		}
		for _, nbr := range w.adj.Neighbors(cur) {
			if w.res.Depth[nbr] >= 0 || !w.opts.FilterNeighbor(cur, nbr) {
				continue
			}
			w.enqueue(nbr, d+1, cur)
		}
	}

	return nil
}
