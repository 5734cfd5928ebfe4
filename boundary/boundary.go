// SPDX-License-Identifier: MIT
//
// Package boundary derives the enclosing triangle surface of a tetrahedral
// mesh by face cancellation.
//
// Every tetra contributes its four oriented faces (topology.TetraFaces). A face
// is keyed by its sorted node triple; the first occurrence of a key is inserted,
// the next occurrence cancels it. What survives is the boundary, in the order
// the surviving faces were inserted and in their oriented form.
//
// The input is assumed to be a manifold volume: each interior face is shared
// by exactly two tetras. A key seen a third time is non-manifold. Tolerant mode
// (the default) re-inserts it, so the last occurrence wins; Strict mode stops
// with ErrNonManifold.
package boundary

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/softbody/topology"
)

var (
	// ErrNonManifold indicates a face shared by more than two tetras.
	ErrNonManifold = errors.New("boundary: non-manifold face")

	// ErrNegativeIndex indicates a tetra naming a negative node index.
	ErrNegativeIndex = errors.New("boundary: negative node index")
)

// Policy selects the handling of faces shared by more than two tetras.
type Policy int

const (
	// Tolerant treats the last-seen occurrence as authoritative.
	Tolerant Policy = iota
	// Strict rejects the input with ErrNonManifold.
	Strict
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case Tolerant:
		return "tolerant"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Stats summarises one extraction.
type Stats struct {
	Tetras    int // tetras processed
	Derived   int // oriented faces derived (4 per tetra)
	Cancelled int // faces removed by a matching occurrence (counted once per pair)
	Survived  int // boundary faces emitted
	Repeated  int // keys seen more than twice (tolerant mode only)
}

// Option configures an extraction.
type Option func(*options)

type options struct {
	policy  Policy
	workers int
	ctx     context.Context
}

// WithPolicy selects Tolerant or Strict handling of non-manifold faces.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithStrict is shorthand for WithPolicy(Strict).
func WithStrict() Option { return WithPolicy(Strict) }

// WithWorkers derives faces on n goroutines. Cancellation itself stays
// sequential in tetra order, so the result does not depend on n.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("boundary: WithWorkers(n<1)")
	}
	return func(o *options) { o.workers = n }
}

// WithContext makes the parallel derivation stage cancellable.
// A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// key is an orientation-independent face identifier.
type key [3]int

func sortedKey(f [3]int) key {
	a, b, c := f[0], f[1], f[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}

	return key{a, b, c}
}

// entry is a derived face with its precomputed key.
type entry struct {
	face [3]int
	key  key
}

// Faces returns the boundary faces of tets.
//
// Complexity: O(T) expected time and space; the cancellation table is a hash
// map from sorted key to the slot of the live face in an insertion-ordered
// slice, so insertion and cancellation are both O(1).
func Faces(tets [][4]int, opts ...Option) ([][3]int, Stats, error) {
	o := options{policy: Tolerant, workers: 1, ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	for ti, t := range tets {
		for _, v := range t {
			if v < 0 {
				return nil, Stats{}, fmt.Errorf("Faces: tetra %d has index %d: %w", ti, v, ErrNegativeIndex)
			}
		}
	}

	derived, err := derive(o, tets)
	if err != nil {
		return nil, Stats{}, err
	}

	return cancel(o.policy, derived, len(tets))
}

// derive expands every tetra into its four keyed faces. With more than one
// worker the tetra list is split into contiguous chunks that write disjoint
// ranges of the output, so the stream order is the same as the serial one.
func derive(o options, tets [][4]int) ([]entry, error) {
	out := make([]entry, 4*len(tets))
	fill := func(lo, hi int) {
		for ti := lo; ti < hi; ti++ {
			for f, face := range topology.TetraFaces(tets[ti]) {
				out[4*ti+f] = entry{face: face, key: sortedKey(face)}
			}
		}
	}
	if o.workers <= 1 || len(tets) < 2*o.workers {
		fill(0, len(tets))
		return out, nil
	}

	g, ctx := errgroup.WithContext(o.ctx)
	chunk := (len(tets) + o.workers - 1) / o.workers
	for lo := 0; lo < len(tets); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(tets))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fill(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Faces: derive: %w", err)
	}

	return out, nil
}

// cancel runs the sequential cancellation pass over the derived face stream.
func cancel(policy Policy, stream []entry, tetras int) ([][3]int, Stats, error) {
	st := Stats{Tetras: tetras, Derived: len(stream)}

	live := make([]entry, 0, len(stream)/2)
	alive := make([]bool, 0, len(stream)/2)
	slot := make(map[key]int, len(stream)/2) // key -> index into live
	seen := make(map[key]int, len(stream)/2) // occurrences per key

	for _, e := range stream {
		seen[e.key]++
		if n := seen[e.key]; n > 2 {
			if policy == Strict {
				return nil, st, fmt.Errorf("Faces: face %v seen %d times: %w", e.face, n, ErrNonManifold)
			}
			if n == 3 {
				st.Repeated++
			}
		}
		if i, ok := slot[e.key]; ok {
			alive[i] = false
			delete(slot, e.key)
			st.Cancelled++
			continue
		}
		slot[e.key] = len(live)
		live = append(live, e)
		alive = append(alive, true)
	}

	out := make([][3]int, 0, len(slot))
	for i, e := range live {
		if alive[i] {
			out = append(out, e.face)
		}
	}
	st.Survived = len(out)

	return out, st, nil
}

// Apply extracts the boundary of b's tetras and appends it to b's faces.
func Apply(b *topology.Body, opts ...Option) (Stats, error) {
	faces, st, err := Faces(b.TetraIndices(), opts...)
	if err != nil {
		return st, err
	}
	for _, f := range faces {
		if _, err = b.AddFace(f[0], f[1], f[2]); err != nil {
			return st, fmt.Errorf("Apply: %w", err)
		}
	}

	return st, nil
}
