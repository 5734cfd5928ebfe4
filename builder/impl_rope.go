// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// impl_rope.go - Rope: a straight chain of resolution+2 nodes.
//
// Node i sits at lerp(from, to, i/(resolution+1)); links run (i-1, i) in
// ascending order. fixedTips bits pin the tips: 1 → first node, 2 → last node.

package builder

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/topology"
)

const (
	methodRope   = "Rope"
	minRopeRes   = 0
	ropeTipNodes = 2
)

// Tip bits for Rope's fixedTips mask.
const (
	TipFirst = 1 << iota
	TipLast
)

// Rope returns a Constructor for a chain between from and to.
// A negative resolution yields ErrDegenerateInput.
func Rope(from, to r3.Vec, resolution int, fixedTips int) Constructor {
	return func(b *topology.Body, cfg builderConfig) error {
		if resolution < minRopeRes {
			return fmt.Errorf("%s: resolution=%d (must be ≥ %d): %w",
				methodRope, resolution, minRopeRes, ErrDegenerateInput)
		}

		n := resolution + ropeTipNodes
		positions := make([]r3.Vec, n)
		for i := range positions {
			positions[i] = lerp(from, to, float64(i)/float64(n-1))
		}
		base, err := b.AddNodes(positions, cfg.uniformMasses(n))
		if err != nil {
			return fmt.Errorf("%s: %w", methodRope, err)
		}

		if fixedTips&TipFirst != 0 {
			if err = b.SetInverseMass(base, 0); err != nil {
				return fmt.Errorf("%s: fix first tip: %w", methodRope, err)
			}
		}
		if fixedTips&TipLast != 0 {
			if err = b.SetInverseMass(base+n-1, 0); err != nil {
				return fmt.Errorf("%s: fix last tip: %w", methodRope, err)
			}
		}

		for i := 1; i < n; i++ {
			if _, err = b.AddLink(base+i-1, base+i); err != nil {
				return fmt.Errorf("%s: AddLink(%d,%d): %w", methodRope, base+i-1, base+i, err)
			}
		}
		cfg.logger.Debug("rope appended", "nodes", n, "base", base)

		return nil
	}
}
