// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   - Determinism is explicit: randomness only flows from WithSeed or WithRand.

package builder

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/softbody/hull"
	"github.com/katalvlaran/softbody/metrics"
)

// BuilderOption customizes construction by mutating a builderConfig before
// the first constructor runs.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for constraint randomization.
// Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRandomizeConstraints shuffles links and faces after all constructors
// have run. Requires WithSeed or WithRand.
func WithRandomizeConstraints() BuilderOption {
	return func(c *builderConfig) { c.randomize = true }
}

// WithHull replaces the convex hull collaborator. Panics on nil.
func WithHull(h hull.Computer) BuilderOption {
	if h == nil {
		panic("builder: WithHull(nil)")
	}
	return func(c *builderConfig) { c.hull = h }
}

// WithLogger routes construction logs to l. Panics on nil.
func WithLogger(l *slog.Logger) BuilderOption {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *builderConfig) { c.logger = l }
}

// WithRecorder reports construction metrics to r. A nil recorder disables metrics.
func WithRecorder(r *metrics.Recorder) BuilderOption {
	return func(c *builderConfig) { c.recorder = r }
}

// WithSource sets the metrics and log label of the built body.
// Panics on an empty name.
func WithSource(name string) BuilderOption {
	if name == "" {
		panic("builder: WithSource(\"\")")
	}
	return func(c *builderConfig) { c.source = name }
}

// WithMass sets the mass given to every new node. Zero pins all nodes.
// Panics on negative or non-finite mass.
func WithMass(m float64) BuilderOption {
	if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		panic("builder: WithMass(m<0 or non-finite)")
	}
	return func(c *builderConfig) { c.mass = m }
}

// WithStrictBoundary makes volumetric constructors reject faces shared by more
// than two tetras (boundary.ErrNonManifold) instead of tolerating them.
func WithStrictBoundary() BuilderOption {
	return func(c *builderConfig) { c.strictBoundary = true }
}

// WithTetraLinks toggles the six deduplicated edge links per tetra (default on).
func WithTetraLinks(on bool) BuilderOption {
	return func(c *builderConfig) { c.tetraLinks = on }
}

// WithFaceLinks toggles links along boundary face edges not already linked
// (default off).
func WithFaceLinks(on bool) BuilderOption {
	return func(c *builderConfig) { c.faceLinks = on }
}

// WithBoundaryWorkers derives boundary faces on n goroutines. Panics if n < 1.
func WithBoundaryWorkers(n int) BuilderOption {
	if n < 1 {
		panic("builder: WithBoundaryWorkers(n<1)")
	}
	return func(c *builderConfig) { c.boundaryWorkers = n }
}

// WithReorderLinks runs the link scheduler once all constructors have run.
func WithReorderLinks() BuilderOption {
	return func(c *builderConfig) { c.reorderLinks = true }
}
