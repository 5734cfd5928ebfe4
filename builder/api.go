// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// api.go - public entry points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildBody(bopts, cons...). Creates the body, resolves
//     cfg, runs cons in order, then the post passes (randomize, reorder).
//   - Constructors are implemented in impl_*.go; the Create* wrappers below
//     are one-constructor shortcuts.
//   - Determinism: same inputs, options, seed and constructor order give
//     identical bodies, link order included.
//   - Constructors append to whatever the body already holds, offsetting their
//     node indices, so several sources can be composed into one body.

package builder

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/schedule"
	"github.com/katalvlaran/softbody/topology"
)

// Constructor appends one mesh source to b using the resolved builderConfig.
// Constructors validate early, return sentinel errors and never panic.
type Constructor func(b *topology.Body, cfg builderConfig) error

// BuildBody creates an empty body, resolves the builder configuration from
// bopts and applies all constructors in order.
//
// Steps:
//  1. Resolve cfg from bopts (defaults first, then each option in order).
//  2. Run every constructor against the same body. Each one appends its
//     nodes after the existing ones and offsets its own indices.
//  3. WithRandomizeConstraints: shuffle links and faces with cfg.rng.
//  4. WithReorderLinks: schedule the link order (schedule.Apply).
//  5. Report the body to the recorder and log a summary.
//
// Complexity:
//   - Σ cost of each constructor, plus O(L+F) for randomization and
//     O(N+L) for scheduling when enabled (N nodes, L links, F faces).
//
// Concurrency:
//   - Not concurrent itself. Volume may derive boundary faces on several
//     goroutines (WithBoundaryWorkers); the body is only touched by this one.
//
// Errors:
//   - The first constructor or post-pass error is wrapped as "BuildBody: %w"
//     and returned with a nil body; branch with errors.Is against builder,
//     topology and hull sentinels. A failure is counted by the recorder.
func BuildBody(bopts []BuilderOption, cons ...Constructor) (*topology.Body, error) {
	// Resolve deterministic builder configuration from functional options.
	cfg := newBuilderConfig(bopts...)
	b := topology.NewBody()
	log := cfg.logger.With(slog.String("body", b.ID.String()), slog.String("source", cfg.source))

	fail := func(err error) (*topology.Body, error) {
		cfg.recorder.ObserveFailure(cfg.source)
		log.Warn("build failed", slog.Any("error", err))
		return nil, fmt.Errorf("BuildBody: %w", err)
	}

	// Apply each constructor sequentially; order fixes node and link indices.
	for i, fn := range cons {
		// A nil constructor is a programmer error, reported as a sentinel.
		if fn == nil {
			return fail(fmt.Errorf("nil constructor at index %d: %w", i, ErrConstructFailed))
		}
		if err := fn(b, cfg); err != nil {
			return fail(err)
		}
	}

	// Post passes run on the complete body, randomization first.
	if cfg.randomize {
		if err := randomizeConstraints(b, cfg); err != nil {
			return fail(err)
		}
	}
	if cfg.reorderLinks {
		rep, err := schedule.Apply(b)
		if err != nil {
			return fail(err)
		}
		cfg.recorder.ObserveSchedule(rep.Links, rep.ConflictsBefore, rep.ConflictsAfter)
		log.Debug("links reordered",
			slog.Int("links", rep.Links),
			slog.Int("conflicts_before", rep.ConflictsBefore),
			slog.Int("conflicts_after", rep.ConflictsAfter),
			slog.Int("batches", rep.Batches))
	}

	// Success: count the body and its elements under cfg.source.
	s := b.Stats()
	cfg.recorder.ObserveBody(cfg.source, b)
	log.Info("body built",
		slog.Int("nodes", s.Nodes),
		slog.Int("fixed", s.FixedNodes),
		slog.Int("links", s.Links),
		slog.Int("faces", s.Faces),
		slog.Int("tetras", s.Tetras))

	return b, nil
}

// =============================================================================
// One-constructor shortcuts - constructors are implemented in impl_*.go
// =============================================================================
//
// Each Create* labels the body with its method name unless the caller passes
// WithSource, then delegates to BuildBody. Complexity and errors are those of
// the wrapped constructor.

// withDefaultSource prepends a source label so that a caller's WithSource wins.
func withDefaultSource(name string, opts []BuilderOption) []BuilderOption {
	return append([]BuilderOption{WithSource(name)}, opts...)
}

// CreatePatch builds a body from a single Patch.
// Complexity: O(rx·ry) nodes, links and faces.
func CreatePatch(c00, c10, c01, c11 r3.Vec, rx, ry int, fixedCorners int, diagonals bool, opts ...BuilderOption) (*topology.Body, error) {
	return BuildBody(withDefaultSource(methodPatch, opts), Patch(c00, c10, c01, c11, rx, ry, fixedCorners, diagonals))
}

// CreatePatchUV builds a Patch body and returns its per-face texture
// coordinates (see PatchUVs).
func CreatePatchUV(c00, c10, c01, c11 r3.Vec, rx, ry int, fixedCorners int, diagonals bool, opts ...BuilderOption) (*topology.Body, []float64, error) {
	uv, err := PatchUVs(rx, ry)
	if err != nil {
		return nil, nil, err
	}
	b, err := CreatePatch(c00, c10, c01, c11, rx, ry, fixedCorners, diagonals, opts...)
	if err != nil {
		return nil, nil, err
	}

	return b, uv, nil
}

// CreateRope builds a body from a single Rope.
// Complexity: O(resolution).
func CreateRope(from, to r3.Vec, resolution int, fixedTips int, opts ...BuilderOption) (*topology.Body, error) {
	return BuildBody(withDefaultSource(methodRope, opts), Rope(from, to, resolution, fixedTips))
}

// CreateFromTriMesh builds a body from a triangle soup.
// Complexity: O(V + T) with T triangles; shared edges become one link.
func CreateFromTriMesh(vertices []r3.Vec, triangles []int, opts ...BuilderOption) (*topology.Body, error) {
	return BuildBody(withDefaultSource(methodTriMesh, opts), TriMesh(vertices, triangles))
}

// CreateFromConvexHull builds a body from the hull of a point cloud.
// Flat, collinear or coincident clouds fail with hull.ErrDegenerate.
func CreateFromConvexHull(points []r3.Vec, opts ...BuilderOption) (*topology.Body, error) {
	return BuildBody(withDefaultSource(methodConvexHull, opts), ConvexHull(points))
}

// CreateEllipsoid builds a closed ellipsoid surface from res+3 sample points.
func CreateEllipsoid(center, radius r3.Vec, res int, opts ...BuilderOption) (*topology.Body, error) {
	return BuildBody(withDefaultSource(methodEllipsoid, opts), Ellipsoid(center, radius, res))
}

// CreateFromVolume builds a body from node and tetra tables.
// Complexity: O(N + T) expected; boundary faces come from boundary.Faces.
func CreateFromVolume(positions []r3.Vec, tetras [][4]int, opts ...BuilderOption) (*topology.Body, error) {
	return BuildBody(withDefaultSource(methodVolume, opts), Volume(positions, tetras))
}
