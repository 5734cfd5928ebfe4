// SPDX-License-Identifier: MIT

// Package builder turns mesh sources into populated topology.Body values.
//
// Every source is a Constructor, a closure over its input that appends nodes,
// links, faces and tetras to a body. BuildBody runs one or more constructors
// in order against a fresh body:
//
//	b, err := builder.BuildBody(
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithReorderLinks()},
//		builder.Patch(c00, c10, c01, c11, 16, 16, builder.Corner00|builder.Corner10, true),
//	)
//
// Sources:
//
//   - Patch / PatchUVs:  bilinear cloth grid with checkerboard triangulation.
//   - Rope:              straight chain of resolution+2 nodes.
//   - TriMesh / TriMeshFlat: triangle soup; edges deduplicated in first-seen order.
//   - ConvexHull / Ellipsoid: hull of a point cloud via a hull.Computer.
//   - Volume:            tetra mesh; boundary faces derived by face cancellation.
//
// Create* functions wrap a single constructor and label the body for metrics.
//
// Guarantees:
//
//   - Deterministic: equal inputs, options and seed give equal bodies.
//   - Composable: each constructor offsets its indices by the nodes already
//     present.
//   - Option constructors panic on meaningless values; constructors only
//     return errors (ErrDegenerateInput, ErrBadInput, ErrNeedRandSource,
//     ErrConstructFailed, or wrapped topology/boundary/hull sentinels).
package builder
