// SPDX-License-Identifier: MIT
//
// Package softbody builds the constraint topology of deformable bodies for a
// position-based solver: nodes, distance links, surface faces and tetras.
//
// Layout
//
//	topology/  Body arena: nodes, links, faces, tetras, anchors
//	builder/   constructors (patch, rope, tri-mesh, hull, ellipsoid, volume) and BuildBody
//	edgeset/   first-discovery edge deduplication for triangle and tetra streams
//	boundary/  boundary surface of a tetra mesh by face cancellation
//	schedule/  link reordering that separates links sharing a node
//	hull/      convex hull seam, backed by quickhull-go
//	bfs/       link-graph search, islands and hop distance to supports
//	meshio/    TetGen, VTK and Gmsh volume readers
//	export/    16-bit index buffers and compressed snapshots
//	metrics/   Prometheus recorder for construction counts
//	cmd/meshgen  YAML recipe to body, summary and snapshot
//
// A typical build:
//
//	body, err := builder.CreatePatch(c00, c10, c01, c11, 16, 16,
//		builder.Corner00|builder.Corner10, true,
//		builder.WithReorderLinks())
//
// Bodies carry no locks. A body belongs to the goroutine that built it until
// it is handed to a solver.
package softbody
