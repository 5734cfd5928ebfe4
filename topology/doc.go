// SPDX-License-Identifier: MIT
//
// Package topology is the per-body store of a deformable mesh: nodes, links
// (distance constraints), faces and tetras, referenced by dense integer index.
//
// A Body is created empty, populated append-only by a mesh source (see the
// builder package), and then handed to a solver. Indices are only meaningful
// inside the body that issued them; there are no cross-body references and no
// pointers between elements, so a Body can be cloned or serialized with a
// plain copy of its arrays.
//
// Invariants enforced on every append:
//
//   - Every element references an existing node   (ErrNodeOutOfRange)
//   - A link joins two distinct nodes             (ErrSelfLink)
//   - At most one link per unordered node pair    (ErrDuplicateLink)
//   - Faces and tetras do not repeat a node       (ErrDegenerateElement)
//   - Masses are finite and non-negative          (ErrBadMass)
//
// Quick example:
//
//	b := topology.NewBody()
//	a, _ := b.AddNode(r3.Vec{}, 1)
//	c, _ := b.AddNode(r3.Vec{X: 1}, 1)
//	_, _ = b.AddLink(a, c) // rest length 1
//
// Concurrency: a Body has no internal locking. It is owned by the goroutine
// that builds it; ownership moves to the solver loop once construction returns.
package topology
