// SPDX-License-Identifier: MIT
//
// Package bfs runs breadth-first search over the link graph of a
// topology.Body: nodes are vertices, links are undirected edges.
//
// What
//
//   - BFS explores nodes in non-decreasing hop count from one or more sources
//     and returns a Result with visit Order, per-node Depth and Parent.
//   - FromFixed seeds the search with every pinned or anchored node, giving
//     each free node its hop distance to the nearest support.
//   - Components splits a body into link-connected islands; Floating keeps
//     the islands that nothing pins.
//
// Determinism
//
//	Neighbors are visited in link order, and sources in the order given, so
//	the visit sequence is reproducible for a given body.
//
// Complexity (N = nodes, L = links)
//
//   - Time:   O(N + L)
//   - Memory: O(N + L) for the adjacency and the result arrays.
package bfs
