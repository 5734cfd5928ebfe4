// SPDX-License-Identifier: MIT

package bfs

import "github.com/katalvlaran/softbody/topology"

// Components splits b into link-connected islands. Islands are ordered by
// their lowest node index and list their nodes in BFS order from it.
// An unlinked node is an island of its own.
//
// Time:   O(N + L)
// Memory: O(N + L)
func Components(b *topology.Body) [][]int {
	adj := NewAdjacency(b)
	seen := make([]bool, adj.Len())
	var comps [][]int

	for i0 := range seen {
		if seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, v := range adj.Neighbors(queue[qi]) {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		comps = append(comps, queue)
	}

	return comps
}

// Floating returns the islands of b that contain no fixed or anchored node.
// A solver leaves them free to fall.
func Floating(b *topology.Body) [][]int {
	nodes := b.Nodes()
	var out [][]int
	for _, comp := range Components(b) {
		pinned := false
		for _, i := range comp {
			if nodes[i].Fixed() || nodes[i].Attached {
				pinned = true
				break
			}
		}
		if !pinned {
			out = append(out, comp)
		}
	}

	return out
}
