// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// impl_trimesh.go - TriMesh: a triangle soup over a vertex table.
//
// Contract:
//   - triangles is a flat index list, three per triangle; its length must be a
//     multiple of three (else ErrBadInput).
//   - Node count is max(index)+1; vertices beyond it are ignored and a table
//     shorter than that is ErrBadInput.
//   - For each triangle its edges (t2,t0), (t0,t1), (t1,t2) go through the
//     edge filter first, then the face is appended with the input winding.
//   - Zero triangles append nothing and succeed.

package builder

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/edgeset"
	"github.com/katalvlaran/softbody/topology"
)

const (
	methodTriMesh     = "TriMesh"
	methodTriMeshFlat = "TriMeshFlat"
)

// TriMesh returns a Constructor for a triangle soup.
func TriMesh(vertices []r3.Vec, triangles []int) Constructor {
	return func(b *topology.Body, cfg builderConfig) error {
		return appendTriMesh(b, cfg, methodTriMesh, vertices, triangles)
	}
}

// TriMeshFlat is TriMesh over a flat x,y,z coordinate array.
func TriMeshFlat(coords []float64, triangles []int) Constructor {
	return func(b *topology.Body, cfg builderConfig) error {
		if len(coords)%3 != 0 {
			return fmt.Errorf("%s: %d coordinates (not a multiple of 3): %w",
				methodTriMeshFlat, len(coords), ErrBadInput)
		}
		vertices := make([]r3.Vec, len(coords)/3)
		for i := range vertices {
			vertices[i] = r3.Vec{X: coords[3*i], Y: coords[3*i+1], Z: coords[3*i+2]}
		}

		return appendTriMesh(b, cfg, methodTriMeshFlat, vertices, triangles)
	}
}

func appendTriMesh(b *topology.Body, cfg builderConfig, method string, vertices []r3.Vec, triangles []int) error {
	if len(triangles)%3 != 0 {
		return fmt.Errorf("%s: %d indices (not a multiple of 3): %w", method, len(triangles), ErrBadInput)
	}
	maxIdx := -1
	for i, v := range triangles {
		if v < 0 {
			return fmt.Errorf("%s: index %d at %d: %w", method, v, i, ErrBadInput)
		}
		maxIdx = max(maxIdx, v)
	}
	if maxIdx >= len(vertices) {
		return fmt.Errorf("%s: index %d with %d vertices: %w", method, maxIdx, len(vertices), ErrBadInput)
	}

	base, err := b.AddNodes(vertices[:maxIdx+1], cfg.uniformMasses(maxIdx+1))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	edges := edgeset.NewBuilder(maxIdx)
	for t := 0; t < len(triangles); t += 3 {
		tri := [3]int{triangles[t], triangles[t+1], triangles[t+2]}
		for j, k := 2, 0; k < 3; j, k = k, k+1 {
			if !edges.Add(tri[j], tri[k]) {
				continue
			}
			if _, err = b.AddLink(base+tri[j], base+tri[k]); err != nil {
				return fmt.Errorf("%s: AddLink(%d,%d): %w", method, base+tri[j], base+tri[k], err)
			}
		}
		if _, err = b.AddFace(base+tri[0], base+tri[1], base+tri[2]); err != nil {
			return fmt.Errorf("%s: triangle %d: %w", method, t/3, err)
		}
	}
	cfg.logger.Debug("trimesh appended", "nodes", maxIdx+1, "triangles", len(triangles)/3, "links", edges.Len())

	return nil
}
