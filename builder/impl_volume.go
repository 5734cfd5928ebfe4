// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// impl_volume.go - Volume: explicit node and tetra tables.
//
// Emission order:
//  1. all nodes, in table order;
//  2. per tetra: the tetra, then (cfg.tetraLinks) its edges
//     01, 12, 20, 03, 13, 23 through the edge filter;
//  3. boundary faces by face cancellation, always;
//  4. (cfg.faceLinks) boundary face edges not yet linked.
//
// Tetra indices are local to the positions table.

package builder

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/boundary"
	"github.com/katalvlaran/softbody/edgeset"
	"github.com/katalvlaran/softbody/topology"
)

const methodVolume = "Volume"

// Volume returns a Constructor for a tetrahedral mesh.
func Volume(positions []r3.Vec, tetras [][4]int) Constructor {
	return func(b *topology.Body, cfg builderConfig) error {
		for ti, t := range tetras {
			for _, v := range t {
				if v < 0 || v >= len(positions) {
					return fmt.Errorf("%s: tetra %d index %d with %d nodes: %w",
						methodVolume, ti, v, len(positions), ErrBadInput)
				}
			}
		}

		base, err := b.AddNodes(positions, cfg.uniformMasses(len(positions)))
		if err != nil {
			return fmt.Errorf("%s: %w", methodVolume, err)
		}

		edges := edgeset.NewBuilder(len(positions) - 1)
		link := func(i, j int) error {
			if !edges.Add(i, j) {
				return nil
			}
			if _, err := b.AddLink(base+i, base+j); err != nil {
				return fmt.Errorf("%s: AddLink(%d,%d): %w", methodVolume, base+i, base+j, err)
			}
			return nil
		}

		for ti, t := range tetras {
			if _, err = b.AddTetra(base+t[0], base+t[1], base+t[2], base+t[3]); err != nil {
				return fmt.Errorf("%s: tetra %d: %w", methodVolume, ti, err)
			}
			if !cfg.tetraLinks {
				continue
			}
			for _, e := range topology.TetraEdges(t) {
				if err = link(e[0], e[1]); err != nil {
					return err
				}
			}
		}

		opts := []boundary.Option{boundary.WithWorkers(cfg.boundaryWorkers)}
		if cfg.strictBoundary {
			opts = append(opts, boundary.WithStrict())
		}
		faces, st, err := boundary.Faces(tetras, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", methodVolume, err)
		}
		cfg.recorder.ObserveBoundary(st)

		for _, f := range faces {
			if _, err = b.AddFace(base+f[0], base+f[1], base+f[2]); err != nil {
				return fmt.Errorf("%s: boundary face %v: %w", methodVolume, f, err)
			}
			if !cfg.faceLinks {
				continue
			}
			for j, k := 2, 0; k < 3; j, k = k, k+1 {
				if err = link(f[j], f[k]); err != nil {
					return err
				}
			}
		}
		cfg.logger.Debug("volume appended",
			slog.Int("nodes", len(positions)),
			slog.Int("tetras", len(tetras)),
			slog.Int("links", edges.Len()),
			slog.Int("boundary_faces", st.Survived),
			slog.Int("cancelled", st.Cancelled),
			slog.Int("non_manifold", st.Repeated))

		return nil
	}
}
