// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// impl_hull.go - ConvexHull and Ellipsoid.
//
// ConvexHull delegates the geometry to cfg.hull and only transcribes its
// result: one node per hull vertex, then per hull triangle its edges
// (t0,t1), (t1,t2), (t2,t0) through the edge filter and the face itself.
//
// Ellipsoid samples res+3 points on the unit sphere with a van der Corput
// height sequence and a matching azimuth spiral, scales them by radius,
// shifts them to center and hands them to ConvexHull.

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/edgeset"
	"github.com/katalvlaran/softbody/topology"
)

const (
	methodConvexHull = "ConvexHull"
	methodEllipsoid  = "Ellipsoid"
	ellipsoidExtra   = 3
)

// ConvexHull returns a Constructor for the convex hull of points.
// Hull failures (too few or degenerate points) pass through wrapped.
func ConvexHull(points []r3.Vec) Constructor {
	return func(b *topology.Body, cfg builderConfig) error {
		return appendHull(b, cfg, methodConvexHull, points)
	}
}

// Ellipsoid returns a Constructor for a closed ellipsoid surface.
func Ellipsoid(center, radius r3.Vec, res int) Constructor {
	return func(b *topology.Body, cfg builderConfig) error {
		return appendHull(b, cfg, methodEllipsoid, EllipsoidPoints(center, radius, res))
	}
}

// EllipsoidPoints returns the res+3 sample points used by Ellipsoid.
// A res below -3 yields no points.
func EllipsoidPoints(center, radius r3.Vec, res int) []r3.Vec {
	n := res + ellipsoidExtra
	if n <= 0 {
		return nil
	}
	pts := make([]r3.Vec, n)
	for i := range pts {
		w := 2*vanDerCorput(i) - 1
		a := float64(1+2*i) * math.Pi / float64(n)
		s := math.Sqrt(1 - w*w)
		unit := r3.Vec{X: s * math.Cos(a), Y: s * math.Sin(a), Z: w}
		pts[i] = r3.Add(r3.Vec{X: unit.X * radius.X, Y: unit.Y * radius.Y, Z: unit.Z * radius.Z}, center)
	}

	return pts
}

// vanDerCorput mirrors the binary digits of i about the radix point.
func vanDerCorput(i int) float64 {
	p, t := 0.5, 0.0
	for j := i; j > 0; j >>= 1 {
		if j&1 != 0 {
			t += p
		}
		p *= 0.5
	}

	return t
}

func appendHull(b *topology.Body, cfg builderConfig, method string, points []r3.Vec) error {
	res, err := cfg.hull.Compute(points)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	base, err := b.AddNodes(res.Vertices, cfg.uniformMasses(len(res.Vertices)))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	edges := edgeset.NewBuilder(len(res.Vertices) - 1)
	for ti, t := range res.Triangles {
		for j, k := 0, 1; j < 3; j, k = j+1, (k+1)%3 {
			if !edges.Add(t[j], t[k]) {
				continue
			}
			if _, err = b.AddLink(base+t[j], base+t[k]); err != nil {
				return fmt.Errorf("%s: AddLink(%d,%d): %w", method, base+t[j], base+t[k], err)
			}
		}
		if _, err = b.AddFace(base+t[0], base+t[1], base+t[2]); err != nil {
			return fmt.Errorf("%s: triangle %d: %w", method, ti, err)
		}
	}
	cfg.logger.Debug("hull appended", "method", method, "points", len(points),
		"vertices", len(res.Vertices), "triangles", len(res.Triangles))

	return nil
}
