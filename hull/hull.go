// SPDX-License-Identifier: MIT
//
// Package hull computes closed triangle surfaces around point clouds for the
// builder package. The Computer interface is the seam; QuickHull is the
// default implementation.
package hull

import (
	"errors"
	"fmt"
	"math"

	geor3 "github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrTooFewPoints indicates fewer than four input points.
	ErrTooFewPoints = errors.New("hull: at least 4 points required")

	// ErrDegenerate indicates an input with no volume (coplanar, collinear or
	// coincident points) for which no closed hull exists.
	ErrDegenerate = errors.New("hull: degenerate point set")
)

// DefaultEpsilon is the coplanarity tolerance used by NewQuickHull.
const DefaultEpsilon = 1e-12

// Result is a closed triangle surface over its own vertex list.
// Triangles index into Vertices and are wound counter-clockwise seen from outside.
type Result struct {
	Vertices  []r3.Vec
	Triangles [][3]int
}

// Computer produces a hull for a point cloud.
type Computer interface {
	Compute(points []r3.Vec) (Result, error)
}

// QuickHull is a Computer backed by quickhull-go.
type QuickHull struct {
	eps float64
}

// Option configures QuickHull.
type Option func(*QuickHull)

// WithEpsilon sets the coplanarity tolerance. Panics if eps <= 0.
func WithEpsilon(eps float64) Option {
	if eps <= 0 {
		panic("hull: WithEpsilon(eps<=0)")
	}
	return func(q *QuickHull) { q.eps = eps }
}

// NewQuickHull returns a QuickHull with DefaultEpsilon.
func NewQuickHull(opts ...Option) *QuickHull {
	q := &QuickHull{eps: DefaultEpsilon}
	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Compute implements Computer.
func (q *QuickHull) Compute(points []r3.Vec) (res Result, err error) {
	if len(points) < 4 {
		return Result{}, fmt.Errorf("Compute: %d points: %w", len(points), ErrTooFewPoints)
	}
	cloud := make([]geor3.Vector, len(points))
	for i, p := range points {
		cloud[i] = geor3.Vector{X: p.X, Y: p.Y, Z: p.Z}
	}

	// quickhull-go panics on some flat inputs.
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, fmt.Errorf("Compute: %v: %w", r, ErrDegenerate)
		}
	}()
	mesh := new(quickhull.QuickHull).ConvexHull(cloud, true, false, q.eps)

	if len(mesh.Indices) < 12 || len(mesh.Indices)%3 != 0 {
		return Result{}, fmt.Errorf("Compute: %d hull indices: %w", len(mesh.Indices), ErrDegenerate)
	}
	res.Vertices = make([]r3.Vec, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		res.Vertices[i] = r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
	}
	res.Triangles = make([][3]int, len(mesh.Indices)/3)
	for t := range res.Triangles {
		tri := [3]int{mesh.Indices[3*t], mesh.Indices[3*t+1], mesh.Indices[3*t+2]}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return Result{}, fmt.Errorf("Compute: triangle %d %v repeats a vertex: %w", t, tri, ErrDegenerate)
		}
		res.Triangles[t] = tri
	}

	// quickhull-go closes collinear and coincident clouds with zero-volume
	// surfaces; compare the volume against the cloud's extent.
	scale := extent(points)
	if scale == 0 || math.Abs(res.Volume()) <= q.eps*scale*scale*scale {
		return Result{}, fmt.Errorf("Compute: volume %g for extent %g: %w", res.Volume(), scale, ErrDegenerate)
	}

	return res, nil
}

// extent is the largest side of the axis-aligned bounding box of points.
func extent(points []r3.Vec) float64 {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	d := r3.Sub(hi, lo)

	return math.Max(d.X, math.Max(d.Y, d.Z))
}

// Volume returns the signed volume enclosed by r, positive for outward winding.
func (r Result) Volume() float64 {
	var v float64
	for _, t := range r.Triangles {
		a, b, c := r.Vertices[t[0]], r.Vertices[t[1]], r.Vertices[t[2]]
		v += r3.Dot(a, r3.Cross(b, c))
	}

	return v / 6
}
