// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// impl_patch.go - Patch: a bilinear rx×ry cloth grid.
//
// Layout:
//   - Node (x,y) has index base + rx*y + x and sits at
//     lerp(lerp(c00,c01,ty), lerp(c10,c11,ty), tx), tx = x/(rx-1), ty = y/(ry-1).
//   - fixedCorners bits pin corner nodes: 1 → (0,0), 2 → (rx-1,0),
//     4 → (0,ry-1), 8 → (rx-1,ry-1).
//
// Emission order, per cell in row-major order:
//   - link right (x+1 < rx), then link down (y+1 < ry);
//   - for an interior cell with (x+y) odd: faces (xy, x1y, x1y1), (xy, x1y1, xy1),
//     diagonal (xy, x1y1); with (x+y) even: faces (xy1, xy, x1y), (xy1, x1y, x1y1),
//     diagonal (x1y, xy1). The checkerboard keeps the triangulation symmetric.
//
// Complexity: O(rx*ry) time and space.

package builder

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/topology"
)

const (
	methodPatch   = "Patch"
	methodPatchUV = "PatchUVs"
	minPatchRes   = 2
)

// Corner bits for Patch's fixedCorners mask.
const (
	Corner00 = 1 << iota
	Corner10
	Corner01
	Corner11
)

// lerp returns a + (b-a)*t.
func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// Patch returns a Constructor for an rx×ry grid spanning four corners.
// rx or ry below 2 yields ErrDegenerateInput.
func Patch(c00, c10, c01, c11 r3.Vec, rx, ry int, fixedCorners int, diagonals bool) Constructor {
	return func(b *topology.Body, cfg builderConfig) error {
		if rx < minPatchRes || ry < minPatchRes {
			return fmt.Errorf("%s: rx=%d, ry=%d (each must be ≥ %d): %w",
				methodPatch, rx, ry, minPatchRes, ErrDegenerateInput)
		}

		positions := make([]r3.Vec, 0, rx*ry)
		for y := 0; y < ry; y++ {
			ty := float64(y) / float64(ry-1)
			py0 := lerp(c00, c01, ty)
			py1 := lerp(c10, c11, ty)
			for x := 0; x < rx; x++ {
				positions = append(positions, lerp(py0, py1, float64(x)/float64(rx-1)))
			}
		}
		base, err := b.AddNodes(positions, cfg.uniformMasses(len(positions)))
		if err != nil {
			return fmt.Errorf("%s: %w", methodPatch, err)
		}

		corners := [4]int{0, rx - 1, rx * (ry - 1), rx*(ry-1) + rx - 1}
		for bit, idx := range corners {
			if fixedCorners&(1<<bit) != 0 {
				if err = b.SetInverseMass(base+idx, 0); err != nil {
					return fmt.Errorf("%s: fix corner %d: %w", methodPatch, bit, err)
				}
			}
		}

		link := func(i, j int) error {
			if _, err := b.AddLink(base+i, base+j); err != nil {
				return fmt.Errorf("%s: AddLink(%d,%d): %w", methodPatch, base+i, base+j, err)
			}
			return nil
		}
		face := func(i, j, k int) error {
			if _, err := b.AddFace(base+i, base+j, base+k); err != nil {
				return fmt.Errorf("%s: AddFace(%d,%d,%d): %w", methodPatch, base+i, base+j, base+k, err)
			}
			return nil
		}

		for y := 0; y < ry; y++ {
			for x := 0; x < rx; x++ {
				ixy := rx*y + x
				ix1y := ixy + 1
				ixy1 := rx*(y+1) + x
				mdx, mdy := x+1 < rx, y+1 < ry

				if mdx {
					if err = link(ixy, ix1y); err != nil {
						return err
					}
				}
				if mdy {
					if err = link(ixy, ixy1); err != nil {
						return err
					}
				}
				if !mdx || !mdy {
					continue
				}

				ix1y1 := ixy1 + 1
				if (x+y)&1 != 0 {
					if err = face(ixy, ix1y, ix1y1); err != nil {
						return err
					}
					if err = face(ixy, ix1y1, ixy1); err != nil {
						return err
					}
					if diagonals {
						if err = link(ixy, ix1y1); err != nil {
							return err
						}
					}
				} else {
					if err = face(ixy1, ixy, ix1y); err != nil {
						return err
					}
					if err = face(ixy1, ix1y, ix1y1); err != nil {
						return err
					}
					if diagonals {
						if err = link(ix1y, ixy1); err != nil {
							return err
						}
					}
				}
			}
		}
		cfg.logger.Debug("patch appended", "rx", rx, "ry", ry, "base", base)

		return nil
	}
}

// CalculateUV returns one texture coordinate of the cell at (ix, iy) in an
// resx×resy grid:
//
//	id 0: u of the cell's left column      ix/(resx-1)
//	id 1: v of the cell's top row          (resy-1-iy)/(resy-1)
//	id 2: v of the cell's bottom row       (resy-2-iy)/(resy-1)
//	id 3: u of the cell's right column     (ix+1)/(resx-1)
//
// Any other id yields 0.
func CalculateUV(resx, resy, ix, iy, id int) float64 {
	switch id {
	case 0:
		return float64(ix) / float64(resx-1)
	case 1:
		return float64(resy-1-iy) / float64(resy-1)
	case 2:
		return float64(resy-1-iy-1) / float64(resy-1)
	case 3:
		return float64(ix+1) / float64(resx-1)
	default:
		return 0
	}
}

// PatchUVs returns texture coordinates for the faces of an rx×ry Patch, in
// face emission order: six floats (u0,v0,u1,v1,u2,v2) per face, one (u,v) per
// face corner. v runs from 1 at row 0 to 0 at the last row.
func PatchUVs(rx, ry int) ([]float64, error) {
	if rx < minPatchRes || ry < minPatchRes {
		return nil, fmt.Errorf("%s: rx=%d, ry=%d (each must be ≥ %d): %w",
			methodPatchUV, rx, ry, minPatchRes, ErrDegenerateInput)
	}

	out := make([]float64, 0, (rx-1)*(ry-1)*12)
	for y := 0; y+1 < ry; y++ {
		for x := 0; x+1 < rx; x++ {
			uv := func(id int) float64 { return CalculateUV(rx, ry, x, y, id) }
			xy := [2]float64{uv(0), uv(1)}
			x1y := [2]float64{uv(3), uv(1)}
			xy1 := [2]float64{uv(0), uv(2)}
			x1y1 := [2]float64{uv(3), uv(2)}

			var corners [6][2]float64
			if (x+y)&1 != 0 {
				corners = [6][2]float64{xy, x1y, x1y1, xy, x1y1, xy1}
			} else {
				corners = [6][2]float64{xy1, xy, x1y, xy1, x1y, x1y1}
			}
			for _, c := range corners {
				out = append(out, c[0], c[1])
			}
		}
	}

	return out, nil
}
