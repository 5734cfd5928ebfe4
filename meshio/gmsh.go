// SPDX-License-Identifier: MIT

package meshio

import (
	"fmt"

	"github.com/notargets/gocfd/DG3D/mesh/readers"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadMeshFile loads a Gmsh (.msh) or Gambit neutral file through the gocfd
// readers and keeps its tetrahedral volume cells. Hexahedra, prisms and
// pyramids are dropped; quadratic tetras keep their four corners.
func ReadMeshFile(path string) (*VolumeTables, error) {
	m, err := readers.ReadMeshFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadMeshFile: %s: %w", path, err)
	}

	t := &VolumeTables{Positions: make([]r3.Vec, len(m.Vertices))}
	for i, v := range m.Vertices {
		if len(v) < 3 {
			return nil, fmt.Errorf("ReadMeshFile: %s: vertex %d has %d coordinates: %w", path, i, len(v), ErrMalformed)
		}
		t.Positions[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}

	_, cells, _ := m.FilterByDimension(3)
	for _, c := range cells {
		if len(c) != 4 && len(c) != 10 {
			continue
		}
		t.Tetras = append(t.Tetras, [4]int{c[0], c[1], c[2], c[3]})
	}
	if len(t.Tetras) == 0 {
		return nil, fmt.Errorf("ReadMeshFile: %s: %d volume cells: %w", path, len(cells), ErrNoTetras)
	}
	if err = t.Validate(); err != nil {
		return nil, fmt.Errorf("ReadMeshFile: %s: %w", path, err)
	}

	return t, nil
}
