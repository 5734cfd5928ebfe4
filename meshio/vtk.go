// SPDX-License-Identifier: MIT

package meshio

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// VTK cell type codes kept by ReadVTK.
const (
	vtkTetra          = 10
	vtkQuadraticTetra = 24
)

// tokens walks a lineReader one field at a time.
type tokens struct {
	lr     *lineReader
	fields []string
	pos    int
}

func (tk *tokens) next() (string, error) {
	for tk.pos >= len(tk.fields) {
		f, err := tk.lr.next()
		if err != nil {
			return "", err
		}
		tk.fields, tk.pos = f, 0
	}
	s := tk.fields[tk.pos]
	tk.pos++

	return s, nil
}

// must is next with EOF reported as malformed.
func (tk *tokens) must(what string) (string, error) {
	s, err := tk.next()
	if errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: unexpected end of file, want %s: %w", tk.lr.name, what, ErrMalformed)
	}
	return s, err
}

func (tk *tokens) atoi(what string) (int, error) {
	s, err := tk.must(what)
	if err != nil {
		return 0, err
	}
	return tk.lr.atoi(s, what)
}

func (tk *tokens) atof(what string) (float64, error) {
	s, err := tk.must(what)
	if err != nil {
		return 0, err
	}
	return tk.lr.atof(s, what)
}

// formatWords may open a legacy VTK file that carries no title line.
var formatWords = map[string]bool{"ASCII": true, "BINARY": true, "DATASET": true}

// ReadVTK parses a legacy ASCII VTK unstructured grid (POINTS, CELLS and
// optional CELL_TYPES sections). With CELL_TYPES present only tetra cells
// (types 10 and 24) are kept; without it, cells with 4 or 10 points are.
// Point and cell data sections are ignored.
//
// The first meaningful line is the free-form title unless it opens with a
// format keyword. Section keywords count only as the first field of a line,
// so a title or unknown line mentioning POINTS or CELLS is skipped.
func ReadVTK(r io.Reader) (*VolumeTables, error) {
	tk := &tokens{lr: newLineReader(r, "vtk")}
	var (
		t     VolumeTables
		cells [][]int
		types []int
	)

	title := true
loop:
	for {
		f, err := tk.lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadVTK: %w", err)
		}
		tk.fields, tk.pos = f, 1
		if title {
			title = false
			if !formatWords[f[0]] {
				continue
			}
		}

		switch f[0] {
		case "BINARY":
			return nil, fmt.Errorf("ReadVTK: %w", tk.lr.errorf("binary VTK is not supported"))
		case "DATASET":
			kind, err := tk.must("dataset type")
			if err != nil {
				return nil, fmt.Errorf("ReadVTK: %w", err)
			}
			if kind != "UNSTRUCTURED_GRID" {
				return nil, fmt.Errorf("ReadVTK: %w", tk.lr.errorf("dataset %s, want UNSTRUCTURED_GRID", kind))
			}
		case "POINTS":
			if t.Positions, err = readPoints(tk); err != nil {
				return nil, fmt.Errorf("ReadVTK: %w", err)
			}
		case "CELLS":
			if cells, err = readCells(tk, len(t.Positions)); err != nil {
				return nil, fmt.Errorf("ReadVTK: %w", err)
			}
		case "CELL_TYPES":
			n, err := tk.atoi("cell type count")
			if err != nil {
				return nil, fmt.Errorf("ReadVTK: %w", err)
			}
			if n != len(cells) {
				return nil, fmt.Errorf("ReadVTK: %w", tk.lr.errorf("%d cell types for %d cells", n, len(cells)))
			}
			types = make([]int, n)
			for i := range types {
				if types[i], err = tk.atoi("cell type"); err != nil {
					return nil, fmt.Errorf("ReadVTK: %w", err)
				}
			}
		case "POINT_DATA", "CELL_DATA":
			break loop
		}
	}

	for i, c := range cells {
		keep := len(c) == 4 || len(c) == 10
		if types != nil {
			keep = (types[i] == vtkTetra || types[i] == vtkQuadraticTetra) && len(c) >= 4
		}
		if keep {
			t.Tetras = append(t.Tetras, [4]int{c[0], c[1], c[2], c[3]})
		}
	}
	if len(t.Tetras) == 0 {
		return nil, fmt.Errorf("ReadVTK: %d cells: %w", len(cells), ErrNoTetras)
	}

	return &t, nil
}

func readPoints(tk *tokens) ([]r3.Vec, error) {
	n, err := tk.atoi("point count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, tk.lr.errorf("negative point count %d", n)
	}
	if _, err = tk.must("point data type"); err != nil {
		return nil, err
	}
	pts := make([]r3.Vec, n)
	for i := range pts {
		var xyz [3]float64
		for k := range xyz {
			if xyz[k], err = tk.atof("coordinate"); err != nil {
				return nil, err
			}
		}
		pts[i] = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}

	return pts, nil
}

func readCells(tk *tokens, nodes int) ([][]int, error) {
	n, err := tk.atoi("cell count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, tk.lr.errorf("negative cell count %d", n)
	}
	if _, err = tk.atoi("cell list size"); err != nil {
		return nil, err
	}
	cells := make([][]int, n)
	for i := range cells {
		k, err := tk.atoi("cell size")
		if err != nil {
			return nil, err
		}
		if k < 0 {
			return nil, tk.lr.errorf("negative cell size %d", k)
		}
		c := make([]int, k)
		for j := range c {
			if c[j], err = tk.atoi("cell point"); err != nil {
				return nil, err
			}
			if c[j] < 0 || c[j] >= nodes {
				return nil, tk.lr.errorf("cell point %d outside %d points", c[j], nodes)
			}
		}
		cells[i] = c
	}

	return cells, nil
}
