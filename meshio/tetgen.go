// SPDX-License-Identifier: MIT

package meshio

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReadTetGen parses a TetGen .node/.ele pair.
//
//	.node: "<count> <dim=3> <attrs> <markers>", then "<index> x y z ..." per node
//	.ele:  "<count> <corners=4|10> <attrs>",   then "<index> n0 n1 n2 n3 ..." per tetra
//
// The index base (0 or 1) is taken from the first node line; node lines may
// come in any order. Quadratic elements keep their four corner nodes.
// A nil ele reader yields nodes only.
func ReadTetGen(node, ele io.Reader) (*VolumeTables, error) {
	lr := newLineReader(node, ".node")
	h, err := lr.need(1, "header")
	if err != nil {
		return nil, fmt.Errorf("ReadTetGen: %w", err)
	}
	count, err := lr.atoi(h[0], "node count")
	if err != nil {
		return nil, fmt.Errorf("ReadTetGen: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("ReadTetGen: %w", lr.errorf("negative node count %d", count))
	}
	if len(h) > 1 && h[1] != "3" {
		return nil, fmt.Errorf("ReadTetGen: %w", lr.errorf("dimension %s, want 3", h[1]))
	}

	t := &VolumeTables{Positions: make([]r3.Vec, count)}
	seen := make([]bool, count)
	base := 0
	for i := 0; i < count; i++ {
		f, err := lr.need(4, "node")
		if err != nil {
			return nil, fmt.Errorf("ReadTetGen: %w", err)
		}
		idx, err := lr.atoi(f[0], "node index")
		if err != nil {
			return nil, fmt.Errorf("ReadTetGen: %w", err)
		}
		if i == 0 && idx == 1 {
			base = 1
		}
		idx -= base
		if idx < 0 || idx >= count || seen[idx] {
			return nil, fmt.Errorf("ReadTetGen: %w", lr.errorf("node index %s out of range or repeated", f[0]))
		}
		var xyz [3]float64
		for k := range xyz {
			if xyz[k], err = lr.atof(f[k+1], "coordinate"); err != nil {
				return nil, fmt.Errorf("ReadTetGen: %w", err)
			}
		}
		t.Positions[idx] = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
		seen[idx] = true
	}
	if ele == nil {
		return t, nil
	}

	lr = newLineReader(ele, ".ele")
	if h, err = lr.need(1, "header"); err != nil {
		return nil, fmt.Errorf("ReadTetGen: %w", err)
	}
	if count, err = lr.atoi(h[0], "tetra count"); err != nil {
		return nil, fmt.Errorf("ReadTetGen: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("ReadTetGen: %w", lr.errorf("negative tetra count %d", count))
	}
	t.Tetras = make([][4]int, 0, count)
	for i := 0; i < count; i++ {
		f, err := lr.need(5, "tetra")
		if err != nil {
			return nil, fmt.Errorf("ReadTetGen: %w", err)
		}
		var tet [4]int
		for k := range tet {
			v, err := lr.atoi(f[k+1], "tetra node")
			if err != nil {
				return nil, fmt.Errorf("ReadTetGen: %w", err)
			}
			if v -= base; v < 0 || v >= len(t.Positions) {
				return nil, fmt.Errorf("ReadTetGen: %w", lr.errorf("tetra node %s outside %d nodes", f[k+1], len(t.Positions)))
			}
			tet[k] = v
		}
		t.Tetras = append(t.Tetras, tet)
	}

	return t, nil
}

// WriteTetGen writes t as a 0-based TetGen .node/.ele pair.
func WriteTetGen(node, ele io.Writer, t *VolumeTables) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("WriteTetGen: %w", err)
	}

	w := bufio.NewWriter(node)
	fmt.Fprintf(w, "%d 3 0 0\n", len(t.Positions))
	for i, p := range t.Positions {
		fmt.Fprintf(w, "%d %.17g %.17g %.17g\n", i, p.X, p.Y, p.Z)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("WriteTetGen: .node: %w", err)
	}

	w = bufio.NewWriter(ele)
	fmt.Fprintf(w, "%d 4 0\n", len(t.Tetras))
	for i, tet := range t.Tetras {
		fmt.Fprintf(w, "%d %d %d %d %d\n", i, tet[0], tet[1], tet[2], tet[3])
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("WriteTetGen: .ele: %w", err)
	}

	return nil
}
