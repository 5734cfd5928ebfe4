// SPDX-License-Identifier: MIT
//
// Package meshio reads volumetric mesh files into plain node and tetra tables
// for builder.Volume.
//
// Supported inputs:
//
//	TetGen   .node + .ele text pair     ReadTetGen / WriteTetGen
//	VTK      legacy ASCII unstructured  ReadVTK
//	Gmsh / Gambit via gocfd readers     ReadMeshFile
//
// Readers return tables with 0-based indices whatever the file's base, and
// keep only tetrahedral cells. Parsing is strict: a short line, a bad number
// or an index outside the node table is ErrMalformed with its line number.
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrMalformed indicates a syntactically or referentially broken file.
	ErrMalformed = errors.New("meshio: malformed mesh file")

	// ErrNoTetras indicates a well-formed file without tetrahedral cells.
	ErrNoTetras = errors.New("meshio: no tetrahedra")
)

// VolumeTables is a node position table plus a 0-based tetra index table.
type VolumeTables struct {
	Positions []r3.Vec
	Tetras    [][4]int
}

// Validate checks that every tetra index refers to a position.
func (t *VolumeTables) Validate() error {
	for i, tet := range t.Tetras {
		for _, v := range tet {
			if v < 0 || v >= len(t.Positions) {
				return fmt.Errorf("Validate: tetra %d index %d with %d nodes: %w", i, v, len(t.Positions), ErrMalformed)
			}
		}
	}

	return nil
}

// lineReader yields non-empty, comment-stripped lines split into fields.
type lineReader struct {
	sc   *bufio.Scanner
	line int
	name string
}

const maxLine = 1 << 20

func newLineReader(r io.Reader, name string) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &lineReader{sc: sc, name: name}
}

// next returns the fields of the next meaningful line, or io.EOF.
func (lr *lineReader) next() ([]string, error) {
	for lr.sc.Scan() {
		lr.line++
		text := lr.sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		if f := strings.Fields(text); len(f) > 0 {
			return f, nil
		}
	}
	if err := lr.sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: line %d: %w", lr.name, lr.line+1, err)
	}

	return nil, io.EOF
}

// errorf reports a malformed current line.
func (lr *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: line %d: %s: %w", lr.name, lr.line, fmt.Sprintf(format, args...), ErrMalformed)
}

// need returns the next line with at least n fields; EOF here is malformed.
func (lr *lineReader) need(n int, what string) ([]string, error) {
	f, err := lr.next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: unexpected end of file, want %s: %w", lr.name, what, ErrMalformed)
	}
	if err != nil {
		return nil, err
	}
	if len(f) < n {
		return nil, lr.errorf("%s has %d fields, want %d", what, len(f), n)
	}

	return f, nil
}

func (lr *lineReader) atoi(s, what string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, lr.errorf("%s %q", what, s)
	}
	return v, nil
}

func (lr *lineReader) atof(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, lr.errorf("%s %q", what, s)
	}
	return v, nil
}
