// SPDX-License-Identifier: MIT

package export

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/topology"
)

// ErrBadSnapshot indicates a stream that is not a snapshot this package can read.
var ErrBadSnapshot = errors.New("export: bad snapshot")

// SnapshotVersion is the layout version written by WriteSnapshot.
const SnapshotVersion = 1

var snapshotMagic = [4]byte{'S', 'B', 'D', 'Y'}

// maxCount bounds every table length read back.
const maxCount = 1 << 28

// Layout after decompression, all little-endian:
//
//	header
//	nodes   x, y, z, inverse mass       float64 ×4
//	links   a, b uint32; rest float64
//	faces   n0, n1, n2                  uint32 ×3
//	tetras  n0..n3                      uint32 ×4
//	anchors node                        uint32
type header struct {
	Magic   [4]byte
	Version uint32
	ID      [16]byte
	Nodes   uint32
	Links   uint32
	Faces   uint32
	Tetras  uint32
	Anchors uint32
}

type nodeRecord struct {
	X, Y, Z, InverseMass float64
}

type linkRecord struct {
	A, B uint32
	Rest float64
}

// WriteSnapshot writes b's topology, positions and masses to w.
// Velocities, forces and areas are solver state and are not stored.
func WriteSnapshot(w io.Writer, b *topology.Body) error {
	sw := snappy.NewBufferedWriter(w)
	h := header{
		Magic:   snapshotMagic,
		Version: SnapshotVersion,
		ID:      b.ID,
		Nodes:   uint32(b.NodeCount()),
		Links:   uint32(b.LinkCount()),
		Faces:   uint32(b.FaceCount()),
		Tetras:  uint32(b.TetraCount()),
		Anchors: uint32(b.AnchorCount()),
	}
	if err := binary.Write(sw, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("WriteSnapshot: header: %w", err)
	}

	nodes := make([]nodeRecord, b.NodeCount())
	for i, n := range b.Nodes() {
		nodes[i] = nodeRecord{X: n.Position.X, Y: n.Position.Y, Z: n.Position.Z, InverseMass: n.InverseMass}
	}
	links := make([]linkRecord, b.LinkCount())
	for i, l := range b.Links() {
		links[i] = linkRecord{A: uint32(l.A), B: uint32(l.B), Rest: l.RestLength}
	}
	tetras := make([]uint32, 0, 4*b.TetraCount())
	for _, t := range b.Tetras() {
		tetras = append(tetras, uint32(t.N[0]), uint32(t.N[1]), uint32(t.N[2]), uint32(t.N[3]))
	}
	anchors := make([]uint32, b.AnchorCount())
	for i, a := range b.Anchors() {
		anchors[i] = uint32(a.Node)
	}

	for _, part := range []struct {
		name string
		data any
	}{
		{"nodes", nodes},
		{"links", links},
		{"faces", FaceIndices(b)},
		{"tetras", tetras},
		{"anchors", anchors},
	} {
		if err := binary.Write(sw, binary.LittleEndian, part.data); err != nil {
			return fmt.Errorf("WriteSnapshot: %s: %w", part.name, err)
		}
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("WriteSnapshot: %w", err)
	}

	return nil
}

// ReadSnapshot rebuilds a body from a stream written by WriteSnapshot.
// Every element is re-validated on insertion; a snapshot naming missing
// nodes or repeating a link is ErrBadSnapshot.
func ReadSnapshot(r io.Reader) (*topology.Body, error) {
	sr := snappy.NewReader(r)
	var h header
	if err := binary.Read(sr, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("ReadSnapshot: header: %v: %w", err, ErrBadSnapshot)
	}
	if h.Magic != snapshotMagic {
		return nil, fmt.Errorf("ReadSnapshot: magic %q: %w", h.Magic[:], ErrBadSnapshot)
	}
	if h.Version != SnapshotVersion {
		return nil, fmt.Errorf("ReadSnapshot: version %d: %w", h.Version, ErrBadSnapshot)
	}
	for _, c := range []uint32{h.Nodes, h.Links, h.Faces, h.Tetras, h.Anchors} {
		if c > maxCount {
			return nil, fmt.Errorf("ReadSnapshot: table of %d entries: %w", c, ErrBadSnapshot)
		}
	}

	nodes, err := readTable[nodeRecord](sr, int(h.Nodes))
	if err != nil {
		return nil, fmt.Errorf("ReadSnapshot: nodes: %v: %w", err, ErrBadSnapshot)
	}
	links, err := readTable[linkRecord](sr, int(h.Links))
	if err != nil {
		return nil, fmt.Errorf("ReadSnapshot: links: %v: %w", err, ErrBadSnapshot)
	}
	faces, err := readTable[uint32](sr, 3*int(h.Faces))
	if err != nil {
		return nil, fmt.Errorf("ReadSnapshot: faces: %v: %w", err, ErrBadSnapshot)
	}
	tetras, err := readTable[uint32](sr, 4*int(h.Tetras))
	if err != nil {
		return nil, fmt.Errorf("ReadSnapshot: tetras: %v: %w", err, ErrBadSnapshot)
	}
	anchors, err := readTable[uint32](sr, int(h.Anchors))
	if err != nil {
		return nil, fmt.Errorf("ReadSnapshot: anchors: %v: %w", err, ErrBadSnapshot)
	}

	b := topology.NewBody(topology.WithID(uuid.UUID(h.ID)), topology.WithCapacity(len(nodes), len(links)))
	if err := fill(b, nodes, links, faces, tetras, anchors); err != nil {
		return nil, fmt.Errorf("ReadSnapshot: %v: %w", err, ErrBadSnapshot)
	}

	return b, nil
}

// chunkRecords is how many records readTable decodes per call. Tables grow
// as data arrives, so a header claiming more records than the stream holds
// fails at EOF instead of allocating the claimed size up front.
const chunkRecords = 4096

func readTable[T any](r io.Reader, n int) ([]T, error) {
	out := make([]T, 0, min(n, chunkRecords))
	buf := make([]T, min(n, chunkRecords))
	for len(out) < n {
		chunk := buf[:min(n-len(out), chunkRecords)]
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}

	return out, nil
}

func fill(b *topology.Body, nodes []nodeRecord, links []linkRecord, faces, tetras, anchors []uint32) error {
	for _, n := range nodes {
		if _, err := b.AddNode(r3.Vec{X: n.X, Y: n.Y, Z: n.Z}, n.InverseMass); err != nil {
			return err
		}
	}
	for _, l := range links {
		if _, err := b.AddLink(int(l.A), int(l.B), topology.WithRestLength(l.Rest)); err != nil {
			return err
		}
	}
	for i := 0; i < len(faces); i += 3 {
		if _, err := b.AddFace(int(faces[i]), int(faces[i+1]), int(faces[i+2])); err != nil {
			return err
		}
	}
	for i := 0; i < len(tetras); i += 4 {
		if _, err := b.AddTetra(int(tetras[i]), int(tetras[i+1]), int(tetras[i+2]), int(tetras[i+3])); err != nil {
			return err
		}
	}
	for _, a := range anchors {
		if _, err := b.AddAnchor(int(a)); err != nil {
			return err
		}
	}

	return nil
}
