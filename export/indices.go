// SPDX-License-Identifier: MIT
//
// Package export hands built bodies to renderers and to disk.
//
// Index buffers are flat uint32 slices in element order; CompactIndices
// narrows them to uint16 for renderers that need it. Snapshots are a
// little-endian binary image of a body inside a snappy framed stream.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/softbody/topology"
)

// ErrIndexOverflow indicates a buffer that cannot be narrowed to 16 bits.
var ErrIndexOverflow = errors.New("export: index does not fit in 16 bits")

// CompactIndices narrows idx to uint16. The buffer must hold at most
// math.MaxUint16 entries and every entry must be at most math.MaxUint16.
func CompactIndices(idx []uint32) ([]uint16, error) {
	if len(idx) > math.MaxUint16 {
		return nil, fmt.Errorf("CompactIndices: %d entries: %w", len(idx), ErrIndexOverflow)
	}
	out := make([]uint16, len(idx))
	for i, v := range idx {
		if v > math.MaxUint16 {
			return nil, fmt.Errorf("CompactIndices: entry %d is %d: %w", i, v, ErrIndexOverflow)
		}
		out[i] = uint16(v)
	}

	return out, nil
}

// FaceIndices returns three node indices per face, in face order and winding.
func FaceIndices(b *topology.Body) []uint32 {
	faces := b.Faces()
	out := make([]uint32, 0, 3*len(faces))
	for _, f := range faces {
		out = append(out, uint32(f.N[0]), uint32(f.N[1]), uint32(f.N[2]))
	}

	return out
}

// LinkIndices returns two node indices per link, in link order.
func LinkIndices(b *topology.Body) []uint32 {
	links := b.Links()
	out := make([]uint32, 0, 2*len(links))
	for _, l := range links {
		out = append(out, uint32(l.A), uint32(l.B))
	}

	return out
}
