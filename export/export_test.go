// SPDX-License-Identifier: MIT

package export_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"runtime"
	"testing"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/softbody/builder"
	"github.com/katalvlaran/softbody/export"
	"github.com/katalvlaran/softbody/topology"
)

func twoTets(t *testing.T) *topology.Body {
	t.Helper()
	pos := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 1, Z: 1}}
	b, err := builder.CreateFromVolume(pos, [][4]int{{0, 1, 2, 3}, {4, 3, 2, 1}}, builder.WithMass(2))
	require.NoError(t, err)
	require.NoError(t, b.SetInverseMass(0, 0))
	_, err = b.AddAnchor(4)
	require.NoError(t, err)
	return b
}

func TestCompactIndices(t *testing.T) {
	got, err := export.CompactIndices([]uint32{0, 7, math.MaxUint16})
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 7, math.MaxUint16}, got)

	_, err = export.CompactIndices([]uint32{1, math.MaxUint16 + 1})
	assert.ErrorIs(t, err, export.ErrIndexOverflow)

	_, err = export.CompactIndices(make([]uint32, math.MaxUint16+1))
	assert.ErrorIs(t, err, export.ErrIndexOverflow)

	got, err = export.CompactIndices(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFaceAndLinkIndices(t *testing.T) {
	b := twoTets(t)
	faces := export.FaceIndices(b)
	assert.Len(t, faces, 3*b.FaceCount())
	assert.Equal(t, []uint32{1, 0, 2}, faces[:3])

	links := export.LinkIndices(b)
	assert.Len(t, links, 2*b.LinkCount())
	assert.Equal(t, []uint32{0, 1, 1, 2}, links[:4])
}

func TestSnapshot_RoundTrip(t *testing.T) {
	b := twoTets(t)
	var buf bytes.Buffer
	require.NoError(t, export.WriteSnapshot(&buf, b))

	got, err := export.ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.Nodes(), got.Nodes())
	assert.Equal(t, b.Links(), got.Links())
	assert.Equal(t, b.Faces(), got.Faces())
	assert.Equal(t, b.Tetras(), got.Tetras())
	assert.Equal(t, b.Anchors(), got.Anchors())
	assert.Equal(t, b.Stats(), got.Stats())
}

func TestSnapshot_RoundTripManyChunks(t *testing.T) {
	b, err := builder.CreatePatch(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{X: 1, Y: 1}, 70, 70, 0, true)
	require.NoError(t, err)
	require.Greater(t, b.NodeCount(), 4096)
	var buf bytes.Buffer
	require.NoError(t, export.WriteSnapshot(&buf, b))

	got, err := export.ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, b.Nodes(), got.Nodes())
	assert.Equal(t, b.Links(), got.Links())
	assert.Equal(t, b.Faces(), got.Faces())
}

func TestSnapshot_EmptyBody(t *testing.T) {
	id := uuid.MustParse("3f2b1c9e-0d4a-4e61-9a57-2c8e5b7d1f03")
	var buf bytes.Buffer
	require.NoError(t, export.WriteSnapshot(&buf, topology.NewBody(topology.WithID(id))))

	got, err := export.ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Zero(t, got.NodeCount())
}

func TestReadSnapshot_Rejects(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteSnapshot(&buf, twoTets(t)))
	full := buf.Bytes()

	_, err := export.ReadSnapshot(bytes.NewReader(full[:len(full)/2]))
	assert.ErrorIs(t, err, export.ErrBadSnapshot, "truncated")

	_, err = export.ReadSnapshot(bytes.NewReader([]byte("not a snapshot")))
	assert.ErrorIs(t, err, export.ErrBadSnapshot, "garbage")

	// A well-framed stream with the wrong magic, then the wrong version.
	for _, hdr := range []struct {
		Magic   [4]byte
		Version uint32
	}{
		{[4]byte{'X', 'X', 'X', 'X'}, export.SnapshotVersion},
		{[4]byte{'S', 'B', 'D', 'Y'}, export.SnapshotVersion + 1},
	} {
		var raw bytes.Buffer
		w := snappy.NewBufferedWriter(&raw)
		require.NoError(t, binary.Write(w, binary.LittleEndian, hdr))
		require.NoError(t, binary.Write(w, binary.LittleEndian, make([]byte, 16+5*4)))
		require.NoError(t, w.Close())
		_, err = export.ReadSnapshot(&raw)
		assert.ErrorIs(t, err, export.ErrBadSnapshot)
	}
}

func TestReadSnapshot_DanglingLink(t *testing.T) {
	var raw bytes.Buffer
	w := snappy.NewBufferedWriter(&raw)
	hdr := struct {
		Magic                               [4]byte
		Version                             uint32
		ID                                  [16]byte
		Nodes, Links, Faces, Tetras, Anchor uint32
	}{Magic: [4]byte{'S', 'B', 'D', 'Y'}, Version: export.SnapshotVersion, Nodes: 1, Links: 1}
	require.NoError(t, binary.Write(w, binary.LittleEndian, hdr))
	require.NoError(t, binary.Write(w, binary.LittleEndian, [4]float64{0, 0, 0, 1}))
	require.NoError(t, binary.Write(w, binary.LittleEndian, struct {
		A, B uint32
		Rest float64
	}{A: 0, B: 5, Rest: 1}))
	require.NoError(t, w.Close())

	_, err := export.ReadSnapshot(&raw)
	require.ErrorIs(t, err, export.ErrBadSnapshot)
	assert.Contains(t, err.Error(), "node index out of range")
}

func TestReadSnapshot_HugeCountsTruncated(t *testing.T) {
	var raw bytes.Buffer
	w := snappy.NewBufferedWriter(&raw)
	hdr := struct {
		Magic                               [4]byte
		Version                             uint32
		ID                                  [16]byte
		Nodes, Links, Faces, Tetras, Anchor uint32
	}{
		Magic: [4]byte{'S', 'B', 'D', 'Y'}, Version: export.SnapshotVersion,
		Nodes: 1 << 24, Links: 1 << 24, Faces: 1 << 24, Tetras: 1 << 24, Anchor: 1 << 24,
	}
	require.NoError(t, binary.Write(w, binary.LittleEndian, hdr))
	require.NoError(t, binary.Write(w, binary.LittleEndian, [4]float64{0, 0, 0, 1}))
	require.NoError(t, w.Close())

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := export.ReadSnapshot(&raw)
	runtime.ReadMemStats(&after)

	require.ErrorIs(t, err, export.ErrBadSnapshot)
	assert.Contains(t, err.Error(), "nodes")
	// 1<<24 node records alone are 512 MiB.
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16<<20))
}
