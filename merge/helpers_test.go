package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elshize/irk"
	"github.com/elshize/irk/block"
	"github.com/elshize/irk/coding"
)

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func mustReadLines(t *testing.T, path string) []string {
	t.Helper()
	lines, err := readLines(path)
	require.NoError(t, err)
	return lines
}

func mustDecodeOffsets(t *testing.T, data []byte) []uint32 {
	t.Helper()
	var offsets []uint32
	pos := 0
	for pos < len(data) {
		v, n, err := coding.Uvarint(data[pos:])
		require.NoError(t, err)
		offsets = append(offsets, v)
		pos += n
	}
	return offsets
}

// writeSyntheticBatch writes a minimal batch directory with a single
// term "a" whose posting list is (docs, freqs), for tests that want to
// exercise the merger directly without going through package assemble.
func writeSyntheticBatch(t *testing.T, dir string, size int, docs, freqs []uint32) {
	t.Helper()
	titles := make([]string, size)
	for i := range titles {
		titles[i] = "doc"
	}
	require.NoError(t, writeLines(filepath.Join(dir, "titles.txt"), titles))
	require.NoError(t, writeLines(filepath.Join(dir, "terms.txt"), []string{"a"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "terms.docfreq"), coding.DeltaEncode(nil, []uint32{uint32(len(docs))}, 0), 0o644))

	dw := block.NewDocListWriter(block.Config{BlockSize: 1024})
	enc, err := dw.Write(docs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.id"), enc, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.idoff"), coding.Encode(nil, []uint32{0}), 0o644))

	pw := block.NewPayloadListWriter(block.Config{BlockSize: 1024})
	cenc := pw.Write(freqs)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.count"), cenc, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.countoff"), coding.Encode(nil, []uint32{0}), 0o644))

	sizes := make([]uint32, size)
	for i := range sizes {
		sizes[i] = 1
	}
	sw := block.NewPayloadListWriter(block.Config{BlockSize: 1024})
	require.NoError(t, os.WriteFile(filepath.Join(dir, irk.DocSizesFile), sw.Write(sizes), 0o644))
}
