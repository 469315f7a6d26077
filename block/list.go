// Package block implements the on-disk block-compressed list format used
// for both document-id lists (delta-encoded) and payload lists (plain),
// plus the seek-capable iterator over them.
//
// Layout of one encoded list:
//
//	list_byte_size : vbyte            # total bytes of this list, self-delimiting
//	block_size     : vbyte            # B
//	block_count    : vbyte            # K = ceil(length / B)
//	skips          : vbyte[K]         # byte offset of each block, relative to the data region
//	upper_bounds   : svb-delta[K]     # delta lists only: last value of each block
//	block_0 | block_1 | ... | block_{K-1}
//
// The number of postings in the list (needed to know how many values the
// last block holds) is not self-contained in these bytes; it is supplied
// by the caller, who already tracks it externally (the per-term document
// frequency table).
package block

import (
	"fmt"

	"github.com/elshize/irk/coding"
)

// Config configures a block list writer.
type Config struct {
	// BlockSize is the number of postings per block (the last block may
	// hold fewer).
	BlockSize int
}

// ErrNotMonotonic is returned when a caller asks the writer to encode a
// sequence that is not strictly increasing.
var ErrNotMonotonic = fmt.Errorf("block: values are not strictly increasing")

// expandedSize returns the value to store in the list_byte_size field and
// the number of bytes its own vbyte encoding occupies, given the number
// of content bytes that follow it. This resolves the self-referential
// padding: the field widens until encoding (contentSize+extra) itself
// takes exactly extra bytes.
func expandedSize(contentSize int) (value int, extraBytes int) {
	extra := 1
	for uint64(contentSize)+uint64(extra) >= uint64(1)<<(7*uint(extra)) {
		extra++
	}
	return contentSize + extra, extra
}

func numBlocks(length, blockSize int) int {
	if length == 0 {
		return 0
	}
	return (length + blockSize - 1) / blockSize
}

// buildCommon writes list_byte_size, block_size, block_count, and the
// skip table, then the blocks, each stream-vbyte encoded. When delta is
// true an upper_bounds table is written between the skips and the block
// data, and each block is delta-coded, seeded from the previous block's
// last value.
func buildCommon(values []uint32, cfg Config, delta bool) []byte {
	n := numBlocks(len(values), cfg.BlockSize)

	blockBytes := make([][]byte, n)
	skips := make([]uint32, n)
	upperBounds := make([]uint32, n)
	offset := uint32(0)
	for k := 0; k < n; k++ {
		lo := k * cfg.BlockSize
		hi := lo + cfg.BlockSize
		if hi > len(values) {
			hi = len(values)
		}
		blk := values[lo:hi]
		var enc []byte
		if delta {
			seed := uint32(0)
			if k > 0 {
				seed = values[lo-1]
			}
			enc = coding.StreamDeltaEncode(nil, blk, seed)
			upperBounds[k] = blk[len(blk)-1]
		} else {
			enc = coding.StreamEncode(nil, blk)
		}
		blockBytes[k] = enc
		skips[k] = offset
		offset += uint32(len(enc))
	}

	var content []byte
	content = coding.Encode(content, []uint32{uint32(cfg.BlockSize), uint32(n)})
	content = coding.Encode(content, skips)
	if delta {
		content = coding.StreamDeltaEncode(content, upperBounds, 0)
	}
	for _, b := range blockBytes {
		content = append(content, b...)
	}

	size, extra := expandedSize(len(content))
	var head [coding.MaxVarintLen32]byte
	m := coding.PutUvarint(head[:], uint32(size))
	if m != extra {
		// Defensive: expandedSize guarantees this holds; if it doesn't,
		// something about the content size changed between the two
		// computations.
		panic("block: list_byte_size width mismatch")
	}

	out := make([]byte, 0, m+len(content))
	out = append(out, head[:m]...)
	out = append(out, content...)
	return out
}

// DocListWriter encodes delta (document-id) block lists.
type DocListWriter struct{ cfg Config }

// NewDocListWriter returns a writer using cfg.
func NewDocListWriter(cfg Config) *DocListWriter { return &DocListWriter{cfg} }

// Write encodes values, which must be strictly increasing, returning the
// full list bytes.
func (w *DocListWriter) Write(values []uint32) ([]byte, error) {
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return nil, ErrNotMonotonic
		}
	}
	return buildCommon(values, w.cfg, true), nil
}

// PayloadListWriter encodes plain (non-delta) block lists.
type PayloadListWriter struct{ cfg Config }

// NewPayloadListWriter returns a writer using cfg.
func NewPayloadListWriter(cfg Config) *PayloadListWriter { return &PayloadListWriter{cfg} }

// Write encodes values, returning the full list bytes.
func (w *PayloadListWriter) Write(values []uint32) []byte {
	return buildCommon(values, w.cfg, false)
}
