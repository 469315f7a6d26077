package block

import (
	"github.com/elshize/irk/coding"
	"github.com/elshize/irk/memview"
)

// List is a parsed, not-yet-fully-decoded block list. Blocks are decoded
// lazily and cached per List instance.
type List struct {
	delta       bool
	length      int
	blockSize   int
	numBlocks   int
	skips       []uint32
	upperBounds []uint32 // delta lists only
	data        memview.View

	decoded [][]uint32 // per-block cache, nil until first touch
}

// Open parses the header of an encoded list backed by data. length is the
// number of postings in the list (tracked externally, e.g. via a
// document-frequency table) and determines how many values the final
// block holds.
func Open(data memview.View, length int, delta bool) (*List, error) {
	buf := data.Bytes()
	listByteSize, extra, err := coding.Uvarint(buf)
	if err != nil {
		return nil, malformed(err)
	}
	if int(listByteSize) > len(buf) {
		return nil, malformed(nil)
	}
	pos := extra

	blockSize, n1, err := coding.Uvarint(buf[pos:])
	if err != nil {
		return nil, malformed(err)
	}
	pos += n1

	count, n2, err := coding.Uvarint(buf[pos:])
	if err != nil {
		return nil, malformed(err)
	}
	pos += n2
	numBlk := int(count)

	var skips []uint32
	if numBlk > 0 {
		skips, n2, err = coding.Decode(buf[pos:], numBlk)
		if err != nil {
			return nil, malformed(err)
		}
		pos += n2
	}

	var upperBounds []uint32
	if delta && numBlk > 0 {
		upperBounds, n2, err = coding.StreamDeltaDecode(buf[pos:], numBlk, 0)
		if err != nil {
			return nil, malformed(err)
		}
		pos += n2
		for i := 1; i < len(upperBounds); i++ {
			if upperBounds[i] < upperBounds[i-1] {
				return nil, malformed(nil)
			}
		}
	}

	if length > 0 && numBlocks(length, int(blockSize)) != numBlk {
		return nil, malformed(nil)
	}

	dataStart := pos
	dataEnd := int(listByteSize)
	l := &List{
		delta:       delta,
		length:      length,
		blockSize:   int(blockSize),
		numBlocks:   numBlk,
		skips:       skips,
		upperBounds: upperBounds,
		data:        data.Slice(dataStart, dataEnd),
		decoded:     make([][]uint32, numBlk),
	}
	return l, nil
}

func malformed(cause error) error {
	return &wrapErr{cause}
}

// wrapErr is a tiny indirection so this package does not import the root
// irk package (which would create an import cycle); callers that care
// about the structured taxonomy wrap it again with irk.Malformed at the
// index layer.
type wrapErr struct{ cause error }

func (e *wrapErr) Error() string {
	if e.cause != nil {
		return "block: malformed list: " + e.cause.Error()
	}
	return "block: malformed list"
}

func (e *wrapErr) Unwrap() error { return e.cause }

// DecodeAll decodes and returns every value in l, in order. It is meant
// for callers (the merger, tests) that need the whole list materialized
// rather than iterating it block by block.
func DecodeAll(l *List) ([]uint32, error) {
	out := make([]uint32, 0, l.length)
	it := NewIterator(l)
	for !it.AtEnd() {
		v, err := it.Value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		it.Next()
	}
	return out, nil
}

// Len reports the number of postings in the list.
func (l *List) Len() int { return l.length }

// BlockSize reports the configured block size.
func (l *List) BlockSize() int { return l.blockSize }

// NumBlocks reports the number of blocks.
func (l *List) NumBlocks() int { return l.numBlocks }

// UpperBound returns the last (maximum) value of block k. Only valid for
// delta lists.
func (l *List) UpperBound(k int) uint32 { return l.upperBounds[k] }

func (l *List) blockLen(k int) int {
	if k < l.numBlocks-1 {
		return l.blockSize
	}
	return l.length - l.blockSize*(l.numBlocks-1)
}

func (l *List) blockBytes(k int) []byte {
	start := int(l.skips[k])
	var end int
	if k+1 < l.numBlocks {
		end = int(l.skips[k+1])
	} else {
		end = l.data.Size()
	}
	return l.data.Bytes()[start:end]
}

// decode returns the decoded values of block k, populating the cache on
// first access.
func (l *List) decode(k int) ([]uint32, error) {
	if l.decoded[k] != nil {
		return l.decoded[k], nil
	}
	n := l.blockLen(k)
	raw := l.blockBytes(k)
	var values []uint32
	var err error
	if l.delta {
		seed := uint32(0)
		if k > 0 {
			seed = l.upperBounds[k-1]
		}
		values, _, err = coding.StreamDeltaDecode(raw, n, seed)
	} else {
		values, _, err = coding.StreamDecode(raw, n)
	}
	if err != nil {
		return nil, malformed(err)
	}
	l.decoded[k] = values
	return values, nil
}
