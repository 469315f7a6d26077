package block

import "sort"

// Position identifies a location within a List: the block index and the
// offset of a value within that (decoded) block.
type Position struct {
	Block  int
	Offset int
}

// End returns the end position for a list of the given length and block
// size: (length/B, length mod B).
func End(length, blockSize int) Position {
	return Position{Block: length / blockSize, Offset: length % blockSize}
}

// Iterator is a forward iterator over a List with an additional
// random-jump primitive, NextGE, for delta lists. Decoded blocks are
// cached on the underlying List, so repeated iterators over the same
// List share the cache.
type Iterator struct {
	list *List
	pos  Position
	end  Position
}

// NewIterator returns an iterator positioned at the start of l.
func NewIterator(l *List) *Iterator {
	return &Iterator{list: l, pos: Position{}, end: End(l.length, l.blockSize)}
}

// Pos returns the iterator's current position.
func (it *Iterator) Pos() Position { return it.pos }

// AtEnd reports whether the iterator has been advanced past the last
// value.
func (it *Iterator) AtEnd() bool { return it.pos == it.end }

// Value decodes (if needed) the current block and returns the value at
// the iterator's position. It must not be called when AtEnd is true.
func (it *Iterator) Value() (uint32, error) {
	values, err := it.list.decode(it.pos.Block)
	if err != nil {
		return 0, err
	}
	return values[it.pos.Offset], nil
}

// Next advances the iterator by one position.
func (it *Iterator) Next() {
	it.pos.Offset++
	if it.pos.Offset == it.list.blockSize {
		it.pos.Block++
		it.pos.Offset = 0
	}
}

// AlignTo forces the iterator's position directly, without touching the
// upper-bound table. It is used to keep a payload iterator in lockstep
// with a document iterator that shares the same block size.
func (it *Iterator) AlignTo(pos Position) { it.pos = pos }

// NextGE advances the iterator to the first value >= v, or to the end
// position if none exists. It is only meaningful for delta-encoded (doc
// id) lists, since only those carry an upper-bound skip table.
func (it *Iterator) NextGE(v uint32) error {
	if it.AtEnd() {
		return nil
	}
	// Binary-search upper_bounds[block..] for the first block whose
	// upper bound is >= v.
	bounds := it.list.upperBounds[it.pos.Block:]
	idx := sort.Search(len(bounds), func(i int) bool {
		return bounds[i] >= v
	})
	if idx == len(bounds) {
		it.pos = it.end
		return nil
	}
	block := it.pos.Block + idx
	offset := 0
	if block == it.pos.Block {
		offset = it.pos.Offset
	}

	values, err := it.list.decode(block)
	if err != nil {
		return err
	}
	offset += sort.Search(len(values)-offset, func(i int) bool {
		return values[offset+i] >= v
	})
	it.pos = Position{Block: block, Offset: offset}
	return nil
}
