// Package posting zips a document-id block list and a payload block list
// of equal length into a single posting stream, and provides a
// document-ordered merge across several lists.
package posting

import "github.com/elshize/irk/block"

// Posting is one (document, payload) pair. Payload is either a raw term
// frequency or a quantized score, depending on which list produced it.
type Posting struct {
	Doc     uint32
	Payload uint32
}

// List pairs a document list (delta) and a payload list (plain) of equal
// length.
type List struct {
	Docs     *block.List
	Payloads *block.List
}

// Len returns the number of postings.
func (l *List) Len() int { return l.Docs.Len() }

// Iterator advances a document cursor and a payload cursor in lockstep.
type Iterator struct {
	docs     *block.Iterator
	payloads *block.Iterator
}

// NewIterator returns an iterator positioned at the start of l.
func NewIterator(l *List) *Iterator {
	return &Iterator{
		docs:     block.NewIterator(l.Docs),
		payloads: block.NewIterator(l.Payloads),
	}
}

// AtEnd reports whether the iterator has been advanced past the last
// posting.
func (it *Iterator) AtEnd() bool { return it.docs.AtEnd() }

// Posting decodes and returns the current posting.
func (it *Iterator) Posting() (Posting, error) {
	d, err := it.docs.Value()
	if err != nil {
		return Posting{}, err
	}
	p, err := it.payloads.Value()
	if err != nil {
		return Posting{}, err
	}
	return Posting{Doc: d, Payload: p}, nil
}

// Doc returns just the current document id, without decoding the
// payload block.
func (it *Iterator) Doc() (uint32, error) { return it.docs.Value() }

// Next advances both cursors by one posting.
func (it *Iterator) Next() {
	it.docs.Next()
	it.payloads.Next()
}

// NextGE advances the document cursor to the first document >= d, then
// aligns the payload cursor to the same (block, offset), since both
// lists share a block size.
func (it *Iterator) NextGE(d uint32) error {
	if err := it.docs.NextGE(d); err != nil {
		return err
	}
	it.payloads.AlignTo(it.docs.Pos())
	return nil
}

// Lookup returns the payload paired with the first document >= d, and
// whether such a document exists.
func Lookup(l *List, d uint32) (Posting, bool, error) {
	it := NewIterator(l)
	if err := it.NextGE(d); err != nil {
		return Posting{}, false, err
	}
	if it.AtEnd() {
		return Posting{}, false, nil
	}
	p, err := it.Posting()
	if err != nil {
		return Posting{}, false, err
	}
	return p, true, nil
}
