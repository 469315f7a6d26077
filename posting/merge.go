package posting

import "container/heap"

// mergeEntry tracks one contributing list's current posting inside the
// merge heap.
type mergeEntry struct {
	it   *Iterator
	post Posting
}

type mergeHeap []*mergeEntry

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Less(i, j int) bool  { return h[i].post.Doc < h[j].post.Doc }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(*mergeEntry)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Merger produces the document-ordered union of several posting lists.
// Lists with duplicate document ids are not expected (each input list is
// assumed already sorted and duplicate-free); when two lists share a
// document id both postings are surfaced, and their relative order is
// not defined.
type Merger struct {
	h mergeHeap
}

// NewMerger returns a Merger over lists, positioned at the first posting
// of each non-empty one.
func NewMerger(lists []*List) (*Merger, error) {
	m := &Merger{}
	for _, l := range lists {
		it := NewIterator(l)
		if it.AtEnd() {
			continue
		}
		p, err := it.Posting()
		if err != nil {
			return nil, err
		}
		m.h = append(m.h, &mergeEntry{it: it, post: p})
	}
	heap.Init(&m.h)
	return m, nil
}

// AtEnd reports whether every contributing list has been exhausted.
func (m *Merger) AtEnd() bool { return len(m.h) == 0 }

// Next returns the next posting in document order and advances past it.
func (m *Merger) Next() (Posting, error) {
	e := m.h[0]
	p := e.post
	e.it.Next()
	if e.it.AtEnd() {
		heap.Pop(&m.h)
	} else {
		next, err := e.it.Posting()
		if err != nil {
			return Posting{}, err
		}
		e.post = next
		heap.Fix(&m.h, 0)
	}
	return p, nil
}
