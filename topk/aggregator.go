// Package topk implements a bounded top-k aggregator: a min-heap of
// capacity k keyed by score, ties broken by document id (smaller id
// wins).
package topk

import "container/heap"

// Result is one aggregated (document, score) pair.
type Result struct {
	Doc   uint32
	Score float64
}

// less reports whether a ranks below b in the heap's ordering: lower
// score is worse, and on a tie the larger document id is worse (so the
// smaller id survives when a tie forces an eviction).
func less(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Doc > b.Doc
}

type resultHeap []Result

func (h resultHeap) Len() int            { return len(h) }
func (h resultHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h resultHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x interface{}) { *h = append(*h, x.(Result)) }
func (h *resultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	r := old[n-1]
	*h = old[:n-1]
	return r
}

// Aggregator keeps the k best (highest-scoring) results seen via Offer.
type Aggregator struct {
	k int
	h resultHeap
}

// New returns an Aggregator with capacity k.
func New(k int) *Aggregator {
	return &Aggregator{k: k}
}

// Offer considers (doc, score) for inclusion in the top-k. If the heap
// has fewer than k entries it is always kept; otherwise it replaces the
// current worst entry only if it outranks it.
func (a *Aggregator) Offer(doc uint32, s float64) {
	r := Result{Doc: doc, Score: s}
	if len(a.h) < a.k {
		heap.Push(&a.h, r)
		return
	}
	if less(a.h[0], r) {
		a.h[0] = r
		heap.Fix(&a.h, 0)
	}
}

// Len reports the number of results currently held.
func (a *Aggregator) Len() int { return len(a.h) }

// Threshold returns the score of the current worst (kth-best so far)
// result, or 0 if fewer than k results have been offered.
func (a *Aggregator) Threshold() float64 {
	if len(a.h) < a.k {
		return 0
	}
	return a.h[0].Score
}

// Sorted drains the aggregator, returning its results ordered by score
// descending, ties broken by document id ascending. The Aggregator is
// empty after this call.
func (a *Aggregator) Sorted() []Result {
	n := len(a.h)
	out := make([]Result, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = heap.Pop(&a.h).(Result)
	}
	return out
}
