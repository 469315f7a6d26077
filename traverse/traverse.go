// Package traverse implements the two query-execution strategies:
// term-at-a-time (TAAT, full accumulator array plus a final top-k scan)
// and document-at-a-time (DAAT, a frontier cursor advancing across
// lists). Both accept either pre-scored payloads or on-the-fly scoring.
package traverse

import "github.com/elshize/irk/topk"

// PostingSource is the minimal forward cursor TAAT/DAAT need: the
// current document id and its contribution to that document's score.
// ListSource adapts a posting.List (pre-scored or scored on the fly) to
// this interface; tests may supply simpler fakes directly.
type PostingSource interface {
	AtEnd() bool
	Doc() uint32
	Score() float64
	Next()
}

// ErrSource is implemented by sources that can fail while decoding; both
// TAAT and DAAT check it after touching a source.
type ErrSource interface {
	Err() error
}

func sourceErr(s PostingSource) error {
	if es, ok := s.(ErrSource); ok {
		return es.Err()
	}
	return nil
}

// TAAT allocates an accumulator of length n (the collection size),
// accumulates every source's contribution into acc[doc], and returns the
// top k documents by total score.
func TAAT(sources []PostingSource, n int, k int) ([]topk.Result, error) {
	acc := make([]float64, n)
	touched := make([]bool, n)
	for _, s := range sources {
		for !s.AtEnd() {
			d := s.Doc()
			acc[d] += s.Score()
			touched[d] = true
			s.Next()
		}
		if err := sourceErr(s); err != nil {
			return nil, err
		}
	}

	agg := topk.New(k)
	for d, was := range touched {
		if was {
			agg.Offer(uint32(d), acc[d])
		}
	}
	return agg.Sorted(), nil
}

// DAAT advances a frontier across sources: at each step it finds the
// minimum current document id among non-exhausted sources, sums the
// contribution of every source currently at that document, offers the
// result to the top-k aggregator, and advances those sources.
func DAAT(sources []PostingSource, k int) ([]topk.Result, error) {
	agg := topk.New(k)
	for {
		frontier, ok := minDoc(sources)
		if !ok {
			break
		}
		var sum float64
		for _, s := range sources {
			if s.AtEnd() || s.Doc() != frontier {
				continue
			}
			sum += s.Score()
			s.Next()
			if err := sourceErr(s); err != nil {
				return nil, err
			}
		}
		agg.Offer(frontier, sum)
	}
	return agg.Sorted(), nil
}

func minDoc(sources []PostingSource) (uint32, bool) {
	var min uint32
	found := false
	for _, s := range sources {
		if s.AtEnd() {
			continue
		}
		d := s.Doc()
		if !found || d < min {
			min = d
			found = true
		}
	}
	return min, found
}
