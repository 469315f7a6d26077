package traverse

import (
	"github.com/elshize/irk/posting"
	"github.com/elshize/irk/score"
)

// ListSource adapts a posting.List to PostingSource. When scorer is nil
// the list is assumed pre-scored and its payload is used as the score
// directly; otherwise the payload is treated as a raw term frequency and
// scored on the fly against docLens[doc].
type ListSource struct {
	it      *posting.Iterator
	scorer  score.Scorer
	docLens []uint32
	err     error
}

// NewListSource wraps list for traversal.
func NewListSource(list *posting.List, scorer score.Scorer, docLens []uint32) *ListSource {
	return &ListSource{it: posting.NewIterator(list), scorer: scorer, docLens: docLens}
}

// AtEnd reports whether every posting has been consumed.
func (s *ListSource) AtEnd() bool { return s.it.AtEnd() }

// Next advances to the next posting.
func (s *ListSource) Next() { s.it.Next() }

// Doc returns the current document id.
func (s *ListSource) Doc() uint32 {
	d, err := s.it.Doc()
	if err != nil {
		s.err = err
	}
	return d
}

// Score returns the current posting's contribution: its payload
// verbatim if pre-scored, or scorer.Score(payload, docLen) otherwise.
func (s *ListSource) Score() float64 {
	p, err := s.it.Posting()
	if err != nil {
		s.err = err
		return 0
	}
	if s.scorer == nil {
		return float64(p.Payload)
	}
	return s.scorer.Score(p.Payload, s.docLens[p.Doc])
}

// Err returns the first decode error encountered, if any.
func (s *ListSource) Err() error { return s.err }
