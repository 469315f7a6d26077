// Package score implements the per-term scoring functions and the linear
// quantizer used to compact real-valued scores into fixed-width
// integers.
package score

import "math"

// Scorer computes a score from a term frequency and a document length.
// Implementations take their per-term constants (BM25's idf, QL's
// collection statistics) at construction time.
type Scorer interface {
	Score(tf uint32, docLen uint32) float64
}

// BM25Params configures a BM25 scorer. The zero value is not usable;
// use DefaultBM25Params.
type BM25Params struct {
	K1 float64
	B  float64
}

// DefaultBM25Params returns {K1: 1.2, B: 0.75}. This module picks 0.75
// over the 0.5 some BM25 implementations default to, since 0.75 is the
// conventionally documented value.
func DefaultBM25Params() BM25Params { return BM25Params{K1: 1.2, B: 0.75} }

// BM25 scores a posting given the term's document frequency, the
// collection size, and the average document length.
type BM25 struct {
	k1, b     float64
	idf       float64
	avgDocLen float64
}

// NewBM25 builds a BM25 scorer for a term with document frequency df in
// a collection of collectionSize documents with average document length
// avgDocLen.
func NewBM25(df, collectionSize uint32, avgDocLen float64, params BM25Params) *BM25 {
	numerator := float64(collectionSize) - float64(df) + 0.5
	denominator := float64(df) + 0.5
	idf := math.Log(numerator / denominator)
	return &BM25{k1: params.K1, b: params.B, idf: idf, avgDocLen: avgDocLen}
}

// Score returns idf * (k1+1) * tf / (tf + k1*(1 - b + b*dl/avgdl)).
func (s *BM25) Score(tf uint32, docLen uint32) float64 {
	dl := float64(docLen)
	denom := float64(tf) + s.k1*(1-s.b+s.b*dl/s.avgDocLen)
	return s.idf * (s.k1 + 1) * float64(tf) / denom
}

// QueryLikelihoodParams configures a Dirichlet-smoothed query-likelihood
// scorer.
type QueryLikelihoodParams struct {
	Mu float64
}

// DefaultQueryLikelihoodParams returns {Mu: 2500}.
func DefaultQueryLikelihoodParams() QueryLikelihoodParams {
	return QueryLikelihoodParams{Mu: 2500}
}

// QueryLikelihood scores a posting with Dirichlet smoothing against the
// collection's term statistics.
type QueryLikelihood struct {
	mu               float64
	collectionFreq   float64 // cf: term's total occurrences in the collection
	totalOccurrences float64 // Sigma cf over all terms
}

// NewQueryLikelihood builds a QL scorer for a term with collectionFreq
// total occurrences across a collection with totalOccurrences total term
// occurrences.
func NewQueryLikelihood(collectionFreq, totalOccurrences uint64, params QueryLikelihoodParams) *QueryLikelihood {
	return &QueryLikelihood{
		mu:               params.Mu,
		collectionFreq:   float64(collectionFreq),
		totalOccurrences: float64(totalOccurrences),
	}
}

// Score returns log((tf + mu*(cf/Sigma cf)) / (dl + mu)).
func (s *QueryLikelihood) Score(tf uint32, docLen uint32) float64 {
	background := s.mu * (s.collectionFreq / s.totalOccurrences)
	return math.Log((float64(tf) + background) / (float64(docLen) + s.mu))
}

// Count returns the raw term frequency, unscored.
type Count struct{}

// Score returns tf.
func (Count) Score(tf uint32, _ uint32) float64 { return float64(tf) }
