// Package offlinescore implements the offline scoring pass (C11): given
// a built index, it computes a quantized impact score for every posting
// of a given scorer, plus per-term max/mean/variance statistics, and
// writes them as new blocked score streams alongside the index.
//
// The pass is parallel over terms: a first reduction finds the global
// (min, max) raw score so a single LinearQuantizer can be shared by
// every term; a second pass computes each term's encoded bytes
// concurrently into a pre-allocated per-term slot, then a single
// sequential step concatenates those slots in term order and builds the
// offset table - the two-phase pattern needed so parallel workers never
// contend over where their output lands.
package offlinescore

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/elshize/irk/block"
	"github.com/elshize/irk/coding"
	"github.com/elshize/irk/score"
)

// TermPostings is one term's raw input to the scoring pass: its document
// ids and term frequencies, already decoded.
type TermPostings struct {
	Docs  []uint32
	Freqs []uint32
}

// Config configures the pass.
type Config struct {
	Block block.Config
	// Bits is the quantized score width; the integer range is always
	// [0, 2^Bits - 1] (a non-zero lower bound is rejected by
	// score.NewLinearQuantizer).
	Bits int
}

// Result is the pass's output for one scorer run.
type Result struct {
	// Scores is the concatenation of every term's quantized score block
	// list, in term order.
	Scores []byte
	// Offsets holds, for each term, the byte offset of its score list
	// within Scores, vbyte-encoded.
	Offsets []byte
	// MaxScore, ExpScore, and VarScore are per-term statistics
	// (vbyte-delta streams, ExpScore/VarScore as quantized integers of
	// the mean and variance scaled the same way as Scores).
	MaxScore []byte
	ExpScore []byte
	VarScore []byte
	// RealMin and RealMax are the global raw-score bounds the quantizer
	// was built from.
	RealMin, RealMax float64
}

// Run scores every term's postings in terms, using newScorer(df) to
// build a per-term Scorer and docLens to look up document lengths. It
// performs the two-phase (min-max, then quantized write) parallel
// reduction described above.
func Run(terms []TermPostings, newScorer func(df uint32) score.Scorer, docLens []uint32, cfg Config) (*Result, error) {
	n := len(terms)
	raw := make([][]float64, n)

	realMin, realMax, err := reduceMinMax(terms, newScorer, docLens, raw)
	if err != nil {
		return nil, err
	}

	intMax := int64(1)<<uint(cfg.Bits) - 1
	q, err := score.NewLinearQuantizer(score.IntRange{Min: 0, Max: intMax}, score.RealRange{Min: realMin, Max: realMax})
	if err != nil {
		return nil, err
	}

	quantized := make([][]uint32, n)
	maxScores := make([]uint32, n)
	expScores := make([]int64, n)
	varScores := make([]int64, n)
	encoded := make([][]byte, n)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	writer := block.NewPayloadListWriter(cfg.Block)
	for i := range terms {
		i := i
		g.Go(func() error {
			qs := make([]uint32, len(raw[i]))
			var sum, sumSq float64
			var maxQ int64
			for j, v := range raw[i] {
				iv := q.Quantize(v)
				qs[j] = uint32(iv)
				sum += float64(iv)
				sumSq += float64(iv) * float64(iv)
				if iv > maxQ {
					maxQ = iv
				}
			}
			quantized[i] = qs
			maxScores[i] = uint32(maxQ)
			if len(qs) > 0 {
				mean := sum / float64(len(qs))
				variance := sumSq/float64(len(qs)) - mean*mean
				expScores[i] = int64(math.Round(mean))
				varScores[i] = int64(math.Round(variance))
			}
			encoded[i] = writer.Write(qs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var scoresOut, offsetsOut []byte
	var off uint32
	for i := range terms {
		offsetsOut = coding.Encode(offsetsOut, []uint32{off})
		scoresOut = append(scoresOut, encoded[i]...)
		off += uint32(len(encoded[i]))
	}

	return &Result{
		Scores:   scoresOut,
		Offsets:  offsetsOut,
		MaxScore: coding.DeltaEncode(nil, maxScores, 0),
		ExpScore: coding.DeltaEncode(nil, signedToUnsigned(expScores), 0),
		VarScore: coding.DeltaEncode(nil, signedToUnsigned(varScores), 0),
		RealMin:  realMin,
		RealMax:  realMax,
	}, nil
}

// reduceMinMax computes the per-posting raw scores into raw[i] for every
// term (in parallel) and folds them into a single (min, max), clamped so
// min <= 0 and max >= 0 per the quantizer's domain requirement.
func reduceMinMax(terms []TermPostings, newScorer func(df uint32) score.Scorer, docLens []uint32, raw [][]float64) (float64, float64, error) {
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	mins := make([]float64, len(terms))
	maxs := make([]float64, len(terms))
	for i := range terms {
		i := i
		g.Go(func() error {
			tp := terms[i]
			s := newScorer(uint32(len(tp.Docs)))
			vals := make([]float64, len(tp.Docs))
			lo, hi := math.Inf(1), math.Inf(-1)
			for j, d := range tp.Docs {
				v := s.Score(tp.Freqs[j], docLens[d])
				vals[j] = v
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			raw[i] = vals
			mins[i] = lo
			maxs[i] = hi
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	min, max := 0.0, 0.0
	for i := range terms {
		if len(terms[i].Docs) == 0 {
			continue
		}
		if mins[i] < min {
			min = mins[i]
		}
		if maxs[i] > max {
			max = maxs[i]
		}
	}
	return min, max, nil
}

func signedToUnsigned(vs []int64) []uint32 {
	out := make([]uint32, len(vs))
	for i, v := range vs {
		if v < 0 {
			v = 0
		}
		out[i] = uint32(v)
	}
	return out
}
