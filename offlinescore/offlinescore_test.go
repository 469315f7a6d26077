package offlinescore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elshize/irk/block"
	"github.com/elshize/irk/memview"
	"github.com/elshize/irk/score"
)

func TestRunQuantizedScoresFitBitWidth(t *testing.T) {
	docLens := []uint32{10, 20, 30, 40}
	terms := []TermPostings{
		{Docs: []uint32{0, 1, 2}, Freqs: []uint32{1, 2, 3}},
		{Docs: []uint32{1, 3}, Freqs: []uint32{5, 1}},
	}
	newScorer := func(df uint32) score.Scorer {
		return score.NewBM25(df, uint32(len(docLens)), 25, score.DefaultBM25Params())
	}

	res, err := Run(terms, newScorer, docLens, Config{Block: block.Config{BlockSize: 1024}, Bits: 8})
	require.NoError(t, err)
	assert.LessOrEqual(t, res.RealMin, 0.0)
	assert.GreaterOrEqual(t, res.RealMax, 0.0)

	list, err := block.Open(memview.NewOwned(res.Scores[:]), len(terms[0].Docs), false)
	require.NoError(t, err)
	values, err := block.DecodeAll(list)
	require.NoError(t, err)
	assert.Len(t, values, len(terms[0].Docs))
	for _, v := range values {
		assert.LessOrEqual(t, v, uint32(255))
	}
}
