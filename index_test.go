package irk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleIndex(t *testing.T) {
	ix := NewSingle("/data/ix")
	single, ok := ix.AsSingle()
	require.True(t, ok)
	assert.Equal(t, "/data/ix", single.Dir)
	assert.False(t, ix.IsSharded())
	assert.Equal(t, "/data/ix/terms.txt", single.File(TermsFile))
}

func TestShardedIndex(t *testing.T) {
	ix := NewSharded([]string{"/data/a", "/data/b"})
	assert.True(t, ix.IsSharded())
	shards, ok := ix.Shards()
	require.True(t, ok)
	assert.Len(t, shards, 2)
	_, ok = ix.AsSingle()
	assert.False(t, ok)
}

func TestScoreFiles(t *testing.T) {
	scores, offsets, maxscore, expscore, varscore := ScoreFiles("bm25-8")
	assert.Equal(t, "bm25-8.scores", scores)
	assert.Equal(t, "bm25-8.offsets", offsets)
	assert.Equal(t, "bm25-8.maxscore", maxscore)
	assert.Equal(t, "bm25-8.expscore", expscore)
	assert.Equal(t, "bm25-8.varscore", varscore)
}
