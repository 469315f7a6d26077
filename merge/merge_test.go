package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elshize/irk"
	"github.com/elshize/irk/assemble"
	"github.com/elshize/irk/block"
	"github.com/elshize/irk/memview"
	"github.com/elshize/irk/posting"
)

func openList(t *testing.T, dir, idFile, offFile, countFile, countOffFile string, term int, df int) *posting.List {
	t.Helper()
	idData := mustRead(t, dir+"/"+idFile)
	offData := mustRead(t, dir+"/"+offFile)
	countData := mustRead(t, dir+"/"+countFile)
	countOffData := mustRead(t, dir+"/"+countOffFile)

	offsets := mustDecodeOffsets(t, offData)
	countOffsets := mustDecodeOffsets(t, countOffData)

	start := offsets[term]
	end := uint32(len(idData))
	if term+1 < len(offsets) {
		end = offsets[term+1]
	}
	cstart := countOffsets[term]
	cend := uint32(len(countData))
	if term+1 < len(countOffsets) {
		cend = countOffsets[term+1]
	}

	docList, err := block.Open(memview.NewOwned(idData[start:end]), df, true)
	require.NoError(t, err)
	countList, err := block.Open(memview.NewOwned(countData[cstart:cend]), df, false)
	require.NoError(t, err)
	return &posting.List{Docs: docList, Payloads: countList}
}

func TestBuildAndMergeEndToEnd(t *testing.T) {
	input := "Doc1\ta b a\nDoc2\tc b b\nDoc3\tz c a\n"
	workDir := t.TempDir()
	outDir := t.TempDir()

	builder := assemble.New(assemble.Config{BatchSize: 2, Block: block.Config{BlockSize: 1024}}, nil)
	batchDirs, err := builder.Assemble(strings.NewReader(input), workDir)
	require.NoError(t, err)

	m, err := Open(Config{Block: block.Config{BlockSize: 1024}}, batchDirs)
	require.NoError(t, err)
	require.NoError(t, m.MergeTitles(outDir))
	require.NoError(t, m.MergeTerms(outDir))
	require.NoError(t, m.MergeSizes(outDir))

	assert.EqualValues(t, 3, m.CollectionSize())

	props, err := irk.ReadProperties(outDir)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), props.CollectionSize)
	assert.Equal(t, uint64(9), props.TotalOccurrences) // 3+3+3 term occurrences per doc
	assert.Equal(t, 3.0, props.AvgDocumentSize)
	assert.Equal(t, uint32(3), props.MaxDocumentSize)

	terms := mustReadLines(t, outDir+"/terms.txt")
	assert.Equal(t, []string{"a", "b", "c", "z"}, terms)

	expectDF := map[string]int{"a": 2, "b": 2, "c": 2, "z": 1}
	for i, term := range terms {
		df := expectDF[term]
		list := openList(t, outDir, "doc.id", "doc.idoff", "doc.count", "doc.countoff", i, df)
		docs, freqs := drainPostings(t, list)
		switch term {
		case "a":
			assert.Equal(t, []uint32{0, 2}, docs)
			assert.Equal(t, []uint32{2, 1}, freqs)
		case "b":
			assert.Equal(t, []uint32{0, 1}, docs)
			assert.Equal(t, []uint32{1, 2}, freqs)
		case "c":
			assert.Equal(t, []uint32{1, 2}, docs)
			assert.Equal(t, []uint32{1, 1}, freqs)
		case "z":
			assert.Equal(t, []uint32{2}, docs)
			assert.Equal(t, []uint32{1}, freqs)
		}
	}

	titles := mustReadLines(t, outDir+"/titles.txt")
	assert.Equal(t, []string{"Doc1", "Doc2", "Doc3"}, titles)
}

func TestMergeRebase(t *testing.T) {
	// Two sub-indexes of sizes 3 and 3 containing term "a" with local
	// posting lists [(0,2),(2,1)] and [(1,3)].
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeSyntheticBatch(t, dirA, 3, []uint32{0, 2}, []uint32{2, 1})
	writeSyntheticBatch(t, dirB, 3, []uint32{1}, []uint32{3})

	outDir := t.TempDir()
	m, err := Open(Config{Block: block.Config{BlockSize: 1024}}, []string{dirA, dirB})
	require.NoError(t, err)
	require.NoError(t, m.MergeTerms(outDir))

	list := openList(t, outDir, "doc.id", "doc.idoff", "doc.count", "doc.countoff", 0, 3)
	docs, freqs := drainPostings(t, list)
	assert.Equal(t, []uint32{0, 2, 4}, docs)
	assert.Equal(t, []uint32{2, 1, 3}, freqs)
}

func drainPostings(t *testing.T, l *posting.List) ([]uint32, []uint32) {
	t.Helper()
	it := posting.NewIterator(l)
	var docs, freqs []uint32
	for !it.AtEnd() {
		p, err := it.Posting()
		require.NoError(t, err)
		docs = append(docs, p.Doc)
		freqs = append(freqs, p.Payload)
		it.Next()
	}
	return docs, freqs
}
