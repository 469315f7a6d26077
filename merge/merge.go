// Package merge K-way merges the per-batch sub-indexes produced by
// package assemble into a single global index: a min-heap on the current
// term string of each batch's cursor, with document ids rebased by a
// per-batch shift equal to the sum of the sizes of all preceding
// batches.
package merge

import (
	"bufio"
	"container/heap"
	"os"
	"path/filepath"
	"sort"

	"github.com/elshize/irk"
	"github.com/elshize/irk/block"
	"github.com/elshize/irk/coding"
	"github.com/elshize/irk/memview"
)

// Config configures the merge.
type Config struct {
	Block block.Config
	// SkipUniqueSingletons drops terms that occur in exactly one
	// document across the whole collection (df == 1 contributed by a
	// single batch) from the merged vocabulary. Off by default.
	SkipUniqueSingletons bool
}

type batch struct {
	dir          string
	shift        uint32
	size         uint32
	terms        []string
	docfreq      []uint32
	idOffsets    []uint32
	countOffsets []uint32
	idData       []byte
	countData    []byte
	sizesData    []byte
	idx          int
}

// sizes decodes this batch's per-document lengths (doc.sizes).
func (b *batch) sizes() ([]uint32, error) {
	list, err := block.Open(memview.NewBorrowed(b.sizesData), int(b.size), false)
	if err != nil {
		return nil, err
	}
	return block.DecodeAll(list)
}

func (b *batch) done() bool { return b.idx >= len(b.terms) }

func (b *batch) currentPosting() ([]uint32, []uint32, error) {
	i := b.idx
	start := b.idOffsets[i]
	end := uint32(len(b.idData))
	if i+1 < len(b.idOffsets) {
		end = b.idOffsets[i+1]
	}
	length := int(b.docfreq[i])

	docList, err := block.Open(memview.NewBorrowed(b.idData[start:end]), length, true)
	if err != nil {
		return nil, nil, err
	}
	docs, err := block.DecodeAll(docList)
	if err != nil {
		return nil, nil, err
	}

	cstart := b.countOffsets[i]
	cend := uint32(len(b.countData))
	if i+1 < len(b.countOffsets) {
		cend = b.countOffsets[i+1]
	}
	countList, err := block.Open(memview.NewBorrowed(b.countData[cstart:cend]), length, false)
	if err != nil {
		return nil, nil, err
	}
	freqs, err := block.DecodeAll(countList)
	if err != nil {
		return nil, nil, err
	}
	return docs, freqs, nil
}

func loadBatch(dir string) (*batch, error) {
	terms, err := readLines(filepath.Join(dir, "terms.txt"))
	if err != nil {
		return nil, err
	}
	titles, err := readLines(filepath.Join(dir, "titles.txt"))
	if err != nil {
		return nil, err
	}
	docfreqRaw, err := os.ReadFile(filepath.Join(dir, "terms.docfreq"))
	if err != nil {
		return nil, err
	}
	docfreq, _, err := coding.DeltaDecode(docfreqRaw, len(terms), 0)
	if err != nil {
		return nil, err
	}
	idOffRaw, err := os.ReadFile(filepath.Join(dir, "doc.idoff"))
	if err != nil {
		return nil, err
	}
	idOffsets, _, err := coding.Decode(idOffRaw, len(terms))
	if err != nil {
		return nil, err
	}
	countOffRaw, err := os.ReadFile(filepath.Join(dir, "doc.countoff"))
	if err != nil {
		return nil, err
	}
	countOffsets, _, err := coding.Decode(countOffRaw, len(terms))
	if err != nil {
		return nil, err
	}
	idData, err := os.ReadFile(filepath.Join(dir, "doc.id"))
	if err != nil {
		return nil, err
	}
	countData, err := os.ReadFile(filepath.Join(dir, "doc.count"))
	if err != nil {
		return nil, err
	}
	sizesData, err := os.ReadFile(filepath.Join(dir, irk.DocSizesFile))
	if err != nil {
		return nil, err
	}
	return &batch{
		dir:          dir,
		size:         uint32(len(titles)),
		terms:        terms,
		docfreq:      docfreq,
		idOffsets:    idOffsets,
		countOffsets: countOffsets,
		idData:       idData,
		countData:    countData,
		sizesData:    sizesData,
	}, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// heapEntry is one batch's current term, used to drive the K-way merge.
type heapEntry struct {
	term  string
	batch int
}

type entryHeap []heapEntry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].term < h[j].term }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Merger combines the batch directories produced by package assemble
// into a single index directory.
type Merger struct {
	cfg     Config
	batches []*batch
}

// Open loads every batch directory's metadata (terms, offsets, document
// frequencies) and computes the per-batch document-id shift.
func Open(cfg Config, batchDirs []string) (*Merger, error) {
	m := &Merger{cfg: cfg}
	var shift uint32
	for _, dir := range batchDirs {
		b, err := loadBatch(dir)
		if err != nil {
			return nil, err
		}
		b.shift = shift
		shift += b.size
		m.batches = append(m.batches, b)
	}
	return m, nil
}

// CollectionSize returns the total number of documents across all
// batches.
func (m *Merger) CollectionSize() uint32 {
	var n uint32
	for _, b := range m.batches {
		n += b.size
	}
	return n
}

// MergeTitles concatenates every batch's titles, in batch order, into
// outDir/titles.txt.
func (m *Merger) MergeTitles(outDir string) error {
	f, err := os.Create(filepath.Join(outDir, "titles.txt"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, b := range m.batches {
		lines, err := readLines(filepath.Join(b.dir, "titles.txt"))
		if err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := w.WriteString(l); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// MergeSizes concatenates every batch's per-document lengths (doc.sizes)
// in batch order into outDir/doc.sizes, and writes outDir/properties.json
// with the document count, total occurrences (Sigma F, the sum of every
// document's length), average and maximum document length, and the
// configured block size - combining what assemble.Builder tracked and
// wrote per batch.
func (m *Merger) MergeSizes(outDir string) error {
	var merged []uint32
	for _, b := range m.batches {
		sizes, err := b.sizes()
		if err != nil {
			return err
		}
		merged = append(merged, sizes...)
	}

	writer := block.NewPayloadListWriter(m.cfg.Block)
	if err := os.WriteFile(filepath.Join(outDir, irk.DocSizesFile), writer.Write(merged), 0o644); err != nil {
		return err
	}

	var totalOccurrences uint64
	var maxDocSize uint32
	for _, l := range merged {
		totalOccurrences += uint64(l)
		if l > maxDocSize {
			maxDocSize = l
		}
	}
	props := irk.Properties{
		CollectionSize:   uint32(len(merged)),
		TotalOccurrences: totalOccurrences,
		BlockSize:        m.cfg.Block.BlockSize,
		AvgDocumentSize:  float64(totalOccurrences) / float64(len(merged)),
		MaxDocumentSize:  maxDocSize,
	}
	return irk.WriteProperties(outDir, props)
}

// MergeTerms runs the K-way term merge, rebasing document ids by each
// contributing batch's shift, and writes the merged terms.txt,
// terms.docfreq, doc.id/.idoff, doc.count/.countoff into outDir.
func (m *Merger) MergeTerms(outDir string) error {
	var h entryHeap
	for i, b := range m.batches {
		if !b.done() {
			heap.Push(&h, heapEntry{term: b.terms[0], batch: i})
		}
	}

	docWriter := block.NewDocListWriter(m.cfg.Block)
	countWriter := block.NewPayloadListWriter(m.cfg.Block)

	var outTerms []string
	var outDocfreq []uint32
	var idBytes, idOffsets []byte
	var countBytes, countOffsets []byte
	var idOff, countOff uint32

	for h.Len() > 0 {
		term := h[0].term
		var contributors []int
		for h.Len() > 0 && h[0].term == term {
			e := heap.Pop(&h).(heapEntry)
			contributors = append(contributors, e.batch)
		}
		sort.Slice(contributors, func(i, j int) bool {
			return m.batches[contributors[i]].shift < m.batches[contributors[j]].shift
		})

		var mergedDocs, mergedFreqs []uint32
		for _, bi := range contributors {
			b := m.batches[bi]
			docs, freqs, err := b.currentPosting()
			if err != nil {
				return err
			}
			for i := range docs {
				docs[i] += b.shift
			}
			mergedDocs = append(mergedDocs, docs...)
			mergedFreqs = append(mergedFreqs, freqs...)
		}

		skip := m.cfg.SkipUniqueSingletons && len(contributors) == 1 && len(mergedDocs) == 1
		if !skip {
			outTerms = append(outTerms, term)
			outDocfreq = append(outDocfreq, uint32(len(mergedDocs)))

			enc, err := docWriter.Write(mergedDocs)
			if err != nil {
				return err
			}
			idOffsets = coding.Encode(idOffsets, []uint32{idOff})
			idBytes = append(idBytes, enc...)
			idOff += uint32(len(enc))

			cenc := countWriter.Write(mergedFreqs)
			countOffsets = coding.Encode(countOffsets, []uint32{countOff})
			countBytes = append(countBytes, cenc...)
			countOff += uint32(len(cenc))
		}

		for _, bi := range contributors {
			b := m.batches[bi]
			b.idx++
			if !b.done() {
				heap.Push(&h, heapEntry{term: b.terms[b.idx], batch: bi})
			}
		}
	}

	if err := writeLines(filepath.Join(outDir, "terms.txt"), outTerms); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "terms.docfreq"), coding.DeltaEncode(nil, outDocfreq, 0), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "doc.id"), idBytes, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "doc.idoff"), idOffsets, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "doc.count"), countBytes, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "doc.countoff"), countOffsets, 0o644); err != nil {
		return err
	}
	return nil
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err := w.WriteString(l); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
