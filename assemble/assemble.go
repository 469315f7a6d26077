// Package assemble builds an index in bounded-memory batches from a
// tokenized document stream: one line per document, "title term1 term2
// …". Each batch is written to its own directory as a small, complete
// sub-index; package merge then combines the batches.
package assemble

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/elshize/irk"
	"github.com/elshize/irk/block"
	"github.com/elshize/irk/coding"
)

// Config configures the batch builder.
type Config struct {
	// BatchSize is the number of documents per batch.
	BatchSize int
	// Block configures the per-term document-id and frequency lists.
	Block block.Config
}

// Builder turns a tokenized stream into a sequence of batch directories.
type Builder struct {
	cfg    Config
	logger *log.Logger
}

// New returns a Builder using cfg. A nil logger disables progress
// logging.
func New(cfg Config, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Builder{cfg: cfg, logger: logger}
}

// termPostings accumulates one term's (doc, freq) pairs within a batch.
// Since lines are processed in increasing document-id order, docs is
// built up already sorted.
type termPostings struct {
	docs  []uint32
	freqs []uint32
}

func (p *termPostings) add(doc uint32) {
	if n := len(p.docs); n > 0 && p.docs[n-1] == doc {
		p.freqs[n-1]++
		return
	}
	p.docs = append(p.docs, doc)
	p.freqs = append(p.freqs, 1)
}

// Assemble reads r, splits it into batches of cfg.BatchSize documents,
// and writes one sub-index directory per batch under
// filepath.Join(workDir, "<n>"). It returns the batch directories in
// order.
func (b *Builder) Assemble(r io.Reader, workDir string) ([]string, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var batchDirs []string
	batchNum := 0
	for {
		titles, docLens, terms, err := b.readBatch(scanner)
		if err != nil {
			return nil, err
		}
		if len(titles) == 0 {
			break
		}
		b.logger.Printf("building batch %d (%d documents)", batchNum, len(titles))

		dir := filepath.Join(workDir, strconv.Itoa(batchNum))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		if err := b.writeBatch(dir, titles, docLens, terms); err != nil {
			return nil, err
		}
		batchDirs = append(batchDirs, dir)
		batchNum++
		if len(titles) < b.cfg.BatchSize {
			break
		}
	}
	return batchDirs, nil
}

// readBatch reads up to cfg.BatchSize lines, returning each document's
// title, its length (total term occurrences, not unique terms - the
// count Sigma F and the per-document length the scorers need), and the
// per-term postings accumulated across the batch.
func (b *Builder) readBatch(scanner *bufio.Scanner) ([]string, []uint32, map[string]*termPostings, error) {
	var titles []string
	var docLens []uint32
	terms := make(map[string]*termPostings)
	for len(titles) < b.cfg.BatchSize {
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		doc := uint32(len(titles))
		titles = append(titles, fields[0])
		docLens = append(docLens, uint32(len(fields)-1))
		for _, term := range fields[1:] {
			tp, ok := terms[term]
			if !ok {
				tp = &termPostings{}
				terms[term] = tp
			}
			tp.add(doc)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}
	return titles, docLens, terms, nil
}

func (b *Builder) writeBatch(dir string, titles []string, docLens []uint32, terms map[string]*termPostings) error {
	sorted := make([]string, 0, len(terms))
	for t := range terms {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)

	if err := writeLines(filepath.Join(dir, "titles.txt"), titles); err != nil {
		return err
	}
	if err := writeLines(filepath.Join(dir, "terms.txt"), sorted); err != nil {
		return err
	}

	docfreqs := make([]uint32, len(sorted))
	for i, t := range sorted {
		docfreqs[i] = uint32(len(terms[t].docs))
	}
	if err := os.WriteFile(filepath.Join(dir, "terms.docfreq"), coding.DeltaEncode(nil, docfreqs, 0), 0o644); err != nil {
		return err
	}

	docWriter := block.NewDocListWriter(b.cfg.Block)
	countWriter := block.NewPayloadListWriter(b.cfg.Block)

	var idBytes, idOffsets []byte
	var countBytes, countOffsets []byte
	var idOff, countOff uint32
	for _, t := range sorted {
		tp := terms[t]
		enc, err := docWriter.Write(tp.docs)
		if err != nil {
			return err
		}
		idOffsets = coding.Encode(idOffsets, []uint32{idOff})
		idBytes = append(idBytes, enc...)
		idOff += uint32(len(enc))

		cenc := countWriter.Write(tp.freqs)
		countOffsets = coding.Encode(countOffsets, []uint32{countOff})
		countBytes = append(countBytes, cenc...)
		countOff += uint32(len(cenc))
	}
	if err := os.WriteFile(filepath.Join(dir, "doc.id"), idBytes, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "doc.idoff"), idOffsets, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "doc.count"), countBytes, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "doc.countoff"), countOffsets, 0o644); err != nil {
		return err
	}

	sizesWriter := block.NewPayloadListWriter(b.cfg.Block)
	if err := os.WriteFile(filepath.Join(dir, irk.DocSizesFile), sizesWriter.Write(docLens), 0o644); err != nil {
		return err
	}

	var totalOccurrences uint64
	var maxDocSize uint32
	for _, l := range docLens {
		totalOccurrences += uint64(l)
		if l > maxDocSize {
			maxDocSize = l
		}
	}
	props := irk.Properties{
		CollectionSize:   uint32(len(titles)),
		TotalOccurrences: totalOccurrences,
		BlockSize:        b.cfg.Block.BlockSize,
		AvgDocumentSize:  float64(totalOccurrences) / float64(len(titles)),
		MaxDocumentSize:  maxDocSize,
	}
	return irk.WriteProperties(dir, props)
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
