// Package irk ties the component packages (coding, memview, block,
// posting, score, topk, traverse, assemble, merge, offlinescore)
// together into a single on-disk index: the directory layout, the
// external collaborator interfaces (lexicon, compact tables), and the
// structured error taxonomy every other package's errors are wrapped
// into at this boundary.
package irk

import (
	"fmt"
	"path/filepath"
)

// Directory layout file names, per the on-disk file layout.
const (
	TermsFile       = "terms.txt"
	TermsMapFile    = "terms.map"
	TitlesFile      = "titles.txt"
	TitlesMapFile   = "titles.map"
	DocIDFile       = "doc.id"
	DocIDOffFile    = "doc.idoff"
	DocCountFile    = "doc.count"
	DocCountOffFile = "doc.countoff"
	DocFreqFile     = "terms.docfreq"
	OccurrencesFile = "term.occurrences"
	DocSizesFile    = "doc.sizes"
)

// ScoreFiles returns the five file names a quantized scorer named name
// (conventionally "<scorer>-<bits>", e.g. "bm25-8") is stored under.
func ScoreFiles(name string) (scores, offsets, maxscore, expscore, varscore string) {
	return name + ".scores", name + ".offsets", name + ".maxscore", name + ".expscore", name + ".varscore"
}

// Lexicon is a bidirectional string<->id table. The core does not
// specify how it is implemented (prefix map, sorted array with binary
// search, FST - all admissible); this interface is the only contract
// query execution depends on.
type Lexicon interface {
	// Lookup returns the id assigned to key, and whether it exists.
	Lookup(key string) (id uint32, ok bool)
	// KeyAt returns the key assigned to id. It panics if id is out of
	// range, matching the contract of a dense array-backed table; callers
	// should check against Len first.
	KeyAt(id uint32) string
	// Len returns the number of entries.
	Len() int
}

// CompactTable is a fixed-width integer array, used for document
// lengths and per-term byte offsets.
type CompactTable interface {
	At(i int) uint64
	Len() int
}

// Single is one independently built, frozen index directory's identity
// (not its contents - callers open the individual files they need via
// the component packages). It exists so Index can express the "built as
// one directory, or as several shards" choice as a concrete sum type
// rather than an open-ended interface.
type Single struct {
	Dir string
}

// File returns the path of name within s's directory.
func (s Single) File(name string) string { return filepath.Join(s.Dir, name) }

// Index is either a single directory or several independently built
// shards combined at query time. Dispatch on Sharded happens once per
// query.
type Index struct {
	single *Single
	shards []Single
}

// NewSingle wraps one index directory.
func NewSingle(dir string) Index { return Index{single: &Single{Dir: dir}} }

// NewSharded wraps several independently built index directories.
func NewSharded(dirs []string) Index {
	shards := make([]Single, len(dirs))
	for i, d := range dirs {
		shards[i] = Single{Dir: d}
	}
	return Index{shards: shards}
}

// IsSharded reports whether the index is a Sharded variant.
func (ix Index) IsSharded() bool { return ix.shards != nil }

// AsSingle returns the wrapped Single and true if ix is not sharded.
func (ix Index) AsSingle() (Single, bool) {
	if ix.single == nil {
		return Single{}, false
	}
	return *ix.single, true
}

// Shards returns the wrapped shards and true if ix is sharded.
func (ix Index) Shards() ([]Single, bool) {
	if ix.shards == nil {
		return nil, false
	}
	return ix.shards, true
}

func (ix Index) String() string {
	if ix.IsSharded() {
		return fmt.Sprintf("Sharded(%d)", len(ix.shards))
	}
	if ix.single != nil {
		return fmt.Sprintf("Single(%s)", ix.single.Dir)
	}
	return "Index(empty)"
}
