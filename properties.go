package irk

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// QuantizedScore describes one quantized score stream built over the
// index: the scorer it came from, the bit width it was packed into, and
// the real-valued range its LinearQuantizer was built from (so a reader
// can recover the quantization without recomputing it).
type QuantizedScore struct {
	Type string  `json:"type"`
	Bits int     `json:"bits"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Properties is the contents of properties.json: the small set of facts
// about a built index that every other artifact is interpreted relative
// to. Field set and JSON key names are ported from
// irkit's index::Properties (properties.hpp), plus QuantizedScores to
// actually persist what that struct's quantized_scores map never did
// (read_properties/save_properties there never round-trip it).
type Properties struct {
	// CollectionSize is N, the number of documents.
	CollectionSize uint32 `json:"documents"`
	// TotalOccurrences is Sigma F, the sum of term frequencies over every
	// posting in the collection.
	TotalOccurrences uint64 `json:"occurrences"`
	// BlockSize is B, the posting-list block size the index was built
	// with.
	BlockSize int `json:"skip_block_size"`
	// AvgDocumentSize and MaxDocumentSize are the average and maximum
	// document length over the collection.
	AvgDocumentSize float64 `json:"avg_document_size"`
	MaxDocumentSize uint32  `json:"max_document_size"`
	// QuantizedScores holds one descriptor per built score name (e.g.
	// "bm25-8"), keyed the same way.
	QuantizedScores map[string]QuantizedScore `json:"quantized_scores,omitempty"`
}

// PropertiesPath is the on-disk name of the properties file within an
// index directory.
const PropertiesPath = "properties.json"

// ReadProperties loads properties.json from dir.
func ReadProperties(dir string) (Properties, error) {
	var p Properties
	path := filepath.Join(dir, PropertiesPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, Missing(path)
		}
		return p, IO(path, err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, Malformed(path, err)
	}
	return p, nil
}

// WriteProperties writes properties.json to dir, creating it if needed.
func WriteProperties(dir string, p Properties) error {
	path := filepath.Join(dir, PropertiesPath)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return IO(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return IO(path, err)
	}
	return nil
}
