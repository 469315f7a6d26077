package irk

import "github.com/elshize/irk/offlinescore"

// SaveQuantizedScore records name's quantization descriptor in
// properties.json: the scorer type, the bit width the offline scoring
// pass (package offlinescore) quantized into, and the real-valued range
// its LinearQuantizer was built from. offlinescore.Run computes
// RealMin/RealMax but has no way to persist them itself, since
// properties.json's format belongs to this package; this is the call a
// build pipeline makes right after Run to keep the two in sync.
func SaveQuantizedScore(dir, name, scorerType string, bits int, res *offlinescore.Result) error {
	p, err := ReadProperties(dir)
	if err != nil {
		return err
	}
	if p.QuantizedScores == nil {
		p.QuantizedScores = make(map[string]QuantizedScore)
	}
	p.QuantizedScores[name] = QuantizedScore{
		Type: scorerType,
		Bits: bits,
		Min:  res.RealMin,
		Max:  res.RealMax,
	}
	return WriteProperties(dir, p)
}
