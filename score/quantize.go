package score

import "fmt"

// ErrQuantizationDomain is returned when a LinearQuantizer is constructed
// with a lower integral bound other than zero, or with an empty real
// range.
var ErrQuantizationDomain = fmt.Errorf("score: quantization domain error")

// RealRange is the real-valued domain a quantizer maps from.
type RealRange struct {
	Min, Max float64
}

// IntRange is the integer range a quantizer maps onto. Min must be 0.
type IntRange struct {
	Min, Max int64
}

// LinearQuantizer maps values in [real.Min, real.Max] onto
// [0, int.Max] via Q(x) = floor((x - real.Min) * int.Max / (real.Max - real.Min)).
type LinearQuantizer struct {
	shift      float64
	upperLimit float64
	intMax     int64
}

// NewLinearQuantizer builds a quantizer from the given ranges. It
// returns ErrQuantizationDomain if ints.Min != 0 or the real range is
// empty.
func NewLinearQuantizer(ints IntRange, real RealRange) (*LinearQuantizer, error) {
	if ints.Min != 0 {
		return nil, ErrQuantizationDomain
	}
	if real.Max <= real.Min {
		return nil, ErrQuantizationDomain
	}
	return &LinearQuantizer{
		shift:      real.Min,
		upperLimit: real.Max - real.Min,
		intMax:     ints.Max,
	}, nil
}

// Quantize maps value onto the quantizer's integer range.
func (q *LinearQuantizer) Quantize(value float64) int64 {
	return int64(float64(q.intMax) / q.upperLimit * (value - q.shift))
}
