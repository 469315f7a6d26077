// Package coding implements the two self-delimiting integer codecs the
// rest of the module builds on: a single-value variable-byte codec
// (vbyte) and a batched, lane-packed variant (stream-vbyte). Both come in
// plain and delta-seeded flavors.
package coding

import "fmt"

// ErrTruncated is returned when a decode runs out of input before a value
// terminates.
var ErrTruncated = fmt.Errorf("coding: truncated vbyte stream")

// MaxVarintLen32 is the largest number of bytes PutUvarint can emit for a
// uint32 value (ceil(32/7)).
const MaxVarintLen32 = 5

// PutUvarint encodes v into buf using vbyte: base-128 digits,
// least-significant first; every non-final byte has its high bit clear,
// the final byte has its high bit set. Returns the number of bytes
// written. buf must have at least MaxVarintLen32 bytes of room.
func PutUvarint(buf []byte, v uint32) int {
	i := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			buf[i] = b | 0x80
			return i + 1
		}
		buf[i] = b
		i++
	}
}

// Uvarint decodes a single value from the front of buf, returning the
// value and the number of bytes consumed. It returns ErrTruncated if buf
// ends before a terminal (high-bit-set) byte is seen.
func Uvarint(buf []byte) (uint32, int, error) {
	var v uint32
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		v |= uint32(b&0x7f) << (7 * uint(i))
		if b&0x80 != 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrTruncated
}

// Encode appends the vbyte encoding of every value in values to dst and
// returns the result.
func Encode(dst []byte, values []uint32) []byte {
	var tmp [MaxVarintLen32]byte
	for _, v := range values {
		n := PutUvarint(tmp[:], v)
		dst = append(dst, tmp[:n]...)
	}
	return dst
}

// Decode reads exactly n values from buf, returning them along with the
// number of bytes consumed.
func Decode(buf []byte, n int) ([]uint32, int, error) {
	values := make([]uint32, n)
	pos := 0
	for i := 0; i < n; i++ {
		v, consumed, err := Uvarint(buf[pos:])
		if err != nil {
			return nil, 0, err
		}
		values[i] = v
		pos += consumed
	}
	return values, pos, nil
}

// DeltaEncode appends the delta-coded vbyte encoding of values to dst.
// The first value is encoded relative to seed; every subsequent value is
// encoded relative to its predecessor.
func DeltaEncode(dst []byte, values []uint32, seed uint32) []byte {
	var tmp [MaxVarintLen32]byte
	prev := seed
	for _, v := range values {
		n := PutUvarint(tmp[:], v-prev)
		dst = append(dst, tmp[:n]...)
		prev = v
	}
	return dst
}

// DeltaDecode reads exactly n delta-coded values from buf, seeded with
// seed, returning the reconstructed absolute values and bytes consumed.
func DeltaDecode(buf []byte, n int, seed uint32) ([]uint32, int, error) {
	values := make([]uint32, n)
	pos := 0
	prev := seed
	for i := 0; i < n; i++ {
		d, consumed, err := Uvarint(buf[pos:])
		if err != nil {
			return nil, 0, err
		}
		prev += d
		values[i] = prev
		pos += consumed
	}
	return values, pos, nil
}

// Writer accumulates a vbyte stream. It mirrors the stateful
// writer/reader shape the rest of the on-disk codecs use.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// PutUvarint appends v.
func (w *Writer) PutUvarint(v uint32) {
	var tmp [MaxVarintLen32]byte
	n := PutUvarint(tmp[:], v)
	w.buf = append(w.buf, tmp[:n]...)
}

// Bytes returns the accumulated stream. The returned slice aliases the
// writer's internal buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Reader decodes a vbyte stream value by value.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential decoding.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

// Uvarint decodes and returns the next value.
func (r *Reader) Uvarint() (uint32, error) {
	v, n, err := Uvarint(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// Pos reports the current byte offset into the underlying stream.
func (r *Reader) Pos() int { return r.pos }

// Remaining reports the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }
