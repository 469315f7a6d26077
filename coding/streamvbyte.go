package coding

// Stream-vbyte processes four values at a time: one control byte holding
// four 2-bit length tags (tag 0 means 1 byte, 1 means 2, 2 means 3, 3
// means 4), followed by the concatenated little-endian value bytes for
// the lanes actually present in that group. The value count is carried
// externally by the caller (it lives in the block-list header), so the
// last, possibly-partial group only contributes bytes for the lanes that
// exist.

// MaxEncodedSize returns the worst-case encoded size for n values, per
// the control-byte-plus-four-bytes-per-lane bound: ceil(n/4) + 4n.
func MaxEncodedSize(n int) int {
	return (n+3)/4 + 4*n
}

func laneLen(v uint32) int {
	switch {
	case v < 1<<8:
		return 1
	case v < 1<<16:
		return 2
	case v < 1<<24:
		return 3
	default:
		return 4
	}
}

func putLane(dst []byte, v uint32, n int) int {
	for i := 0; i < n; i++ {
		dst[i] = byte(v >> (8 * uint(i)))
	}
	return n
}

func getLane(src []byte, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v |= uint32(src[i]) << (8 * uint(i))
	}
	return v
}

// StreamEncode appends the stream-vbyte encoding of values to dst and
// returns the result.
func StreamEncode(dst []byte, values []uint32) []byte {
	for i := 0; i < len(values); i += 4 {
		group := values[i:min(i+4, len(values))]
		var ctrl byte
		lens := make([]int, len(group))
		for j, v := range group {
			l := laneLen(v)
			lens[j] = l
			ctrl |= byte(l-1) << uint(2*j)
		}
		dst = append(dst, ctrl)
		var tmp [4]byte
		for j, v := range group {
			n := putLane(tmp[:], v, lens[j])
			dst = append(dst, tmp[:n]...)
		}
	}
	return dst
}

// StreamDecode reads exactly n stream-vbyte-encoded values from buf,
// returning them along with the number of bytes consumed.
func StreamDecode(buf []byte, n int) ([]uint32, int, error) {
	values := make([]uint32, n)
	pos := 0
	for i := 0; i < n; i += 4 {
		if pos >= len(buf) {
			return nil, 0, ErrTruncated
		}
		ctrl := buf[pos]
		pos++
		groupLen := min(4, n-i)
		for j := 0; j < groupLen; j++ {
			l := int((ctrl>>uint(2*j))&0x3) + 1
			if pos+l > len(buf) {
				return nil, 0, ErrTruncated
			}
			values[i+j] = getLane(buf[pos:], l)
			pos += l
		}
	}
	return values, pos, nil
}

// StreamDeltaEncode appends the delta-coded stream-vbyte encoding of
// values to dst, seeded with seed as in Vbyte's DeltaEncode.
func StreamDeltaEncode(dst []byte, values []uint32, seed uint32) []byte {
	diffs := make([]uint32, len(values))
	prev := seed
	for i, v := range values {
		diffs[i] = v - prev
		prev = v
	}
	return StreamEncode(dst, diffs)
}

// StreamDeltaDecode reads exactly n delta-coded stream-vbyte values from
// buf, seeded with seed, returning the reconstructed absolute values.
func StreamDeltaDecode(buf []byte, n int, seed uint32) ([]uint32, int, error) {
	diffs, consumed, err := StreamDecode(buf, n)
	if err != nil {
		return nil, 0, err
	}
	prev := seed
	for i, d := range diffs {
		prev += d
		diffs[i] = prev
	}
	return diffs, consumed, nil
}
