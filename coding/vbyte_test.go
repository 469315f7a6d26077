package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVbyteRoundTrip(t *testing.T) {
	cases := [][]uint32{
		{},
		{0},
		{1},
		{127},
		{128},
		{1 << 32 - 1},
		{0, 1, 2, 3, 1000000, 42},
	}
	for _, values := range cases {
		enc := Encode(nil, values)
		got, n, err := Decode(enc, len(values))
		require.NoError(t, err)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, values, got)
	}
}

func TestVbyteCorner(t *testing.T) {
	var tmp [MaxVarintLen32]byte

	n := PutUvarint(tmp[:], 0)
	require.Equal(t, 1, n)
	assert.Equal(t, byte(0x80), tmp[0])

	n = PutUvarint(tmp[:], 1<<32-1)
	require.Equal(t, 5, n)
	for i := 0; i < 4; i++ {
		assert.Zero(t, tmp[i]&0x80, "byte %d should not be terminal", i)
	}
	assert.NotZero(t, tmp[4]&0x80)

	v, consumed, err := Uvarint(tmp[:n])
	require.NoError(t, err)
	assert.Equal(t, n, consumed)
	assert.Equal(t, uint32(1<<32-1), v)
}

func TestVbyteTruncated(t *testing.T) {
	_, _, err := Uvarint([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestVbyteDeltaRoundTrip(t *testing.T) {
	values := []uint32{9, 11, 12, 22, 27}
	enc := DeltaEncode(nil, values, 0)
	got, n, err := DeltaDecode(enc, len(values), 0)
	require.NoError(t, err)
	assert.Equal(t, len(enc), n)
	assert.Equal(t, values, got)
}

func TestWriterReader(t *testing.T) {
	w := NewWriter()
	w.PutUvarint(0)
	w.PutUvarint(300)
	w.PutUvarint(70000)

	r := NewReader(w.Bytes())
	v, err := r.Uvarint()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)
	v, err = r.Uvarint()
	require.NoError(t, err)
	assert.Equal(t, uint32(300), v)
	v, err = r.Uvarint()
	require.NoError(t, err)
	assert.Equal(t, uint32(70000), v)
	assert.Zero(t, r.Remaining())
}
