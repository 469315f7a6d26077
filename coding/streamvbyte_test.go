package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamVbyteRoundTrip(t *testing.T) {
	cases := [][]uint32{
		{},
		{0},
		{1, 2, 3},
		{1, 2, 3, 4},
		{1, 2, 3, 4, 5},
		{0, 255, 256, 65535, 65536, 1 << 32 - 1},
	}
	for _, values := range cases {
		enc := StreamEncode(nil, values)
		assert.LessOrEqual(t, len(enc), MaxEncodedSize(len(values)))
		got, n, err := StreamDecode(enc, len(values))
		require.NoError(t, err)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, values, got)
	}
}

func TestStreamVbyteDeltaRoundTrip(t *testing.T) {
	values := []uint32{9, 11, 12, 22, 27, 40}
	enc := StreamDeltaEncode(nil, values, 0)
	got, n, err := StreamDeltaDecode(enc, len(values), 0)
	require.NoError(t, err)
	assert.Equal(t, len(enc), n)
	assert.Equal(t, values, got)
}

func TestStreamVbyteTruncated(t *testing.T) {
	_, _, err := StreamDecode([]byte{0x00}, 1)
	assert.ErrorIs(t, err, ErrTruncated)
}
