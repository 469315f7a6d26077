package memview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnedAndBorrowed(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	o := NewOwned(append([]byte(nil), buf...))
	assert.Equal(t, 5, o.Size())
	assert.Equal(t, buf, o.Bytes())

	b := NewBorrowed(buf)
	s := b.Slice(1, 3)
	assert.Equal(t, []byte{2, 3}, s.Bytes())
}

func TestSliceSharesStorage(t *testing.T) {
	buf := []byte{0, 0, 0, 0}
	v := NewBorrowed(buf)
	s := v.Slice(0, 4)
	buf[0] = 9
	assert.Equal(t, byte(9), s.Bytes()[0])
}

func TestMapped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	want := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	v, err := Mapped(path)
	require.NoError(t, err)
	defer v.Close()

	assert.Equal(t, len(want), v.Size())
	assert.Equal(t, want, v.Bytes())

	var expected uint32 = 10 | 20<<8 | 30<<16 | 40<<24
	assert.Equal(t, expected, v.Uint32(0))
}
