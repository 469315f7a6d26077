// Package memview provides a uniform, read-only byte-window abstraction
// over owned buffers, borrowed slices, and memory-mapped files. Slicing
// is always O(1) and never copies.
package memview

import (
	"encoding/binary"
	"os"

	"github.com/edsrzf/mmap-go"
)

// kind tags which backing storage a View holds, purely so Close knows
// whether there is an mmap handle to release.
type kind int

const (
	kindOwned kind = iota
	kindBorrowed
	kindMapped
)

// View is a read-only window over a contiguous byte range. The zero
// value is an empty owned view.
type View struct {
	data []byte
	kind kind
	m    mmap.MMap
}

// NewOwned wraps buf, taking ownership of it (the caller must not mutate
// buf afterward).
func NewOwned(buf []byte) View {
	return View{data: buf, kind: kindOwned}
}

// NewBorrowed wraps buf without copying; the caller is responsible for
// keeping buf alive for the View's lifetime.
func NewBorrowed(buf []byte) View {
	return View{data: buf, kind: kindBorrowed}
}

// Mapped opens path read-only and memory-maps its contents. The returned
// View must be closed with Close once it is no longer needed.
func Mapped(path string) (View, error) {
	f, err := os.Open(path)
	if err != nil {
		return View{}, err
	}
	defer f.Close()
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return View{}, err
	}
	return View{data: []byte(m), kind: kindMapped, m: m}, nil
}

// Close releases the underlying mapping, if any. It is a no-op for
// owned/borrowed views.
func (v View) Close() error {
	if v.kind == kindMapped && v.m != nil {
		return v.m.Unmap()
	}
	return nil
}

// Size returns the number of bytes in the view.
func (v View) Size() int { return len(v.data) }

// Bytes returns the view's contents. The caller must not mutate it.
func (v View) Bytes() []byte { return v.data }

// Slice returns the sub-window [lo, hi), sharing the same backing
// storage. It never copies.
func (v View) Slice(lo, hi int) View {
	return View{data: v.data[lo:hi], kind: v.kind, m: v.m}
}

// Uint32 reads a little-endian uint32 starting at offset off.
func (v View) Uint32(off int) uint32 {
	return binary.LittleEndian.Uint32(v.data[off : off+4])
}

// Uint64 reads a little-endian uint64 starting at offset off.
func (v View) Uint64(off int) uint64 {
	return binary.LittleEndian.Uint64(v.data[off : off+8])
}
