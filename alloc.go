// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import "unsafe"

// Allocator backs the slot array of a ring.
//
// A ring calls Alloc exactly once at creation and Free exactly once at
// Close. Implementations that cannot release individual blocks (arenas)
// provide a no-op Free.
//
// Alloc returns a block of at least size bytes whose first byte is aligned
// to align, or nil when the request cannot be satisfied. align is zero or a
// power of two; zero means any natural alignment is acceptable.
type Allocator interface {
	Alloc(size, align int) []byte
	Free(block []byte)
}

// HeapAllocator backs rings with the Go heap.
//
// Alloc over-allocates and returns an aligned subslice. Free is a no-op;
// the garbage collector reclaims the backing array once the ring drops
// its reference.
//
// The zero value is ready to use and safe for concurrent calls.
type HeapAllocator struct{}

// Alloc returns a heap-backed block of size bytes aligned to align.
func (HeapAllocator) Alloc(size, align int) []byte {
	if size <= 0 || align < 0 || align&(align-1) != 0 {
		return nil
	}
	if align <= 1 {
		return make([]byte, size)
	}
	buf := make([]byte, size+align-1)
	off := int(-uintptr(unsafe.Pointer(unsafe.SliceData(buf))) & uintptr(align-1))
	return buf[off : off+size : off+size]
}

// Free is a no-op; the garbage collector reclaims the block.
func (HeapAllocator) Free(block []byte) {}

// Arena is a bump allocator over a fixed region.
//
// Alloc hands out aligned subslices of the region front to back. Free is a
// no-op: an arena releases all of its blocks at once, by dropping the arena
// or calling Reset.
//
// Arena is not safe for concurrent Alloc calls. Rings created from the same
// arena share its region but are otherwise independent.
type Arena struct {
	buf []byte
	off int
}

// NewArena returns an arena over a fresh region of size bytes.
func NewArena(size int) *Arena {
	if size <= 0 {
		return &Arena{}
	}
	return &Arena{buf: make([]byte, size)}
}

// NewArenaOver returns an arena that bump-allocates from buf.
// The caller must not touch buf while any block from the arena is live.
func NewArenaOver(buf []byte) *Arena {
	return &Arena{buf: buf}
}

// Alloc returns the next size bytes of the region aligned to align,
// or nil when the remaining region cannot satisfy the request.
func (a *Arena) Alloc(size, align int) []byte {
	if size <= 0 || align < 0 || align&(align-1) != 0 {
		return nil
	}
	off := a.off
	if align > 1 {
		if off >= len(a.buf) {
			return nil
		}
		p := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf))) + uintptr(off)
		off += int(-p & uintptr(align-1))
	}
	if off > len(a.buf)-size {
		return nil
	}
	a.off = off + size
	return a.buf[off : off+size : off+size]
}

// Free is a no-op. Arena blocks are released together via Reset.
func (a *Arena) Free(block []byte) {}

// Reset discards all blocks and makes the full region available again.
// The caller must ensure no block handed out before Reset is still in use.
func (a *Arena) Reset() {
	a.off = 0
}

// Remaining returns the number of bytes still available for Alloc,
// before any alignment padding.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.off
}
