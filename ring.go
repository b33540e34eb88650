// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

var seqHdr atomix.Uint32

const (
	// seqSize is the per-slot sequence header footprint.
	seqSize = int(unsafe.Sizeof(seqHdr))
	// seqAlign is the alignment the slot array base and stride must keep
	// so that every slot's sequence header is naturally aligned.
	seqAlign = int(unsafe.Alignof(seqHdr))
)

// maxCapacity bounds the slot count so that positions, which are free
// running 32-bit counters, cannot alias a live generation.
const maxCapacity = uint64(1) << 31

// Slot is a claimed position of a ring.
//
// A Slot is obtained from PushClaim or PopClaim and handed back to exactly
// one PushPublish or PopRelease call on the same ring. Bytes is valid only
// between claim and publish/release; using it afterwards, or publishing a
// slot twice, is undefined behavior.
type Slot struct {
	data []byte
	pos  uint32
}

// Bytes returns the payload area of the claimed slot.
// Its length is the ring's slot size.
func (s Slot) Bytes() []byte { return s.data }

// Pos returns the free-running position of the claimed slot.
func (s Slot) Pos() uint32 { return s.pos }

// ring is the slot array shared by the SPSC and MPMC variants.
//
// Layout: capacity fixed-stride slots in one allocation. Each slot starts
// with a 32-bit sequence header followed by slotSize payload bytes; the
// stride rounds the pair up to the header alignment so successive headers
// stay naturally aligned. Position p folds to slot index p & mask.
//
// The sequence header is the slot's generation counter:
//
//	seq == p            empty, claimable by the producer at position p
//	seq == p + 1        filled, claimable by the consumer at position p
//	seq == p + capacity empty again, for the producer's next trip
//
// Fullness and emptiness are derived from int32(seq - expected), never
// from comparing the cursors against each other. The cursors are hints;
// payload visibility is gated entirely by the acquire/release pair on the
// slot's sequence header.
type ring struct {
	_    pad
	tail atomix.Uint32 // producer cursor
	_    pad
	head atomix.Uint32 // consumer cursor
	_    pad

	slab     []byte
	mask     uint32
	capacity uint32
	slotSize int
	stride   int
	alloc    Allocator
}

// newRing validates the geometry, allocates the slot array, and stamps
// slot i with sequence i.
func newRing(alloc Allocator, capacity, slotSize int) (ring, error) {
	if alloc == nil || slotSize <= 0 {
		return ring{}, ErrInvalidArgument
	}
	if capacity < 2 || capacity&(capacity-1) != 0 || uint64(capacity) > maxCapacity {
		return ring{}, ErrInvalidArgument
	}

	stride := (seqSize + slotSize + seqAlign - 1) &^ (seqAlign - 1)
	total := uint64(capacity) * uint64(stride)
	if total > uint64(int(^uint(0)>>1)) {
		return ring{}, ErrOutOfMemory
	}

	slab := alloc.Alloc(int(total), seqAlign)
	if slab == nil || len(slab) < int(total) {
		return ring{}, ErrOutOfMemory
	}

	r := ring{
		slab:     slab,
		mask:     uint32(capacity - 1),
		capacity: uint32(capacity),
		slotSize: slotSize,
		stride:   stride,
		alloc:    alloc,
	}
	for i := uint32(0); i < r.capacity; i++ {
		r.seqAt(i).StoreRelaxed(i)
	}
	return r, nil
}

// seqAt returns the sequence header of slot index i.
func (r *ring) seqAt(i uint32) *atomix.Uint32 {
	return (*atomix.Uint32)(unsafe.Pointer(&r.slab[int(i)*r.stride]))
}

// dataAt returns the payload area of slot index i.
func (r *ring) dataAt(i uint32) []byte {
	off := int(i)*r.stride + seqSize
	return r.slab[off : off+r.slotSize : off+r.slotSize]
}

// Cap returns the ring capacity in slots.
func (r *ring) Cap() int {
	return int(r.capacity)
}

// SlotSize returns the payload width of each slot in bytes.
func (r *ring) SlotSize() int {
	return r.slotSize
}

// Close returns the slot array to the allocator.
//
// Close is idempotent; calling it on an already-closed ring is a no-op.
// Concurrent Close with in-flight operations is undefined behavior.
func (r *ring) Close() error {
	if r.slab == nil {
		return nil
	}
	r.alloc.Free(r.slab)
	r.slab = nil
	return nil
}
