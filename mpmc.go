// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import (
	"code.hybscloud.com/spin"
)

// MPMC is a multi-producer multi-consumer fixed-record ring.
//
// Claims race on the cursor with a CAS loop. The CAS itself is relaxed on
// both paths: winning the cursor only decides which goroutine owns the
// position, while payload visibility is carried by the acquire/release
// pair on the slot's sequence header. Producers may finish their in-slot
// writes in any wall-clock order; consumers still observe positions in
// strict FIFO order because each record only becomes claimable once its
// own publish store lands.
//
// Memory: capacity slots of stride bytes in one allocation
type MPMC struct {
	ring
}

// NewMPMC creates an MPMC ring of capacity slots of slotSize payload bytes,
// backed by the Go heap.
//
// Capacity must be a power of two in [2, 1<<31]; it is not rounded.
// Returns ErrInvalidArgument for a bad geometry.
func NewMPMC(capacity, slotSize int) (*MPMC, error) {
	return newMPMC(HeapAllocator{}, capacity, slotSize)
}

func newMPMC(alloc Allocator, capacity, slotSize int) (*MPMC, error) {
	r, err := newRing(alloc, capacity, slotSize)
	if err != nil {
		return nil, err
	}
	return &MPMC{ring: r}, nil
}

// PushClaim reserves the next slot for writing (multiple producers safe).
// Returns ErrWouldBlock if the ring is full.
//
// The returned slot must be handed to PushPublish exactly once; until then
// the record is invisible to consumers.
func (q *MPMC) PushClaim() (Slot, error) {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadRelaxed()
		seq := q.seqAt(tail & q.mask).LoadAcquire()
		diff := int32(seq - tail)

		if diff == 0 {
			if q.tail.CompareAndSwapRelaxed(tail, tail+1) {
				return Slot{data: q.dataAt(tail & q.mask), pos: tail}, nil
			}
		} else if diff < 0 {
			return Slot{}, ErrWouldBlock
		}
		// diff > 0: another producer already claimed this position.
		sw.Once()
	}
}

// PushPublish makes a claimed slot visible to consumers.
func (q *MPMC) PushPublish(s Slot) {
	q.seqAt(s.pos&q.mask).StoreRelease(s.pos + 1)
}

// PopClaim reserves the oldest filled slot for reading (multiple consumers
// safe). Returns ErrWouldBlock if the ring is empty.
//
// The returned slot must be handed to PopRelease exactly once; until then
// the slot cannot be reused by producers.
func (q *MPMC) PopClaim() (Slot, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadRelaxed()
		seq := q.seqAt(head & q.mask).LoadAcquire()
		diff := int32(seq - (head + 1))

		if diff == 0 {
			if q.head.CompareAndSwapRelaxed(head, head+1) {
				return Slot{data: q.dataAt(head & q.mask), pos: head}, nil
			}
		} else if diff < 0 {
			return Slot{}, ErrWouldBlock
		}
		// diff > 0: another consumer already claimed this position.
		sw.Once()
	}
}

// PopRelease returns a consumed slot to the producers' next generation.
func (q *MPMC) PopRelease(s Slot) {
	q.seqAt(s.pos&q.mask).StoreRelease(s.pos + q.capacity)
}

// Push copies src into the next slot and publishes it.
// len(src) may be less than the slot size; the remaining payload bytes of
// the record are unspecified.
// Returns ErrInvalidArgument if src exceeds the slot size, ErrWouldBlock
// if the ring is full.
func (q *MPMC) Push(src []byte) error {
	if len(src) > q.slotSize {
		return ErrInvalidArgument
	}
	s, err := q.PushClaim()
	if err != nil {
		return err
	}
	copy(s.data, src)
	q.PushPublish(s)
	return nil
}

// Pop copies the oldest record into dst and releases its slot.
// len(dst) may be less than the slot size; only len(dst) bytes are
// copied out.
// Returns ErrInvalidArgument if dst exceeds the slot size, ErrWouldBlock
// if the ring is empty.
func (q *MPMC) Pop(dst []byte) error {
	if len(dst) > q.slotSize {
		return ErrInvalidArgument
	}
	s, err := q.PopClaim()
	if err != nil {
		return err
	}
	copy(dst, s.data)
	q.PopRelease(s)
	return nil
}
