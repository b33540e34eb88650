// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

// SPSC is a single-producer single-consumer fixed-record ring.
//
// Claims advance the cursor with a plain relaxed store: with only one
// goroutine per side there is nothing to race the cursor with, so the CAS
// loop of the MPMC variant disappears. The per-slot acquire/release pair
// on the sequence header is kept unchanged — it is what hands the payload
// bytes across cores, not the cursors.
//
// Memory: capacity slots of stride bytes in one allocation
type SPSC struct {
	ring
}

// NewSPSC creates an SPSC ring of capacity slots of slotSize payload bytes,
// backed by the Go heap.
//
// Capacity must be a power of two in [2, 1<<31]; it is not rounded.
// Returns ErrInvalidArgument for a bad geometry.
func NewSPSC(capacity, slotSize int) (*SPSC, error) {
	return newSPSC(HeapAllocator{}, capacity, slotSize)
}

func newSPSC(alloc Allocator, capacity, slotSize int) (*SPSC, error) {
	r, err := newRing(alloc, capacity, slotSize)
	if err != nil {
		return nil, err
	}
	return &SPSC{ring: r}, nil
}

// PushClaim reserves the next slot for writing (producer only).
// Returns ErrWouldBlock if the ring is full.
//
// The returned slot must be handed to PushPublish exactly once; until then
// the record is invisible to the consumer.
func (q *SPSC) PushClaim() (Slot, error) {
	tail := q.tail.LoadRelaxed()
	seq := q.seqAt(tail & q.mask).LoadAcquire()
	if int32(seq-tail) != 0 {
		// Consumer has not released this slot's previous generation yet.
		return Slot{}, ErrWouldBlock
	}
	q.tail.StoreRelaxed(tail + 1)
	return Slot{data: q.dataAt(tail & q.mask), pos: tail}, nil
}

// PushPublish makes a claimed slot visible to the consumer.
func (q *SPSC) PushPublish(s Slot) {
	q.seqAt(s.pos&q.mask).StoreRelease(s.pos + 1)
}

// PopClaim reserves the oldest filled slot for reading (consumer only).
// Returns ErrWouldBlock if the ring is empty.
//
// The returned slot must be handed to PopRelease exactly once; until then
// the slot cannot be reused by the producer.
func (q *SPSC) PopClaim() (Slot, error) {
	head := q.head.LoadRelaxed()
	seq := q.seqAt(head & q.mask).LoadAcquire()
	if int32(seq-(head+1)) != 0 {
		return Slot{}, ErrWouldBlock
	}
	q.head.StoreRelaxed(head + 1)
	return Slot{data: q.dataAt(head & q.mask), pos: head}, nil
}

// PopRelease returns a consumed slot to the producer's next generation.
func (q *SPSC) PopRelease(s Slot) {
	q.seqAt(s.pos&q.mask).StoreRelease(s.pos + q.capacity)
}

// Push copies src into the next slot and publishes it (producer only).
// len(src) may be less than the slot size; the remaining payload bytes of
// the record are unspecified.
// Returns ErrInvalidArgument if src exceeds the slot size, ErrWouldBlock
// if the ring is full.
func (q *SPSC) Push(src []byte) error {
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

// Pop copies the oldest record into dst and releases its slot (consumer
// only). len(dst) may be less than the slot size; only len(dst) bytes are
// copied out.
// Returns ErrInvalidArgument if dst exceeds the slot size, ErrWouldBlock
// if the ring is empty.
func (q *SPSC) Pop(dst []byte) error {
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
