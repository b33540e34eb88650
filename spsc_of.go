// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import (
	"code.hybscloud.com/atomix"
)

// SPSCOf is a single-producer single-consumer bounded queue of T values.
//
// It runs the same per-slot sequence protocol as SPSC over Go-managed
// slots, so the stored values stay visible to the garbage collector.
// Use SPSC when records are opaque bytes or must live in caller-provided
// memory; use SPSCOf when they are typed values.
type SPSCOf[T any] struct {
	_    pad
	tail atomix.Uint32 // Producer cursor
	_    pad
	head atomix.Uint32 // Consumer cursor
	_    pad

	buffer   []seqSlot[T]
	mask     uint32
	capacity uint32
}

type seqSlot[T any] struct {
	seq  atomix.Uint32
	data T
}

// NewSPSCOf creates a new SPSC queue of T values.
// Capacity must be a power of two in [2, 1<<31]; it is not rounded.
func NewSPSCOf[T any](capacity int) (*SPSCOf[T], error) {
	if capacity < 2 || capacity&(capacity-1) != 0 || uint64(capacity) > maxCapacity {
		return nil, ErrInvalidArgument
	}

	n := uint32(capacity)
	q := &SPSCOf[T]{
		buffer:   make([]seqSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}
	for i := uint32(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}
	return q, nil
}

// Enqueue adds an element to the queue (producer only).
// The element is copied into the queue's internal buffer.
// Returns ErrWouldBlock if the queue is full.
func (q *SPSCOf[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	slot := &q.buffer[tail&q.mask]
	if int32(slot.seq.LoadAcquire()-tail) != 0 {
		return ErrWouldBlock
	}

	slot.data = *elem
	q.tail.StoreRelaxed(tail + 1)
	slot.seq.StoreRelease(tail + 1)
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSCOf[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	slot := &q.buffer[head&q.mask]
	if int32(slot.seq.LoadAcquire()-(head+1)) != 0 {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := slot.data
	var zero T
	slot.data = zero
	q.head.StoreRelaxed(head + 1)
	slot.seq.StoreRelease(head + q.capacity)
	return elem, nil
}

// Cap returns the queue capacity.
func (q *SPSCOf[T]) Cap() int {
	return int(q.capacity)
}
