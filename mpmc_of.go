// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPMCOf is a multi-producer multi-consumer bounded queue of T values.
//
// It runs the same per-slot sequence protocol as MPMC over Go-managed
// slots, so the stored values stay visible to the garbage collector.
// Use MPMC when records are opaque bytes or must live in caller-provided
// memory; use MPMCOf when they are typed values.
type MPMCOf[T any] struct {
	_    pad
	tail atomix.Uint32 // Producers CAS here
	_    pad
	head atomix.Uint32 // Consumers CAS here
	_    pad

	buffer   []seqSlot[T]
	mask     uint32
	capacity uint32
}

// NewMPMCOf creates a new MPMC queue of T values.
// Capacity must be a power of two in [2, 1<<31]; it is not rounded.
func NewMPMCOf[T any](capacity int) (*MPMCOf[T], error) {
	if capacity < 2 || capacity&(capacity-1) != 0 || uint64(capacity) > maxCapacity {
		return nil, ErrInvalidArgument
	}

	n := uint32(capacity)
	q := &MPMCOf[T]{
		buffer:   make([]seqSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}
	for i := uint32(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}
	return q, nil
}

// Enqueue adds an element to the queue (multiple producers safe).
// The element is copied into the queue's internal buffer.
// Returns ErrWouldBlock if the queue is full.
func (q *MPMCOf[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadRelaxed()
		slot := &q.buffer[tail&q.mask]
		diff := int32(slot.seq.LoadAcquire() - tail)

		if diff == 0 {
			if q.tail.CompareAndSwapRelaxed(tail, tail+1) {
				slot.data = *elem
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element (multiple consumers safe).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPMCOf[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadRelaxed()
		slot := &q.buffer[head&q.mask]
		diff := int32(slot.seq.LoadAcquire() - (head + 1))

		if diff == 0 {
			if q.head.CompareAndSwapRelaxed(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + q.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// Cap returns the queue capacity.
func (q *MPMCOf[T]) Cap() int {
	return int(q.capacity)
}
