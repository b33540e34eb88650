// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

// Ring is the combined producer-consumer interface for a fixed-record ring.
//
// Ring provides non-blocking claim/publish and copy-in/copy-out operations.
// Operations that cannot proceed return ErrWouldBlock (ring full or empty).
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
//
// Example:
//
//	r, err := ringbuf.NewMPMC(1024, 16)
//	if err != nil {
//	    // Handle bad geometry or allocation failure
//	}
//	defer r.Close()
//
//	// Zero-copy produce
//	s, err := r.PushClaim()
//	if err == nil {
//	    encode(s.Bytes())
//	    r.PushPublish(s)
//	}
//
//	// Copy-out consume
//	rec := make([]byte, 16)
//	if err := r.Pop(rec); err == nil {
//	    process(rec)
//	}
type Ring interface {
	Producer
	Consumer
	Cap() int
	SlotSize() int
	Close() error
}

// Producer is the write side of a fixed-record ring.
//
// PushClaim and PushPublish are the primary API: the producer writes the
// record in place inside the ring's own slot, so large records never pass
// through an intermediate buffer. Push is the copy-in convenience built on
// top of the pair.
type Producer interface {
	// PushClaim reserves the next slot for writing (non-blocking).
	// Returns ErrWouldBlock if the ring is full.
	//
	// Thread safety depends on ring type:
	//   - SPSC: single producer only
	//   - MPMC: multiple producers safe
	PushClaim() (Slot, error)

	// PushPublish makes a previously claimed slot visible to consumers.
	// Must follow a successful PushClaim exactly once.
	PushPublish(Slot)

	// Push copies src into the next slot and publishes it (non-blocking).
	// Returns ErrInvalidArgument if len(src) exceeds the slot size,
	// ErrWouldBlock if the ring is full.
	Push(src []byte) error
}

// Consumer is the read side of a fixed-record ring.
//
// PopClaim and PopRelease are the primary API: the consumer reads the
// record in place and returns the slot to the producers afterwards. Pop is
// the copy-out convenience built on top of the pair.
type Consumer interface {
	// PopClaim reserves the oldest filled slot for reading (non-blocking).
	// Returns ErrWouldBlock if the ring is empty.
	//
	// Thread safety depends on ring type:
	//   - SPSC: single consumer only
	//   - MPMC: multiple consumers safe
	PopClaim() (Slot, error)

	// PopRelease returns a previously claimed slot to the producers.
	// Must follow a successful PopClaim exactly once.
	PopRelease(Slot)

	// Pop copies the oldest record into dst and releases its slot
	// (non-blocking).
	// Returns ErrInvalidArgument if len(dst) exceeds the slot size,
	// ErrWouldBlock if the ring is empty.
	Pop(dst []byte) error
}

// QueueOf is the combined producer-consumer interface for typed queues.
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
type QueueOf[T any] interface {
	ProducerOf[T]
	ConsumerOf[T]
	Cap() int
}

// ProducerOf is the interface for enqueueing typed elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type ProducerOf[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full.
	Enqueue(elem *T) error
}

// ConsumerOf is the interface for dequeueing typed elements.
//
// The element is returned by value. The vacated slot is cleared to allow
// garbage collection of referenced objects.
type ConsumerOf[T any] interface {
	// Dequeue removes and returns an element from the queue (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}
