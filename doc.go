// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringbuf provides bounded lock-free rings of fixed-size records.
//
// A ring transfers fixed-width byte records between producers and consumers
// by value, without allocation on the hot path and without blocking. Two
// variants cover the common access patterns:
//
//   - SPSC: Single-Producer Single-Consumer (cursor advance, no CAS)
//   - MPMC: Multi-Producer Multi-Consumer (CAS claim loop)
//
// Both run the same per-slot sequence protocol; only the claim routine
// differs. Typed counterparts SPSCOf[T] and MPMCOf[T] carry Go values
// through the identical protocol.
//
// # Quick Start
//
// Direct constructors:
//
//	r, err := ringbuf.NewSPSC(1024, 64)   // 1024 slots, 64-byte records
//	r, err := ringbuf.NewMPMC(4096, 16)
//	q, err := ringbuf.NewMPMCOf[Event](1024)
//
// Builder API selects the variant from declared constraints:
//
//	r, err := ringbuf.New(1024, 64).SingleProducer().SingleConsumer().Build() // → SPSC
//	r, err := ringbuf.New(1024, 64).Build()                                   // → MPMC
//	q, err := ringbuf.BuildOf[Event](ringbuf.New(1024, 0))
//
// Capacity must be a power of two in [2, 1<<31] and is not rounded;
// creation returns ErrInvalidArgument otherwise.
//
// # Claim/Publish
//
// The primary API is the claim/publish split. A producer claims a slot,
// constructs the record in place inside the ring's own memory, then
// publishes; a consumer claims, reads in place, then releases. Records
// never cross an intermediate buffer:
//
//	s, err := r.PushClaim()
//	if err == nil {
//	    binary.LittleEndian.PutUint64(s.Bytes(), value)
//	    r.PushPublish(s)
//	}
//
//	s, err := r.PopClaim()
//	if err == nil {
//	    value := binary.LittleEndian.Uint64(s.Bytes())
//	    r.PopRelease(s)
//	}
//
// Push and Pop are strict copy-in/copy-out compositions of the pair, for
// callers that prefer a one-call surface.
//
// Every successful claim must be matched by exactly one publish/release on
// the same ring. Double publish, publish without claim, and use of a Slot
// after publish/release are undefined behavior.
//
// # Sequence Protocol
//
// Each slot carries a 32-bit generation counter. For the slot indexed by
// position p:
//
//	seq == p            empty, claimable by the producer at p
//	seq == p + 1        filled, claimable by the consumer at p
//	seq == p + capacity empty again, for the next trip around the ring
//
// Fullness and emptiness are derived from the signed difference between
// the slot's counter and the claiming cursor — negative means the
// counterparty has not caught up (full on push, empty on pop). The head
// and tail cursors are never compared against each other; they are hints,
// and payload visibility is carried entirely by the acquire load on claim
// paired with the release store on publish/release.
//
// Positions are free-running 32-bit counters. Wrap-around is harmless
// because only counter differences are inspected, under modular
// arithmetic; a slot's generation advances by the full capacity per trip,
// which rules out ABA for any realistic execution window.
//
// # Common Patterns
//
// Pipeline stage (SPSC):
//
//	r, _ := ringbuf.NewSPSC(1024, recordSize)
//
//	go func() { // Producer (Stage 1)
//	    backoff := iox.Backoff{}
//	    for rec := range input {
//	        for r.Push(rec) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() { // Consumer (Stage 2)
//	    backoff := iox.Backoff{}
//	    rec := make([]byte, recordSize)
//	    for {
//	        if err := r.Pop(rec); err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(rec)
//	    }
//	}()
//
// Worker pool (MPMC):
//
//	r, _ := ringbuf.NewMPMC(4096, jobSize)
//
//	for range numWorkers {
//	    go func() {
//	        job := make([]byte, jobSize)
//	        for {
//	            if err := r.Pop(job); err == nil {
//	                run(job)
//	            }
//	        }
//	    }()
//	}
//
//	// Submit from any goroutine
//	func Submit(job []byte) error {
//	    return r.Push(job)
//	}
//
// # Memory Backing
//
// The slot array is a single allocation obtained through the Allocator
// interface. HeapAllocator (the default) backs rings with the Go heap.
// Arena bump-allocates several rings from one region and releases them
// together:
//
//	arena := ringbuf.NewArena(1 << 20)
//	a, _ := ringbuf.New(1024, 32).Allocator(arena).Build()
//	b, _ := ringbuf.New(512, 128).Allocator(arena).Build()
//	...
//	a.Close()
//	b.Close()
//	arena.Reset()
//
// Close returns the slot array to the allocator and is idempotent. Typed
// queues store Go-managed values and take no allocator.
//
// # Error Handling
//
// Rings return [ErrWouldBlock] when an operation cannot proceed. The error
// is sourced from [code.hybscloud.com/iox] for ecosystem consistency and
// is flow control, not failure:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := r.Push(rec)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !ringbuf.IsWouldBlock(err) {
//	        return err // Unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// Creation reports [ErrInvalidArgument] for a bad geometry and
// [ErrOutOfMemory] when the allocator cannot back the slot array. A nil
// allocator is not an error: the builder substitutes HeapAllocator. Push/Pop report ErrInvalidArgument for copy lengths exceeding the
// slot size.
//
// The ring itself never logs, never blocks, and never retries internally;
// callers choose their own discipline (spin, yield, backoff) on
// would-block returns.
//
// # Ordering Guarantees
//
//   - Global FIFO: successful pop claims yield positions 0, 1, 2, ... in
//     claim order across all consumers.
//   - Per-position integrity: the consumer at position p observes exactly
//     the bytes written by the producer at position p.
//   - No ordering is implied between distinct positions' payloads beyond
//     the per-position pair.
//
// # Thread Safety
//
// All operations are safe within their variant's access pattern: SPSC
// permits one producer goroutine and one consumer goroutine, MPMC any
// number of either. Violating the SPSC constraint causes undefined
// behavior including data corruption.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before relationships
// established through atomic acquire/release orderings on separate
// variables, and reports false positives on the payload bytes guarded by
// the slot sequence counters. Tests incompatible with race detection are
// skipped via the build-tagged RaceEnabled constant.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions.
package ringbuf
