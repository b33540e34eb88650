// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For PushClaim/Push: the ring is full (backpressure)
// For PopClaim/Pop: the ring is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or yield) rather than propagating
// the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := r.Push(record)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if ringbuf.IsWouldBlock(err) {
//	        backoff.Wait()  // Adaptive backpressure
//	        continue
//	    }
//	    return err  // Unexpected error
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrInvalidArgument reports a constructor or copy argument that violates
// the ring's contract: capacity not a power of two, capacity out of range,
// a slot size that is not positive, or a copy length exceeding the slot size.
// A nil allocator is not rejected: Builder.Allocator(nil) selects
// HeapAllocator.
//
// ErrInvalidArgument is distinct from ErrWouldBlock: it is a rejected call,
// not backpressure.
var ErrInvalidArgument = errors.New("ringbuf: invalid argument")

// ErrOutOfMemory indicates the allocator could not back the slot array.
// The ring is left unusable; retry creation with a different allocator
// or a smaller geometry.
var ErrOutOfMemory = errors.New("ringbuf: out of memory")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil or ErrWouldBlock.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
