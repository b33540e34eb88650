// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"code.hybscloud.com/ringbuf"
)

// =============================================================================
// Creation - Geometry Validation
// =============================================================================

// TestCreateRejectsBadCapacity tests that non-power-of-two and out-of-range
// capacities are rejected. Capacity is not rounded up.
func TestCreateRejectsBadCapacity(t *testing.T) {
	bad := []int{-1, 0, 1, 3, 5, 6, 7, 9, 12, 100, 1000, 1<<31 - 1}

	for _, c := range bad {
		if _, err := ringbuf.NewSPSC(c, 8); !errors.Is(err, ringbuf.ErrInvalidArgument) {
			t.Errorf("NewSPSC(%d, 8): got %v, want ErrInvalidArgument", c, err)
		}
		if _, err := ringbuf.NewMPMC(c, 8); !errors.Is(err, ringbuf.ErrInvalidArgument) {
			t.Errorf("NewMPMC(%d, 8): got %v, want ErrInvalidArgument", c, err)
		}
		if _, err := ringbuf.NewSPSCOf[int](c); !errors.Is(err, ringbuf.ErrInvalidArgument) {
			t.Errorf("NewSPSCOf(%d): got %v, want ErrInvalidArgument", c, err)
		}
		if _, err := ringbuf.NewMPMCOf[int](c); !errors.Is(err, ringbuf.ErrInvalidArgument) {
			t.Errorf("NewMPMCOf(%d): got %v, want ErrInvalidArgument", c, err)
		}
	}
}

// TestCreateRejectsBadSlotSize tests that non-positive slot sizes are rejected.
func TestCreateRejectsBadSlotSize(t *testing.T) {
	for _, sz := range []int{0, -1} {
		if _, err := ringbuf.NewSPSC(8, sz); !errors.Is(err, ringbuf.ErrInvalidArgument) {
			t.Errorf("NewSPSC(8, %d): got %v, want ErrInvalidArgument", sz, err)
		}
		if _, err := ringbuf.NewMPMC(8, sz); !errors.Is(err, ringbuf.ErrInvalidArgument) {
			t.Errorf("NewMPMC(8, %d): got %v, want ErrInvalidArgument", sz, err)
		}
	}
}

// TestCreateAcceptsPowerOfTwo tests the legal capacity range, including the
// smallest legal capacity of 2.
func TestCreateAcceptsPowerOfTwo(t *testing.T) {
	for _, c := range []int{2, 4, 8, 64, 1024} {
		r, err := ringbuf.NewMPMC(c, 16)
		if err != nil {
			t.Fatalf("NewMPMC(%d, 16): %v", c, err)
		}
		if r.Cap() != c {
			t.Fatalf("Cap: got %d, want %d", r.Cap(), c)
		}
		if r.SlotSize() != 16 {
			t.Fatalf("SlotSize: got %d, want 16", r.SlotSize())
		}
		if err := r.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
}

// =============================================================================
// Byte Rings - Basic Operations
// =============================================================================

// TestSPSCBasic tests FIFO order and full/empty signaling via Push/Pop.
func TestSPSCBasic(t *testing.T) {
	r, err := ringbuf.NewSPSC(4, 8)
	if err != nil {
		t.Fatalf("NewSPSC: %v", err)
	}
	defer r.Close()

	rec := make([]byte, 8)
	for i := range 4 {
		binary.LittleEndian.PutUint64(rec, uint64(i+100))
		if err := r.Push(rec); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	// Full ring returns ErrWouldBlock
	if err := r.Push(rec); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Push on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		if err := r.Pop(rec); err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if got := binary.LittleEndian.Uint64(rec); got != uint64(i+100) {
			t.Fatalf("Pop(%d): got %d, want %d", i, got, i+100)
		}
	}

	// Empty ring returns ErrWouldBlock
	if err := r.Pop(rec); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestMPMCBasic tests FIFO order and full/empty signaling via Push/Pop.
func TestMPMCBasic(t *testing.T) {
	r, err := ringbuf.NewMPMC(4, 8)
	if err != nil {
		t.Fatalf("NewMPMC: %v", err)
	}
	defer r.Close()

	rec := make([]byte, 8)
	for i := range 4 {
		binary.LittleEndian.PutUint64(rec, uint64(i+100))
		if err := r.Push(rec); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	if err := r.Push(rec); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Push on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		if err := r.Pop(rec); err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if got := binary.LittleEndian.Uint64(rec); got != uint64(i+100) {
			t.Fatalf("Pop(%d): got %d, want %d", i, got, i+100)
		}
	}

	if err := r.Pop(rec); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestFullnessBoundary tests that exactly capacity pushes succeed before the
// first full signal, and a single pop re-enables exactly one push.
func TestFullnessBoundary(t *testing.T) {
	newRings := map[string]func() (ringbuf.Ring, error){
		"SPSC": func() (ringbuf.Ring, error) { return ringbuf.NewSPSC(4, 8) },
		"MPMC": func() (ringbuf.Ring, error) { return ringbuf.NewMPMC(4, 8) },
	}

	for name, newRing := range newRings {
		t.Run(name, func(t *testing.T) {
			r, err := newRing()
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			defer r.Close()

			rec := make([]byte, 8)
			for i := range 4 {
				if err := r.Push(rec); err != nil {
					t.Fatalf("Push(%d): %v", i, err)
				}
			}
			if err := r.Push(rec); !errors.Is(err, ringbuf.ErrWouldBlock) {
				t.Fatalf("5th Push: got %v, want ErrWouldBlock", err)
			}

			if err := r.Pop(rec); err != nil {
				t.Fatalf("Pop: %v", err)
			}
			if err := r.Push(rec); err != nil {
				t.Fatalf("Push after Pop: %v", err)
			}
			if err := r.Push(rec); !errors.Is(err, ringbuf.ErrWouldBlock) {
				t.Fatalf("Push on refilled: got %v, want ErrWouldBlock", err)
			}
		})
	}
}

// TestEmptinessBoundary tests empty signaling around a single record.
func TestEmptinessBoundary(t *testing.T) {
	r, err := ringbuf.NewMPMC(4, 8)
	if err != nil {
		t.Fatalf("NewMPMC: %v", err)
	}
	defer r.Close()

	rec := make([]byte, 8)
	if err := r.Pop(rec); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}

	binary.LittleEndian.PutUint64(rec, 7777)
	if err := r.Push(rec); err != nil {
		t.Fatalf("Push: %v", err)
	}

	out := make([]byte, 8)
	if err := r.Pop(out); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if got := binary.LittleEndian.Uint64(out); got != 7777 {
		t.Fatalf("Pop: got %d, want 7777", got)
	}

	if err := r.Pop(out); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Pop on drained: got %v, want ErrWouldBlock", err)
	}
}

// =============================================================================
// Claim/Publish Split - In-Place Construction
// =============================================================================

// TestClaimPublish tests zero-copy in-place construction and consumption.
func TestClaimPublish(t *testing.T) {
	r, err := ringbuf.NewSPSC(8, 16)
	if err != nil {
		t.Fatalf("NewSPSC: %v", err)
	}
	defer r.Close()

	for i := range 8 {
		s, err := r.PushClaim()
		if err != nil {
			t.Fatalf("PushClaim(%d): %v", i, err)
		}
		if s.Pos() != uint32(i) {
			t.Fatalf("PushClaim(%d): pos %d", i, s.Pos())
		}
		if len(s.Bytes()) != 16 {
			t.Fatalf("PushClaim(%d): payload len %d, want 16", i, len(s.Bytes()))
		}
		binary.LittleEndian.PutUint64(s.Bytes(), uint64(i))
		binary.LittleEndian.PutUint64(s.Bytes()[8:], uint64(i*31337))
		r.PushPublish(s)
	}

	for i := range 8 {
		s, err := r.PopClaim()
		if err != nil {
			t.Fatalf("PopClaim(%d): %v", i, err)
		}
		if s.Pos() != uint32(i) {
			t.Fatalf("PopClaim(%d): pos %d", i, s.Pos())
		}
		if got := binary.LittleEndian.Uint64(s.Bytes()); got != uint64(i) {
			t.Fatalf("PopClaim(%d): seq %d", i, got)
		}
		if got := binary.LittleEndian.Uint64(s.Bytes()[8:]); got != uint64(i*31337) {
			t.Fatalf("PopClaim(%d): value %d, want %d", i, got, i*31337)
		}
		r.PopRelease(s)
	}
}

// TestClaimWithoutPublishBlocksConsumer tests that an unpublished record
// stays invisible to the consumer, and an unreleased slot keeps the
// producer out once the ring wraps to it.
func TestClaimWithoutPublishBlocksConsumer(t *testing.T) {
	r, err := ringbuf.NewMPMC(2, 8)
	if err != nil {
		t.Fatalf("NewMPMC: %v", err)
	}
	defer r.Close()

	s, err := r.PushClaim()
	if err != nil {
		t.Fatalf("PushClaim: %v", err)
	}

	if _, err := r.PopClaim(); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("PopClaim before publish: got %v, want ErrWouldBlock", err)
	}

	r.PushPublish(s)
	if _, err := r.PopClaim(); err != nil {
		t.Fatalf("PopClaim after publish: %v", err)
	}
	// Slot at position 0 is claimed but not released: after one more push
	// the producer wraps to it and must see the ring as full.
	if err := r.Push(make([]byte, 8)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, err := r.PushClaim(); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("PushClaim on unreleased slot: got %v, want ErrWouldBlock", err)
	}
}

// =============================================================================
// Copy Sizes
// =============================================================================

// TestCopySizeLimits tests that copies longer than the slot are rejected and
// shorter copies move only the requested bytes.
func TestCopySizeLimits(t *testing.T) {
	r, err := ringbuf.NewMPMC(4, 8)
	if err != nil {
		t.Fatalf("NewMPMC: %v", err)
	}
	defer r.Close()

	if err := r.Push(make([]byte, 9)); !errors.Is(err, ringbuf.ErrInvalidArgument) {
		t.Fatalf("Push oversized: got %v, want ErrInvalidArgument", err)
	}
	if err := r.Pop(make([]byte, 9)); !errors.Is(err, ringbuf.ErrInvalidArgument) {
		t.Fatalf("Pop oversized: got %v, want ErrInvalidArgument", err)
	}

	// Short push: only the leading bytes are specified.
	if err := r.Push([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("short Push: %v", err)
	}
	head := make([]byte, 4)
	if err := r.Pop(head); err != nil {
		t.Fatalf("short Pop: %v", err)
	}
	if !bytes.Equal(head, []byte{1, 2, 3, 4}) {
		t.Fatalf("short Pop: got %v", head)
	}

	// Zero-length push publishes a record with unspecified payload.
	if err := r.Push(nil); err != nil {
		t.Fatalf("empty Push: %v", err)
	}
	if err := r.Pop(nil); err != nil {
		t.Fatalf("empty Pop: %v", err)
	}
}

// =============================================================================
// Wrap-Around
// =============================================================================

// TestWrapAroundRounds tests multiple fill/drain cycles over both variants.
func TestWrapAroundRounds(t *testing.T) {
	newRings := map[string]func() (ringbuf.Ring, error){
		"SPSC": func() (ringbuf.Ring, error) { return ringbuf.NewSPSC(4, 8) },
		"MPMC": func() (ringbuf.Ring, error) { return ringbuf.NewMPMC(4, 8) },
	}

	for name, newRing := range newRings {
		t.Run(name, func(t *testing.T) {
			r, err := newRing()
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			defer r.Close()

			rec := make([]byte, 8)
			for round := range 10 {
				for i := range 4 {
					binary.LittleEndian.PutUint64(rec, uint64(round*100+i))
					if err := r.Push(rec); err != nil {
						t.Fatalf("round %d push %d: %v", round, i, err)
					}
				}
				for i := range 4 {
					if err := r.Pop(rec); err != nil {
						t.Fatalf("round %d pop %d: %v", round, i, err)
					}
					if got := binary.LittleEndian.Uint64(rec); got != uint64(round*100+i) {
						t.Fatalf("round %d pop %d: got %d, want %d", round, i, got, round*100+i)
					}
				}
			}
		})
	}
}

// TestCapacityTwoSoak drives the smallest legal ring through many
// sequential push/pop pairs; every payload must round-trip intact.
func TestCapacityTwoSoak(t *testing.T) {
	const pairs = 1_000_000

	r, err := ringbuf.NewSPSC(2, 8)
	if err != nil {
		t.Fatalf("NewSPSC: %v", err)
	}
	defer r.Close()

	in := make([]byte, 8)
	out := make([]byte, 8)
	for i := range pairs {
		binary.LittleEndian.PutUint64(in, uint64(i))
		if err := r.Push(in); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
		if err := r.Pop(out); err != nil {
			t.Fatalf("pop %d: %v", i, err)
		}
		if got := binary.LittleEndian.Uint64(out); got != uint64(i) {
			t.Fatalf("pop %d: got %d", i, got)
		}
	}
}

// =============================================================================
// Typed Queues - Basic Operations
// =============================================================================

// TestSPSCOfBasic tests basic typed SPSC operations.
func TestSPSCOfBasic(t *testing.T) {
	q, err := ringbuf.NewSPSCOf[int](4)
	if err != nil {
		t.Fatalf("NewSPSCOf: %v", err)
	}

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestMPMCOfBasic tests basic typed MPMC operations.
func TestMPMCOfBasic(t *testing.T) {
	q, err := ringbuf.NewMPMCOf[int](4)
	if err != nil {
		t.Fatalf("NewMPMCOf: %v", err)
	}

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestTypedZeroValue tests that the zero value round-trips.
func TestTypedZeroValue(t *testing.T) {
	q, err := ringbuf.NewMPMCOf[int](4)
	if err != nil {
		t.Fatalf("NewMPMCOf: %v", err)
	}
	v := 0
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("enqueue 0: %v", err)
	}
	val, err := q.Dequeue()
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if val != 0 {
		t.Fatalf("got %d, want 0", val)
	}
}

// =============================================================================
// Lifecycle
// =============================================================================

// TestCloseIdempotent tests that Close can be called repeatedly.
func TestCloseIdempotent(t *testing.T) {
	r, err := ringbuf.NewMPMC(4, 8)
	if err != nil {
		t.Fatalf("NewMPMC: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

// =============================================================================
// Interface Compliance
// =============================================================================

func TestRingInterface(t *testing.T) {
	spsc, err := ringbuf.NewSPSC(8, 8)
	if err != nil {
		t.Fatalf("NewSPSC: %v", err)
	}
	mpmc, err := ringbuf.NewMPMC(8, 8)
	if err != nil {
		t.Fatalf("NewMPMC: %v", err)
	}
	var _ ringbuf.Ring = spsc
	var _ ringbuf.Ring = mpmc
	spsc.Close()
	mpmc.Close()
}

func TestQueueOfInterface(t *testing.T) {
	spsc, err := ringbuf.NewSPSCOf[int](8)
	if err != nil {
		t.Fatalf("NewSPSCOf: %v", err)
	}
	mpmc, err := ringbuf.NewMPMCOf[int](8)
	if err != nil {
		t.Fatalf("NewMPMCOf: %v", err)
	}
	var _ ringbuf.QueueOf[int] = spsc
	var _ ringbuf.QueueOf[int] = mpmc
}
