// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

// Options configures ring creation and variant selection.
type Options struct {
	// Producer/Consumer constraints (determines ring type)
	singleProducer bool
	singleConsumer bool

	// Geometry (power-of-two capacity, positive slot size)
	capacity int
	slotSize int

	// Slot array backing; HeapAllocator when nil
	alloc Allocator
}

// Builder creates rings with fluent configuration.
//
// The builder selects the variant from the declared producer/consumer
// constraints: both sides single → SPSC, anything else → MPMC. The MPMC
// variant is safe for any number of goroutines per side, so single-sided
// configurations (MPSC, SPMC) get it unchanged.
//
// Example:
//
//	// SPSC ring (optimal for single producer/consumer)
//	r, err := ringbuf.New(1024, 64).SingleProducer().SingleConsumer().Build()
//
//	// MPMC ring over an arena
//	r, err := ringbuf.New(4096, 16).Allocator(arena).Build()
type Builder struct {
	opts Options
}

// New creates a ring builder with the given capacity and slot size.
//
// Capacity must be a power of two in [2, 1<<31]; it is not rounded.
// Geometry is validated at Build, not here.
func New(capacity, slotSize int) *Builder {
	return &Builder{opts: Options{capacity: capacity, slotSize: slotSize}}
}

// SingleProducer declares that only one goroutine will push.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will pop.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Allocator sets the allocator backing the slot array.
// The default is HeapAllocator.
func (b *Builder) Allocator(a Allocator) *Builder {
	b.opts.alloc = a
	return b
}

func (b *Builder) allocator() Allocator {
	if b.opts.alloc == nil {
		return HeapAllocator{}
	}
	return b.opts.alloc
}

// Build creates a Ring with automatic variant selection.
//
// Variant selection:
//
//	SingleProducer + SingleConsumer → SPSC (no CAS on the cursors)
//	Anything else                   → MPMC (CAS claim loop)
//
// Returns ErrInvalidArgument for a bad geometry, ErrOutOfMemory when the
// allocator cannot back the slot array.
func (b *Builder) Build() (Ring, error) {
	if b.opts.singleProducer && b.opts.singleConsumer {
		return newSPSC(b.allocator(), b.opts.capacity, b.opts.slotSize)
	}
	return newMPMC(b.allocator(), b.opts.capacity, b.opts.slotSize)
}

// BuildSPSC creates an SPSC ring with a concrete return type.
// Panics if builder is not configured with SingleProducer().SingleConsumer().
func (b *Builder) BuildSPSC() (*SPSC, error) {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("ringbuf: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return newSPSC(b.allocator(), b.opts.capacity, b.opts.slotSize)
}

// BuildMPMC creates an MPMC ring with a concrete return type.
// Panics if builder has any single-side constraint set.
func (b *Builder) BuildMPMC() (*MPMC, error) {
	if b.opts.singleProducer || b.opts.singleConsumer {
		panic("ringbuf: BuildMPMC requires no constraints")
	}
	return newMPMC(b.allocator(), b.opts.capacity, b.opts.slotSize)
}

// BuildOf creates a typed queue with automatic variant selection.
//
// Typed queues store Go-managed values; the builder's slot size and
// allocator do not apply to them.
func BuildOf[T any](b *Builder) (QueueOf[T], error) {
	if b.opts.singleProducer && b.opts.singleConsumer {
		return NewSPSCOf[T](b.opts.capacity)
	}
	return NewMPMCOf[T](b.opts.capacity)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
