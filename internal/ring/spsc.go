// Package ring implements the two lock-free bounded queues that hand
// market-data events between threads without allocation: a
// single-producer/single-consumer ring for the market-data-handler to
// strategy-engine path, and a multi-producer/multi-consumer ring for
// fan-in paths with several writers.
//
// Grounded on the reference lumina::SPSCRingBuffer/MPMCRingBuffer
// (original_source/include/lumina/ring_buffer.hpp) and, for the MPMC
// redesign, the classic bounded MPMC queue
// (http://www.1024cores.net/home/lock-free-algorithms/queues/bounded-mpmc-queue)
// as implemented in the pack's lock-free ring buffer reference.
package ring

import "sync/atomic"

// cacheLinePadBytes separates hot atomic counters onto distinct cache
// lines so producer and consumer updates don't false-share.
const cacheLinePadBytes = 56

// paddedCounter is a single atomic counter padded to a full cache line.
type paddedCounter struct {
	v atomic.Uint64
	_ [cacheLinePadBytes]byte
}

// SPSC is a single-producer/single-consumer bounded ring buffer. Exactly
// one goroutine may call TryPush and exactly one (possibly different) may
// call TryPop; the ring enforces no locking of its own, relying on that
// external discipline per the core's concurrency model.
type SPSC[T any] struct {
	buf      []T
	mask     uint64
	writePos paddedCounter
	readPos  paddedCounter
}

// NewSPSC builds a ring of the given capacity, which must be a power of
// two. A non-power-of-two capacity is a construction-time programming
// error and panics, matching the core's fatal-only-at-construction error
// policy.
func NewSPSC[T any](capacity uint64) *SPSC[T] {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a power of two")
	}
	return &SPSC[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

// TryPush appends v. It fails only when the ring is full.
func (r *SPSC[T]) TryPush(v T) bool {
	w := r.writePos.v.Load()
	if w-r.readPos.v.Load() >= uint64(len(r.buf)) {
		return false
	}
	r.buf[w&r.mask] = v
	r.writePos.v.Store(w + 1)
	return true
}

// TryPop removes the oldest element into out. It fails only when the ring
// is empty.
func (r *SPSC[T]) TryPop(out *T) bool {
	rd := r.readPos.v.Load()
	if rd >= r.writePos.v.Load() {
		return false
	}
	*out = r.buf[rd&r.mask]
	r.readPos.v.Store(rd + 1)
	return true
}

// Size reports the number of elements currently queued.
func (r *SPSC[T]) Size() uint64 {
	return r.writePos.v.Load() - r.readPos.v.Load()
}

// Empty reports whether the ring currently holds no elements.
func (r *SPSC[T]) Empty() bool { return r.Size() == 0 }

// Capacity reports the ring's fixed size.
func (r *SPSC[T]) Capacity() int { return len(r.buf) }
