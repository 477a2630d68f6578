package ring

import "sync/atomic"

// mpmcSlot holds one ring element plus the sequence counter that encodes
// its phase: writable when seq == claimed index, readable when
// seq == index+1, writable again (next lap) when seq == index+Size.
type mpmcSlot[T any] struct {
	seq atomic.Uint64
	val T
}

// MPMC is a multi-producer/multi-consumer bounded ring buffer. Any number
// of goroutines may call TryPush or TryPop concurrently.
//
// Unlike the reference implementation's fetch-add-then-rollback-on-full
// producer path, this ring claims a slot with a CAS on writePos only
// after confirming the target slot is actually writable, per the
// re-architecture guidance: failed claims simply retry instead of
// perturbing a shared counter, which keeps progress ordering clean at the
// cost of a compare-and-swap loop instead of a single fetch-add.
type MPMC[T any] struct {
	slots    []mpmcSlot[T]
	mask     uint64
	writePos paddedCounter
	readPos  paddedCounter
}

// NewMPMC builds a ring of the given capacity, which must be a power of
// two; violating that is a construction-time programming error and
// panics.
func NewMPMC[T any](capacity uint64) *MPMC[T] {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a power of two")
	}
	r := &MPMC[T]{
		slots: make([]mpmcSlot[T], capacity),
		mask:  capacity - 1,
	}
	for i := range r.slots {
		r.slots[i].seq.Store(uint64(i))
	}
	return r
}

// TryPush appends v. It fails only when the ring is full.
func (r *MPMC[T]) TryPush(v T) bool {
	for {
		pos := r.writePos.v.Load()
		slot := &r.slots[pos&r.mask]
		seq := slot.seq.Load()
		switch {
		case seq == pos:
			if r.writePos.v.CompareAndSwap(pos, pos+1) {
				slot.val = v
				slot.seq.Store(pos + 1)
				return true
			}
			// Lost the race to claim this index; retry.
		case seq < pos:
			return false // full: this slot hasn't been consumed yet
		default:
			// Another producer has already advanced writePos past what we
			// read; reread and retry.
		}
	}
}

// TryPop removes one element into out. It fails only when the ring is
// empty.
func (r *MPMC[T]) TryPop(out *T) bool {
	capacity := uint64(len(r.slots))
	for {
		pos := r.readPos.v.Load()
		slot := &r.slots[pos&r.mask]
		seq := slot.seq.Load()
		switch {
		case seq == pos+1:
			if r.readPos.v.CompareAndSwap(pos, pos+1) {
				*out = slot.val
				slot.seq.Store(pos + capacity)
				return true
			}
		case seq < pos+1:
			return false // empty: this slot hasn't been produced into yet
		default:
			// Another consumer has already advanced readPos; reread.
		}
	}
}

// Size reports an instantaneous, possibly stale estimate of queue depth;
// concurrent producers/consumers make an exact count meaningless.
func (r *MPMC[T]) Size() uint64 {
	w := r.writePos.v.Load()
	rd := r.readPos.v.Load()
	if w < rd {
		return 0
	}
	return w - rd
}

// Capacity reports the ring's fixed size.
func (r *MPMC[T]) Capacity() int { return len(r.slots) }
