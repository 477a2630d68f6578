// Package pool provides the fixed-capacity storage the hot path allocates
// from: an arena of order nodes for the book (single-threaded, plain
// free-list stack) and a lock-free generic pool for auxiliary objects
// shared across goroutines off the book's hot path.
//
// Grounded on the teacher's sync.Pool-backed pools
// (internal/hft/pools/order_pool.go, internal/common/pool/trading/fast_order_pool.go):
// same Get/Put-style API, with a node reset when Allocate hands it out
// rather than when it is returned, but a fixed-size
// arena instead of sync.Pool, since the book needs a hard capacity and
// O(1) size accounting rather than GC-driven reuse.
package pool

import "github.com/abdoElHodaky/tradsys-core/pkg/types"

// Handle addresses a node inside an OrderNodePool's arena. NilHandle means
// "no node" (an empty prev/next link or an empty free list).
type Handle int32

// NilHandle is the zero-value sentinel for an absent link.
const NilHandle Handle = -1

// OrderNode is an intrusively-linked record: one Order plus the
// forward/back links within its price level, addressed by arena index
// rather than pointer so the whole pool lives in one contiguous slice.
type OrderNode struct {
	Order types.Order
	Prev  Handle
	Next  Handle
}

// OrderNodePool is the book's single-threaded, fixed-block allocator.
// Allocation and deallocation are O(1) pushes/pops of a free-index stack;
// there is no heap traffic once the arena is built, satisfying the
// no-hot-path-allocation requirement.
type OrderNodePool struct {
	arena     []OrderNode
	free      []Handle
	used      int
	highWater int
}

// NewOrderNodePool pre-allocates capacity node slots. capacity must be
// positive; callers are expected to validate this at construction, as the
// pool has no way to grow.
func NewOrderNodePool(capacity int) *OrderNodePool {
	arena := make([]OrderNode, capacity)
	free := make([]Handle, capacity)
	for i := range free {
		// Push in descending order so Allocate hands out index 0 first,
		// matching the arena's natural layout for easier debugging.
		free[i] = Handle(capacity - 1 - i)
	}
	return &OrderNodePool{arena: arena, free: free}
}

// Allocate returns a zero-linked node handle, or (NilHandle, false) when
// the pool is exhausted.
func (p *OrderNodePool) Allocate() (Handle, bool) {
	if len(p.free) == 0 {
		return NilHandle, false
	}
	n := len(p.free) - 1
	h := p.free[n]
	p.free = p.free[:n]
	p.arena[h] = OrderNode{Prev: NilHandle, Next: NilHandle}
	p.used++
	if p.used > p.highWater {
		p.highWater = p.used
	}
	return h, true
}

// Deallocate returns a node to the free stack. Deallocating NilHandle is a
// no-op; the caller (OrderBook) only ever deallocates handles it received
// from Allocate.
func (p *OrderNodePool) Deallocate(h Handle) {
	if h == NilHandle {
		return
	}
	p.free = append(p.free, h)
	p.used--
}

// Node returns a pointer into the arena for in-place mutation. The
// pointer is only valid until the handle is deallocated.
func (p *OrderNodePool) Node(h Handle) *OrderNode {
	return &p.arena[h]
}

// SizeUsed reports the number of currently live allocations.
func (p *OrderNodePool) SizeUsed() int { return p.used }

// Capacity reports the pool's fixed capacity.
func (p *OrderNodePool) Capacity() int { return len(p.arena) }

// HighWaterMark reports the largest SizeUsed ever observed, a diagnostic
// carried forward from the reference pool's allocation tracking.
func (p *OrderNodePool) HighWaterMark() int { return p.highWater }
