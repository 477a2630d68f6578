// Package book implements the limit order book: price-level doubly-linked
// lists for time priority, O(1) order lookup via an order index, and
// incrementally maintained best-bid/best-ask pointers.
//
// Grounded on the reference lumina::OrderBook (original_source/src/order_book.cpp,
// original_source/include/lumina/order_book.hpp), restructured per the
// re-architecture guidance to use pool handles instead of raw pointers for
// intrusive links, and on the teacher's container/heap-based best-price
// tracking (internal/core/matching/order_book.go) for the general shape of
// an OrderBook type with a logger and per-side storage — though levels
// here are looked up by price map rather than a heap, matching the
// reference's own update_best linear scan; the contract only requires
// correctness of the best pointer (I3), not a particular complexity.
//
// OrderBook is intentionally not internally synchronized: spec §5 assigns
// it exclusively to one "MD producer" thread. Concurrent callers from
// other goroutines are unsupported; readers must go through the
// market-data ring instead of touching the book directly.
package book

import (
	"go.uber.org/zap"

	"github.com/abdoElHodaky/tradsys-core/internal/errcode"
	"github.com/abdoElHodaky/tradsys-core/internal/pool"
	"github.com/abdoElHodaky/tradsys-core/pkg/types"
)

// priceLevel is a FIFO queue of orders resting at one price, plus the
// incremental total quantity resting there.
type priceLevel struct {
	price    types.Price
	totalQty types.Qty
	head     pool.Handle
	tail     pool.Handle
}

// OrderBook owns every resting order for one symbol: two price->level
// maps (one per side), an order-ID index, and a fixed-capacity node pool.
type OrderBook struct {
	pool *pool.OrderNodePool

	bidLevels map[types.Price]*priceLevel
	askLevels map[types.Price]*priceLevel
	orderIdx  map[types.OrderID]pool.Handle

	bestBid *priceLevel
	bestAsk *priceLevel

	bidVolume types.Qty
	askVolume types.Qty

	logger *zap.Logger
}

// DefaultMaxOrders is the pool capacity used when callers don't specify
// one, matching spec §6's construction default.
const DefaultMaxOrders = 1 << 20

// New builds an OrderBook with a pool of the given capacity. maxOrders
// must be positive; zero or negative is a construction-time error.
func New(maxOrders int, logger *zap.Logger) (*OrderBook, error) {
	if maxOrders <= 0 {
		return nil, errcode.New(errcode.InvalidConfiguration, "max_orders must be positive, got %d", maxOrders)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderBook{
		pool:      pool.NewOrderNodePool(maxOrders),
		bidLevels: make(map[types.Price]*priceLevel),
		askLevels: make(map[types.Price]*priceLevel),
		orderIdx:  make(map[types.OrderID]pool.Handle),
		logger:    logger,
	}, nil
}

func (b *OrderBook) levelsFor(side types.Side) map[types.Price]*priceLevel {
	if side == types.Buy {
		return b.bidLevels
	}
	return b.askLevels
}

func (b *OrderBook) getOrCreateLevel(price types.Price, side types.Side) *priceLevel {
	levels := b.levelsFor(side)
	if lvl, ok := levels[price]; ok {
		return lvl
	}
	lvl := &priceLevel{price: price, head: pool.NilHandle, tail: pool.NilHandle}
	levels[price] = lvl
	return lvl
}

// recomputeBest scans the remaining levels on one side after the current
// best was removed. O(n-levels); the reference implementation does the
// same via std::max_element/min_element.
func (b *OrderBook) recomputeBest(side types.Side) {
	levels := b.levelsFor(side)
	if len(levels) == 0 {
		if side == types.Buy {
			b.bestBid = nil
		} else {
			b.bestAsk = nil
		}
		return
	}
	var best *priceLevel
	for _, lvl := range levels {
		if best == nil {
			best = lvl
			continue
		}
		if side == types.Buy && lvl.price > best.price {
			best = lvl
		} else if side == types.Sell && lvl.price < best.price {
			best = lvl
		}
	}
	if side == types.Buy {
		b.bestBid = best
	} else {
		b.bestAsk = best
	}
}

func (b *OrderBook) maybeImproveBest(lvl *priceLevel, side types.Side) {
	if side == types.Buy {
		if b.bestBid == nil || lvl.price > b.bestBid.price {
			b.bestBid = lvl
		}
		return
	}
	if b.bestAsk == nil || lvl.price < b.bestAsk.price {
		b.bestAsk = lvl
	}
}

// removeLevelIfEmpty erases an exhausted level from its side's map and
// recomputes the cached best if the removed level was it.
func (b *OrderBook) removeLevelIfEmpty(lvl *priceLevel, side types.Side) {
	if lvl == nil || lvl.totalQty > 0 {
		return
	}
	delete(b.levelsFor(side), lvl.price)
	if (side == types.Buy && b.bestBid == lvl) || (side == types.Sell && b.bestAsk == lvl) {
		b.recomputeBest(side)
	}
}

// AddOrder rests a new order. It returns false on a duplicate ID or pool
// exhaustion; it never auto-matches against the opposite side — crossing
// is exclusively the caller's responsibility via Match.
func (b *OrderBook) AddOrder(id types.OrderID, price types.Price, qty types.Qty, side types.Side) bool {
	if qty <= 0 {
		return false
	}
	if _, exists := b.orderIdx[id]; exists {
		return false
	}
	h, ok := b.pool.Allocate()
	if !ok {
		b.logger.Warn("order pool exhausted", zap.Int("capacity", b.pool.Capacity()))
		return false
	}
	node := b.pool.Node(h)
	node.Order = types.Order{ID: id, Price: price, Qty: qty, Side: side}

	lvl := b.getOrCreateLevel(price, side)
	node.Prev = lvl.tail
	node.Next = pool.NilHandle
	if lvl.tail != pool.NilHandle {
		b.pool.Node(lvl.tail).Next = h
	} else {
		lvl.head = h
	}
	lvl.tail = h
	lvl.totalQty += qty

	b.orderIdx[id] = h
	if side == types.Buy {
		b.bidVolume += qty
	} else {
		b.askVolume += qty
	}
	b.maybeImproveBest(lvl, side)
	return true
}

// unlinkNode removes a node from its level's FIFO list without touching
// level totals, volumes, or the order index — callers update those.
func (b *OrderBook) unlinkNode(h pool.Handle, lvl *priceLevel) {
	node := b.pool.Node(h)
	if node.Prev != pool.NilHandle {
		b.pool.Node(node.Prev).Next = node.Next
	} else {
		lvl.head = node.Next
	}
	if node.Next != pool.NilHandle {
		b.pool.Node(node.Next).Prev = node.Prev
	} else {
		lvl.tail = node.Prev
	}
}

// CancelOrder removes a resting order. Missing IDs are silently ignored
// (idempotent).
func (b *OrderBook) CancelOrder(id types.OrderID) {
	h, exists := b.orderIdx[id]
	if !exists {
		return
	}
	node := b.pool.Node(h)
	side := node.Order.Side
	price := node.Order.Price
	qty := node.Order.Qty

	lvl, ok := b.levelsFor(side)[price]
	if !ok {
		// Invariant violation guard: an indexed order must belong to a
		// live level. Treat as already gone rather than corrupt state.
		delete(b.orderIdx, id)
		return
	}
	b.unlinkNode(h, lvl)
	lvl.totalQty -= qty
	if side == types.Buy {
		b.bidVolume -= qty
	} else {
		b.askVolume -= qty
	}
	delete(b.orderIdx, id)
	b.pool.Deallocate(h)
	b.removeLevelIfEmpty(lvl, side)
}

// CancelOrderWithHint is equivalent to CancelOrder(id); price and side are
// advisory only and are not validated against the order index.
func (b *OrderBook) CancelOrderWithHint(id types.OrderID, _ types.Price, _ types.Side) {
	b.CancelOrder(id)
}

// Match walks the opposite side's best price level inward, consuming
// resting quantity in FIFO order within each level, until qty is
// exhausted or the opposite book empties. It appends one Trade per
// resting order touched and returns the total quantity filled.
//
// For Match(Buy, ...) the walk is over ask-side levels from best_ask
// upward; emptied ask levels are removed and best_ask recomputed. Match
// (Sell, ...) mirrors this over the bid side. (This is the corrected
// symmetry: the opposite side is always walked and its own levels are
// the ones removed, never the aggressor's side.)
func (b *OrderBook) Match(side types.Side, qty types.Qty, fills *[]types.Trade) types.Qty {
	opposite := side.Opposite()
	var filled types.Qty

	for qty > 0 {
		lvl := b.bestOf(opposite)
		if lvl == nil {
			break
		}
		node := lvl.head
		for node != pool.NilHandle && qty > 0 {
			n := b.pool.Node(node)
			fillQty := n.Order.Qty
			if qty < fillQty {
				fillQty = qty
			}
			*fills = append(*fills, types.Trade{
				RestingID: n.Order.ID,
				Price:     lvl.price,
				Qty:       fillQty,
			})
			n.Order.Qty -= fillQty
			lvl.totalQty -= fillQty
			if opposite == types.Buy {
				b.bidVolume -= fillQty
			} else {
				b.askVolume -= fillQty
			}
			qty -= fillQty
			filled += fillQty

			if n.Order.Qty == 0 {
				next := n.Next
				b.unlinkNode(node, lvl)
				delete(b.orderIdx, n.Order.ID)
				b.pool.Deallocate(node)
				node = next
			} else {
				node = n.Next
			}
		}
		b.removeLevelIfEmpty(lvl, opposite)
	}
	return filled
}

func (b *OrderBook) bestOf(side types.Side) *priceLevel {
	if side == types.Buy {
		return b.bestBid
	}
	return b.bestAsk
}

// BestBid returns the best bid price, or 0 if the bid side is empty.
func (b *OrderBook) BestBid() types.Price {
	if b.bestBid == nil {
		return 0
	}
	return b.bestBid.price
}

// BestAsk returns the best ask price, or 0 if the ask side is empty.
func (b *OrderBook) BestAsk() types.Price {
	if b.bestAsk == nil {
		return 0
	}
	return b.bestAsk.price
}

// MidPrice returns the integer-truncated mean of best bid and best ask.
// If one side is empty it returns the other; if both are empty it
// returns 0.
func (b *OrderBook) MidPrice() types.Price {
	bid, ask := b.BestBid(), b.BestAsk()
	if bid == 0 && ask == 0 {
		return 0
	}
	if bid == 0 {
		return ask
	}
	if ask == 0 {
		return bid
	}
	return (bid + ask) / 2
}

// BidVolume returns the total resting quantity on the bid side. O(1): the
// total is maintained incrementally on every add/cancel/match, per spec
// §9's recommendation rather than scanning levels on each call.
func (b *OrderBook) BidVolume() types.Qty { return b.bidVolume }

// AskVolume returns the total resting quantity on the ask side. O(1), see
// BidVolume.
func (b *OrderBook) AskVolume() types.Qty { return b.askVolume }

// GetBidAskVolumes fills both side totals in one call.
func (b *OrderBook) GetBidAskVolumes(outBid, outAsk *types.Qty) {
	*outBid = b.bidVolume
	*outAsk = b.askVolume
}

// BestBidLevel returns a snapshot of the best bid level, or the zero
// value if the bid side is empty.
func (b *OrderBook) BestBidLevel() types.BookLevel {
	if b.bestBid == nil {
		return types.BookLevel{}
	}
	return types.BookLevel{Price: b.bestBid.price, TotalQty: b.bestBid.totalQty}
}

// BestAskLevel returns a snapshot of the best ask level, or the zero
// value if the ask side is empty.
func (b *OrderBook) BestAskLevel() types.BookLevel {
	if b.bestAsk == nil {
		return types.BookLevel{}
	}
	return types.BookLevel{Price: b.bestAsk.price, TotalQty: b.bestAsk.totalQty}
}

// PoolUsed reports the number of order nodes currently allocated, for
// metrics export.
func (b *OrderBook) PoolUsed() int { return b.pool.SizeUsed() }

// PoolCapacity reports the fixed order-node pool capacity.
func (b *OrderBook) PoolCapacity() int { return b.pool.Capacity() }
