package store

import "github.com/fmicoin/market/internal/domain"

// OrderBook holds the resting orders. All resting orders are the same
// side at any point in time: an incoming opposite-side order is matched
// against them before it can rest, so the book only changes side after
// being fully drained.
//
// Matching is strictly first come, first served, so the book is a flat
// FIFO sequence, grown by capacity doubling and compacted from the
// front after a matching pass.
type OrderBook struct {
	orders []domain.Order
}

// NewOrderBook creates an empty OrderBook.
func NewOrderBook() *OrderBook {
	return &OrderBook{}
}

// Load replaces the book's contents with orders read from disk.
func (b *OrderBook) Load(orders []domain.Order) {
	b.orders = orders
}

// Add appends an order at the back of the book, growing backing storage
// by capacity doubling when full.
func (b *OrderBook) Add(o domain.Order) {
	if len(b.orders) == cap(b.orders) {
		grown := make([]domain.Order, len(b.orders), growCapacity(cap(b.orders)))
		copy(grown, b.orders)
		b.orders = grown
	}
	b.orders = append(b.orders, o)
}

// Len returns the number of resting orders.
func (b *OrderBook) Len() int {
	return len(b.orders)
}

// Side returns the side of the resting orders, or false when the book
// is empty.
func (b *OrderBook) Side() (domain.OrderSide, bool) {
	if len(b.orders) == 0 {
		return 0, false
	}
	return b.orders[0].Side, true
}

// At returns the i-th resting order in FIFO position.
func (b *OrderBook) At(i int) domain.Order {
	return b.orders[i]
}

// Reduce subtracts a partially matched amount from the i-th resting
// order. The caller removes the order instead once its remainder falls
// within tolerance of zero; the book never holds zero-quantity orders.
func (b *OrderBook) Reduce(i int, by float64) {
	b.orders[i].CoinAmount -= by
}

// RemoveFront drops the first n orders, shifting the remainder to the
// front in place. Relative order of the survivors is preserved and
// capacity is kept. Used after a matching pass consumes orders in FIFO
// order.
func (b *OrderBook) RemoveFront(n int) {
	if n <= 0 {
		return
	}
	if n >= len(b.orders) {
		b.orders = b.orders[:0]
		return
	}
	remaining := copy(b.orders, b.orders[n:])
	b.orders = b.orders[:remaining]
}

// All returns the resting orders in FIFO position. The returned slice
// is the book's backing storage and must not be modified.
func (b *OrderBook) All() []domain.Order {
	return b.orders
}
