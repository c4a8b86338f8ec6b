package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKindLimit is the only order kind present in venue snapshots.
const OrderKindLimit = "Limit"

// Balance is a venue's holdings of the quote currency and the traded asset.
type Balance struct {
	Quote decimal.Decimal // EUR
	Asset decimal.Decimal // BTC
}

// Order is a resting limit order in a venue's book. Orders are read-only
// inputs; the engine never modifies them.
type Order struct {
	ID       *string    // nil when the snapshot has no id
	Time     *time.Time // nil when the snapshot has no timestamp
	Side     Side
	Kind     string
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// Eligible reports whether the order can be consumed at all: both price and
// quantity must be strictly positive.
func (o Order) Eligible() bool {
	return o.Price.IsPositive() && o.Quantity.IsPositive()
}

// OrderBook holds a venue's bids and asks in the order the snapshot lists them.
type OrderBook struct {
	AcquiredAt time.Time
	Bids       []Order
	Asks       []Order
}

// Side returns the orders a request on the given side consumes: asks for a
// buy, bids for a sell. A nil book has no orders on either side.
func (b *OrderBook) Side(requestSide Side) []Order {
	if b == nil {
		return nil
	}
	if requestSide == SideBuy {
		return b.Asks
	}
	return b.Bids
}

// BestBid returns the highest-priced eligible bid.
func (b *OrderBook) BestBid() (Order, bool) {
	return best(b.Side(SideSell), func(a, c decimal.Decimal) bool { return a.GreaterThan(c) })
}

// BestAsk returns the lowest-priced eligible ask.
func (b *OrderBook) BestAsk() (Order, bool) {
	return best(b.Side(SideBuy), func(a, c decimal.Decimal) bool { return a.LessThan(c) })
}

func best(orders []Order, better func(a, b decimal.Decimal) bool) (Order, bool) {
	var found Order
	ok := false
	for _, o := range orders {
		if !o.Eligible() {
			continue
		}
		if !ok || better(o.Price, found.Price) {
			found = o
			ok = true
		}
	}
	return found, ok
}

// Venue is an independent exchange with its own balances and order book.
type Venue struct {
	ID      string
	Balance Balance
	Book    *OrderBook // nil when the venue published no book
}
