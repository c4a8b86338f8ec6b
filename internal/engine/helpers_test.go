package engine

import (
	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// order builds an order from a quantity and a price.
func order(side domain.Side, qty, price string) domain.Order {
	return domain.Order{
		Side:     side,
		Kind:     domain.OrderKindLimit,
		Quantity: dec(qty),
		Price:    dec(price),
	}
}

func ask(qty, price string) domain.Order { return order(domain.SideSell, qty, price) }
func bid(qty, price string) domain.Order { return order(domain.SideBuy, qty, price) }

// venue builds a venue with the given balances and book sides.
func venue(id, quote, asset string, bids, asks []domain.Order) domain.Venue {
	return domain.Venue{
		ID: id,
		Balance: domain.Balance{
			Quote: dec(quote),
			Asset: dec(asset),
		},
		Book: &domain.OrderBook{
			Bids: bids,
			Asks: asks,
		},
	}
}

func sumFillQuantities(fills []domain.Fill) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fills {
		total = total.Add(f.Quantity)
	}
	return total
}
