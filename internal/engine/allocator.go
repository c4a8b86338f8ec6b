package engine

import (
	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/shopspring/decimal"
)

// affordablePlaces is the precision of the quantity a venue's quote balance
// can cover at a price. The quotient is truncated, never rounded up.
const affordablePlaces int32 = 16

// Allocation is the state left by one pass of the allocator.
type Allocation struct {
	Fills     []domain.Fill
	Remaining decimal.Decimal
	TotalFlow decimal.Decimal  // sum of unrounded fill costs
	Balances  []domain.Balance // working balances, indexed like the snapshot
}

// Allocate walks the ranked candidates once, filling as much of requested
// as each venue's balance and each order's size permit. It works on a copy
// of the venues' balances; venues is never modified.
//
// A candidate the venue cannot afford (buy) or deliver (sell) is skipped and
// the walk continues. The walk stops when nothing remains or the candidates
// are exhausted.
func Allocate(side domain.Side, requested decimal.Decimal, venues []domain.Venue, ranked []Candidate) *Allocation {
	// decimal.Decimal is immutable, so copying the struct copies the balance.
	balances := make([]domain.Balance, len(venues))
	for i, v := range venues {
		balances[i] = v.Balance
	}

	alloc := &Allocation{
		Fills:     make([]domain.Fill, 0),
		Remaining: requested,
		TotalFlow: decimal.Zero,
		Balances:  balances,
	}

	for _, c := range ranked {
		if !alloc.Remaining.IsPositive() {
			break
		}

		bal := &alloc.Balances[c.VenueIndex]
		price := c.Order.Price

		var affordable decimal.Decimal
		if side == domain.SideBuy {
			affordable, _ = bal.Quote.QuoRem(price, affordablePlaces)
		} else {
			affordable = bal.Asset
		}

		fillQty := decimal.Min(alloc.Remaining, c.Order.Quantity, affordable)
		if !fillQty.IsPositive() {
			continue
		}

		cost := fillQty.Mul(price)
		if side == domain.SideBuy {
			if cost.GreaterThan(bal.Quote) {
				continue
			}
			bal.Quote = bal.Quote.Sub(cost)
			bal.Asset = bal.Asset.Add(fillQty)
		} else {
			bal.Asset = bal.Asset.Sub(fillQty)
			bal.Quote = bal.Quote.Add(cost)
		}

		alloc.Remaining = alloc.Remaining.Sub(fillQty)
		alloc.TotalFlow = alloc.TotalFlow.Add(cost)
		alloc.Fills = append(alloc.Fills, domain.Fill{
			VenueID:  c.VenueID,
			Side:     side,
			Quantity: fillQty,
			Price:    domain.RoundPrice(price),
			Cost:     domain.RoundPrice(cost),
		})
	}

	return alloc
}
