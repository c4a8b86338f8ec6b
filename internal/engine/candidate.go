package engine

import "github.com/efreitasn/metaexchange/internal/domain"

// Candidate is a resting order eligible for allocation, tagged with the
// venue it rests on.
type Candidate struct {
	Seq        int // aggregation order, used as the ranking tie-breaker
	VenueIndex int // position of the venue in the snapshot
	VenueID    string
	Order      domain.Order
}

// Aggregate flattens the side of every venue's book that a request on side
// consumes (asks for a buy, bids for a sell) into one sequence. Venues are
// visited in snapshot order and orders in the order their book lists them.
// Venues without a book contribute nothing, nor do orders with a
// non-positive price or quantity.
func Aggregate(side domain.Side, venues []domain.Venue) []Candidate {
	var candidates []Candidate
	for i, v := range venues {
		for _, o := range v.Book.Side(side) {
			if !o.Eligible() {
				continue
			}
			candidates = append(candidates, Candidate{
				Seq:        len(candidates),
				VenueIndex: i,
				VenueID:    v.ID,
				Order:      o,
			})
		}
	}
	return candidates
}
