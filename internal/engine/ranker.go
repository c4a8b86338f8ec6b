package engine

import (
	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/google/btree"
)

// buyLess orders candidates for a buy: price ascending (cheapest first),
// then aggregation order.
func buyLess(a, b Candidate) bool {
	if c := a.Order.Price.Cmp(b.Order.Price); c != 0 {
		return c < 0
	}
	return a.Seq < b.Seq
}

// sellLess orders candidates for a sell: price descending (most valuable
// first), then aggregation order.
func sellLess(a, b Candidate) bool {
	if c := a.Order.Price.Cmp(b.Order.Price); c != 0 {
		return c > 0
	}
	return a.Seq < b.Seq
}

// Rank returns the candidates in the order the allocator visits them.
// Equal prices keep their aggregation order, so ranking is stable and the
// same snapshot always yields the same sequence. The input is not modified.
func Rank(side domain.Side, candidates []Candidate) []Candidate {
	const degree = 32

	less := buyLess
	if side == domain.SideSell {
		less = sellLess
	}

	tree := btree.NewG[Candidate](degree, less)
	for _, c := range candidates {
		tree.ReplaceOrInsert(c)
	}

	ranked := make([]Candidate, 0, tree.Len())
	tree.Ascend(func(c Candidate) bool {
		ranked = append(ranked, c)
		return true
	})
	return ranked
}
