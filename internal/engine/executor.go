package engine

import (
	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/shopspring/decimal"
)

// Observer receives the ranked candidate sequence of a run before
// allocation starts. It must not modify the slice.
type Observer func(side domain.Side, ranked []Candidate)

// Executor runs the aggregate, rank, allocate and summarize stages for a
// request against a venue snapshot. It holds no per-run state and is safe
// for concurrent use.
type Executor struct {
	maxCandidates int
	observer      Observer
}

// NewExecutor creates an Executor. Runs whose snapshot yields more than
// maxCandidates eligible orders are rejected; maxCandidates <= 0 disables
// the limit. observer may be nil.
func NewExecutor(maxCandidates int, observer Observer) *Executor {
	return &Executor{
		maxCandidates: maxCandidates,
		observer:      observer,
	}
}

// Execute estimates the best execution of quantity on side against venues.
// Every failure is reported on the result; Execute never panics on bad
// input and never modifies venues.
func (e *Executor) Execute(side domain.Side, quantity decimal.Decimal, venues []domain.Venue) domain.ExecutionResult {
	req := domain.ExecutionRequest{Side: side, Quantity: quantity}

	if !side.Valid() {
		return reject(req, domain.OutcomeInvalidSide, domain.MsgInvalidSide)
	}
	if !quantity.IsPositive() {
		return reject(req, domain.OutcomeInvalidQuantity, domain.MsgInvalidQuantity)
	}
	if len(venues) == 0 {
		return reject(req, domain.OutcomeNoVenues, domain.MsgNoVenues)
	}

	candidates := Aggregate(side, venues)
	if len(candidates) == 0 {
		msg := domain.MsgNoAsks
		if side == domain.SideSell {
			msg = domain.MsgNoBids
		}
		return reject(req, domain.OutcomeNoLiquidity, msg)
	}
	if e.maxCandidates > 0 && len(candidates) > e.maxCandidates {
		return reject(req, domain.OutcomeTooManyOrders, domain.MsgTooManyOrders)
	}

	ranked := Rank(side, candidates)
	if e.observer != nil {
		e.observer(side, ranked)
	}

	alloc := Allocate(side, quantity, venues, ranked)
	return Summarize(req, alloc)
}

// reject builds the result of a run that ended before allocation.
func reject(req domain.ExecutionRequest, outcome domain.Outcome, msg string) domain.ExecutionResult {
	return domain.ExecutionResult{
		Request: req,
		Fills:   make([]domain.Fill, 0),
		Summary: domain.ExecutionSummary{
			FilledQuantity: decimal.Zero,
			TotalFlow:      decimal.Zero,
			AveragePrice:   decimal.Zero,
		},
		Outcome: outcome,
		Message: msg,
	}
}
