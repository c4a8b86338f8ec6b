package engine

import (
	"fmt"

	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize aggregates an allocation into the execution result for req and
// classifies it. A partial fill is reported with Success false and Outcome
// partial; its fills and summary are kept.
func Summarize(req domain.ExecutionRequest, alloc *Allocation) domain.ExecutionResult {
	filled := req.Quantity.Sub(alloc.Remaining)

	avg := decimal.Zero
	if filled.IsPositive() {
		avg = alloc.TotalFlow.Div(filled)
	}

	result := domain.ExecutionResult{
		Request: req,
		Fills:   alloc.Fills,
		Summary: domain.ExecutionSummary{
			FilledQuantity: domain.RoundQuantity(filled),
			TotalFlow:      domain.RoundPrice(alloc.TotalFlow),
			AveragePrice:   avg,
		},
	}

	switch {
	case !alloc.Remaining.IsPositive():
		result.Success = true
		result.Outcome = domain.OutcomeFilled
	case alloc.Remaining.Equal(req.Quantity):
		result.Outcome = domain.OutcomeUnfilled
		result.Message = domain.MsgUnfilled
	default:
		verb := "acquired"
		if req.Side == domain.SideSell {
			verb = "sold"
		}
		result.Outcome = domain.OutcomePartial
		result.Message = fmt.Sprintf("Could only fulfill the order partially. only %sBTC %s.",
			result.Summary.FilledQuantity.String(), verb)
	}

	return result
}
