package domain

import "github.com/shopspring/decimal"

// Outcome classifies how an execution run ended.
type Outcome string

const (
	OutcomeFilled          Outcome = "filled"
	OutcomePartial         Outcome = "partial"
	OutcomeUnfilled        Outcome = "unfilled"
	OutcomeInvalidSide     Outcome = "invalid_side"
	OutcomeInvalidQuantity Outcome = "invalid_quantity"
	OutcomeNoVenues        Outcome = "no_venues"
	OutcomeNoLiquidity     Outcome = "no_liquidity"
	OutcomeTooManyOrders   Outcome = "too_many_orders"
)

// Result messages. The partial-fill message is built by the summarizer
// because it reports the filled quantity.
const (
	MsgInvalidSide     = "Order type must be either 'buy' or 'sell'."
	MsgInvalidQuantity = "Invalid BTC amount requested."
	MsgNoVenues        = "No exchanges available."
	MsgNoAsks          = "No asks available."
	MsgNoBids          = "No bids available."
	MsgUnfilled        = "Could not fulfill the order."
	MsgTooManyOrders   = "Order book snapshot exceeds the candidate limit."
)

// ExecutionRequest asks to buy or sell a fixed quantity of the asset.
type ExecutionRequest struct {
	Side     Side
	Quantity decimal.Decimal
}

// Fill is one committed execution against a single order at a single venue.
// Price and Cost are rounded to 2 decimal places.
type Fill struct {
	VenueID  string
	Side     Side
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Cost     decimal.Decimal // quote-currency cost (buy) or proceeds (sell)
}

// ExecutionSummary aggregates the fills of a run. FilledQuantity is rounded to
// 8 decimal places and TotalFlow to 2; AveragePrice is computed from the
// unrounded totals and left unrounded.
type ExecutionSummary struct {
	FilledQuantity decimal.Decimal
	TotalFlow      decimal.Decimal
	AveragePrice   decimal.Decimal
}

// ExecutionResult is the outcome of one execution run. Fills are in
// allocation order.
type ExecutionResult struct {
	Request ExecutionRequest
	Fills   []Fill
	Summary ExecutionSummary
	Success bool
	Outcome Outcome
	Message string // empty on full success
}
