package domain

import "github.com/shopspring/decimal"

const (
	// PricePlaces is the precision of fill prices, costs and total flow.
	PricePlaces int32 = 2
	// QuantityPlaces is the precision of the summary's filled quantity.
	QuantityPlaces int32 = 8
)

// RoundPrice rounds a quote-currency amount to PricePlaces using
// half-to-even rounding.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(PricePlaces)
}

// RoundQuantity rounds an asset quantity to QuantityPlaces using
// half-to-even rounding.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(QuantityPlaces)
}
