package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// Rounding never moves a value by more than half a unit in the last place
// and is idempotent.
func TestProperty_RoundingBoundedAndIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		units := rapid.Int64Range(-1_000_000_000_000, 1_000_000_000_000).Draw(t, "units")
		exp := rapid.Int32Range(-12, 0).Draw(t, "exp")
		d := decimal.New(units, exp)

		for _, tc := range []struct {
			places int32
			round  func(decimal.Decimal) decimal.Decimal
		}{
			{PricePlaces, RoundPrice},
			{QuantityPlaces, RoundQuantity},
		} {
			r := tc.round(d)
			half := decimal.New(5, -(tc.places + 1))
			if r.Sub(d).Abs().GreaterThan(half) {
				t.Fatalf("round(%s, %d) = %s moved by more than %s", d, tc.places, r, half)
			}
			if !tc.round(r).Equal(r) {
				t.Fatalf("round(%s, %d) is not idempotent: %s", d, tc.places, tc.round(r))
			}
			if !r.Equal(r.Truncate(tc.places)) {
				t.Fatalf("round(%s, %d) = %s has more than %d places", d, tc.places, r, tc.places)
			}
		}
	})
}
