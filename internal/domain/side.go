package domain

import "strings"

// Side indicates whether a request buys or sells the traded asset.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide parses a side case-insensitively, ignoring surrounding
// whitespace. It returns false for anything other than buy or sell.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, true
	case SideSell:
		return SideSell, true
	}
	return "", false
}

// Valid reports whether s is buy or sell.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Title returns the capitalized form used in execution results ("Buy", "Sell").
func (s Side) Title() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	}
	return string(s)
}

// Opposite returns the side of the resting orders a request on s consumes.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}
