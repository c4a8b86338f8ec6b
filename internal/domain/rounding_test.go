package domain

import "testing"

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10000", "10000"},
		{"2960.644", "2960.64"},
		{"2960.646", "2960.65"},
		{"0.125", "0.12"}, // half to even
		{"0.135", "0.14"},
		{"-1.005", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RoundPrice(dec(tt.input)); !got.Equal(dec(tt.want)) {
				t.Errorf("RoundPrice(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoundQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0.5", "0.5"},
		{"0.123456789", "0.12345679"},
		{"0.000000005", "0"}, // half to even
		{"0.000000015", "0.00000002"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RoundQuantity(dec(tt.input)); !got.Equal(dec(tt.want)) {
				t.Errorf("RoundQuantity(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
