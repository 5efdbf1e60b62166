package clmfolio

import "testing"

func TestNormalizePair(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"SOL + USD", "SOL/USDC"},
		{"sol + usdc", "SOL/USDC"},
		{"SUI short", "SUI/USDC"},
		{"Short ETH", "ETH/USDC"},
		{"JLP/SOL", "JLP/SOL"},
		{"WBTC/SOL", "WBTC/SOL"},
		{"  SOL/USDC  ", "SOL/USDC"},
		{"Opaque Description", "Opaque Description"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := NormalizePair(tc.text); got != tc.want {
			t.Errorf("NormalizePair(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
