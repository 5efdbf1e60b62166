package clmfolio

import "testing"

func TestParseValue(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		kind ValueKind
		want *float64
	}{
		{"currency with decoration", "$1,234.56", Currency, floatPtr(1234.56)},
		{"currency plain", "42", Currency, floatPtr(42)},
		{"currency negative", "-$500.00", Currency, floatPtr(-500)},
		{"currency quoted", `"$10,000.00"`, Currency, floatPtr(10000)},
		{"empty", "", Currency, nil},
		{"whitespace only", "   ", Currency, nil},
		{"not available", "N/A", Currency, nil},
		{"garbage", "abc", Currency, nil},
		{"percentage", "12.5%", Percentage, floatPtr(12.5)},
		{"percentage negative", "-3.75%", Percentage, floatPtr(-3.75)},
		{"percentage keeps commas out", "1,2%", Percentage, nil},
		{"percentage empty after strip", "%", Percentage, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseValue(tc.raw, tc.kind)
			switch {
			case got == nil && tc.want == nil:
			case got == nil || tc.want == nil:
				t.Errorf("ParseValue(%q) = %v, want %v", tc.raw, got, tc.want)
			case *got != *tc.want:
				t.Errorf("ParseValue(%q) = %v, want %v", tc.raw, *got, *tc.want)
			}
		})
	}
}
