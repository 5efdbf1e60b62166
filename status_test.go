package clmfolio

import "testing"

func testBook(prices map[string]float64) *PriceBook {
	return &PriceBook{Prices: prices, Changes: map[string]float64{}, FX: map[string]float64{}}
}

func TestClassifyRange(t *testing.T) {
	testCases := []struct {
		name  string
		price float64
		min   *float64
		max   *float64
		want  string
	}{
		{"inside", 100, floatPtr(80), floatPtr(120), RangeIn},
		{"at lower bound", 80, floatPtr(80), floatPtr(120), RangeIn},
		{"below", 79.9, floatPtr(80), floatPtr(120), RangeOutLow},
		{"above", 121, floatPtr(80), floatPtr(120), RangeOutHigh},
		{"perp below close level", 100, nil, floatPtr(150), RangePerpActive},
		{"perp above close level", 151, nil, floatPtr(150), RangePerpClosed},
		{"no bounds", 100, nil, nil, RangeNone},
		{"min only", 100, floatPtr(80), nil, RangeNone},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyRange(tc.price, tc.min, tc.max); got != tc.want {
				t.Errorf("classifyRange(%v) = %q, want %q", tc.price, got, tc.want)
			}
		})
	}
}

func TestPairPrice(t *testing.T) {
	book := testBook(map[string]float64{
		"SOL": 100, "JLP": 4, "BTC": 43000, "ETH": 2400, "ORCA": 3.25,
	})

	testCases := []struct {
		pair string
		want *float64
	}{
		{"SOL/USDC", floatPtr(100)},
		{"ORCA/USDC", floatPtr(3.25)},
		{"JLP/SOL", floatPtr(0.04)},
		{"WBTC/SOL", floatPtr(430)},
		{"CBBTC/SOL", floatPtr(430)},
		{"WHETH/SOL", floatPtr(24)},
		{"SOL", floatPtr(100)}, // single-token perp
		{"sol / usdc", floatPtr(100)},
		{"BONK/USDC", nil},
		{"", nil},
	}
	for _, tc := range testCases {
		got := book.PairPrice(tc.pair)
		switch {
		case got == nil && tc.want == nil:
		case got == nil || tc.want == nil:
			t.Errorf("PairPrice(%q) = %v, want %v", tc.pair, got, tc.want)
		case *got != *tc.want:
			t.Errorf("PairPrice(%q) = %v, want %v", tc.pair, *got, *tc.want)
		}
	}
}

func TestPairPriceNoSolForRatio(t *testing.T) {
	book := testBook(map[string]float64{"JLP": 4})
	if got := book.PairPrice("JLP/SOL"); got != nil {
		t.Errorf("PairPrice(JLP/SOL) without SOL = %v, want nil", *got)
	}
}

func TestUpdateStatus(t *testing.T) {
	book := testBook(map[string]float64{"SOL": 100})
	p := &Portfolio{
		Neutral: []Position{
			{ID: "in", TokenPair: "SOL/USDC", MinRange: floatPtr(80), MaxRange: floatPtr(120), RangeStatus: RangeUnknown},
			{ID: "low", TokenPair: "SOL/USDC", MinRange: floatPtr(110), MaxRange: floatPtr(150), RangeStatus: RangeUnknown},
			{ID: "opaque", TokenPair: "mystery", CurrentPrice: floatPtr(7), RangeStatus: RangeIn},
		},
		Closed: []Position{
			{ID: "done", TokenPair: "SOL/USDC", RangeStatus: RangeUnknown},
		},
	}
	p.UpdateStatus(book)

	if got := p.Neutral[0]; got.RangeStatus != RangeIn || *got.CurrentPrice != 100 {
		t.Errorf("in-range position = %q/%v", got.RangeStatus, got.CurrentPrice)
	}
	if got := p.Neutral[1]; got.RangeStatus != RangeOutLow {
		t.Errorf("below-range position = %q, want out_of_range_low", got.RangeStatus)
	}
	// Unpriceable pairs keep their previous annotation.
	if got := p.Neutral[2]; got.RangeStatus != RangeIn || *got.CurrentPrice != 7 {
		t.Errorf("opaque pair was rewritten: %q/%v", got.RangeStatus, got.CurrentPrice)
	}
	// Closed positions are never touched.
	if got := p.Closed[0]; got.RangeStatus != RangeUnknown || got.CurrentPrice != nil {
		t.Errorf("closed position was annotated: %q/%v", got.RangeStatus, got.CurrentPrice)
	}
}
