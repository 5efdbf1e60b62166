package clmfolio

import "strings"

var (
	wrappedBTC = map[string]bool{"WBTC": true, "CBBTC": true}
	wrappedETH = map[string]bool{"WHETH": true, "WETH": true}
)

// PairPrice computes the price a position's pair trades at, in quote terms.
// Most pairs just use the base token's USD price; ratio pairs against SOL
// (JLP/SOL and the wrapped BTC/ETH pools) divide the base's USD price by
// SOL's.
func (b *PriceBook) PairPrice(pair string) *float64 {
	pair = strings.ReplaceAll(pair, " ", "")
	if pair == "" {
		return nil
	}

	// Single token, the perpetual case.
	if !strings.Contains(pair, "/") {
		if price, ok := b.Prices[strings.ToUpper(pair)]; ok {
			return &price
		}
		return nil
	}

	parts := strings.Split(pair, "/")
	if len(parts) != 2 {
		return nil
	}
	base := strings.ToUpper(parts[0])
	quote := strings.ToUpper(parts[1])

	if quote == "SOL" {
		var baseUSD float64
		var ok bool
		switch {
		case base == "JLP":
			// JLP is a pool token priced in USD; SOL per JLP is the
			// ratio of the two USD prices.
			baseUSD, ok = b.Prices["JLP"]
		case wrappedBTC[base]:
			baseUSD, ok = b.Prices["BTC"]
		case wrappedETH[base]:
			baseUSD, ok = b.Prices["ETH"]
		}
		if ok {
			if solUSD, haveSol := b.Prices["SOL"]; haveSol && solUSD > 0 {
				ratio := baseUSD / solUSD
				return &ratio
			}
			return nil
		}
	}

	if price, ok := b.Prices[base]; ok {
		return &price
	}
	return nil
}

// classifyRange maps a current price against a position's band.
// A max-only band is a perpetual's close level; a band missing either bound
// is unpriceable.
func classifyRange(price float64, min, max *float64) string {
	switch {
	case min == nil && max != nil:
		if price > *max {
			return RangePerpClosed
		}
		return RangePerpActive
	case min == nil || max == nil:
		return RangeNone
	case price < *min:
		return RangeOutLow
	case price > *max:
		return RangeOutHigh
	default:
		return RangeIn
	}
}

// UpdateStatus annotates every active position with its current price and
// range status from the book. Closed positions are never touched; pairs
// the book cannot price keep their previous annotation.
func (p *Portfolio) UpdateStatus(book *PriceBook) {
	update := func(positions []Position) {
		for i := range positions {
			pos := &positions[i]
			if pos.TokenPair == "" {
				continue
			}
			price := book.PairPrice(pos.TokenPair)
			if price == nil {
				continue
			}
			pos.CurrentPrice = price
			pos.RangeStatus = classifyRange(*price, pos.MinRange, pos.MaxRange)
		}
	}
	update(p.Long)
	update(p.Neutral)
}
