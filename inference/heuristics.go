package inference

import (
	"math"
	"strings"
	"time"

	"clmfolio"
)

// Strategy names the heuristics guess. They resolve to wallets through
// the configured mapping, so unknown strategies just fail to resolve.
const (
	strategyLong    = "long"
	strategyNeutral = "neutral"
	strategyYield   = "yield"
)

var longTokens = map[string]bool{
	"RAY": true, "ORCA": true, "JLP": true, "WBTC": true, "WETH": true,
}

var stableTokens = map[string]bool{"USDC": true, "USDT": true}

// byPattern combines the transaction type, token and amount into a
// strategy guess. These are the strongest single-transaction signals.
func byPattern(tx clmfolio.Transaction, _ *Context) (Guess, bool) {
	txType := rawLower(tx, "Type")
	token := rawUpper(tx, "Coin Symbol")
	amount := rawAmount(tx)
	platform := strings.ToLower(tx.Platform)
	if p := rawLower(tx, "Platform"); p != "" {
		platform = p
	}

	guess := func(strategy string) (Guess, bool) {
		return Guess{Strategy: strategy, Heuristic: "pattern"}, true
	}

	switch {
	case longTokens[token],
		strings.Contains(platform, "orca"),
		strings.Contains(platform, "raydium"),
		strings.Contains(platform, "jupiter"),
		(txType == "buy" || txType == "sell") && amount > 100:
		return guess(strategyLong)

	case stableTokens[token] && (txType == "received" || txType == "sent") && amount < 50000:
		return guess(strategyNeutral)

	case txType == "received" && amount < 100, mentionsYield(tx):
		return guess(strategyYield)

	case (txType == "buy" || txType == "sell" || txType == "swap") && amount > 10:
		return guess(strategyLong)

	case (txType == "sent" || txType == "received") && amount > 1000:
		return guess(strategyYield)
	}
	return Guess{}, false
}

// clusterWindow bounds how far apart two transactions can be and still
// count as one session from the same wallet.
const clusterWindow = 5 * time.Minute

// byTimeCluster assigns the wallet most often seen in identified
// transactions on the same chain within the cluster window. Unlike the
// other heuristics it yields an address directly.
func byTimeCluster(tx clmfolio.Transaction, ctx *Context) (Guess, bool) {
	at, ok := parseTime(tx.Timestamp)
	if !ok {
		return Guess{}, false
	}
	family := chainFamily(tx.Chain)

	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, known := range ctx.known {
		if chainFamily(known.Chain) != family {
			continue
		}
		knownAt, ok := parseTime(known.Timestamp)
		if !ok {
			continue
		}
		d := at.Sub(knownAt)
		if d < -clusterWindow || d > clusterWindow {
			continue
		}
		counts[known.Wallet]++
		if counts[known.Wallet] > bestCount {
			best, bestCount = known.Wallet, counts[known.Wallet]
		}
	}
	if best == "" {
		return Guess{}, false
	}
	return Guess{Wallet: best, Heuristic: "time-cluster"}, true
}

// byAmount keys off amount shapes: dust goes to the yield wallet, large
// round figures look like manual funding transfers from the long wallet.
func byAmount(tx clmfolio.Transaction, _ *Context) (Guess, bool) {
	amount := rawAmount(tx)
	switch {
	case amount > 0 && amount < 0.001:
		return Guess{Strategy: strategyYield, Heuristic: "amount"}, true
	case amount > 1000 && math.Mod(amount, 100) == 0:
		return Guess{Strategy: strategyLong, Heuristic: "amount"}, true
	}
	return Guess{}, false
}

// Per-chain-family token ownership hints.
var tokenHints = map[string]map[string]string{
	"SOL": {
		"RAY": strategyLong, "ORCA": strategyLong, "JLP": strategyLong,
		"USDC": strategyNeutral, "USDT": strategyNeutral,
	},
	"ETH": {
		"WETH": strategyLong, "WBTC": strategyLong,
		"USDC": strategyNeutral, "USDT": strategyNeutral, "DAI": strategyNeutral,
	},
}

func byToken(tx clmfolio.Transaction, _ *Context) (Guess, bool) {
	family := chainFamily(tx.Chain)
	if family != "SOL" {
		family = "ETH"
	}
	token := rawUpper(tx, "Coin Symbol")
	strategy, ok := tokenHints[family][token]
	if !ok {
		return Guess{}, false
	}
	return Guess{Strategy: strategy, Heuristic: "token"}, true
}

// platformHints are checked in order: DEX names first, generic words last.
var platformHints = []struct {
	substr   string
	strategy string
}{
	{"uniswap", strategyLong},
	{"orca", strategyLong},
	{"raydium", strategyLong},
	{"jupiter", strategyLong},
	{"aerodrome", strategyLong},
	{"aero", strategyLong},
	{"curve", strategyLong},
	{"dex", strategyLong},
	{"transfer", strategyYield},
	{"clm", strategyNeutral},
}

func byPlatform(tx clmfolio.Transaction, _ *Context) (Guess, bool) {
	platform := strings.ToLower(tx.Platform)
	for _, hint := range platformHints {
		if strings.Contains(platform, hint.substr) {
			return Guess{Strategy: hint.strategy, Heuristic: "platform"}, true
		}
	}
	return Guess{}, false
}

// raw-data accessors. The exports spell these columns consistently even
// when everything else varies.

func rawLower(tx clmfolio.Transaction, key string) string {
	return strings.ToLower(strings.TrimSpace(tx.RawData[key]))
}

func rawUpper(tx clmfolio.Transaction, key string) string {
	return strings.ToUpper(strings.TrimSpace(tx.RawData[key]))
}

func rawAmount(tx clmfolio.Transaction) float64 {
	if v := clmfolio.ParseValue(tx.RawData["Amount"], clmfolio.Currency); v != nil {
		return *v
	}
	return 0
}

func mentionsYield(tx clmfolio.Transaction) bool {
	for k, v := range tx.RawData {
		if strings.Contains(strings.ToLower(k), "yield") ||
			strings.Contains(strings.ToLower(v), "yield") {
			return true
		}
	}
	return false
}
