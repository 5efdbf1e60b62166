// Package inference guesses the owner wallet of transactions imported
// without one. Each heuristic is a pure function over a single
// transaction plus shared context; heuristics run in a fixed order and
// the first one that resolves to a configured wallet wins. Nothing here
// touches persistence: callers pass the transaction slice in and save it
// back themselves.
package inference

import (
	"strings"
	"time"

	"clmfolio"
)

// Guess is one heuristic's verdict: either a concrete wallet address,
// or a strategy name to be resolved against the configured wallet map.
type Guess struct {
	Wallet    string
	Strategy  string
	Heuristic string
}

// Context is everything heuristics may consult beyond the transaction
// itself: the configured chain/strategy wallet map and the already
// identified transactions used for clustering.
type Context struct {
	// wallets is keyed by normalized chain family, then lowercase
	// strategy name.
	wallets map[string]map[string]string
	known   []clmfolio.Transaction
}

// A Heuristic inspects one transaction and reports a guess, or ok=false
// when it has no opinion.
type Heuristic func(tx clmfolio.Transaction, ctx *Context) (Guess, bool)

// heuristics in evaluation order. Earlier entries encode stronger
// signals; ordering replaces the confidence scores the signals carried
// historically.
var heuristics = []Heuristic{
	byPattern,
	byTimeCluster,
	byAmount,
	byToken,
	byPlatform,
}

// NewContext builds the heuristic context from the configured wallet
// mappings and the full transaction set. Transactions that already have
// a wallet become the clustering reference set.
func NewContext(wallets []clmfolio.WalletMapping, txs []clmfolio.Transaction) *Context {
	ctx := &Context{wallets: make(map[string]map[string]string)}
	for _, w := range wallets {
		chain := chainFamily(w.Chain)
		if ctx.wallets[chain] == nil {
			ctx.wallets[chain] = make(map[string]string)
		}
		ctx.wallets[chain][strings.ToLower(w.Strategy)] = w.Address
	}
	for _, tx := range txs {
		if strings.TrimSpace(tx.Wallet) != "" {
			ctx.known = append(ctx.known, tx)
		}
	}
	return ctx
}

// resolve turns a guess into a wallet address. A guess carrying an
// address is taken as is; a strategy guess resolves through the
// configured map for the transaction's chain family.
func (c *Context) resolve(tx clmfolio.Transaction, g Guess) (string, bool) {
	if g.Wallet != "" {
		return g.Wallet, true
	}
	byStrategy, ok := c.wallets[chainFamily(tx.Chain)]
	if !ok {
		return "", false
	}
	wallet, ok := byStrategy[strings.ToLower(g.Strategy)]
	return wallet, ok
}

// Result summarizes one inference pass.
type Result struct {
	Total       int
	Missing     int
	Inferred    int
	ByHeuristic map[string]int
}

// Infer backfills the wallet field of every transaction missing one,
// in place. Transactions whose heuristics all abstain (or whose guessed
// strategy has no configured wallet) are left untouched.
func Infer(txs []clmfolio.Transaction, ctx *Context) Result {
	res := Result{Total: len(txs), ByHeuristic: make(map[string]int)}
	for i := range txs {
		if strings.TrimSpace(txs[i].Wallet) != "" {
			continue
		}
		res.Missing++
		for _, h := range heuristics {
			guess, ok := h(txs[i], ctx)
			if !ok {
				continue
			}
			wallet, ok := ctx.resolve(txs[i], guess)
			if !ok {
				continue
			}
			txs[i].Wallet = wallet
			res.Inferred++
			res.ByHeuristic[guess.Heuristic]++
			break
		}
	}
	return res
}

// chainFamily folds chain spellings into the family the wallet map is
// keyed by. Every EVM L1/L2 shares the ETH wallet set.
func chainFamily(chain string) string {
	c := strings.ToUpper(strings.TrimSpace(chain))
	switch c {
	case "ETH", "ETHEREUM", "BASE", "ARBITRUM", "OPTIMISM", "POLYGON":
		return "ETH"
	case "SUI":
		return "SUI"
	}
	if strings.Contains(c, "SOL") {
		return "SOL"
	}
	return c
}

// parseTime parses the timestamp spellings the exports use.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
