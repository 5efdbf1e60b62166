package renderer

import (
	"clmfolio"
)

// TransactionsMarkdown renders a table of imported on-chain transactions.
func TransactionsMarkdown(txs []clmfolio.Transaction) string {
	r := newReport()
	r.Printf("# Transactions\n\n")
	if len(txs) == 0 {
		r.Printf("No transactions.\n")
		return r.String()
	}

	r.Printf("| Timestamp | Chain | Platform | Wallet | Hash | Gas |\n")
	r.Printf("|:---|:---|:---|:---|:---|---:|\n")
	for _, tx := range txs {
		r.Printf("| %s | %s | %s | %s | %s | %s |\n",
			orDash(tx.Timestamp),
			orDash(tx.Chain),
			orDash(tx.Platform),
			shorten(tx.Wallet),
			shorten(tx.TxHash),
			usd(tx.GasFees),
		)
	}
	r.Printf("\n%d transaction(s).\n", len(txs))
	return r.String()
}

// BalancesMarkdown renders the latest LP balance snapshots.
func BalancesMarkdown(balances []clmfolio.Balance) string {
	r := newReport()
	r.Printf("# Balances\n\n")
	if len(balances) == 0 {
		r.Printf("No balance snapshots.\n")
		return r.String()
	}

	r.Printf("| Pair | Chain | Platform | Wallet | Balance | Token A | Token B |\n")
	r.Printf("|:---|:---|:---|:---|---:|---:|---:|\n")
	for _, b := range balances {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n",
			orDash(b.TokenPair),
			orDash(b.Chain),
			orDash(b.Platform),
			shorten(b.Wallet),
			usd(b.CurrentBalance),
			num(b.TokenABalance),
			num(b.TokenBBalance),
		)
	}
	r.Printf("\n%d snapshot(s).\n", len(balances))
	return r.String()
}

// shorten abbreviates long addresses and hashes to keep table columns sane.
func shorten(s string) string {
	if len(s) <= 14 {
		return orDash(s)
	}
	return s[:8] + "…" + s[len(s)-4:]
}
