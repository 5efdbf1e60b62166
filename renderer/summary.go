package renderer

import (
	"time"

	"clmfolio"
)

// SummaryMarkdown renders the portfolio overview: per-strategy totals,
// range health of the active book, and the FX context when available.
func SummaryMarkdown(p *clmfolio.Portfolio, book *clmfolio.PriceBook) string {
	r := newReport()
	r.Printf("# Portfolio Summary\n\n")

	r.Printf("| Strategy | Active | Entered |\n")
	r.Printf("|:---|---:|---:|\n")
	r.Printf("| Long | %d | %s |\n", len(p.Long), usd(totalEntry(p.Long)))
	r.Printf("| Neutral | %d | %s |\n", len(p.Neutral), usd(totalEntry(p.Neutral)))
	r.Printf("| Closed | %d | %s |\n", len(p.Closed), usd(totalEntry(p.Closed)))

	active := p.ActivePositions()
	if len(active) > 0 {
		counts := make(map[string]int)
		for _, pos := range active {
			counts[pos.RangeStatus]++
		}
		r.Printf("\n## Range Health\n\n")
		r.Printf("| Status | Positions |\n")
		r.Printf("|:---|---:|\n")
		for _, status := range []string{
			clmfolio.RangeIn, clmfolio.RangeOutLow, clmfolio.RangeOutHigh,
			clmfolio.RangePerpActive, clmfolio.RangePerpClosed,
			clmfolio.RangeNone, clmfolio.RangeUnknown,
		} {
			if n := counts[status]; n > 0 {
				r.Printf("| %s | %d |\n", rangeLabel(status), n)
			}
		}
	}

	r.Printf("\n%d transaction(s), %d balance snapshot(s) on record.\n",
		len(p.Transactions), len(p.Balances))

	if book != nil {
		if rate, ok := book.FX["USD_CAD"]; ok {
			r.Printf("\n1 USD = %.4f CAD (as of %s)\n",
				rate, book.Updated.Format(time.RFC1123))
		}
	}
	return r.String()
}
