package renderer

import (
	"clmfolio"
)

// PositionsMarkdown renders a table of open positions under the given title.
func PositionsMarkdown(title string, positions []clmfolio.Position) string {
	r := newReport()
	r.Printf("# %s\n\n", title)
	if len(positions) == 0 {
		r.Printf("No positions.\n")
		return r.String()
	}

	r.Printf("| Position | Platform | Chain | Pair | Entry | Price | Range | APR | Net |\n")
	r.Printf("|:---|:---|:---|:---|---:|---:|:---|---:|---:|\n")
	for _, pos := range positions {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			orDash(pos.PositionDetails),
			orDash(pos.Platform),
			orDash(pos.Chain),
			orDash(pos.TokenPair),
			usd(pos.EntryValue),
			num(pos.CurrentPrice),
			rangeLabel(pos.RangeStatus),
			pct(pos.YieldAPR),
			pct(pos.NetReturn),
		)
	}
	r.Printf("\n%d position(s), %s entered.\n", len(positions), usd(totalEntry(positions)))
	return r.String()
}

// ClosedMarkdown renders the closed-position history with exit economics.
func ClosedMarkdown(positions []clmfolio.Position) string {
	r := newReport()
	r.Printf("# Closed Positions\n\n")
	if len(positions) == 0 {
		r.Printf("No closed positions.\n")
		return r.String()
	}

	r.Printf("| Position | Pair | Entry | Exit Date | Exit | Yield | IL | Net |\n")
	r.Printf("|:---|:---|---:|:---|---:|---:|---:|---:|\n")
	for _, pos := range positions {
		exitDate := "-"
		if pos.ExitDate != nil {
			exitDate = *pos.ExitDate
		}
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			orDash(pos.PositionDetails),
			orDash(pos.TokenPair),
			usd(pos.EntryValue),
			exitDate,
			usd(pos.ExitValue),
			usd(pos.ClaimedYieldValue),
			pct(pos.ImpermanentLoss),
			pct(pos.NetReturn),
		)
	}
	r.Printf("\n%d closed position(s).\n", len(positions))
	return r.String()
}

func totalEntry(positions []clmfolio.Position) *float64 {
	var total float64
	found := false
	for _, pos := range positions {
		if pos.EntryValue != nil {
			total += *pos.EntryValue
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}
