package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"clmfolio"
	"clmfolio/renderer"

	"github.com/google/subcommands"
)

type positionsCmd struct {
	appFlags
	strategy string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list positions by strategy" }
func (*positionsCmd) Usage() string {
	return `clm positions [-s long|neutral|closed|all] [-c <config>] [-d <data_dir>]

  Lists positions from the selected store. "all" (the default) shows the
  long and neutral tables followed by the closed history.
`
}

func (p *positionsCmd) SetFlags(f *flag.FlagSet) {
	p.register(f)
	f.StringVar(&p.strategy, "s", "all", "Store to list: long, neutral, closed or all.")
}

func (p *positionsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := p.openStore()
	if err != nil {
		return fail(err)
	}
	portfolio, err := store.Load()
	if err != nil {
		return fail(err)
	}

	switch p.strategy {
	case clmfolio.StrategyLong:
		printMarkdown(renderer.PositionsMarkdown("Long Positions", portfolio.Long))
	case clmfolio.StrategyNeutral:
		printMarkdown(renderer.PositionsMarkdown("Neutral Positions", portfolio.Neutral))
	case "closed":
		printMarkdown(renderer.ClosedMarkdown(portfolio.Closed))
	case "all":
		printMarkdown(renderer.PositionsMarkdown("Long Positions", portfolio.Long) +
			"\n" + renderer.PositionsMarkdown("Neutral Positions", portfolio.Neutral) +
			"\n" + renderer.ClosedMarkdown(portfolio.Closed))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", p.strategy)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
