package cmd

import (
	"context"
	"flag"

	"clmfolio"
	"clmfolio/renderer"

	"github.com/google/subcommands"
)

type summaryCmd struct {
	appFlags
	live bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the portfolio overview" }
func (*summaryCmd) Usage() string {
	return `clm summary [-live] [-c <config>] [-d <data_dir>]

  Renders per-strategy totals, the range health of the active book, and
  store counts. With -live, prices and FX rates are fetched first and the
  freshly annotated state is shown (without persisting it).
`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {
	p.register(f)
	f.BoolVar(&p.live, "live", false, "Fetch prices and FX rates before rendering.")
}

func (p *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, err := p.openStore()
	if err != nil {
		return fail(err)
	}
	portfolio, err := store.Load()
	if err != nil {
		return fail(err)
	}

	var book *clmfolio.PriceBook
	if p.live {
		book = clmfolio.FetchPrices(cfg, clmfolio.TokensOf(portfolio.ActivePositions()))
		portfolio.UpdateStatus(book)
	}

	printMarkdown(renderer.SummaryMarkdown(portfolio, book))
	return subcommands.ExitSuccess
}
