package cmd

import (
	"context"
	"flag"
	"fmt"

	"clmfolio"

	"github.com/google/subcommands"
)

type refreshCmd struct {
	appFlags
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch current prices and update range statuses" }
func (*refreshCmd) Usage() string {
	return `clm refresh [-c <config>] [-d <data_dir>]

  Fetches current token prices (DefiLlama first, CoinGecko for the gaps)
  and FX rates, annotates every active position with its current price and
  range status, and rewrites the position stores.
`
}

func (p *refreshCmd) SetFlags(f *flag.FlagSet) { p.register(f) }

func (p *refreshCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, err := p.openStore()
	if err != nil {
		return fail(err)
	}
	portfolio, err := store.Load()
	if err != nil {
		return fail(err)
	}

	tokens := clmfolio.TokensOf(portfolio.ActivePositions())
	book := clmfolio.FetchPrices(cfg, tokens)
	portfolio.UpdateStatus(book)

	if err := store.SavePositions(portfolio); err != nil {
		return fail(err)
	}
	fmt.Printf("Priced %d token(s), annotated %d active position(s)\n",
		len(book.Prices), len(portfolio.ActivePositions()))
	return subcommands.ExitSuccess
}
