package cmd

import (
	"context"
	"flag"

	"clmfolio/renderer"

	"github.com/google/subcommands"
)

type balancesCmd struct {
	appFlags
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "list LP balance snapshots" }
func (*balancesCmd) Usage() string {
	return `clm balances [-c <config>] [-d <data_dir>]

  Lists the latest imported balance snapshot for each LP position.
`
}

func (p *balancesCmd) SetFlags(f *flag.FlagSet) { p.register(f) }

func (p *balancesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := p.openStore()
	if err != nil {
		return fail(err)
	}
	portfolio, err := store.Load()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.BalancesMarkdown(portfolio.Balances))
	return subcommands.ExitSuccess
}
