package cmd

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"clmfolio/inference"

	"github.com/google/subcommands"
)

type inferCmd struct {
	appFlags
	dryRun bool
}

func (*inferCmd) Name() string     { return "infer" }
func (*inferCmd) Synopsis() string { return "guess owner wallets for transactions missing one" }
func (*inferCmd) Usage() string {
	return `clm infer [-dry-run] [-c <config>] [-d <data_dir>]

  Runs the wallet-inference heuristics over every transaction missing a
  wallet address and backfills the guesses into the transaction store.
  Heuristics resolve guessed strategies through the wallets declared in
  the config file. With -dry-run, nothing is written.
`
}

func (p *inferCmd) SetFlags(f *flag.FlagSet) {
	p.register(f)
	f.BoolVar(&p.dryRun, "dry-run", false, "Report what would be inferred without saving.")
}

func (p *inferCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, err := p.openStore()
	if err != nil {
		return fail(err)
	}
	portfolio, err := store.Load()
	if err != nil {
		return fail(err)
	}

	ctx := inference.NewContext(cfg.Wallets, portfolio.Transactions)
	res := inference.Infer(portfolio.Transactions, ctx)

	fmt.Printf("%d transaction(s), %d missing a wallet, %d inferred\n",
		res.Total, res.Missing, res.Inferred)
	names := make([]string, 0, len(res.ByHeuristic))
	for name := range res.ByHeuristic {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %d\n", name, res.ByHeuristic[name])
	}

	if p.dryRun || res.Inferred == 0 {
		return subcommands.ExitSuccess
	}
	if err := store.SaveTransactions(portfolio.Transactions); err != nil {
		return fail(err)
	}
	fmt.Println("Transaction store updated.")
	return subcommands.ExitSuccess
}
