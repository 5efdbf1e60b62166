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

type txCmd struct {
	appFlags
	wallet string
	chain  string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list imported transactions" }
func (*txCmd) Usage() string {
	return `clm tx [-wallet <address>] [-chain <chain>] [-head <n> | -tail <n>]

  Lists transactions from the JSON store, with options for filtering and
  limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	p.register(f)
	f.StringVar(&p.wallet, "wallet", "", "Only transactions from this wallet address.")
	f.StringVar(&p.chain, "chain", "", "Only transactions on this chain.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	store, _, err := p.openStore()
	if err != nil {
		return fail(err)
	}
	portfolio, err := store.Load()
	if err != nil {
		return fail(err)
	}

	var txs []clmfolio.Transaction
	for _, tx := range portfolio.Transactions {
		if p.wallet != "" && tx.Wallet != p.wallet {
			continue
		}
		if p.chain != "" && tx.Chain != p.chain {
			continue
		}
		txs = append(txs, tx)
	}

	if p.head > 0 && len(txs) > p.head {
		txs = txs[:p.head]
	}
	if p.tail > 0 && len(txs) > p.tail {
		txs = txs[len(txs)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}
