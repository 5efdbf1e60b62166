package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type importCmd struct {
	appFlags
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "scan the data directory and merge new CSV exports" }
func (*importCmd) Usage() string {
	return `clm import [-c <config>] [-d <data_dir>]

  Scans the data directory for CSV files, parses the new and changed ones,
  and merges the resulting positions, transactions and balances into the
  JSON stores. Unchanged files (tracked by content hash) are skipped.
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) { p.register(f) }

func (p *importCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := p.openStore()
	if err != nil {
		return fail(err)
	}

	scan, err := store.Scan()
	if err != nil {
		return fail(err)
	}
	portfolio, err := store.Load()
	if err != nil {
		return fail(err)
	}

	stats := portfolio.Merge(&scan.Batch)
	if err := store.Save(portfolio); err != nil {
		return fail(err)
	}

	fmt.Printf("Scanned %s: %d new file(s), %d updated, %d unchanged\n",
		store.Dir(), len(scan.NewFiles), len(scan.UpdatedFiles), len(scan.UnchangedFiles))
	fmt.Printf("Positions: %d new, %d updated, %d moved to closed\n",
		stats.NewPositions, stats.UpdatedPositions, stats.MovedToClosed)
	fmt.Printf("Transactions: %d new, %d duplicate(s) skipped\n",
		stats.NewTransactions, stats.DuplicateTx)
	fmt.Printf("Balances: %d new, %d updated\n",
		stats.NewBalances, stats.UpdatedBalances)

	for _, e := range scan.Batch.Errors {
		fmt.Fprintln(os.Stderr, "warning:", e)
	}
	return subcommands.ExitSuccess
}
