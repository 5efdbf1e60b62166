package cmd

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"sort"

	"clmfolio/txdb"

	"github.com/google/subcommands"
)

type indexCmd struct {
	appFlags
	dbPath string
}

func (*indexCmd) Name() string     { return "index" }
func (*indexCmd) Synopsis() string { return "sync transactions into the SQLite index" }
func (*indexCmd) Usage() string {
	return `clm index [-db <path>] [-c <config>] [-d <data_dir>]

  Inserts every stored transaction into the SQLite index (skipping IDs
  already present) and prints an aggregate summary. The JSON store stays
  the source of truth; the index only serves fast filtered queries.
`
}

func (p *indexCmd) SetFlags(f *flag.FlagSet) {
	p.register(f)
	f.StringVar(&p.dbPath, "db", "", "Path to the index database. Defaults to JSON_out/clm_transactions.db.")
}

func (p *indexCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := p.openStore()
	if err != nil {
		return fail(err)
	}
	portfolio, err := store.Load()
	if err != nil {
		return fail(err)
	}

	dbPath := p.dbPath
	if dbPath == "" {
		dbPath = filepath.Join(store.Dir(), "JSON_out", "clm_transactions.db")
	}
	repo, err := txdb.Open(dbPath)
	if err != nil {
		return fail(err)
	}
	defer repo.Close()

	inserted, err := repo.Sync(ctx, portfolio.Transactions)
	if err != nil {
		return fail(err)
	}
	summary, err := repo.Summarize(ctx)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Indexed %d new transaction(s) into %s\n", inserted, dbPath)
	fmt.Printf("Total indexed: %d", summary.Total)
	if summary.Earliest != "" {
		fmt.Printf(" (%s .. %s)", summary.Earliest, summary.Latest)
	}
	fmt.Println()
	for _, line := range []struct {
		label  string
		counts map[string]int
	}{
		{"chain", summary.ByChain},
		{"platform", summary.ByPlatform},
	} {
		keys := make([]string, 0, len(line.counts))
		for k := range line.counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s %s: %d\n", line.label, k, line.counts[k])
		}
	}
	return subcommands.ExitSuccess
}
