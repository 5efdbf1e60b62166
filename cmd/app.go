// Package cmd implements the CLI application to track the portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"clmfolio"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&importCmd{},
	&refreshCmd{},
	&summaryCmd{},
	&positionsCmd{},
	&txCmd{},
	&balancesCmd{},
	&indexCmd{},
	&inferCmd{},
}

// appFlags are the flags every subcommand shares.
type appFlags struct {
	configPath string
	dataDir    string
}

func (a *appFlags) register(f *flag.FlagSet) {
	f.StringVar(&a.configPath, "c", "", "Path to the YAML config file. Defaults to clmfolio.yaml when present.")
	f.StringVar(&a.dataDir, "d", "", "Data directory holding CSV drops and JSON stores. Overrides the config.")
}

// openStore resolves config and flags into a ready store.
func (a *appFlags) openStore() (*clmfolio.Store, *clmfolio.Config, error) {
	cfg, err := clmfolio.LoadConfig(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	return clmfolio.NewStore(cfg.DataDir), cfg, nil
}

// printMarkdown renders markdown to the terminal with glamour, falling
// back to the raw text when rendering is not possible (e.g. piped output
// on an exotic TERM).
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
