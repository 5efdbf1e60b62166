package main

import (
	"context"
	"flag"
	"os"
	"path"

	"clmfolio/cmd"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// A .env next to the data is the usual place for CLMFOLIO_DATA_DIR.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
