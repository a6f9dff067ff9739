package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/ledgerbook/cmd"
	"github.com/google/subcommands"
)

func main() {
	// exits when invoked by the shell for completion.
	cmd.Completion().Complete("lbk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "workbook")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
