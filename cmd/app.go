// Package cmd implements the lbk command line application to manage a
// bookkeeping workbook.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/ledgerbook"
	"github.com/etnz/ledgerbook/config"
	"github.com/etnz/ledgerbook/logger"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application.
var Commands = []subcommands.Command{
	&newCmd{},
	&setCmd{},
	&addBankCmd{},
	&addLedgerCmd{},
	&addViewCmd{},
	&removeCmd{},
	&renameCmd{},
	&moveCmd{},
	&editCmd{},
	&rateCmd{},
	&showCmd{},
	&rebuildCmd{},
	&exchangeCmd{},
	&exportCmd{},
	&importCmd{},
	&queryCmd{},
	&chartCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var workbookFile = flag.String("workbook", "workbook.json", "Path to the workbook file")
var configFile = flag.String("config", config.DefaultFile, "Path to the configuration file (TOML or YAML)")
var logLevel = flag.String("log-level", "", "Log level, overrides the configuration")
var raw = flag.Bool("raw", false, "Print markdown without terminal rendering")

var stdout io.Writer = os.Stdout

// options loads the configuration and the logger of the session.
func options() (ledgerbook.Options, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return ledgerbook.Options{}, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return ledgerbook.Options{}, fmt.Errorf("invalid configuration %s: %w", *configFile, err)
	}
	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	log, err := logger.New(level)
	if err != nil {
		return ledgerbook.Options{}, err
	}
	opts.Logger = &log
	return opts, nil
}

// OpenWorkbook opens the workbook file of the session.
func OpenWorkbook() (*ledgerbook.Workbook, error) {
	opts, err := options()
	if err != nil {
		return nil, err
	}
	w, err := ledgerbook.Open(*workbookFile, opts)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("workbook %s does not exist, create it with 'lbk new'", *workbookFile)
	}
	return w, err
}

// SaveWorkbook writes w back to the workbook file of the session.
func SaveWorkbook(w *ledgerbook.Workbook) error {
	return w.Save(*workbookFile)
}

// update opens the workbook, applies f and saves the workbook when f succeeds.
func update(f func(w *ledgerbook.Workbook) error) subcommands.ExitStatus {
	w, err := OpenWorkbook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := f(w); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveWorkbook(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving workbook %q: %v\n", *workbookFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
