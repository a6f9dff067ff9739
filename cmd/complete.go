package cmd

import (
	"flag"

	"github.com/etnz/ledgerbook"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line of the application for shell
// completion: global flags, subcommands and their flags. Arguments of the
// subcommands complete with the ledger names of the workbook.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"workbook":  predict.Files("*.json"),
			"config":    predict.Or(predict.Files("*.toml"), predict.Files("*.yaml"), predict.Files("*.yml")),
			"log-level": predict.Set{"trace", "debug", "info", "warn", "error", "disabled"},
			"raw":       predict.Nothing,
		},
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{
			Flags: make(map[string]complete.Predictor),
			Args:  complete.PredictFunc(ledgerNames),
		}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predict.Something })
		root.Sub[c.Name()] = sub
	}
	root.Sub["add-view"].Args = predict.Set(viewNames())
	root.Sub["add-bank"].Args = predict.Nothing
	root.Sub["export"].Args = predict.Files("*.xlsx")
	root.Sub["import"].Args = predict.Or(predict.Files("*.xlsx"), complete.PredictFunc(ledgerNames))
	return root
}

func viewNames() []string {
	var names []string
	for _, k := range ledgerbook.ViewKinds() {
		names = append(names, k.String())
	}
	return names
}

// ledgerNames predicts the ledgers of the workbook file.
func ledgerNames(prefix string) []string {
	w, err := ledgerbook.Open(*workbookFile, ledgerbook.Options{})
	if err != nil {
		return nil
	}
	return w.Names()
}
