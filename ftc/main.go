package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/Andzelika002/FIFO-Trade-Calculator/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion; it is a no-op outside a
// completion request.
func completion() {
	files := predict.Files("*.csv")
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"clients": {Flags: map[string]complete.Predictor{"f": files}},
			"calculate": {Flags: map[string]complete.Predictor{
				"f":        files,
				"client":   predict.Something,
				"d":        predict.Something,
				"o":        predict.Files("*.md"),
				"currency": predict.Set{"EUR", "USD", "GBP", "PLN"},
			}},
			"topic": {Args: predict.Set{"readme", "fileformat", "matching"}},
		},
	}
	c.Complete("ftc")
}
