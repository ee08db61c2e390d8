package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// clientsCmd lists the clients found in a trade file, so the user can
// pick one for the calculate command.
type clientsCmd struct {
	tradeFile string
}

func (*clientsCmd) Name() string     { return "clients" }
func (*clientsCmd) Synopsis() string { return "list the clients found in a trade file" }
func (*clientsCmd) Usage() string {
	return `ftc clients [-f <file>]

  Lists the distinct client names found in the trade file, sorted
  case-insensitively.
`
}

func (c *clientsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tradeFile, "f", defaultTradeFile, "Path to the semicolon-separated trade file")
}

func (c *clientsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := importTrades(c.tradeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading trade file: %v\n", err)
		return subcommands.ExitFailure
	}

	clients := result.Clients()
	if len(clients) == 0 {
		fmt.Fprintf(os.Stderr, "No client names found in %s.\n", c.tradeFile)
		return subcommands.ExitSuccess
	}
	for _, client := range clients {
		fmt.Println(client)
	}
	return subcommands.ExitSuccess
}
