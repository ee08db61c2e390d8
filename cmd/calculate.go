package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	fifo "github.com/Andzelika002/FIFO-Trade-Calculator"
	"github.com/Andzelika002/FIFO-Trade-Calculator/date"
	"github.com/Andzelika002/FIFO-Trade-Calculator/renderer"
	"github.com/google/subcommands"
)

// calculateCmd holds the flags for the 'calculate' subcommand.
type calculateCmd struct {
	tradeFile  string
	client     string
	cutoff     string
	outputFile string
	currency   string
}

func (*calculateCmd) Name() string     { return "calculate" }
func (*calculateCmd) Synopsis() string { return "realized FIFO profit/loss for one client" }
func (*calculateCmd) Usage() string {
	return `ftc calculate -client <name> [-f <file>] [-d <date>] [-o <report_file>] [-currency <code>]

  Calculates the realized profit/loss per security for one client,
  matching sells against the oldest buys dated on or before the cutoff.
`
}

func (c *calculateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tradeFile, "f", defaultTradeFile, "Path to the semicolon-separated trade file")
	f.StringVar(&c.client, "client", "", "Client to calculate for. See the clients command.")
	f.StringVar(&c.cutoff, "d", date.Today().String(), "Cutoff date (inclusive), format "+date.Format)
	f.StringVar(&c.outputFile, "o", "", "Write the markdown report to this file as well")
	f.StringVar(&c.currency, "currency", "EUR", "Currency the amounts of the trade file are denominated in")
}

func (c *calculateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.client == "" {
		fmt.Fprintln(os.Stderr, "the -client flag is required")
		return subcommands.ExitUsageError
	}
	cutoff, err := date.Parse(c.cutoff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cutoff date: %v\n", err)
		return subcommands.ExitUsageError
	}

	result, err := importTrades(c.tradeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading trade file: %v\n", err)
		return subcommands.ExitFailure
	}

	// the user input is matched ignoring case and diacritics against the
	// client names recorded in the file.
	client, ok := resolveClient(result.Clients(), c.client)
	if !ok {
		// let the calculation fail with its own named error below, the
		// file may carry trades with an empty client column.
		client = c.client
	}

	report, err := fifo.NewReport(result.Trades, client, cutoff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating profit/loss: %v\n", err)
		return subcommands.ExitFailure
	}
	applyCurrency(report, c.currency)

	md := renderer.ReportMarkdown(report)
	if c.outputFile != "" {
		// a report file that cannot be written is worth a warning, not a
		// failed calculation.
		if err := os.WriteFile(c.outputFile, []byte(md), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot write report file: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", c.outputFile)
		}
	}
	printMarkdown(md)

	return subcommands.ExitSuccess
}

// applyCurrency denominates the report's amounts for display. The trade
// file carries no currency of its own and this tool never converts.
func applyCurrency(report *fifo.Report, currency string) {
	for i := range report.Results {
		report.Results[i].ProfitLoss = report.Results[i].ProfitLoss.WithCurrency(currency)
		for j := range report.Results[i].Leftover {
			lot := &report.Results[i].Leftover[j]
			lot.Price = lot.Price.WithCurrency(currency)
			lot.Fee = lot.Fee.WithCurrency(currency)
		}
	}
}
