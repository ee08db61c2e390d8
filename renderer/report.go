// Package renderer renders calculation results as markdown, ready to be
// printed to a terminal or written to a report file.
package renderer

import (
	"fmt"
	"strings"

	fifo "github.com/Andzelika002/FIFO-Trade-Calculator"
)

// ReportMarkdown renders a profit/loss report to a markdown string:
// one table of realized profit/loss per security with a total row, one
// table of left-over buy lots, and the diagnostics of skipped sells.
func ReportMarkdown(report *fifo.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Realized Profit/Loss for %s up to %s\n\n", report.Client, report.Cutoff)

	fmt.Fprint(&b, "## Profit/Loss per Security\n\n")
	fmt.Fprintln(&b, "| Security | Profit/Loss |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, r := range report.Results {
		fmt.Fprintf(&b, "| %s | %s |\n", r.Security, r.ProfitLoss.SignedString())
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n\n", report.Total().SignedString())

	fmt.Fprint(&b, "## Left-Over Lots\n\n")
	if lots := leftoverLots(report); len(lots) == 0 {
		fmt.Fprint(&b, "All bought shares were sold.\n")
	} else {
		fmt.Fprintln(&b, "| Security | Buy Date | Trade | Quantity | Price | Remaining Fee |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
		for _, lot := range lots {
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %s | %s |\n",
				lot.Security, lot.Date, lot.ID, lot.Quantity, lot.Price, lot.Fee)
		}
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprint(&b, "\n## Diagnostics\n\n")
		for _, d := range report.Diagnostics {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	return b.String()
}

// leftoverLots flattens the per-security left-over lots, keeping the
// report's security order.
func leftoverLots(report *fifo.Report) []fifo.Lot {
	var lots []fifo.Lot
	for _, r := range report.Results {
		lots = append(lots, r.Leftover...)
	}
	return lots
}
