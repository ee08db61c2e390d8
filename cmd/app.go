// Package cmd implements the CLI application to calculate FIFO profit/loss
// from a trade file.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	fifo "github.com/Andzelika002/FIFO-Trade-Calculator"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Commands are the subcommands a main package registers.
// A main package will call Register() on each and Execute() on the user-selected one.
var Commands = []subcommands.Command{
	&clientsCmd{},
	&calculateCmd{},
	&topicCmd{},
}

// defaultTradeFile is the trade file commands read when -f is not given.
const defaultTradeFile = "trades.csv"

// importTrades loads a trade file and reports the per-row diagnostics
// to stderr. Bad rows never abort the load.
func importTrades(path string) (*fifo.ImportResult, error) {
	result, err := fifo.ImportFile(path)
	if err != nil {
		return nil, err
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", path, issue)
	}
	return result, nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// normalizeClient lowers a client name and strips diacritics, so that a
// user typing "Jose" still selects the client recorded as "José".
func normalizeClient(s string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// resolveClient returns the recorded client name matching the
// user-supplied one, comparing normalized forms.
func resolveClient(clients []string, input string) (string, bool) {
	want := normalizeClient(input)
	for _, c := range clients {
		if normalizeClient(c) == want {
			return c, true
		}
	}
	return "", false
}
