package fifo

import (
	"slices"
	"strings"

	"github.com/Andzelika002/FIFO-Trade-Calculator/date"
)

// Filter returns the trades of a single client dated on or before the
// cutoff (inclusive), sorted by date then trade ID ascending.
//
// Filter is a pure function: the input slice and its trades are never
// mutated, the client name is matched case-insensitively.
func Filter(trades []Trade, client string, cutoff date.Date) []Trade {
	var filtered []Trade
	for _, t := range trades {
		if !strings.EqualFold(t.Client, client) {
			continue
		}
		if t.Date.After(cutoff) {
			continue
		}
		filtered = append(filtered, t)
	}
	slices.SortStableFunc(filtered, compareTrades)
	return filtered
}
