package fifo

import (
	"errors"
	"fmt"

	"github.com/Andzelika002/FIFO-Trade-Calculator/date"
)

// ErrNoTrades is returned when a report is requested over an empty trade set.
var ErrNoTrades = errors.New("no trades to calculate")

// ErrNoClientTrades is returned when the client/cutoff filter matches nothing.
var ErrNoClientTrades = errors.New("no trades for this client and date")

// Report is the full outcome of one FIFO profit/loss calculation for one
// client up to a cutoff date. Immutable once returned.
type Report struct {
	Client      string
	Cutoff      date.Date
	Results     []FifoResult // one per security, sorted by security symbol
	Diagnostics []string     // sells skipped for lack of inventory
}

// Total returns the realized profit/loss summed over all securities.
func (r *Report) Total() Money {
	var total Money
	for _, res := range r.Results {
		total = total.Add(res.ProfitLoss)
	}
	return total
}

// NewReport filters the trades to one client and cutoff date and runs the
// FIFO matching over the filtered set.
//
// It never partially succeeds: either the whole calculation completed and a
// report is returned, or an error is. An empty input set, a filter matching
// nothing, and a precondition violation inside the engine are distinct
// errors; soft inventory shortfalls surface as report diagnostics instead.
func NewReport(trades []Trade, client string, cutoff date.Date) (*Report, error) {
	if len(trades) == 0 {
		return nil, ErrNoTrades
	}

	filtered := Filter(trades, client, cutoff)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("client %q up to %s: %w", client, cutoff, ErrNoClientTrades)
	}

	results, diagnostics, err := ComputeFIFO(filtered)
	if err != nil {
		return nil, err
	}
	return &Report{
		Client:      client,
		Cutoff:      cutoff,
		Results:     results,
		Diagnostics: diagnostics,
	}, nil
}
