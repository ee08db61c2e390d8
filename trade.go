package fifo

import (
	"fmt"
	"strings"

	"github.com/Andzelika002/FIFO-Trade-Calculator/date"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a trade side, case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Buy):
		return Buy, nil
	case string(Sell):
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade type %q: want BUY or SELL", s)
	}
}

// Trade is a single buy or sell event, constructed once by the importer
// from one file row and never mutated afterwards. The matching engine
// works on its own copies.
type Trade struct {
	ID       int64 // unique, used as a tie-break for trades sharing a date
	Side     Side
	Date     date.Date
	Client   string
	Security string
	Quantity int64 // number of shares, always a whole number
	Price    Money // unit price
	Fee      Money // total fee for the whole trade
}

// Validate reports the first violated invariant of the trade, or nil.
// Negative quantity, price or fee is a hard failure, never silently clamped.
func (t Trade) Validate() error {
	if t.Quantity < 0 {
		return fmt.Errorf("trade %d: negative quantity %d", t.ID, t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("trade %d: negative price %s", t.ID, t.Price)
	}
	if t.Fee.IsNegative() {
		return fmt.Errorf("trade %d: negative fee %s", t.ID, t.Fee)
	}
	return nil
}

// compareTrades orders trades by date ascending, then by ID ascending.
// This ordering is the FIFO contract: it must be deterministic for
// trades sharing a date.
func compareTrades(a, b Trade) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}
