package fifo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Andzelika002/FIFO-Trade-Calculator/date"
)

// Lot is a buy trade's remaining unconsumed quantity and remaining fee.
// During matching lots are mutable working state, cloned from the buy
// trades so the caller's trades are never touched.
type Lot struct {
	ID       int64
	Date     date.Date
	Security string
	Quantity int64 // remaining unconsumed shares
	Price    Money // unit price of the original buy
	Fee      Money // remaining unallocated fee
}

// FifoResult is the outcome of FIFO matching for one security.
type FifoResult struct {
	Security   string
	ProfitLoss Money // total realized profit/loss, signed
	Leftover   []Lot // buy lots with unconsumed quantity, post-consumption state
}

// ComputeFIFO matches sells against the oldest available buys and returns
// one result per distinct security, sorted by security symbol, plus the
// diagnostics of sells that could not be matched.
//
// A trade with negative quantity, price or fee is a precondition violation
// and fails the whole calculation. A sell exceeding the available inventory
// is a soft failure: it is excluded from profit/loss, one diagnostic is
// recorded, and processing continues.
//
// The input trades are never mutated, so repeated calls on the same set
// yield identical results.
func ComputeFIFO(trades []Trade) ([]FifoResult, []string, error) {
	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid trade set: %w", err)
		}
	}

	groups := make(map[string][]Trade)
	for _, t := range trades {
		// empty securities are excluded upstream, skip them rather than crash.
		if strings.TrimSpace(t.Security) == "" {
			continue
		}
		groups[t.Security] = append(groups[t.Security], t)
	}

	securities := make([]string, 0, len(groups))
	for s := range groups {
		securities = append(securities, s)
	}
	slices.Sort(securities)

	results := make([]FifoResult, 0, len(securities))
	var diagnostics []string
	for _, s := range securities {
		result, diags := matchSecurity(s, groups[s])
		results = append(results, result)
		diagnostics = append(diagnostics, diags...)
	}
	return results, diagnostics, nil
}

// matchSecurity runs the FIFO matching for the trades of one security.
func matchSecurity(security string, trades []Trade) (FifoResult, []string) {
	var buys, sells []Trade
	for _, t := range trades {
		switch {
		case strings.EqualFold(string(t.Side), string(Buy)):
			buys = append(buys, t)
		case strings.EqualFold(string(t.Side), string(Sell)):
			sells = append(sells, t)
		}
	}
	// date then ID ascending is the FIFO contract.
	slices.SortStableFunc(buys, compareTrades)
	slices.SortStableFunc(sells, compareTrades)

	// clone each buy into an independent working lot.
	lots := make([]*Lot, 0, len(buys))
	for _, b := range buys {
		lots = append(lots, &Lot{
			ID:       b.ID,
			Date:     b.Date,
			Security: b.Security,
			Quantity: b.Quantity,
			Price:    b.Price,
			Fee:      b.Fee,
		})
	}

	var profitLoss Money
	var diagnostics []string
	for _, sell := range sells {
		if sell.Quantity == 0 {
			continue
		}

		// eligible lots are re-derived per sell, earlier sells may have
		// exhausted some of them.
		var eligible []*Lot
		var available int64
		for _, lot := range lots {
			if lot.Quantity > 0 && !lot.Date.After(sell.Date) {
				eligible = append(eligible, lot)
				available += lot.Quantity
			}
		}
		if available < sell.Quantity {
			diagnostics = append(diagnostics, fmt.Sprintf(
				"security %s: sell %d on %s wants %d shares but only %d are held, sell excluded from profit/loss",
				security, sell.ID, sell.Date, sell.Quantity, available))
			continue
		}

		// revenue per share is constant across all lots this sell consumes:
		// the sell fee is allocated over the sell's own total quantity.
		toSell := sell.Quantity
		for _, lot := range eligible {
			if toSell == 0 {
				break
			}
			take := min(toSell, lot.Quantity)

			// the fee rate is the lot's remaining fee over its remaining
			// quantity at the start of this consumption step, so it stays
			// proportionally correct as the lot is drawn down across sells.
			feeShare := lot.Fee.Mul(take).Div(lot.Quantity)
			cost := lot.Price.Mul(take).Add(feeShare)
			revenue := sell.Price.Mul(take).Sub(sell.Fee.Mul(take).Div(sell.Quantity))
			profitLoss = profitLoss.Add(revenue.Sub(cost))

			lot.Quantity -= take
			lot.Fee = lot.Fee.Sub(feeShare)
			toSell -= take
		}
	}

	result := FifoResult{Security: security, ProfitLoss: profitLoss}
	for _, lot := range lots {
		if lot.Quantity > 0 {
			result.Leftover = append(result.Leftover, *lot)
		}
	}
	return result, diagnostics
}
