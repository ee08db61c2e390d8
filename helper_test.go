package fifo

import "github.com/Andzelika002/FIFO-Trade-Calculator/date"

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// buy and sell are helpers to build trades from consts in tests.

func buy(id int64, on, security string, qty int64, price, fee float64) Trade {
	return Trade{
		ID:       id,
		Side:     Buy,
		Date:     date.MustParse(on),
		Client:   "alice",
		Security: security,
		Quantity: qty,
		Price:    NO(price),
		Fee:      NO(fee),
	}
}

func sell(id int64, on, security string, qty int64, price, fee float64) Trade {
	t := buy(id, on, security, qty, price, fee)
	t.Side = Sell
	return t
}
