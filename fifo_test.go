package fifo

import (
	"strings"
	"testing"
)

func mustCompute(t *testing.T, trades ...Trade) ([]FifoResult, []string) {
	t.Helper()
	results, diags, err := ComputeFIFO(trades)
	if err != nil {
		t.Fatalf("ComputeFIFO() error = %v", err)
	}
	return results, diags
}

func TestComputeFIFO_OnlyBuys(t *testing.T) {
	results, diags := mustCompute(t,
		buy(1, "2024-01-01", "AAPL", 100, 10, 1),
		buy(2, "2024-01-02", "AAPL", 50, 12, 0.5),
	)

	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if !r.ProfitLoss.IsZero() {
		t.Errorf("ProfitLoss = %s, want zero", r.ProfitLoss)
	}
	if len(r.Leftover) != 2 {
		t.Fatalf("got %d leftover lots, want 2", len(r.Leftover))
	}
	if r.Leftover[0].Quantity != 100 || !r.Leftover[0].Fee.Equal(NO(1)) {
		t.Errorf("lot 1 = %+v, want unchanged quantity 100 fee 1", r.Leftover[0])
	}
	if r.Leftover[1].Quantity != 50 || !r.Leftover[1].Fee.Equal(NO(0.5)) {
		t.Errorf("lot 2 = %+v, want unchanged quantity 50 fee 0.5", r.Leftover[1])
	}
}

func TestComputeFIFO_SimpleRoundTrip(t *testing.T) {
	// Buy 100 @ 10.00 fee 1.00, sell 100 @ 12.00 fee 1.00:
	// (1200 - 1) - (1000 + 1) = 198.00 and nothing left over.
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "AAPL", 100, 10, 1),
		sell(2, "2024-01-02", "AAPL", 100, 12, 1),
	)

	r := results[0]
	if want := NO(198); !r.ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", r.ProfitLoss, want)
	}
	if len(r.Leftover) != 0 {
		t.Errorf("Leftover = %v, want empty", r.Leftover)
	}
}

func TestComputeFIFO_PartialSecondLot(t *testing.T) {
	// Sell 60: all 50 of lot 1 (cost 500) plus 10 of lot 2 (cost 200),
	// revenue 1800, profit 1100, 40 shares of lot 2 remain.
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "AAPL", 50, 10, 0),
		buy(2, "2024-01-02", "AAPL", 50, 20, 0),
		sell(3, "2024-01-03", "AAPL", 60, 30, 0),
	)

	r := results[0]
	if want := NO(1100); !r.ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", r.ProfitLoss, want)
	}
	if len(r.Leftover) != 1 {
		t.Fatalf("got %d leftover lots, want 1", len(r.Leftover))
	}
	if r.Leftover[0].ID != 2 || r.Leftover[0].Quantity != 40 {
		t.Errorf("leftover = %+v, want 40 shares of lot 2", r.Leftover[0])
	}
}

func TestComputeFIFO_SellingFirstLotLeavesLaterLotsUntouched(t *testing.T) {
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "AAPL", 30, 10, 3),
		buy(2, "2024-01-02", "AAPL", 70, 11, 7),
		sell(3, "2024-01-03", "AAPL", 30, 12, 0),
	)

	r := results[0]
	if len(r.Leftover) != 1 {
		t.Fatalf("got %d leftover lots, want 1", len(r.Leftover))
	}
	lot := r.Leftover[0]
	if lot.ID != 2 || lot.Quantity != 70 || !lot.Fee.Equal(NO(7)) {
		t.Errorf("later lot = %+v, want untouched 70 shares fee 7", lot)
	}
}

func TestComputeFIFO_FullConsumptionAllocatesWholeFee(t *testing.T) {
	// A fully consumed lot of 10 shares with fee 10 contributes exactly
	// fee 10 to the cost basis, with no rounding drift.
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "AAPL", 10, 10, 10),
		sell(2, "2024-01-02", "AAPL", 10, 20, 0),
	)

	// revenue 200, cost 100 + 10.
	if want := NO(90); !results[0].ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", results[0].ProfitLoss, want)
	}
}

func TestComputeFIFO_FeeRateAcrossMultipleSells(t *testing.T) {
	// The same lot drawn down by two sells still allocates its whole fee:
	// sell 4 of 10 takes fee 4, the remaining 6 shares carry fee 6.
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "AAPL", 10, 10, 10),
		sell(2, "2024-01-02", "AAPL", 4, 20, 0),
		sell(3, "2024-01-03", "AAPL", 6, 20, 0),
	)

	// revenue 4*20 + 6*20 = 200, cost 100 + 10 = 110.
	if want := NO(90); !results[0].ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", results[0].ProfitLoss, want)
	}
	if len(results[0].Leftover) != 0 {
		t.Errorf("Leftover = %v, want empty", results[0].Leftover)
	}
}

func TestComputeFIFO_PartiallyDrawnLotKeepsProportionalFee(t *testing.T) {
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "AAPL", 10, 10, 10),
		sell(2, "2024-01-02", "AAPL", 4, 20, 0),
	)

	lot := results[0].Leftover[0]
	if lot.Quantity != 6 {
		t.Fatalf("remaining quantity = %d, want 6", lot.Quantity)
	}
	if want := NO(6); !lot.Fee.Equal(want) {
		t.Errorf("remaining fee = %s, want %s", lot.Fee, want)
	}
}

func TestComputeFIFO_InsufficientInventoryIsSoft(t *testing.T) {
	// Selling with zero owned shares is excluded from profit/loss with a
	// diagnostic, and later sells keep being processed. This leniency is
	// deliberate, not a bug.
	results, diags := mustCompute(t,
		sell(1, "2024-01-01", "AAPL", 10, 20, 0),
		buy(2, "2024-01-02", "AAPL", 5, 10, 0),
		sell(3, "2024-01-03", "AAPL", 5, 12, 0),
	)

	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0], "sell 1") {
		t.Errorf("diagnostic %q does not name the skipped sell", diags[0])
	}
	// only the second sell realizes anything: 5*12 - 5*10 = 10.
	if want := NO(10); !results[0].ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", results[0].ProfitLoss, want)
	}
}

func TestComputeFIFO_SellBeforeBuyDateIsNotEligible(t *testing.T) {
	// A buy dated after the sell cannot back it, even when quantities fit.
	results, diags := mustCompute(t,
		buy(1, "2024-01-10", "AAPL", 10, 10, 0),
		sell(2, "2024-01-05", "AAPL", 10, 20, 0),
	)

	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if !results[0].ProfitLoss.IsZero() {
		t.Errorf("ProfitLoss = %s, want zero", results[0].ProfitLoss)
	}
	if len(results[0].Leftover) != 1 || results[0].Leftover[0].Quantity != 10 {
		t.Errorf("Leftover = %+v, want the untouched buy lot", results[0].Leftover)
	}
}

func TestComputeFIFO_SameDateTieBreakByID(t *testing.T) {
	// Two lots on the same date are consumed in ID order.
	results, _ := mustCompute(t,
		buy(2, "2024-01-01", "AAPL", 10, 20, 0),
		buy(1, "2024-01-01", "AAPL", 10, 10, 0),
		sell(3, "2024-01-02", "AAPL", 10, 30, 0),
	)

	r := results[0]
	// profit 10*30 - 10*10: lot 1 went first.
	if want := NO(200); !r.ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", r.ProfitLoss, want)
	}
	if len(r.Leftover) != 1 || r.Leftover[0].ID != 2 {
		t.Errorf("Leftover = %+v, want lot 2 only", r.Leftover)
	}
}

func TestComputeFIFO_QuantityConservation(t *testing.T) {
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "AAPL", 100, 10, 0),
		buy(2, "2024-01-02", "AAPL", 50, 11, 0),
		sell(3, "2024-01-03", "AAPL", 40, 12, 0),
		sell(4, "2024-01-04", "AAPL", 70, 12, 0),
	)

	var remaining int64
	for _, lot := range results[0].Leftover {
		remaining += lot.Quantity
	}
	if want := int64(100 + 50 - 40 - 70); remaining != want {
		t.Errorf("remaining quantity = %d, want bought-sold = %d", remaining, want)
	}
}

func TestComputeFIFO_Idempotent(t *testing.T) {
	trades := []Trade{
		buy(1, "2024-01-01", "AAPL", 10, 10, 10),
		sell(2, "2024-01-02", "AAPL", 4, 20, 2),
	}

	first, _, err := ComputeFIFO(trades)
	if err != nil {
		t.Fatalf("first ComputeFIFO() error = %v", err)
	}
	second, _, err := ComputeFIFO(trades)
	if err != nil {
		t.Fatalf("second ComputeFIFO() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs disagree: %d vs %d results", len(first), len(second))
	}
	for i := range first {
		if !first[i].ProfitLoss.Equal(second[i].ProfitLoss) {
			t.Errorf("security %s: ProfitLoss %s vs %s", first[i].Security, first[i].ProfitLoss, second[i].ProfitLoss)
		}
		if len(first[i].Leftover) != len(second[i].Leftover) {
			t.Errorf("security %s: leftover count %d vs %d", first[i].Security, len(first[i].Leftover), len(second[i].Leftover))
		}
	}
	// the caller's trades are still pristine.
	if trades[0].Quantity != 10 || !trades[0].Fee.Equal(NO(10)) {
		t.Errorf("source buy mutated: %+v", trades[0])
	}
}

func TestComputeFIFO_NegativeValuesAreAPreconditionViolation(t *testing.T) {
	tests := []struct {
		name  string
		trade Trade
	}{
		{"quantity", buy(1, "2024-01-01", "AAPL", -1, 10, 0)},
		{"price", buy(1, "2024-01-01", "AAPL", 1, -10, 0)},
		{"fee", buy(1, "2024-01-01", "AAPL", 1, 10, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ComputeFIFO([]Trade{tt.trade}); err == nil {
				t.Errorf("ComputeFIFO() succeeded, want a hard error for negative %s", tt.name)
			}
		})
	}
}

func TestComputeFIFO_BlankSecurityIsSkipped(t *testing.T) {
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "  ", 10, 10, 0),
		buy(2, "2024-01-01", "AAPL", 10, 10, 0),
	)

	if len(results) != 1 || results[0].Security != "AAPL" {
		t.Errorf("results = %+v, want AAPL only", results)
	}
}

func TestComputeFIFO_ResultsSortedBySecurity(t *testing.T) {
	results, _ := mustCompute(t,
		buy(1, "2024-01-01", "MSFT", 10, 10, 0),
		buy(2, "2024-01-01", "AAPL", 10, 10, 0),
		buy(3, "2024-01-01", "GOOG", 10, 10, 0),
	)

	want := []string{"AAPL", "GOOG", "MSFT"}
	for i, r := range results {
		if r.Security != want[i] {
			t.Fatalf("results[%d] = %s, want %s", i, r.Security, want[i])
		}
	}
}
