// Package fifo computes realized profit and loss per security from a
// ledger of buy and sell trades, matching sells against the oldest
// available buys (First-In-First-Out).
//
// The core functionalities include:
//   - Trade Import: Parsing semicolon-delimited trade files into validated
//     trade records, accumulating per-field diagnostics instead of aborting
//     the whole load on the first bad row.
//   - Trade Filtering: Narrowing the full trade set to a single client and
//     a cutoff date, in a deterministic order.
//   - FIFO Matching: Grouping trades by security and consuming buy lots in
//     chronological order to compute realized profit and loss, with fees
//     allocated proportionally across each trade's quantity.
//   - Reporting: Aggregating per-security results, totals and diagnostics
//     into a single report consumed by the `ftc` command-line tool.
//
// All monetary arithmetic is fixed-point decimal; quantities are exact
// integers. The matching engine never mutates the caller's trades, so a
// calculation can be repeated on the same data and yield identical results.
package fifo
