// Package ledger implements the portfolio ledger core: trade processing
// (weighted-average cost basis), import reconciliation and the read-side
// aggregation views. Everything in this package is a total function from
// (snapshot, request) to a new snapshot or a declared error; nothing here
// mutates its inputs or touches storage.
package ledger

import "strings"

// NormalizeTicker is the single normalization policy for ticker matching:
// trim whitespace and uppercase. Every path that matches or stores tickers
// (trades, imports, price updates) must go through it, otherwise the same
// instrument can silently split into duplicate assets.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
