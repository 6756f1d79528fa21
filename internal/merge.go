package internal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MergedRevenueEntry is one calendar day of the combined two-account series.
// TotalCumulative is the running sum of TotalDaily over the merged sequence,
// recomputed after alignment rather than summing the per-account cumulative
// columns, so it stays self-consistent on interleaved dates.
type MergedRevenueEntry struct {
	Date        time.Time
	AmountA     decimal.Decimal
	CumulativeA decimal.Decimal
	AmountB     decimal.Decimal
	CumulativeB decimal.Decimal

	TotalDaily      decimal.Decimal
	TotalCumulative decimal.Decimal
}

// Merge full-outer-joins two daily series on date. A date present in only
// one series contributes zero for the other account's daily amount; all
// cumulative columns are running sums over the merged ascending sequence.
func Merge(a, b DailySeries) []MergedRevenueEntry {
	amountsA := make(map[string]decimal.Decimal, len(a))
	amountsB := make(map[string]decimal.Decimal, len(b))
	days := make(map[string]time.Time, len(a)+len(b))

	for _, e := range a {
		key := e.Date.Format("2006-01-02")
		amountsA[key] = e.Amount
		days[key] = e.Date
	}
	for _, e := range b {
		key := e.Date.Format("2006-01-02")
		amountsB[key] = e.Amount
		if _, ok := days[key]; !ok {
			days[key] = e.Date
		}
	}

	keys := make([]string, 0, len(days))
	for key := range days {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	merged := make([]MergedRevenueEntry, 0, len(keys))
	runningA, runningB, runningTotal := decimal.Zero, decimal.Zero, decimal.Zero
	for _, key := range keys {
		amtA := amountsA[key] // zero value when absent
		amtB := amountsB[key]
		daily := amtA.Add(amtB)

		runningA = runningA.Add(amtA)
		runningB = runningB.Add(amtB)
		runningTotal = runningTotal.Add(daily)

		merged = append(merged, MergedRevenueEntry{
			Date:            days[key],
			AmountA:         amtA,
			CumulativeA:     runningA,
			AmountB:         amtB,
			CumulativeB:     runningB,
			TotalDaily:      daily,
			TotalCumulative: runningTotal,
		})
	}
	return merged
}
