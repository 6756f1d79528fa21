package internal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoRevenueData means one or both accounts produced an empty year-to-date
// series, so no comparison report can be built.
var ErrNoRevenueData = errors.New("no revenue data found for one or both accounts")

// ReportOptions parameterizes a report run.
type ReportOptions struct {
	Now            time.Time
	TrailingDays   int       // trailing window length for ARR, 31 when zero
	LabelA, LabelB string    // account display names
	Status         io.Writer // fetch/progress notifications; nil suppresses them
}

// Report is the computed comparison: the merged year-to-date series and the
// per-account trailing-window ARR estimates.
type Report struct {
	Merged   []MergedRevenueEntry
	ARRA     decimal.Decimal
	ARRB     decimal.Decimal
	ARRTotal decimal.Decimal
	Currency string // ISO code, from the first qualifying transaction
}

// Last returns the last merged entry. "Today's revenue" and "total revenue
// to date" are read from it; when the series is empty all figures are zero.
func (r *Report) Last() (MergedRevenueEntry, bool) {
	if len(r.Merged) == 0 {
		return MergedRevenueEntry{}, false
	}
	return r.Merged[len(r.Merged)-1], true
}

// BuildReport runs the full pipeline: a year-to-date aggregation per account,
// a trailing-window aggregation per account, the date-aligned merge, and the
// ARR estimates. Fetches run sequentially; a transport failure aborts the run.
// Returns ErrNoRevenueData when either year-to-date series is empty.
func BuildReport(srcA, srcB TransactionSource, opts ReportOptions) (*Report, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	trailingDays := opts.TrailingDays
	if trailingDays <= 0 {
		trailingDays = 31
	}

	yearWindow := Window{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())}
	trailingWindow := Window{Start: now.AddDate(0, 0, -trailingDays), End: now}

	progress := func(n int) {
		if opts.Status != nil {
			fmt.Fprintf(opts.Status, "  processed %d transactions so far...\n", n)
		}
	}

	fetch := func(src TransactionSource, w Window, label, what string) (DailySeries, string, error) {
		if opts.Status != nil {
			fmt.Fprintf(opts.Status, "Fetching %s for %s...\n", what, label)
		}
		series, currency, err := AggregateDaily(src.Transactions(w), progress)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", label, err)
		}
		return series, currency, nil
	}

	yearA, currencyA, err := fetch(srcA, yearWindow, opts.LabelA, "revenue data")
	if err != nil {
		return nil, err
	}
	yearB, currencyB, err := fetch(srcB, yearWindow, opts.LabelB, "revenue data")
	if err != nil {
		return nil, err
	}
	trailingA, _, err := fetch(srcA, trailingWindow, opts.LabelA, "trailing revenue")
	if err != nil {
		return nil, err
	}
	trailingB, _, err := fetch(srcB, trailingWindow, opts.LabelB, "trailing revenue")
	if err != nil {
		return nil, err
	}

	if len(yearA) == 0 || len(yearB) == 0 {
		return nil, ErrNoRevenueData
	}

	currency := currencyA
	if currency == "" {
		currency = currencyB
	}
	if currency == "" {
		currency = "usd"
	}

	arrA := Annualize(trailingA)
	arrB := Annualize(trailingB)

	return &Report{
		Merged:   Merge(yearA, yearB),
		ARRA:     arrA,
		ARRB:     arrB,
		ARRTotal: arrA.Add(arrB),
		Currency: strings.ToUpper(currency),
	}, nil
}
