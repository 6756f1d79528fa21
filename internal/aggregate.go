package internal

import (
	"iter"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenueEntry is one calendar day of realized revenue.
// Cumulative is the running sum of Amount over the date-ascending series.
type DailyRevenueEntry struct {
	Date       time.Time
	Amount     decimal.Decimal
	Cumulative decimal.Decimal
}

// DailySeries is a date-ascending sequence of daily revenue entries,
// at most one entry per calendar date. It may be empty.
type DailySeries []DailyRevenueEntry

// Total returns the sum of all daily amounts in the series.
func (s DailySeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s {
		total = total.Add(e.Amount)
	}
	return total
}

// ProgressFunc is notified every progressInterval processed records.
// It is cosmetic only and never affects the computed series.
type ProgressFunc func(processed int)

const progressInterval = 1000

// IsRevenue reports whether a transaction counts as realized incoming
// revenue: settled, positive, and an actual payment (not a pending
// authorization, refund, or fee).
func IsRevenue(tx BalanceTransaction) bool {
	return tx.Status == "available" && tx.Amount > 0 &&
		(tx.Type == "charge" || tx.Type == "payment")
}

// AggregateDaily consumes a transaction sequence and buckets realized
// revenue by calendar date, in the local zone of the transaction timestamp.
// Amounts are minor currency units converted to major units (two decimals).
// It also reports the currency code of the first qualifying transaction,
// empty when none qualified.
func AggregateDaily(txs iter.Seq2[BalanceTransaction, error], progress ProgressFunc) (DailySeries, string, error) {
	buckets := make(map[string]decimal.Decimal)
	days := make(map[string]time.Time)
	currency := ""

	processed := 0
	for tx, err := range txs {
		if err != nil {
			return nil, "", err
		}
		processed++
		if progress != nil && processed%progressInterval == 0 {
			progress(processed)
		}

		if !IsRevenue(tx) {
			continue
		}
		if currency == "" {
			currency = tx.Currency
		}

		day := dayOf(time.Unix(tx.Created, 0))
		key := day.Format("2006-01-02")
		buckets[key] = buckets[key].Add(decimal.New(tx.Amount, -2))
		days[key] = day
	}

	if len(buckets) == 0 {
		return nil, currency, nil
	}

	series := make(DailySeries, 0, len(buckets))
	for key, amount := range buckets {
		series = append(series, DailyRevenueEntry{Date: days[key], Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	running := decimal.Zero
	for i := range series {
		running = running.Add(series[i].Amount)
		series[i].Cumulative = running
	}

	return series, currency, nil
}

// dayOf truncates an instant to midnight of its own calendar day,
// keeping the instant's location. Deliberately not UTC-normalized.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
