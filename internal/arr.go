package internal

import "github.com/shopspring/decimal"

var twelve = decimal.NewFromInt(12)

// Annualize estimates annual recurring revenue from a trailing-month
// series: the sum of its daily amounts times 12. The series is expected
// to already be windowed to ~31 days by the caller; no day-weighted
// normalization is applied. An empty series annualizes to zero.
func Annualize(series DailySeries) decimal.Decimal {
	return series.Total().Mul(twelve)
}
