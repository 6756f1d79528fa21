package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// JSONReport is the machine-readable report document.
type JSONReport struct {
	RevenueData  []JSONRevenueRecord `json:"revenue_data"`
	ARR          JSONTotals          `json:"arr"`
	TodayRevenue JSONTotals          `json:"today_revenue"`
	TotalRevenue JSONTotals          `json:"total_revenue"`
}

// JSONRevenueRecord is one merged calendar day in the JSON document.
type JSONRevenueRecord struct {
	Date                   string  `json:"date"`
	AmountA                float64 `json:"amount_a"`
	CumulativeAmountA      float64 `json:"cumulative_amount_a"`
	AmountB                float64 `json:"amount_b"`
	CumulativeAmountB      float64 `json:"cumulative_amount_b"`
	TotalDailyRevenue      float64 `json:"total_daily_revenue"`
	TotalCumulativeRevenue float64 `json:"total_cumulative_revenue"`
}

// JSONTotals is a per-account/combined figure triple.
type JSONTotals struct {
	AccountA float64 `json:"account_a"`
	AccountB float64 `json:"account_b"`
	Total    float64 `json:"total"`
}

// JSONError is the error document emitted instead of a partial report.
type JSONError struct {
	Error string `json:"error"`
}

// BuildJSONReport converts a computed report into the JSON document shape.
func BuildJSONReport(r *Report) JSONReport {
	records := make([]JSONRevenueRecord, 0, len(r.Merged))
	for _, e := range r.Merged {
		records = append(records, JSONRevenueRecord{
			Date:                   e.Date.Format("2006-01-02"),
			AmountA:                e.AmountA.InexactFloat64(),
			CumulativeAmountA:      e.CumulativeA.InexactFloat64(),
			AmountB:                e.AmountB.InexactFloat64(),
			CumulativeAmountB:      e.CumulativeB.InexactFloat64(),
			TotalDailyRevenue:      e.TotalDaily.InexactFloat64(),
			TotalCumulativeRevenue: e.TotalCumulative.InexactFloat64(),
		})
	}

	last, _ := r.Last() // zero entry when the merge is empty

	return JSONReport{
		RevenueData: records,
		ARR: JSONTotals{
			AccountA: r.ARRA.InexactFloat64(),
			AccountB: r.ARRB.InexactFloat64(),
			Total:    r.ARRTotal.InexactFloat64(),
		},
		TodayRevenue: JSONTotals{
			AccountA: last.AmountA.InexactFloat64(),
			AccountB: last.AmountB.InexactFloat64(),
			Total:    last.TotalDaily.InexactFloat64(),
		},
		TotalRevenue: JSONTotals{
			AccountA: last.CumulativeA.InexactFloat64(),
			AccountB: last.CumulativeB.InexactFloat64(),
			Total:    last.TotalCumulative.InexactFloat64(),
		},
	}
}

// PrintReportJSON writes the report as a single JSON document.
func PrintReportJSON(w io.Writer, r *Report) error {
	return json.NewEncoder(w).Encode(BuildJSONReport(r))
}

// PrintErrorJSON writes the error document for structured mode.
func PrintErrorJSON(w io.Writer, err error) {
	json.NewEncoder(w).Encode(JSONError{Error: err.Error()})
}

// PrintReportTable renders the merged series as a formatted table followed
// by the ARR summary lines.
func PrintReportTable(w io.Writer, r *Report, labelA, labelB string) {
	cur := GetCurrency(r.Currency)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{
		"Date",
		fmt.Sprintf("Daily Revenue (%s)", labelA),
		fmt.Sprintf("Cumulative Revenue (%s)", labelA),
		fmt.Sprintf("Daily Revenue (%s)", labelB),
		fmt.Sprintf("Cumulative Revenue (%s)", labelB),
		"Total Daily Revenue",
		"Total Cumulative Revenue",
	})

	for _, e := range r.Merged {
		t.AppendRow(table.Row{
			e.Date.Format("2006-01-02"),
			cur.Format(e.AmountA),
			cur.Format(e.CumulativeA),
			cur.Format(e.AmountB),
			cur.Format(e.CumulativeB),
			cur.Format(e.TotalDaily),
			cur.Format(e.TotalCumulative),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault

	// Right-align the money columns
	configs := make([]table.ColumnConfig, 0, 6)
	for col := 2; col <= 7; col++ {
		configs = append(configs, table.ColumnConfig{Number: col, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	fmt.Fprintln(w, "\nRevenue Comparison:")
	t.Render()

	fmt.Fprintln(w, "\nCurrent ARR (Annual Recurring Revenue) based on trailing window:")
	fmt.Fprintf(w, "%s ARR: %s\n", labelA, cur.Format(r.ARRA))
	fmt.Fprintf(w, "%s ARR: %s\n", labelB, cur.Format(r.ARRB))
	fmt.Fprintf(w, "Total ARR: %s\n", cur.Format(r.ARRTotal))
}
