package internal

import (
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// fakeSource serves canned transactions, honoring the requested window the
// way the real API does (created >= start, and <= end when end is set).
type fakeSource struct {
	txs  []BalanceTransaction
	err  error
	hits int
}

func (f *fakeSource) Transactions(w Window) iter.Seq2[BalanceTransaction, error] {
	f.hits++
	return func(yield func(BalanceTransaction, error) bool) {
		if f.err != nil {
			yield(BalanceTransaction{}, f.err)
			return
		}
		for _, tx := range f.txs {
			if tx.Created < w.Start.Unix() {
				continue
			}
			if !w.End.IsZero() && tx.Created > w.End.Unix() {
				continue
			}
			if !yield(tx, nil) {
				return
			}
		}
	}
}

func TestBuildReport(t *testing.T) {
	now := date("2024-06-15").Add(12 * time.Hour)

	srcA := &fakeSource{txs: []BalanceTransaction{
		charge("2024-01-10", 10000), // $100, outside trailing window
		charge("2024-06-01", 25000), // $250, inside trailing window
	}}
	srcB := &fakeSource{txs: []BalanceTransaction{
		charge("2024-06-10", 5000), // $50, inside trailing window
	}}

	report, err := BuildReport(srcA, srcB, ReportOptions{Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// year windows + trailing windows, one fetch each per account
	if srcA.hits != 2 || srcB.hits != 2 {
		t.Errorf("expected 2 fetches per account, got A=%d B=%d", srcA.hits, srcB.hits)
	}

	if len(report.Merged) != 3 {
		t.Fatalf("expected 3 merged days, got %d", len(report.Merged))
	}
	if report.Currency != "USD" {
		t.Errorf("currency = %q, want USD", report.Currency)
	}

	// trailing sums: A=$250, B=$50
	if !report.ARRA.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("ARR A = %s, want 3000", report.ARRA)
	}
	if !report.ARRB.Equal(decimal.NewFromInt(600)) {
		t.Errorf("ARR B = %s, want 600", report.ARRB)
	}
	if !report.ARRTotal.Equal(decimal.NewFromInt(3600)) {
		t.Errorf("total ARR = %s, want 3600", report.ARRTotal)
	}

	last, ok := report.Last()
	if !ok {
		t.Fatal("expected a last merged entry")
	}
	if !last.TotalDaily.Equal(decimal.NewFromInt(50)) {
		t.Errorf("today's revenue = %s, want 50", last.TotalDaily)
	}
	if !last.TotalCumulative.Equal(decimal.NewFromInt(400)) {
		t.Errorf("total revenue to date = %s, want 400", last.TotalCumulative)
	}
}

func TestBuildReportNoDataOnEmptyAccount(t *testing.T) {
	srcA := &fakeSource{txs: []BalanceTransaction{charge("2024-02-01", 10000)}}
	srcB := &fakeSource{} // no qualifying transactions all year

	_, err := BuildReport(srcA, srcB, ReportOptions{Now: date("2024-06-15")})
	if !errors.Is(err, ErrNoRevenueData) {
		t.Fatalf("expected ErrNoRevenueData, got %v", err)
	}
}

func TestBuildReportOnlyNonQualifyingData(t *testing.T) {
	// Refunds and pending charges are fetched but never qualify.
	srcA := &fakeSource{txs: []BalanceTransaction{charge("2024-02-01", 10000)}}
	srcB := &fakeSource{txs: []BalanceTransaction{
		{Status: "available", Amount: 5000, Type: "refund", Created: date("2024-02-01").Unix()},
		{Status: "pending", Amount: 5000, Type: "charge", Created: date("2024-02-02").Unix()},
	}}

	_, err := BuildReport(srcA, srcB, ReportOptions{Now: date("2024-06-15")})
	if !errors.Is(err, ErrNoRevenueData) {
		t.Fatalf("expected ErrNoRevenueData, got %v", err)
	}
}

func TestBuildReportTransportErrorPropagates(t *testing.T) {
	srcA := &fakeSource{err: errTest}
	srcB := &fakeSource{}

	_, err := BuildReport(srcA, srcB, ReportOptions{Now: date("2024-06-15"), LabelA: "Account A"})
	if err == nil || !errors.Is(err, errTest) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Account A") {
		t.Errorf("error should name the failing account: %v", err)
	}
}

func TestBuildReportStatusOutput(t *testing.T) {
	var buf strings.Builder
	srcA := &fakeSource{txs: []BalanceTransaction{charge("2024-02-01", 100)}}
	srcB := &fakeSource{txs: []BalanceTransaction{charge("2024-02-02", 100)}}

	_, err := BuildReport(srcA, srcB, ReportOptions{
		Now:    date("2024-06-15"),
		LabelA: "Alpha",
		LabelB: "Beta",
		Status: &buf,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Alpha") || !strings.Contains(out, "Beta") {
		t.Errorf("status output should mention both account labels, got:\n%s", out)
	}
}

func TestReportLastEmpty(t *testing.T) {
	r := &Report{}
	last, ok := r.Last()
	if ok {
		t.Fatal("expected no last entry for empty merge")
	}
	if !last.TotalDaily.IsZero() || !last.TotalCumulative.IsZero() {
		t.Errorf("zero entry expected, got %+v", last)
	}
}
