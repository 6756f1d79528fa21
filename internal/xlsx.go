package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteReportXLSX exports the merged series and ARR summary to a spreadsheet.
// Money cells are written as numbers so the sheet stays usable for formulas.
func WriteReportXLSX(path string, r *Report, labelA, labelB string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Revenue"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := []any{
		"Date",
		fmt.Sprintf("Daily Revenue (%s)", labelA),
		fmt.Sprintf("Cumulative Revenue (%s)", labelA),
		fmt.Sprintf("Daily Revenue (%s)", labelB),
		fmt.Sprintf("Cumulative Revenue (%s)", labelB),
		"Total Daily Revenue",
		"Total Cumulative Revenue",
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, e := range r.Merged {
		row := []any{
			e.Date.Format("2006-01-02"),
			e.AmountA.InexactFloat64(),
			e.CumulativeA.InexactFloat64(),
			e.AmountB.InexactFloat64(),
			e.CumulativeB.InexactFloat64(),
			e.TotalDaily.InexactFloat64(),
			e.TotalCumulative.InexactFloat64(),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	// ARR summary block below the series, separated by a blank row
	summaryStart := len(r.Merged) + 3
	summary := [][]any{
		{fmt.Sprintf("ARR (%s)", labelA), r.ARRA.InexactFloat64()},
		{fmt.Sprintf("ARR (%s)", labelB), r.ARRB.InexactFloat64()},
		{"Total ARR", r.ARRTotal.InexactFloat64()},
		{"Currency", r.Currency},
	}
	for i, row := range summary {
		if err := writeRow(f, sheet, summaryStart+i, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("addressing cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing cell %s: %w", cell, err)
		}
	}
	return nil
}
