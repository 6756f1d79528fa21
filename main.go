package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"

	"github.com/gigurra/revenue-compare/internal"
)

type Params struct {
	Json   bool   `descr:"Output the report as a JSON document"`
	Xlsx   string `descr:"Also export the report to an xlsx file at this path"`
	Config string `descr:"Path to an optional YAML settings file"`
}

func main() {
	boa.NewCmdT[Params]("revenue-compare").
		WithShort("Compare daily revenue across two payment accounts").
		WithLong("Fetches balance transactions for two accounts, aggregates realized revenue per day, merges the two timelines with cumulative totals, and estimates ARR from the trailing 31 days.").
		WithRunFunc(func(params *Params) {
			os.Exit(run(params))
		}).
		Run()
}

func run(params *Params) int {
	settingsPath := params.Config
	if settingsPath == "" {
		settingsPath = internal.DefaultSettingsPath()
	}

	cfg, err := internal.LoadConfig(settingsPath)
	if err != nil {
		reportError(params.Json, err)
		return 1
	}

	// Progress notifications are cosmetic and only shown in table mode.
	var status io.Writer
	if !params.Json {
		status = os.Stderr
	}

	srcA, srcB := cfg.NewSources()
	report, err := internal.BuildReport(srcA, srcB, internal.ReportOptions{
		TrailingDays: cfg.TrailingDays,
		LabelA:       cfg.LabelA,
		LabelB:       cfg.LabelB,
		Status:       status,
	})
	if err != nil {
		reportError(params.Json, err)
		if errors.Is(err, internal.ErrNoRevenueData) {
			return 0
		}
		return 1
	}

	if params.Json {
		if err := internal.PrintReportJSON(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return 1
		}
	} else {
		internal.PrintReportTable(os.Stdout, report, cfg.LabelA, cfg.LabelB)
	}

	if params.Xlsx != "" {
		if err := internal.WriteReportXLSX(params.Xlsx, report, cfg.LabelA, cfg.LabelB); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting spreadsheet: %v\n", err)
			return 1
		}
		if !params.Json {
			fmt.Printf("\nExported report to %s\n", params.Xlsx)
		}
	}

	return 0
}

func reportError(jsonMode bool, err error) {
	if jsonMode {
		internal.PrintErrorJSON(os.Stdout, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
