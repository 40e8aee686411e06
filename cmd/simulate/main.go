package main

import (
	"flag"
	"fmt"
	"os"

	"saas_simulator/pkg/core/cohort"
	"saas_simulator/pkg/core/export"
	"saas_simulator/pkg/core/forecast"
	"saas_simulator/pkg/core/model"
	"saas_simulator/pkg/core/snapshot"
	"saas_simulator/pkg/core/utils"
)

func main() {
	modelPath := flag.String("model", "", "Path to a business model file (hjson or json)")
	months := flag.Int("months", 60, "Projection horizon in months")
	outPath := flag.String("out", "projection.csv", "Where to write the projection CSV")
	flag.Parse()

	if *modelPath == "" {
		fmt.Println("Usage: simulate -model business.hjson [-months 60] [-out projection.csv]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*modelPath)
	if err != nil {
		fmt.Printf("Error reading model file: %v\n", err)
		os.Exit(1)
	}

	var m model.BusinessModel
	if err := utils.DecodeHjson(data, &m); err != nil {
		fmt.Printf("Error parsing model file: %v\n", err)
		os.Exit(1)
	}
	if m.Params.MarketingEfficiency == 0 && m.Params.MinChurnFloor == 0 {
		// A zeroed params block almost always means the file omitted it.
		m.Params = model.DefaultScenarioParams()
		fmt.Println("[simulate] no params in model file, using defaults")
	}

	snap := snapshot.Calculate(m.Plans, m.Employees, m.Expenses, m.Params)
	projections, breakEven := forecast.Project(m.Plans, snap, m.Params, *months)
	cohorts := cohort.Generate(projections, snap)

	fmt.Printf("MRR $%.2f | ARR $%.2f | Net monthly $%.2f\n", snap.MRR, snap.ARR, snap.NetMonthly)
	fmt.Printf("LTV $%.2f | CAC $%.2f | LTV:CAC %.2f\n", snap.LTV, snap.CAC, snap.LTVCACRatio)
	fmt.Printf("Burn $%.2f/mo | Runway %.1f months | Valuation $%.2f\n", snap.BurnRate, snap.RunwayMonths, snap.Valuation)
	if breakEven != nil {
		fmt.Printf("Break-even in month %d\n", *breakEven)
	} else {
		fmt.Printf("No break-even within %d months\n", *months)
	}
	fmt.Printf("Generated %d cohort curves\n", len(cohorts))

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Printf("Error creating %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := export.WriteCSV(f, projections); err != nil {
		fmt.Printf("Error writing CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d months to %s\n", len(projections), *outPath)
}
