package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/HSchlagi/bess-simulation-sub000/internal/analysis"
	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/config"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
	"github.com/HSchlagi/bess-simulation-sub000/internal/projection"
)

// Demo:
// - Build the reference project (8 MWh / 2 MW, 2.4 cycles per day)
// - Project one SRL-focused use case over the horizon
// - Print the first year's revenue and cost breakdown and the totals
func main() {
	cfgPath := flag.String("config", "", "Path to YAML analysis config (optional)")
	focus := flag.String("focus", string(model.FocusSRL), "Market focus: srl_focused, balanced, arbitrage_focused, peak_shaving_focused")
	flag.Parse()

	project := catalog.Project{
		Name:            "Referenzprojekt",
		SizeKWh:         8000,
		PowerKW:         2000,
		DailyCycles:     2.4,
		TotalInvestment: 6_130_000,
	}
	prices := model.ReferencePrices()
	engine := projection.New()

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		project = cfg.Project
		prices = prices.Merge(cfg.Prices)
		engine = projection.New(cfg.EngineOptions()...)
	}

	uc := catalog.FromFocus("Demo", project, model.MarketFocus(*focus))
	trajectory, err := engine.Run(uc, prices, project.TotalInvestment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "projection: %v\n", err)
		os.Exit(1)
	}

	first := trajectory[0]
	fmt.Printf("%s: %.1f MWh / %.1f MW, %.0f cycles/year, efficiency %.2f\n\n",
		project.Name, uc.SizeMWh, uc.PowerMW, uc.AnnualCycles, uc.Efficiency)

	fmt.Println("year 1 revenue (EUR)")
	for _, c := range first.MarketRevenue.Components() {
		fmt.Printf("  %-20s %14.2f\n", c.Name, c.Value)
	}
	ib := first.MarketRevenue.Intraday
	fmt.Printf("  %-20s %14.2f (spot %.2f, trading %.2f, balancing %.2f)\n",
		"intraday (combined)", ib.Total(), ib.SpotArbitrage, ib.Trading, ib.Balancing)
	fmt.Printf("  %-20s %14.2f\n\n", "total", first.MarketRevenue.Total())

	fmt.Println("year 1 costs (EUR)")
	for _, c := range first.CostStructure.OperatingComponents() {
		fmt.Printf("  %-20s %14.2f\n", c.Name, c.Value)
	}
	fmt.Printf("  %-20s %14.2f\n\n", "total", first.CostStructure.AnnualOperatingCosts())

	fmt.Println("year 1 monthly revenue (EUR)")
	for m, v := range first.Monthly.Revenue {
		fmt.Printf("  %2d %12.2f %4d cycles\n", m+1, v, first.Monthly.Cycles[m])
	}

	s := analysis.Summarize(uc, trajectory)
	b := s.AnnualBalance
	fmt.Printf("\n%d years: revenue %.2f, costs %.2f, investment %.2f, net %.2f, ROI %.2f%%\n",
		b.Years, b.TotalRevenue, b.TotalCosts, b.TotalInvestment, b.NetCashflow, b.CumulativeROI)
}
