package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/compare"
	"github.com/HSchlagi/bess-simulation-sub000/internal/config"
	"github.com/HSchlagi/bess-simulation-sub000/internal/data"
	"github.com/HSchlagi/bess-simulation-sub000/internal/logger"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
	"github.com/HSchlagi/bess-simulation-sub000/internal/projection"
	"github.com/HSchlagi/bess-simulation-sub000/internal/report"

	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Level: settings.LogLevel, Pretty: true})

	switch os.Args[1] {
	case "compare":
		cmdCompare(os.Args[2:], log)
	case "import":
		cmdImport(os.Args[2:], log)
	case "scenarios":
		cmdScenarios()
	case "prices":
		cmdPrices(os.Args[2:], log)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli compare --config examples/analysis.yaml [--summary-csv results/summary.csv] [--trajectory-csv results/years.csv] [--json]")
	fmt.Println("  cli compare --db bess.db --project 1")
	fmt.Println("  cli import --config examples/analysis.yaml --db bess.db")
	fmt.Println("  cli scenarios")
	fmt.Println("  cli prices [--db bess.db --project 1] [--file examples/prices.yaml]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - compare projects every use case over the horizon and ranks them by cumulative ROI")
	fmt.Println("  - without use cases the three default strategies (SRL, balanced, arbitrage) are compared")
}

func cmdCompare(args []string, log zerolog.Logger) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML analysis config")
	dbPath := fs.String("db", "", "Path to SQLite project store")
	projectID := fs.Int64("project", 0, "Project id in the store (requires --db)")
	investment := fs.Float64("investment", 0, "Optional: override the total investment (EUR)")
	summaryCSV := fs.String("summary-csv", "", "Optional: write per-use-case summary CSV")
	trajectoryCSV := fs.String("trajectory-csv", "", "Optional: write per-year CSV")
	asJSON := fs.Bool("json", false, "Print the full result as JSON")
	_ = fs.Parse(args)

	if *cfgPath == "" && (*dbPath == "" || *projectID <= 0) {
		fmt.Println("either --config or --db with --project is required")
		os.Exit(2)
	}

	ctx := context.Background()
	builder := catalog.NewBuilder(log)
	in := compare.Input{
		Investment:          *investment,
		IncludeTrajectories: *trajectoryCSV != "",
	}
	var (
		prices   model.MarketPriceTable
		opts     []projection.Option
		warnings []model.Warning
	)

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *cfgPath).Msg("failed to load config")
		}
		in.Project = cfg.Project
		if records := cfg.Records(); len(records) > 0 {
			in.UseCases, warnings = builder.Build(records, cfg.Project)
		}
		prices = model.ReferencePrices().Merge(cfg.Prices)
		opts = cfg.EngineOptions()
	} else {
		store, err := data.OpenStore(*dbPath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", *dbPath).Msg("failed to open store")
		}
		defer store.Close()

		in.Project, err = store.Project(ctx, *projectID)
		if err != nil {
			log.Fatal().Err(err).Int64("project_id", *projectID).Msg("failed to load project")
		}
		records, err := store.UseCaseRecords(ctx, *projectID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load use cases")
		}
		if len(records) > 0 {
			in.UseCases, warnings = builder.Build(records, in.Project)
		}
		prices, err = store.ResolvePrices(ctx, *projectID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to resolve prices")
		}
	}

	result := compare.New(projection.New(opts...), log).Compare(in, prices)
	result.Warnings = append(warnings, result.Warnings...)

	if *summaryCSV != "" {
		mustWrite(*summaryCSV, result, report.WriteSummaryCSVFile, log)
	}
	if *trajectoryCSV != "" {
		mustWrite(*trajectoryCSV, result, report.WriteTrajectoryCSVFile, log)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatal().Err(err).Msg("failed to encode result")
		}
		return
	}
	printResult(result)
}

func mustWrite(path string, result *compare.AnalysisResult, write func(string, *compare.AnalysisResult) error, log zerolog.Logger) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to create output dir")
	}
	if err := write(path, result); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to write csv")
	}
	fmt.Printf("Wrote %s\n", path)
}

func printResult(r *compare.AnalysisResult) {
	fmt.Printf("Project %q  investment=%.2f EUR  horizon=%d years\n\n", r.Project.Name, r.Investment, r.HorizonYears)
	fmt.Printf("%-4s %-24s %-20s %-14s %-14s %-14s %-10s\n", "rank", "use case", "scenario", "revenue", "costs", "net", "roi%")
	for _, rk := range r.Ranking {
		s, ok := r.Find(rk.Name)
		if !ok {
			continue
		}
		b := s.AnnualBalance
		fmt.Printf("%-4d %-24s %-20s %-14.2f %-14.2f %-14.2f %-10.2f\n",
			rk.Rank, rk.Name, s.UseCase.ScenarioType, b.TotalRevenue, b.TotalCosts, b.NetCashflow, b.CumulativeROI)
	}
	fmt.Println("")
	fmt.Printf("Best: %s (ROI %.2f%%)  %s\n", r.Comparison.BestUseCase, r.Comparison.BestROI,
		r.Recommendations.InvestmentRecommendation)
	for _, w := range r.Warnings {
		fmt.Printf("warning [%s] %s %s\n", w.Code, w.UseCase, w.Message)
	}
}

// cmdImport stores a YAML analysis config (project, investment, prices and
// use cases) in the SQLite project store.
func cmdImport(args []string, log zerolog.Logger) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML analysis config")
	dbPath := fs.String("db", "bess.db", "Path to SQLite project store")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *cfgPath).Msg("failed to load config")
	}
	store, err := data.OpenStore(*dbPath, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dbPath).Msg("failed to open store")
	}
	defer store.Close()

	ctx := context.Background()
	id, err := store.CreateProject(ctx, cfg.Project)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create project")
	}
	if cfg.Project.TotalInvestment > 0 {
		_, err := store.AddInvestmentCost(ctx, data.InvestmentCost{
			ProjectID:     id,
			ComponentType: "bess",
			CostEUR:       cfg.Project.TotalInvestment,
			Description:   "imported total investment",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to store investment")
		}
	}
	if len(cfg.Prices) > 0 {
		if err := store.SavePrices(ctx, id, cfg.Prices); err != nil {
			log.Fatal().Err(err).Msg("failed to store prices")
		}
	}
	for _, rec := range cfg.Records() {
		rec.ProjectID = id
		if _, err := store.SaveUseCase(ctx, rec); err != nil {
			log.Fatal().Err(err).Str("use_case", rec.Name).Msg("failed to store use case")
		}
	}

	fmt.Printf("Imported project %q as id=%d with %d use cases into %s\n", cfg.Project.Name, id, len(cfg.UseCases), *dbPath)
}

func cmdScenarios() {
	fmt.Printf("%-22s %-22s %-8s %-6s\n", "scenario", "focus", "cycles", "eff")
	for _, s := range catalog.Scenarios() {
		fmt.Printf("%-22s %-22s %-8.0f %-6.2f\n", s.ScenarioType, s.Focus, s.AnnualCycles, s.Efficiency)
	}
}

func cmdPrices(args []string, log zerolog.Logger) {
	fs := flag.NewFlagSet("prices", flag.ExitOnError)
	dbPath := fs.String("db", "", "Path to SQLite project store")
	projectID := fs.Int64("project", data.GlobalProjectID, "Project id (0 = global table)")
	file := fs.String("file", "", "Path to a JSON or YAML price file")
	_ = fs.Parse(args)

	var resolver compare.PriceResolver = data.NewStaticResolver(model.MarketPriceTable{})
	switch {
	case *file != "":
		resolver = &data.FileResolver{Path: *file}
	case *dbPath != "":
		store, err := data.OpenStore(*dbPath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", *dbPath).Msg("failed to open store")
		}
		defer store.Close()
		resolver = store
	}

	prices, err := resolver.ResolvePrices(context.Background(), *projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve prices")
	}
	for _, k := range prices.Keys() {
		fmt.Printf("%-24s %12.4f\n", k, prices[k])
	}
}
