package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/HSchlagi/bess-simulation-sub000/internal/compare"
)

var trajectoryHeader = []string{
	"use_case",
	"year",
	"degradation_factor",
	"srl_positive",
	"srl_negative",
	"sre_positive",
	"sre_negative",
	"prr",
	"intraday_trading",
	"intraday_spot_arbitrage",
	"intraday_trading_only",
	"intraday_balancing",
	"day_ahead",
	"balancing_energy",
	"total_revenue",
	"investment",
	"operating",
	"maintenance",
	"grid_fees",
	"legal_charges",
	"regulatory_fees",
	"insurance",
	"degradation",
	"annual_costs",
	"net_cashflow",
	"roi",
	"cum_net_cashflow",
}

func WriteTrajectoryCSV(out io.Writer, rows []TrajectoryRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.UseCase,
			strconv.Itoa(r.Year),
			fmtFloat(r.DegradationFactor),
			fmtFloat(r.SRLPositive),
			fmtFloat(r.SRLNegative),
			fmtFloat(r.SREPositive),
			fmtFloat(r.SRENegative),
			fmtFloat(r.PRR),
			fmtFloat(r.Intraday),
			fmtFloat(r.IntradaySpot),
			fmtFloat(r.IntradayTrading),
			fmtFloat(r.IntradayBalancing),
			fmtFloat(r.DayAhead),
			fmtFloat(r.BalancingEnergy),
			fmtFloat(r.TotalRevenue),
			fmtFloat(r.Investment),
			fmtFloat(r.Operating),
			fmtFloat(r.Maintenance),
			fmtFloat(r.GridFees),
			fmtFloat(r.LegalCharges),
			fmtFloat(r.RegulatoryFees),
			fmtFloat(r.Insurance),
			fmtFloat(r.Degradation),
			fmtFloat(r.AnnualCosts),
			fmtFloat(r.NetCashflow),
			fmtFloat(r.ROI),
			fmtFloat(r.CumNetCashflow),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

var summaryHeader = []string{
	"rank",
	"use_case",
	"scenario_type",
	"years",
	"total_revenue",
	"total_costs",
	"total_investment",
	"net_cashflow",
	"cumulative_roi",
	"average_efficiency",
	"total_cycles",
	"revenue_per_cycle",
	"energy_throughput_mwh",
	"energy_neutrality",
	"recommended",
}

// WriteSummaryCSV writes one line per use case, in input order.
func WriteSummaryCSV(out io.Writer, result *compare.AnalysisResult) error {
	rank := make(map[string]int, len(result.Ranking))
	for _, r := range result.Ranking {
		rank[r.Name] = r.Rank
	}

	w := csv.NewWriter(out)
	if err := w.Write(summaryHeader); err != nil {
		return err
	}
	for _, s := range result.UseCases {
		b := s.AnnualBalance
		e := s.EfficiencyMetrics
		row := []string{
			strconv.Itoa(rank[s.UseCase.Name]),
			s.UseCase.Name,
			string(s.UseCase.ScenarioType),
			strconv.Itoa(b.Years),
			fmtFloat(b.TotalRevenue),
			fmtFloat(b.TotalCosts),
			fmtFloat(b.TotalInvestment),
			fmtFloat(b.NetCashflow),
			fmtFloat(b.CumulativeROI),
			fmtFloat(e.AverageEfficiencyPercent),
			fmtFloat(e.TotalCycles),
			fmtFloat(e.RevenuePerCycle),
			fmtFloat(e.EnergyThroughputMWh),
			fmtFloat(s.EnergyNeutralityPercent),
			strconv.FormatBool(s.UseCase.Name == result.Comparison.BestUseCase),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteTrajectoryCSVFile writes the yearly export of result to path.
func WriteTrajectoryCSVFile(path string, result *compare.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteTrajectoryCSV(f, TrajectoryRows(result.UseCases))
}

// WriteSummaryCSVFile writes the per-use-case summary of result to path.
func WriteSummaryCSVFile(path string, result *compare.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSummaryCSV(f, result)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
