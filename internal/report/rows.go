// Package report writes comparison results as CSV.
package report

import (
	"github.com/HSchlagi/bess-simulation-sub000/internal/analysis"
)

// TrajectoryRow is one (use case, year) line of the yearly export.
type TrajectoryRow struct {
	UseCase string
	Year    int

	DegradationFactor float64

	SRLPositive       float64
	SRLNegative       float64
	SREPositive       float64
	SRENegative       float64
	PRR               float64
	Intraday          float64
	IntradaySpot      float64
	IntradayTrading   float64
	IntradayBalancing float64
	DayAhead          float64
	BalancingEnergy   float64
	TotalRevenue      float64

	Investment     float64
	Operating      float64
	Maintenance    float64
	GridFees       float64
	LegalCharges   float64
	RegulatoryFees float64
	Insurance      float64
	Degradation    float64
	AnnualCosts    float64

	NetCashflow float64
	ROI         float64

	// CumNetCashflow is revenue minus recurring costs summed up to this year,
	// minus the investment once.
	CumNetCashflow float64
}

// TrajectoryRows flattens the yearly results of every summary. Summaries
// without a trajectory contribute no rows.
func TrajectoryRows(summaries []analysis.UseCaseSummary) []TrajectoryRow {
	var out []TrajectoryRow
	for _, s := range summaries {
		cum := 0.0
		for i, r := range s.Trajectory {
			rev := r.MarketRevenue
			cost := r.CostStructure
			if i == 0 {
				cum -= cost.Investment
			}
			cum += rev.Total() - cost.AnnualOperatingCosts()

			out = append(out, TrajectoryRow{
				UseCase:           s.UseCase.Name,
				Year:              r.Year,
				DegradationFactor: r.KPIs.DegradationFactor,
				SRLPositive:       rev.SRLPositive,
				SRLNegative:       rev.SRLNegative,
				SREPositive:       rev.SREPositive,
				SRENegative:       rev.SRENegative,
				PRR:               rev.PRR,
				Intraday:          rev.IntradayTrading,
				IntradaySpot:      rev.Intraday.SpotArbitrage,
				IntradayTrading:   rev.Intraday.Trading,
				IntradayBalancing: rev.Intraday.Balancing,
				DayAhead:          rev.DayAhead,
				BalancingEnergy:   rev.BalancingEnergy,
				TotalRevenue:      rev.Total(),
				Investment:        cost.Investment,
				Operating:         cost.Operating,
				Maintenance:       cost.Maintenance,
				GridFees:          cost.GridFees,
				LegalCharges:      cost.LegalCharges,
				RegulatoryFees:    cost.RegulatoryFees,
				Insurance:         cost.Insurance,
				Degradation:       cost.Degradation,
				AnnualCosts:       cost.AnnualOperatingCosts(),
				NetCashflow:       r.NetCashflow(),
				ROI:               r.ROI(),
				CumNetCashflow:    cum,
			})
		}
	}
	return out
}
