package analysis

import (
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AnnualBalance is the horizon-level balance of one use case. Revenue and
// recurring costs are summed over all years; the investment is counted once.
type AnnualBalance struct {
	Years           int     `json:"years"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCosts      float64 `json:"total_costs"`
	TotalInvestment float64 `json:"total_investment"`
	NetCashflow     float64 `json:"net_cashflow"`
	CumulativeROI   float64 `json:"cumulative_roi"` // percent, undiscounted
}

// EfficiencyMetrics summarizes how well a trajectory turns cycling into revenue.
type EfficiencyMetrics struct {
	AverageEfficiencyPercent float64 `json:"average_efficiency"`
	TotalCycles              float64 `json:"total_cycles"`
	RevenuePerCycle          float64 `json:"revenue_per_cycle"`
	EnergyThroughputMWh      float64 `json:"energy_throughput"`
	RevenuePerMWhThroughput  float64 `json:"revenue_per_mwh_throughput"`
}

// Aggregate reduces a trajectory to its annual balance.
func Aggregate(results model.Trajectory) AnnualBalance {
	if len(results) == 0 {
		return AnnualBalance{}
	}

	revenue := make([]float64, len(results))
	costs := make([]float64, len(results))
	for i, r := range results {
		revenue[i] = r.MarketRevenue.Total()
		costs[i] = r.CostStructure.AnnualOperatingCosts()
	}

	b := AnnualBalance{
		Years:           len(results),
		TotalRevenue:    floats.Sum(revenue),
		TotalCosts:      floats.Sum(costs),
		TotalInvestment: results[0].CostStructure.Investment,
	}
	b.NetCashflow = b.TotalRevenue - b.TotalCosts - b.TotalInvestment
	if b.TotalInvestment > 0 {
		b.CumulativeROI = b.NetCashflow / b.TotalInvestment * 100
	}
	return b
}

// Efficiency computes the efficiency metrics of a trajectory.
func Efficiency(results model.Trajectory) EfficiencyMetrics {
	if len(results) == 0 {
		return EfficiencyMetrics{}
	}

	eff := make([]float64, len(results))
	cycles := make([]float64, len(results))
	revenue := make([]float64, len(results))
	throughput := make([]float64, len(results))
	for i, r := range results {
		eff[i] = r.UseCase.Efficiency
		cycles[i] = r.UseCase.AnnualCycles
		revenue[i] = r.MarketRevenue.Total()
		throughput[i] = r.UseCase.EnergyThroughputMWh()
	}

	m := EfficiencyMetrics{
		AverageEfficiencyPercent: stat.Mean(eff, nil) * 100,
		TotalCycles:              floats.Sum(cycles),
		EnergyThroughputMWh:      floats.Sum(throughput),
	}
	totalRevenue := floats.Sum(revenue)
	if m.TotalCycles > 0 {
		m.RevenuePerCycle = totalRevenue / m.TotalCycles
	}
	if m.EnergyThroughputMWh > 0 {
		m.RevenuePerMWhThroughput = totalRevenue / m.EnergyThroughputMWh
	}
	return m
}

// EnergyNeutrality is discharged energy over stored energy, in percent.
// Both quantities are accumulated over the trajectory so per-year efficiency
// changes are weighted by that year's throughput.
func EnergyNeutrality(results model.Trajectory) float64 {
	stored := 0.0
	discharged := 0.0
	for _, r := range results {
		e := r.UseCase.EnergyThroughputMWh()
		stored += e
		discharged += e * r.UseCase.Efficiency
	}
	if stored > 0 {
		return discharged / stored * 100
	}
	return 0
}
