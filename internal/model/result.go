package model

import "math"

// MonthlyData is the seasonal split of one simulated year.
type MonthlyData struct {
	Revenue    []float64 `json:"revenue"`
	Cycles     []int     `json:"cycles"`
	Efficiency []float64 `json:"efficiency"` // percent
}

// YearKPIs are per-year indicators that do not depend on other years.
type YearKPIs struct {
	AnnualEnergyThroughputMWh float64 `json:"annual_energy_throughput"`
	CapacityFactor            float64 `json:"capacity_factor"`
	EfficiencyFactor          float64 `json:"efficiency_factor"`
	DegradationFactor         float64 `json:"degradation_factor"`
}

// SimulationResult is the projection of one use case for one year.
// Year is the zero-based index into the horizon; 0 is the reference year.
type SimulationResult struct {
	UseCase       UseCase       `json:"use_case"`
	Year          int           `json:"year"`
	MarketRevenue MarketRevenue `json:"market_revenue"`
	CostStructure CostStructure `json:"cost_structure"`
	Monthly       MonthlyData   `json:"monthly_data"`
	KPIs          YearKPIs      `json:"kpis"`
}

// NetCashflow is revenue minus recurring costs; investment is excluded.
func (r SimulationResult) NetCashflow() float64 {
	return r.MarketRevenue.Total() - r.CostStructure.AnnualOperatingCosts()
}

// ROI is the year's net cash flow as a percentage of the investment.
func (r SimulationResult) ROI() float64 {
	if r.CostStructure.Investment > 0 {
		return r.NetCashflow() / r.CostStructure.Investment * 100
	}
	return 0
}

// PaybackPeriod is the investment divided by this year's net cash flow, in
// years. It is +Inf when the year does not generate cash.
func (r SimulationResult) PaybackPeriod() float64 {
	ncf := r.NetCashflow()
	if ncf > 0 {
		return r.CostStructure.Investment / ncf
	}
	return math.Inf(1)
}

func (r SimulationResult) RevenuePerMW() float64 {
	if r.UseCase.PowerMW > 0 {
		return r.MarketRevenue.Total() / r.UseCase.PowerMW
	}
	return 0
}

func (r SimulationResult) RevenuePerMWh() float64 {
	if r.UseCase.SizeMWh > 0 {
		return r.MarketRevenue.Total() / r.UseCase.SizeMWh
	}
	return 0
}

// Trajectory is the ordered list of yearly results for one use case.
type Trajectory []SimulationResult
