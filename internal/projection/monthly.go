package projection

import "github.com/HSchlagi/bess-simulation-sub000/internal/model"

// SeasonalFactors weight each calendar month's share of cycling activity.
var SeasonalFactors = [12]float64{0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.2, 1.1, 1.0, 0.9, 0.8, 0.7}

// MonthlyProfile splits a year's revenue across months by seasonal weight so
// the months add up to annualRevenue. Cycles per month are truncated to whole
// cycles and therefore may not add up to the annual count.
func MonthlyProfile(uc model.UseCase, annualRevenue float64) model.MonthlyData {
	weightSum := 0.0
	for _, f := range SeasonalFactors {
		weightSum += f
	}

	md := model.MonthlyData{
		Revenue:    make([]float64, len(SeasonalFactors)),
		Cycles:     make([]int, len(SeasonalFactors)),
		Efficiency: make([]float64, len(SeasonalFactors)),
	}
	for m, f := range SeasonalFactors {
		md.Revenue[m] = annualRevenue * f / weightSum
		md.Cycles[m] = int(uc.AnnualCycles / 12 * f)
		md.Efficiency[m] = uc.Efficiency * 100
	}
	return md
}
