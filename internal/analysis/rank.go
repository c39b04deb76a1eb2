package analysis

import (
	"sort"

	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
)

// UseCaseSummary bundles the horizon-level figures of one use case.
type UseCaseSummary struct {
	UseCase                 model.UseCase     `json:"use_case"`
	AnnualBalance           AnnualBalance     `json:"annual_balance"`
	EfficiencyMetrics       EfficiencyMetrics `json:"efficiency_metrics"`
	EnergyNeutralityPercent float64           `json:"energy_neutrality"`
	Trajectory              model.Trajectory  `json:"detailed_results,omitempty"`
}

// Summarize runs every aggregation over one trajectory.
func Summarize(uc model.UseCase, results model.Trajectory) UseCaseSummary {
	return UseCaseSummary{
		UseCase:                 uc,
		AnnualBalance:           Aggregate(results),
		EfficiencyMetrics:       Efficiency(results),
		EnergyNeutralityPercent: EnergyNeutrality(results),
		Trajectory:              results,
	}
}

type RankedUseCase struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	CumulativeROI float64 `json:"cumulative_roi"`
	NetCashflow   float64 `json:"net_cashflow"`
}

// RankByROI sorts descending by cumulative ROI. Ties keep input order.
func RankByROI(summaries []UseCaseSummary) []RankedUseCase {
	out := make([]RankedUseCase, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, RankedUseCase{
			Name:          s.UseCase.Name,
			CumulativeROI: s.AnnualBalance.CumulativeROI,
			NetCashflow:   s.AnnualBalance.NetCashflow,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CumulativeROI > out[j].CumulativeROI
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
