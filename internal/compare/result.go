package compare

import (
	"github.com/HSchlagi/bess-simulation-sub000/internal/analysis"
	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
)

const (
	// RecommendThresholdROI is the cumulative ROI (percent) above which the
	// best use case is recommended without reservation.
	RecommendThresholdROI = 15.0

	Recommended              = "Empfohlen"
	ConditionallyRecommended = "Bedingt empfohlen"
)

// TotalComparison carries the project-level figures. They are copied from the
// best use case only: use cases are alternative strategies for the same
// battery, so their totals never add up.
type TotalComparison struct {
	UseCase         string  `json:"use_case"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCosts      float64 `json:"total_costs"`
	TotalInvestment float64 `json:"total_investment"`
	NetCashflow     float64 `json:"net_cashflow"`
}

type ComparisonMetrics struct {
	BestROI         float64         `json:"best_roi"`
	BestUseCase     string          `json:"best_use_case"`
	TotalComparison TotalComparison `json:"total_comparison"`
}

type Recommendations struct {
	RecommendedUseCase       string   `json:"recommended_use_case"`
	InvestmentRecommendation string   `json:"investment_recommendation"`
	KeyAdvantages            []string `json:"key_advantages"`
	RiskFactors              []string `json:"risk_factors"`
}

// AnalysisResult is the outcome of one comparison run.
type AnalysisResult struct {
	Project         catalog.Project           `json:"project"`
	Investment      float64                   `json:"investment"`
	HorizonYears    int                       `json:"horizon_years"`
	AnnualDecayRate float64                   `json:"annual_decay_rate"`
	Prices          model.MarketPriceTable    `json:"market_prices"`
	UseCases        []analysis.UseCaseSummary `json:"use_cases"`
	Ranking         []analysis.RankedUseCase  `json:"ranking"`
	Comparison      ComparisonMetrics         `json:"comparison_metrics"`
	Recommendations Recommendations           `json:"recommendations"`
	Warnings        []model.Warning           `json:"warnings"`
}

// Find returns the summary of the named use case.
func (r *AnalysisResult) Find(name string) (analysis.UseCaseSummary, bool) {
	for _, s := range r.UseCases {
		if s.UseCase.Name == name {
			return s, true
		}
	}
	return analysis.UseCaseSummary{}, false
}

// Best returns the summary of the best use case.
func (r *AnalysisResult) Best() (analysis.UseCaseSummary, bool) {
	return r.Find(r.Comparison.BestUseCase)
}
