// Package compare runs every use case of a project through the projection
// and picks the strategy with the best return on investment.
package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/HSchlagi/bess-simulation-sub000/internal/analysis"
	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/economics"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
	"github.com/HSchlagi/bess-simulation-sub000/internal/projection"

	"github.com/rs/zerolog"
)

// PriceResolver supplies the market price table for a project. projectID 0
// asks for the global table.
type PriceResolver interface {
	ResolvePrices(ctx context.Context, projectID int64) (model.MarketPriceTable, error)
}

// Input is everything a comparison run needs besides prices.
type Input struct {
	Project  catalog.Project
	UseCases []model.UseCase
	// Investment overrides Project.TotalInvestment when > 0.
	Investment float64
	// IncludeTrajectories keeps the yearly results in each summary.
	IncludeTrajectories bool
}

func (in Input) investment() float64 {
	if in.Investment > 0 {
		return in.Investment
	}
	return in.Project.TotalInvestment
}

type Comparator struct {
	engine *projection.Engine
	log    zerolog.Logger
}

func New(engine *projection.Engine, log zerolog.Logger) *Comparator {
	if engine == nil {
		engine = projection.New()
	}
	return &Comparator{
		engine: engine,
		log:    log.With().Str("component", "comparator").Logger(),
	}
}

// CompareProject resolves the project's prices once and runs Compare.
func (c *Comparator) CompareProject(ctx context.Context, resolver PriceResolver, in Input) (*AnalysisResult, error) {
	if resolver == nil {
		return nil, errors.New("price resolver is nil")
	}
	prices, err := resolver.ResolvePrices(ctx, in.Project.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve prices for project %d: %w", in.Project.ID, err)
	}
	return c.Compare(in, prices), nil
}

// Compare evaluates every use case against the same prices and investment.
// Data-quality problems never fail the run; they are corrected and reported
// in AnalysisResult.Warnings.
func (c *Comparator) Compare(in Input, prices model.MarketPriceTable) *AnalysisResult {
	var warnings []model.Warning

	prices, w := economics.SanitizePrices(prices)
	warnings = append(warnings, w...)

	investment, w := economics.SanitizeInvestment(in.investment())
	warnings = append(warnings, w...)

	useCases := in.UseCases
	if len(useCases) == 0 {
		useCases = catalog.DefaultUseCases(in.Project)
		warnings = append(warnings, model.NewWarning(model.WarnEmptyCatalog, "",
			"no use cases supplied, using default catalog"))
	}
	useCases, w = catalog.UniqueNames(useCases)
	warnings = append(warnings, w...)

	summaries := make([]analysis.UseCaseSummary, 0, len(useCases))
	for _, raw := range useCases {
		uc, w := economics.SanitizeUseCase(raw)
		warnings = append(warnings, w...)

		trajectory, err := c.engine.Run(uc, prices, investment)
		if err != nil {
			// Only reachable with a zero-value engine.
			c.log.Error().Err(err).Str("use_case", uc.Name).Msg("projection failed")
			continue
		}
		s := analysis.Summarize(uc, trajectory)
		if !in.IncludeTrajectories {
			s.Trajectory = nil
		}
		summaries = append(summaries, s)
	}

	for _, w := range warnings {
		c.log.Warn().Str("code", string(w.Code)).Str("use_case", w.UseCase).Msg(w.Message)
	}

	result := &AnalysisResult{
		Project:         in.Project,
		Investment:      investment,
		HorizonYears:    c.engine.Horizon(),
		AnnualDecayRate: c.engine.AnnualDecayRate(),
		Prices:          prices,
		UseCases:        summaries,
		Ranking:         analysis.RankByROI(summaries),
		Warnings:        warnings,
	}
	result.Comparison = comparisonMetrics(summaries)
	result.Recommendations = recommend(result.Comparison)

	c.log.Info().
		Str("project", in.Project.Name).
		Int("use_cases", len(summaries)).
		Str("best_use_case", result.Comparison.BestUseCase).
		Float64("best_roi", result.Comparison.BestROI).
		Int("warnings", len(warnings)).
		Msg("comparison finished")
	return result
}

// comparisonMetrics picks the use case with the highest cumulative ROI. The
// first one wins a tie.
func comparisonMetrics(summaries []analysis.UseCaseSummary) ComparisonMetrics {
	if len(summaries) == 0 {
		return ComparisonMetrics{}
	}
	best := 0
	for i := 1; i < len(summaries); i++ {
		if summaries[i].AnnualBalance.CumulativeROI > summaries[best].AnnualBalance.CumulativeROI {
			best = i
		}
	}
	s := summaries[best]
	return ComparisonMetrics{
		BestROI:     s.AnnualBalance.CumulativeROI,
		BestUseCase: s.UseCase.Name,
		TotalComparison: TotalComparison{
			UseCase:         s.UseCase.Name,
			TotalRevenue:    s.AnnualBalance.TotalRevenue,
			TotalCosts:      s.AnnualBalance.TotalCosts,
			TotalInvestment: s.AnnualBalance.TotalInvestment,
			NetCashflow:     s.AnnualBalance.NetCashflow,
		},
	}
}

func recommend(m ComparisonMetrics) Recommendations {
	verdict := ConditionallyRecommended
	if m.BestROI > RecommendThresholdROI {
		verdict = Recommended
	}
	return Recommendations{
		RecommendedUseCase:       m.BestUseCase,
		InvestmentRecommendation: verdict,
		KeyAdvantages: []string{
			fmt.Sprintf("Beste ROI: %.1f%%", m.BestROI),
			fmt.Sprintf("Empfohlener Use Case: %s", m.BestUseCase),
			"Detaillierte monatliche Auswertung verfügbar",
		},
		RiskFactors: []string{
			"Marktpreisvolatilität",
			"Regulatorische Änderungen",
			"Technologische Degradation",
		},
	}
}
