// Package projection runs the multi-year projection of a single use case.
package projection

import (
	"fmt"
	"math"

	"github.com/HSchlagi/bess-simulation-sub000/internal/economics"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
)

const (
	// DefaultHorizonYears is one reference year plus ten projection years.
	DefaultHorizonYears = 11

	// DefaultAnnualDecayRate is the yearly drift applied to revenue and
	// recurring costs.
	DefaultAnnualDecayRate = 0.02
)

// AnnualDecayFactor is (1-rate)^year. Year 0 is exactly 1.
func AnnualDecayFactor(rate float64, year int) float64 {
	if year <= 0 {
		return 1
	}
	return math.Pow(1-rate, float64(year))
}

type Option func(e *Engine)

// WithHorizon sets the number of projected years. Values < 1 are ignored.
func WithHorizon(years int) Option {
	return func(e *Engine) {
		if years >= 1 {
			e.horizon = years
		}
	}
}

// WithAnnualDecayRate sets the yearly decay rate. Values outside [0, 1) are ignored.
func WithAnnualDecayRate(rate float64) Option {
	return func(e *Engine) {
		if rate >= 0 && rate < 1 {
			e.decayRate = rate
		}
	}
}

type Engine struct {
	horizon   int
	decayRate float64
}

func New(opts ...Option) *Engine {
	e := &Engine{
		horizon:   DefaultHorizonYears,
		decayRate: DefaultAnnualDecayRate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Horizon() int             { return e.horizon }
func (e *Engine) AnnualDecayRate() float64 { return e.decayRate }

// Run projects uc over the engine's horizon. Each year is computed from the
// inputs and its own index only; the investment is carried undegraded on
// every year and must be counted once by the caller.
func (e *Engine) Run(uc model.UseCase, prices model.MarketPriceTable, investment float64) (model.Trajectory, error) {
	if e.horizon <= 0 {
		return nil, fmt.Errorf("horizon must be > 0, got %d", e.horizon)
	}

	trajectory := make(model.Trajectory, 0, e.horizon)
	for y := 0; y < e.horizon; y++ {
		trajectory = append(trajectory, e.projectYear(uc, prices, investment, y))
	}
	return trajectory, nil
}

func (e *Engine) projectYear(uc model.UseCase, prices model.MarketPriceTable, investment float64, y int) model.SimulationResult {
	factor := AnnualDecayFactor(e.decayRate, y)

	revenue := economics.ComputeRevenue(uc, prices).Scale(factor)
	costs := economics.ComputeCosts(uc, investment).ScaleOperating(factor)

	return model.SimulationResult{
		UseCase:       uc,
		Year:          y,
		MarketRevenue: revenue,
		CostStructure: costs,
		Monthly:       MonthlyProfile(uc, revenue.Total()),
		KPIs:          yearKPIs(uc, factor),
	}
}

func yearKPIs(uc model.UseCase, factor float64) model.YearKPIs {
	k := model.YearKPIs{
		AnnualEnergyThroughputMWh: uc.EnergyThroughputMWh(),
		EfficiencyFactor:          uc.Efficiency,
		DegradationFactor:         factor,
	}
	if uc.PowerMW > 0 {
		k.CapacityFactor = uc.EnergyThroughputMWh() / (economics.HoursPerYear * uc.PowerMW)
	}
	return k
}
