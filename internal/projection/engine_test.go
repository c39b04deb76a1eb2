package projection

import (
	"math"
	"testing"

	"github.com/HSchlagi/bess-simulation-sub000/internal/economics"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceUseCase() model.UseCase {
	return model.UseCase{
		Name:         "reference",
		SizeMWh:      8,
		PowerMW:      2,
		AnnualCycles: 876,
		Efficiency:   0.85,
	}
}

func TestAnnualDecayFactor(t *testing.T) {
	assert.Equal(t, 1.0, AnnualDecayFactor(0.02, 0))
	assert.Equal(t, 1.0, AnnualDecayFactor(0.02, -3))
	assert.InDelta(t, 0.98, AnnualDecayFactor(0.02, 1), 1e-15)
	assert.InDelta(t, math.Pow(0.98, 10), AnnualDecayFactor(0.02, 10), 1e-15)
	assert.Equal(t, 1.0, AnnualDecayFactor(0, 7))
}

func TestNew_Options(t *testing.T) {
	e := New()
	assert.Equal(t, DefaultHorizonYears, e.Horizon())
	assert.Equal(t, DefaultAnnualDecayRate, e.AnnualDecayRate())

	e = New(WithHorizon(5), WithAnnualDecayRate(0.03))
	assert.Equal(t, 5, e.Horizon())
	assert.Equal(t, 0.03, e.AnnualDecayRate())

	e = New(WithHorizon(0), WithAnnualDecayRate(1.5))
	assert.Equal(t, DefaultHorizonYears, e.Horizon())
	assert.Equal(t, DefaultAnnualDecayRate, e.AnnualDecayRate())
}

func TestRun_Trajectory(t *testing.T) {
	const investment = 6_130_000.0
	uc := referenceUseCase()
	prices := model.ReferencePrices()

	traj, err := New().Run(uc, prices, investment)
	require.NoError(t, err)
	require.Len(t, traj, DefaultHorizonYears)

	base := economics.ComputeRevenue(uc, prices)
	baseCosts := economics.ComputeCosts(uc, investment)

	// year 0 is the undegraded reference year
	assert.Equal(t, 0, traj[0].Year)
	assert.Equal(t, 1.0, traj[0].KPIs.DegradationFactor)
	assert.Equal(t, base, traj[0].MarketRevenue)
	assert.Equal(t, baseCosts, traj[0].CostStructure)

	for y, r := range traj {
		f := math.Pow(0.98, float64(y))
		assert.Equal(t, y, r.Year)
		assert.InDelta(t, f, r.KPIs.DegradationFactor, 1e-15)
		assert.InDelta(t, base.Total()*f, r.MarketRevenue.Total(), 1e-6)
		assert.InDelta(t, baseCosts.AnnualOperatingCosts()*f, r.CostStructure.AnnualOperatingCosts(), 1e-6)
		assert.Equal(t, investment, r.CostStructure.Investment, "investment is never degraded")
		assert.Equal(t, uc, r.UseCase)
	}
}

func TestRun_YearsAreIndependent(t *testing.T) {
	uc := referenceUseCase()
	long, err := New(WithHorizon(11)).Run(uc, model.ReferencePrices(), 1)
	require.NoError(t, err)
	short, err := New(WithHorizon(3)).Run(uc, model.ReferencePrices(), 1)
	require.NoError(t, err)

	for i := range short {
		assert.Equal(t, short[i], long[i])
	}
}

func TestRun_ZeroValueEngine(t *testing.T) {
	var e Engine
	_, err := e.Run(referenceUseCase(), model.ReferencePrices(), 1)
	assert.Error(t, err)
}

func TestYearKPIs(t *testing.T) {
	traj, err := New(WithHorizon(2)).Run(referenceUseCase(), model.ReferencePrices(), 1)
	require.NoError(t, err)

	k := traj[1].KPIs
	assert.Equal(t, 7008.0, k.AnnualEnergyThroughputMWh)
	assert.InDelta(t, 7008.0/(8760*2), k.CapacityFactor, 1e-12)
	assert.Equal(t, 0.85, k.EfficiencyFactor)
	assert.InDelta(t, 0.98, k.DegradationFactor, 1e-15)

	uc := referenceUseCase()
	uc.PowerMW = 0
	traj, err = New(WithHorizon(1)).Run(uc, model.ReferencePrices(), 1)
	require.NoError(t, err)
	assert.Zero(t, traj[0].KPIs.CapacityFactor)
}
