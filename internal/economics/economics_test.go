package economics

import (
	"math"
	"testing"

	"github.com/HSchlagi/bess-simulation-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceInvestment = 6_130_000.0

func referenceUseCase() model.UseCase {
	return model.UseCase{
		Name:         "reference",
		SizeMWh:      8,
		PowerMW:      2,
		AnnualCycles: 876,
		Efficiency:   0.85,
	}
}

func TestComputeRevenue_ReferenceScenario(t *testing.T) {
	rev := ComputeRevenue(referenceUseCase(), model.ReferencePrices())

	assert.InDelta(t, 288_000.0, rev.SRLTotal(), 1e-6)
	assert.InDelta(t, 20_000.0, rev.SRETotal(), 1e-9)
	assert.InDelta(t, 51_859.2, rev.Intraday.SpotArbitrage, 1e-6)
	assert.InDelta(t, 77_788.8, rev.Intraday.Trading, 1e-6)
	assert.InDelta(t, 404.712, rev.Intraday.Balancing, 1e-9)

	// Published approximations of the same figures.
	assert.InEpsilon(t, 51_866.0, rev.Intraday.SpotArbitrage, 1e-3)
	assert.InEpsilon(t, 77_818.0, rev.Intraday.Trading, 1e-3)
	assert.InEpsilon(t, 404.7, rev.Intraday.Balancing, 1e-3)
}

func TestComputeRevenue_Composition(t *testing.T) {
	rev := ComputeRevenue(referenceUseCase(), model.ReferencePrices())

	assert.Equal(t, rev.Intraday.Total(), rev.IntradayTrading)
	assert.Zero(t, rev.DayAhead)
	assert.Zero(t, rev.PRR)
	assert.Zero(t, rev.BalancingEnergy)

	sum := 0.0
	for _, c := range rev.Components() {
		sum += c.Value
	}
	assert.Equal(t, sum, rev.Total())
	assert.InDelta(t, 438_052.712, rev.Total(), 1e-6)
}

func TestComputeRevenue_IgnoresEfficiencyAndParticipation(t *testing.T) {
	base := ComputeRevenue(referenceUseCase(), model.ReferencePrices())

	uc := referenceUseCase()
	uc.Efficiency = 0.5
	uc.MarketParticipation = model.Participation{model.StreamSRLPositive: 0.1, model.StreamIntradayTrading: 0}
	assert.Equal(t, base, ComputeRevenue(uc, model.ReferencePrices()))
}

func TestComputeRevenue_MissingPricesAreZero(t *testing.T) {
	rev := ComputeRevenue(referenceUseCase(), model.MarketPriceTable{})
	assert.Zero(t, rev.Total())
}

func TestComputeCosts_ReferenceScenario(t *testing.T) {
	c := ComputeCosts(referenceUseCase(), referenceInvestment)

	assert.Equal(t, referenceInvestment, c.Investment)
	assert.InDelta(t, 164.0, c.Operating, 1e-9)
	assert.InDelta(t, 91_950.0, c.Maintenance, 1e-6)
	assert.InDelta(t, 105_120.0, c.GridFees, 1e-6)
	assert.InDelta(t, 30_650.0, c.Insurance, 1e-6)
	assert.InDelta(t, 122_600.0, c.Degradation, 1e-6)
	assert.Zero(t, c.LegalCharges)
	assert.Zero(t, c.RegulatoryFees)
	assert.InDelta(t, 350_484.0, c.AnnualOperatingCosts(), 1e-6)
	assert.InDelta(t, c.AnnualOperatingCosts()+referenceInvestment, c.TotalCosts(), 1e-6)
}

func TestSanitizeUseCase_PowerUnitCorrection(t *testing.T) {
	uc := referenceUseCase()
	uc.PowerMW = 2000

	out, warnings := SanitizeUseCase(uc)
	assert.Equal(t, 2.0, out.PowerMW)
	assert.Equal(t, 2000.0, uc.PowerMW, "input untouched")
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnPowerUnitCorrected, warnings[0].Code)
	assert.Equal(t, "reference", warnings[0].UseCase)

	// exactly at the threshold is kept
	uc.PowerMW = MaxPlausiblePowerMW
	out, warnings = SanitizeUseCase(uc)
	assert.Equal(t, MaxPlausiblePowerMW, out.PowerMW)
	assert.Empty(t, warnings)
}

func TestSanitizeUseCase(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *model.UseCase)
		code   model.WarningCode
		check  func(t *testing.T, out model.UseCase)
	}{
		{"size in kWh", func(u *model.UseCase) { u.SizeMWh = 8000 * 1000 / 100 }, model.WarnSizeUnitCorrected,
			func(t *testing.T, out model.UseCase) { assert.Equal(t, 80.0, out.SizeMWh) }},
		{"zero power", func(u *model.UseCase) { u.PowerMW = 0 }, model.WarnInvalidPower,
			func(t *testing.T, out model.UseCase) { assert.Zero(t, out.PowerMW) }},
		{"nan size", func(u *model.UseCase) { u.SizeMWh = math.NaN() }, model.WarnInvalidSize,
			func(t *testing.T, out model.UseCase) { assert.Zero(t, out.SizeMWh) }},
		{"negative cycles", func(u *model.UseCase) { u.AnnualCycles = -5 }, model.WarnInvalidCycles,
			func(t *testing.T, out model.UseCase) { assert.Zero(t, out.AnnualCycles) }},
		{"efficiency percent", func(u *model.UseCase) { u.Efficiency = 85 }, model.WarnEfficiencyRange,
			func(t *testing.T, out model.UseCase) { assert.Equal(t, DefaultEfficiency, out.Efficiency) }},
		{"participation", func(u *model.UseCase) { u.MarketParticipation = model.Participation{model.StreamPRR: 1.4} }, model.WarnParticipationRange,
			func(t *testing.T, out model.UseCase) { assert.Equal(t, 1.0, out.MarketParticipation[model.StreamPRR]) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := referenceUseCase()
			tt.mutate(&uc)
			out, warnings := SanitizeUseCase(uc)
			require.Len(t, warnings, 1)
			assert.Equal(t, tt.code, warnings[0].Code)
			tt.check(t, out)
		})
	}
}

func TestSanitizeUseCase_CleanInputHasNoWarnings(t *testing.T) {
	out, warnings := SanitizeUseCase(referenceUseCase())
	assert.Empty(t, warnings)
	assert.Equal(t, referenceUseCase(), out)
}

func TestSanitizePrices(t *testing.T) {
	in := model.MarketPriceTable{
		model.PriceSRLPositive: -4,
		model.PriceSRLNegative: 20,
		model.PriceDayAhead:    0.05,
	}
	out, warnings := SanitizePrices(in)

	assert.Equal(t, 18.0, out[model.PriceSRLPositive])
	assert.Equal(t, 20.0, out[model.PriceSRLNegative])
	assert.Equal(t, 0.05, out[model.PriceDayAhead])
	assert.Empty(t, out.Missing())
	assert.Equal(t, -4.0, in[model.PriceSRLPositive], "input untouched")

	counts := map[model.WarningCode]int{}
	for _, w := range warnings {
		counts[w.Code]++
	}
	assert.Equal(t, 1, counts[model.WarnNegativePrice])
	assert.Equal(t, len(model.RequiredPriceKeys)-2, counts[model.WarnMissingPrice])
}

func TestSanitizeInvestment(t *testing.T) {
	v, w := SanitizeInvestment(referenceInvestment)
	assert.Equal(t, referenceInvestment, v)
	assert.Empty(t, w)

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		v, w = SanitizeInvestment(bad)
		assert.Zero(t, v)
		require.Len(t, w, 1)
		assert.Equal(t, model.WarnInvalidInvestment, w[0].Code)
	}
}
