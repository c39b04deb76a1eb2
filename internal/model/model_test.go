package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketRevenue_TotalIsSumOfComponents(t *testing.T) {
	r := MarketRevenue{
		SRLPositive:     1,
		SRLNegative:     2,
		SREPositive:     3,
		SRENegative:     4,
		PRR:             5,
		IntradayTrading: 6,
		DayAhead:        7,
		BalancingEnergy: 8,
		Intraday:        IntradayBreakdown{SpotArbitrage: 1, Trading: 2, Balancing: 3},
	}
	assert.Equal(t, 36.0, r.Total(), "breakdown is not added on top of intraday_trading")
	assert.Len(t, r.Components(), 8)
	assert.Equal(t, 3.0, r.SRLTotal())
	assert.Equal(t, 7.0, r.SRETotal())

	scaled := r.Scale(0.5)
	assert.Equal(t, 18.0, scaled.Total())
	assert.Equal(t, 3.0, scaled.Intraday.Total())
}

func TestCostStructure(t *testing.T) {
	c := CostStructure{
		Investment:     1000,
		Operating:      1,
		Maintenance:    2,
		GridFees:       3,
		LegalCharges:   4,
		RegulatoryFees: 5,
		Insurance:      6,
		Degradation:    7,
	}
	assert.Equal(t, 28.0, c.AnnualOperatingCosts())
	assert.Equal(t, c.AnnualOperatingCosts()+c.Investment, c.TotalCosts())

	scaled := c.ScaleOperating(0.5)
	assert.Equal(t, 1000.0, scaled.Investment)
	assert.Equal(t, 14.0, scaled.AnnualOperatingCosts())
}

func TestSimulationResult_Figures(t *testing.T) {
	r := SimulationResult{
		UseCase:       UseCase{SizeMWh: 4, PowerMW: 2},
		MarketRevenue: MarketRevenue{SRLPositive: 300},
		CostStructure: CostStructure{Investment: 1000, Operating: 100},
	}
	assert.Equal(t, 200.0, r.NetCashflow())
	assert.Equal(t, 20.0, r.ROI())
	assert.Equal(t, 5.0, r.PaybackPeriod())
	assert.Equal(t, 150.0, r.RevenuePerMW())
	assert.Equal(t, 75.0, r.RevenuePerMWh())

	r.CostStructure.Investment = 0
	assert.Equal(t, 0.0, r.ROI())

	r.CostStructure.Operating = 500
	assert.True(t, math.IsInf(r.PaybackPeriod(), 1))
}

func TestMarketPriceTable(t *testing.T) {
	ref := ReferencePrices()
	assert.Empty(t, ref.Missing())
	require.NoError(t, ref.Validate())

	ref[PriceSRLPositive] = 1
	assert.Equal(t, 18.0, ReferencePrices()[PriceSRLPositive], "each call returns a fresh table")

	partial := MarketPriceTable{PriceSRLPositive: 20}
	assert.Len(t, partial.Missing(), len(RequiredPriceKeys)-1)

	merged := partial.Merge(MarketPriceTable{PriceSRLPositive: 25, PriceSREPositive: 70})
	assert.Equal(t, 25.0, merged[PriceSRLPositive])
	assert.Equal(t, 20.0, partial[PriceSRLPositive])

	assert.Error(t, MarketPriceTable{PriceDayAhead: -1}.Validate())

	keys := MarketPriceTable{PriceSRLPositive: 1, PriceDayAhead: 1, PricePRR: 1}.Keys()
	assert.Equal(t, []PriceKey{PriceDayAhead, PricePRR, PriceSRLPositive}, keys)
}

func TestUseCase_Derived(t *testing.T) {
	uc := UseCase{Name: "x", SizeMWh: 8, PowerMW: 2, AnnualCycles: 876, Efficiency: 0.85}
	require.NoError(t, uc.Validate())
	assert.Equal(t, 8000.0, uc.CapacityKWh())
	assert.Equal(t, 2000.0, uc.PowerKW())
	assert.InDelta(t, 2.4, uc.DailyCycles(), 1e-12)
	assert.Equal(t, 7008.0, uc.EnergyThroughputMWh())

	_, ok := uc.ParticipationRate(StreamPRR)
	assert.False(t, ok)
}

func TestUseCase_CloneIsDeep(t *testing.T) {
	uc := UseCase{MarketParticipation: Participation{StreamPRR: 0.1}}
	cp := uc.Clone()
	cp.MarketParticipation[StreamPRR] = 0.9
	assert.Equal(t, 0.1, uc.MarketParticipation[StreamPRR])
}

func TestUseCase_Validate(t *testing.T) {
	valid := UseCase{Name: "x", SizeMWh: 1, PowerMW: 1, AnnualCycles: 1, Efficiency: 0.9}
	tests := []struct {
		name   string
		mutate func(u *UseCase)
	}{
		{"no name", func(u *UseCase) { u.Name = "" }},
		{"zero size", func(u *UseCase) { u.SizeMWh = 0 }},
		{"zero power", func(u *UseCase) { u.PowerMW = 0 }},
		{"negative cycles", func(u *UseCase) { u.AnnualCycles = -1 }},
		{"efficiency above one", func(u *UseCase) { u.Efficiency = 1.2 }},
		{"participation above one", func(u *UseCase) { u.MarketParticipation = Participation{StreamPRR: 2} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid.Clone()
			tt.mutate(&u)
			assert.Error(t, u.Validate())
		})
	}
}

func TestWarning_String(t *testing.T) {
	w := NewWarning(WarnMissingPrice, "", "price %s missing", PricePRR)
	assert.Equal(t, "price prr missing", w.Message)
	assert.Contains(t, w.String(), "missing_price")

	w = NewWarning(WarnInvalidPower, "UC1", "bad")
	assert.Contains(t, w.String(), "UC1")
}
