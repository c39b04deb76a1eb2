package model

import (
	"errors"
	"fmt"
)

// ScenarioType tags a persisted use-case record with one of the canonical
// operating scenarios. Keep these values stable; they are stored in the database.
type ScenarioType string

const (
	ScenarioConsumptionOnly    ScenarioType = "consumption_only"
	ScenarioPVConsumption      ScenarioType = "pv_consumption"
	ScenarioPVHydroConsumption ScenarioType = "pv_hydro_consumption"
	ScenarioWindConsumption    ScenarioType = "wind_consumption"
	ScenarioMixedRenewables    ScenarioType = "mixed_renewables"
	ScenarioIndustrial         ScenarioType = "industrial"
	ScenarioCommercial         ScenarioType = "commercial"
	ScenarioResidential        ScenarioType = "residential"
)

// ScenarioTypes lists the canonical scenarios in their documented order.
var ScenarioTypes = []ScenarioType{
	ScenarioConsumptionOnly,
	ScenarioPVConsumption,
	ScenarioPVHydroConsumption,
	ScenarioWindConsumption,
	ScenarioMixedRenewables,
	ScenarioIndustrial,
	ScenarioCommercial,
	ScenarioResidential,
}

// MarketFocus is the coarse strategy family a scenario belongs to.
type MarketFocus string

const (
	FocusSRL         MarketFocus = "srl_focused"
	FocusBalanced    MarketFocus = "balanced"
	FocusArbitrage   MarketFocus = "arbitrage_focused"
	FocusPeakShaving MarketFocus = "peak_shaving_focused"
)

// Stream names a revenue stream a use case may commit capacity to.
type Stream string

const (
	StreamSRLPositive     Stream = "srl_positive"
	StreamSRLNegative     Stream = "srl_negative"
	StreamSREPositive     Stream = "sre_positive"
	StreamSRENegative     Stream = "sre_negative"
	StreamPRR             Stream = "prr"
	StreamIntradayTrading Stream = "intraday_trading"
	StreamDayAhead        Stream = "day_ahead"
	StreamBalancingEnergy Stream = "balancing_energy"
)

// Streams lists every revenue stream in MarketRevenue field order.
var Streams = []Stream{
	StreamSRLPositive,
	StreamSRLNegative,
	StreamSREPositive,
	StreamSRENegative,
	StreamPRR,
	StreamIntradayTrading,
	StreamDayAhead,
	StreamBalancingEnergy,
}

// Participation maps a revenue stream to the committed fraction [0,1] of
// theoretical capacity.
type Participation map[Stream]float64

func (p Participation) Clone() Participation {
	if p == nil {
		return nil
	}
	out := make(Participation, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// UseCase is one mutually-exclusive operating strategy for a physical BESS.
// Units:
// - SizeMWh: MWh usable capacity
// - PowerMW: MW rated power
// - AnnualCycles: full charge/discharge equivalents per year
// - Efficiency: round-trip fraction (0, 1]
type UseCase struct {
	Name                string        `json:"name" yaml:"name"`
	Description         string        `json:"description" yaml:"description"`
	ScenarioType        ScenarioType  `json:"scenario_type,omitempty" yaml:"scenario_type"`
	Focus               MarketFocus   `json:"market_focus,omitempty" yaml:"market_focus"`
	SizeMWh             float64       `json:"bess_size_mwh" yaml:"bess_size_mwh"`
	PowerMW             float64       `json:"bess_power_mw" yaml:"bess_power_mw"`
	AnnualCycles        float64       `json:"annual_cycles" yaml:"annual_cycles"`
	Efficiency          float64       `json:"efficiency" yaml:"efficiency"`
	MarketParticipation Participation `json:"market_participation" yaml:"market_participation"`
}

// Clone returns a deep copy so callers can never share the participation map.
func (u UseCase) Clone() UseCase {
	out := u
	out.MarketParticipation = u.MarketParticipation.Clone()
	return out
}

// CapacityKWh is the usable capacity in kWh.
func (u UseCase) CapacityKWh() float64 { return u.SizeMWh * 1000 }

// PowerKW is the rated power in kW.
func (u UseCase) PowerKW() float64 { return u.PowerMW * 1000 }

// DailyCycles spreads the annual cycle count evenly over 365 days.
func (u UseCase) DailyCycles() float64 { return u.AnnualCycles / 365 }

// EnergyThroughputMWh is the energy cycled through the battery per year.
func (u UseCase) EnergyThroughputMWh() float64 { return u.SizeMWh * u.AnnualCycles }

// ParticipationRate returns the configured rate for a stream.
func (u UseCase) ParticipationRate(s Stream) (float64, bool) {
	v, ok := u.MarketParticipation[s]
	return v, ok
}

func (u UseCase) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.SizeMWh <= 0 {
		return errors.New("bess_size_mwh must be > 0")
	}
	if u.PowerMW <= 0 {
		return errors.New("bess_power_mw must be > 0")
	}
	if u.AnnualCycles < 0 {
		return errors.New("annual_cycles must be >= 0")
	}
	if u.Efficiency <= 0 || u.Efficiency > 1 {
		return errors.New("efficiency must be in (0, 1]")
	}
	for s, rate := range u.MarketParticipation {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("market_participation[%s] must be in [0, 1]", s)
		}
	}
	return nil
}
