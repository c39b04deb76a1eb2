package economics

import (
	"math"

	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
)

const (
	// MaxPlausiblePowerMW flags power figures that were almost certainly
	// entered in kW.
	MaxPlausiblePowerMW = 100.0

	// MaxPlausibleSizeMWh flags capacity figures that were almost certainly
	// entered in kWh.
	MaxPlausibleSizeMWh = 10000.0

	// DefaultEfficiency replaces an out-of-range round-trip efficiency.
	DefaultEfficiency = 0.86
)

// SanitizeUseCase returns a corrected copy of uc and the substitutions made.
// The input is never modified.
func SanitizeUseCase(uc model.UseCase) (model.UseCase, []model.Warning) {
	out := uc.Clone()
	var warnings []model.Warning
	warn := func(code model.WarningCode, format string, args ...any) {
		warnings = append(warnings, model.NewWarning(code, uc.Name, format, args...))
	}

	switch {
	case !isFinite(out.PowerMW) || out.PowerMW <= 0:
		warn(model.WarnInvalidPower, "bess_power_mw %.4g is not positive, power-based revenue set to 0", out.PowerMW)
		out.PowerMW = 0
	case out.PowerMW > MaxPlausiblePowerMW:
		corrected := out.PowerMW / 1000
		warn(model.WarnPowerUnitCorrected, "bess_power_mw %.4g looks like kW, corrected to %.4g MW", out.PowerMW, corrected)
		out.PowerMW = corrected
	}

	switch {
	case !isFinite(out.SizeMWh) || out.SizeMWh <= 0:
		warn(model.WarnInvalidSize, "bess_size_mwh %.4g is not positive, energy-based revenue set to 0", out.SizeMWh)
		out.SizeMWh = 0
	case out.SizeMWh > MaxPlausibleSizeMWh:
		corrected := out.SizeMWh / 1000
		warn(model.WarnSizeUnitCorrected, "bess_size_mwh %.4g looks like kWh, corrected to %.4g MWh", out.SizeMWh, corrected)
		out.SizeMWh = corrected
	}

	if !isFinite(out.AnnualCycles) || out.AnnualCycles < 0 {
		warn(model.WarnInvalidCycles, "annual_cycles %.4g is negative, using 0", out.AnnualCycles)
		out.AnnualCycles = 0
	}

	if !isFinite(out.Efficiency) || out.Efficiency <= 0 || out.Efficiency > 1 {
		warn(model.WarnEfficiencyRange, "efficiency %.4g outside (0, 1], using %.2f", out.Efficiency, DefaultEfficiency)
		out.Efficiency = DefaultEfficiency
	}

	for _, s := range model.Streams {
		rate, ok := out.MarketParticipation[s]
		if !ok {
			continue
		}
		clamped := clamp01(rate)
		if !isFinite(rate) {
			clamped = 0
		}
		if clamped != rate {
			warn(model.WarnParticipationRange, "market_participation[%s] %.4g outside [0, 1], clamped to %.2f", s, rate, clamped)
			out.MarketParticipation[s] = clamped
		}
	}
	return out, warnings
}

// SanitizePrices fills missing or negative required prices from the
// reference table. Optional keys are copied as long as they are >= 0.
func SanitizePrices(prices model.MarketPriceTable) (model.MarketPriceTable, []model.Warning) {
	ref := model.ReferencePrices()
	out := make(model.MarketPriceTable, len(prices))
	var warnings []model.Warning

	for _, k := range prices.Keys() {
		v := prices[k]
		if !isFinite(v) || v < 0 {
			fallback := ref[k]
			warnings = append(warnings, model.NewWarning(model.WarnNegativePrice, "",
				"price %s = %.4g is invalid, using %.4g", k, v, fallback))
			v = fallback
		}
		out[k] = v
	}
	for _, k := range model.RequiredPriceKeys {
		if _, ok := out[k]; ok {
			continue
		}
		warnings = append(warnings, model.NewWarning(model.WarnMissingPrice, "",
			"price %s missing, using reference value %.4g", k, ref[k]))
		out[k] = ref[k]
	}
	return out, warnings
}

// SanitizeInvestment clamps a negative investment to zero. A zero investment
// is kept but flagged because every ROI figure collapses to 0.
func SanitizeInvestment(investment float64) (float64, []model.Warning) {
	switch {
	case !isFinite(investment) || investment < 0:
		return 0, []model.Warning{model.NewWarning(model.WarnInvalidInvestment, "",
			"investment %.2f is invalid, using 0 (ROI reported as 0)", investment)}
	case investment == 0:
		return 0, []model.Warning{model.NewWarning(model.WarnInvalidInvestment, "",
			"investment is 0, ROI reported as 0")}
	}
	return investment, nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
