// Package economics holds the per-year revenue and cost formulas of a BESS
// use case. Every function here is pure: same inputs, same outputs, no
// logging and no shared state.
package economics

import "github.com/HSchlagi/bess-simulation-sub000/internal/model"

const (
	// SRLAvailabilityHours is the yearly availability assumed for control-reserve capacity.
	SRLAvailabilityHours = 8000.0

	// SREActivationEnergyMWh is the yearly activated reserve energy.
	SREActivationEnergyMWh = 250.0

	// ReferenceParticipationRate replaces the use case's own SRL/SRE rates so
	// results line up with the 10-year reference report.
	// TODO: unify with UseCase.MarketParticipation once the reference report reads it too.
	ReferenceParticipationRate = 0.5

	HoursPerYear = 8760.0
	DaysPerYear  = 365.0
)

// SRLRevenue returns the positive and negative control-reserve revenue.
func SRLRevenue(powerMW float64, prices model.MarketPriceTable) (pos, neg float64) {
	pos = powerMW * SRLAvailabilityHours * price(prices, model.PriceSRLPositive) * ReferenceParticipationRate
	neg = powerMW * SRLAvailabilityHours * price(prices, model.PriceSRLNegative) * ReferenceParticipationRate
	return pos, neg
}

// SRERevenue returns the positive and negative reserve-energy revenue.
func SRERevenue(prices model.MarketPriceTable) (pos, neg float64) {
	pos = SREActivationEnergyMWh * price(prices, model.PriceSREPositive) * ReferenceParticipationRate
	neg = SREActivationEnergyMWh * price(prices, model.PriceSRENegative) * ReferenceParticipationRate
	return pos, neg
}

// IntradayRevenue splits the intraday field into spot arbitrage, intraday
// trading and balancing energy. Neither efficiency nor participation is
// applied to the two cycle-based sources.
func IntradayRevenue(uc model.UseCase, prices model.MarketPriceTable) model.IntradayBreakdown {
	cycledKWh := uc.CapacityKWh() * uc.DailyCycles() * DaysPerYear
	return model.IntradayBreakdown{
		SpotArbitrage: cycledKWh * price(prices, model.PriceSpotArbitrage),
		Trading:       cycledKWh * price(prices, model.PriceIntradayTrading),
		Balancing:     BalancingRevenue(uc.PowerKW(), prices),
	}
}

// BalancingRevenue converts a €/kWh balancing price into € for a full year
// of availability at powerKW.
func BalancingRevenue(powerKW float64, prices model.MarketPriceTable) float64 {
	return powerKW * HoursPerYear * price(prices, model.PriceBalancingEnergy) / 1000
}

// ComputeRevenue returns one year's undegraded revenue for a use case.
// DayAhead, PRR and BalancingEnergy stay at zero to match the revenue
// composition of the reference report; balancing revenue is booked in the
// intraday field instead.
func ComputeRevenue(uc model.UseCase, prices model.MarketPriceTable) model.MarketRevenue {
	srlPos, srlNeg := SRLRevenue(uc.PowerMW, prices)
	srePos, sreNeg := SRERevenue(prices)
	intraday := IntradayRevenue(uc, prices)

	return model.MarketRevenue{
		SRLPositive:     srlPos,
		SRLNegative:     srlNeg,
		SREPositive:     srePos,
		SRENegative:     sreNeg,
		IntradayTrading: intraday.Total(),
		Intraday:        intraday,
	}
}

func price(prices model.MarketPriceTable, k model.PriceKey) float64 {
	v, _ := prices.Get(k)
	return v
}
