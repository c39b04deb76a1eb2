package model

import (
	"fmt"
	"sort"
)

// PriceKey identifies one entry of a market price table.
type PriceKey string

const (
	PriceSRLPositive     PriceKey = "srl_positive"           // €/MW/h
	PriceSRLNegative     PriceKey = "srl_negative"           // €/MW/h
	PriceSREPositive     PriceKey = "sre_positive"           // €/MWh
	PriceSRENegative     PriceKey = "sre_negative"           // €/MWh
	PriceSpotArbitrage   PriceKey = "spot_arbitrage_price"   // €/kWh
	PriceIntradayTrading PriceKey = "intraday_trading_price" // €/kWh
	PriceBalancingEnergy PriceKey = "balancing_energy_price" // €/kWh
	PriceDayAhead        PriceKey = "day_ahead"
	PricePRR             PriceKey = "prr"
)

// RequiredPriceKeys are the keys the revenue formulas read.
var RequiredPriceKeys = []PriceKey{
	PriceSRLPositive,
	PriceSRLNegative,
	PriceSREPositive,
	PriceSRENegative,
	PriceSpotArbitrage,
	PriceIntradayTrading,
	PriceBalancingEnergy,
}

// MarketPriceTable maps price keys to €/unit values. A table is resolved once
// per analysis run and must not be modified while the run is in progress.
type MarketPriceTable map[PriceKey]float64

func (t MarketPriceTable) Get(k PriceKey) (float64, bool) {
	v, ok := t[k]
	return v, ok
}

func (t MarketPriceTable) Clone() MarketPriceTable {
	out := make(MarketPriceTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Merge overlays override onto a copy of t.
func (t MarketPriceTable) Merge(override MarketPriceTable) MarketPriceTable {
	out := t.Clone()
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Missing returns the required keys absent from the table.
func (t MarketPriceTable) Missing() []PriceKey {
	var out []PriceKey
	for _, k := range RequiredPriceKeys {
		if _, ok := t[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// Keys returns the table's keys sorted for stable output.
func (t MarketPriceTable) Keys() []PriceKey {
	keys := make([]PriceKey, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (t MarketPriceTable) Validate() error {
	for _, k := range t.Keys() {
		if t[k] < 0 {
			return fmt.Errorf("price %s must be >= 0", k)
		}
	}
	return nil
}

// ReferencePrices returns the global default price table used when neither a
// project nor a global configuration provides a value. Each call returns a
// fresh table.
func ReferencePrices() MarketPriceTable {
	return MarketPriceTable{
		PriceSRLPositive:     18.0,
		PriceSRLNegative:     18.0,
		PriceSREPositive:     80.0,
		PriceSRENegative:     80.0,
		PriceSpotArbitrage:   0.0074,
		PriceIntradayTrading: 0.0111,
		PriceBalancingEnergy: 0.0231,
		PriceDayAhead:        0,
		PricePRR:             0,
	}
}
