package model

// IntradayBreakdown splits the intraday revenue field into its sources.
type IntradayBreakdown struct {
	SpotArbitrage float64 `json:"spot_arbitrage"`
	Trading       float64 `json:"intraday_trading"`
	Balancing     float64 `json:"balancing_energy"`
}

func (b IntradayBreakdown) Total() float64 {
	return b.SpotArbitrage + b.Trading + b.Balancing
}

func (b IntradayBreakdown) Scale(f float64) IntradayBreakdown {
	return IntradayBreakdown{
		SpotArbitrage: b.SpotArbitrage * f,
		Trading:       b.Trading * f,
		Balancing:     b.Balancing * f,
	}
}

// MarketRevenue is one year's revenue in €, per stream.
//
// IntradayTrading already contains Intraday.Total(); the breakdown is
// informational and is not added again by Total.
type MarketRevenue struct {
	SRLPositive     float64 `json:"srl_positive"`
	SRLNegative     float64 `json:"srl_negative"`
	SREPositive     float64 `json:"sre_positive"`
	SRENegative     float64 `json:"sre_negative"`
	PRR             float64 `json:"prr"`
	IntradayTrading float64 `json:"intraday_trading"`
	DayAhead        float64 `json:"day_ahead"`
	BalancingEnergy float64 `json:"balancing_energy"`

	Intraday IntradayBreakdown `json:"intraday_breakdown"`
}

// Component is one named line of a revenue or cost breakdown.
type Component struct {
	Name  string
	Value float64
}

// Components lists every summed field in declaration order.
func (r MarketRevenue) Components() []Component {
	return []Component{
		{string(StreamSRLPositive), r.SRLPositive},
		{string(StreamSRLNegative), r.SRLNegative},
		{string(StreamSREPositive), r.SREPositive},
		{string(StreamSRENegative), r.SRENegative},
		{string(StreamPRR), r.PRR},
		{string(StreamIntradayTrading), r.IntradayTrading},
		{string(StreamDayAhead), r.DayAhead},
		{string(StreamBalancingEnergy), r.BalancingEnergy},
	}
}

func (r MarketRevenue) Total() float64 {
	sum := 0.0
	for _, c := range r.Components() {
		sum += c.Value
	}
	return sum
}

// SRLTotal is the combined positive and negative control-reserve revenue.
func (r MarketRevenue) SRLTotal() float64 { return r.SRLPositive + r.SRLNegative }

// SRETotal is the combined positive and negative reserve-energy revenue.
func (r MarketRevenue) SRETotal() float64 { return r.SREPositive + r.SRENegative }

// Scale multiplies every component, breakdown included, by f.
func (r MarketRevenue) Scale(f float64) MarketRevenue {
	return MarketRevenue{
		SRLPositive:     r.SRLPositive * f,
		SRLNegative:     r.SRLNegative * f,
		SREPositive:     r.SREPositive * f,
		SRENegative:     r.SRENegative * f,
		PRR:             r.PRR * f,
		IntradayTrading: r.IntradayTrading * f,
		DayAhead:        r.DayAhead * f,
		BalancingEnergy: r.BalancingEnergy * f,
		Intraday:        r.Intraday.Scale(f),
	}
}
