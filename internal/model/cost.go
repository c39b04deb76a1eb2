package model

// CostStructure is one year's cost in €.
//
// Investment is the one-time capital outlay. It is carried on every year's
// structure but must be counted once per trajectory; yearly cash flow uses
// AnnualOperatingCosts.
type CostStructure struct {
	Investment     float64 `json:"investment_costs"`
	Operating      float64 `json:"operating_costs"`
	Maintenance    float64 `json:"maintenance_costs"`
	GridFees       float64 `json:"grid_fees"`
	LegalCharges   float64 `json:"legal_charges"`
	RegulatoryFees float64 `json:"regulatory_fees"`
	Insurance      float64 `json:"insurance_costs"`
	Degradation    float64 `json:"degradation_costs"`
}

// OperatingComponents lists every recurring cost line in declaration order.
func (c CostStructure) OperatingComponents() []Component {
	return []Component{
		{"operating_costs", c.Operating},
		{"maintenance_costs", c.Maintenance},
		{"grid_fees", c.GridFees},
		{"legal_charges", c.LegalCharges},
		{"regulatory_fees", c.RegulatoryFees},
		{"insurance_costs", c.Insurance},
		{"degradation_costs", c.Degradation},
	}
}

// AnnualOperatingCosts is everything except the investment.
func (c CostStructure) AnnualOperatingCosts() float64 {
	sum := 0.0
	for _, comp := range c.OperatingComponents() {
		sum += comp.Value
	}
	return sum
}

// TotalCosts is everything including the investment.
func (c CostStructure) TotalCosts() float64 {
	return c.Investment + c.AnnualOperatingCosts()
}

// ScaleOperating multiplies the recurring lines by f. Investment is never scaled.
func (c CostStructure) ScaleOperating(f float64) CostStructure {
	return CostStructure{
		Investment:     c.Investment,
		Operating:      c.Operating * f,
		Maintenance:    c.Maintenance * f,
		GridFees:       c.GridFees * f,
		LegalCharges:   c.LegalCharges * f,
		RegulatoryFees: c.RegulatoryFees * f,
		Insurance:      c.Insurance * f,
		Degradation:    c.Degradation * f,
	}
}
