package economics

import "github.com/HSchlagi/bess-simulation-sub000/internal/model"

const (
	OperatingCostFactor = 0.02
	MaintenanceRate     = 0.015
	InsuranceRate       = 0.005

	// DegradationCostRate prices capacity fade as a yearly share of the
	// investment. Not to be confused with the projection's annual decay factor.
	DegradationCostRate = 0.02

	// GridTariffPerMWh is charged on every MWh cycled through the battery.
	GridTariffPerMWh = 15.0
)

// OperatingCosts is the size/power driven yearly operating cost.
func OperatingCosts(sizeMWh, powerMW float64) float64 {
	return (sizeMWh*1000 + powerMW*100) * OperatingCostFactor
}

// GridFees charges the grid tariff on the yearly energy throughput.
func GridFees(throughputMWh float64) float64 {
	return throughputMWh * GridTariffPerMWh
}

// ComputeCosts returns one year's undegraded cost structure. The investment
// is copied verbatim.
func ComputeCosts(uc model.UseCase, investment float64) model.CostStructure {
	return model.CostStructure{
		Investment:  investment,
		Operating:   OperatingCosts(uc.SizeMWh, uc.PowerMW),
		Maintenance: investment * MaintenanceRate,
		GridFees:    GridFees(uc.EnergyThroughputMWh()),
		Insurance:   investment * InsuranceRate,
		Degradation: investment * DegradationCostRate,
	}
}
