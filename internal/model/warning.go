package model

import "fmt"

// WarningCode classifies a data-quality issue found during an analysis run.
type WarningCode string

const (
	WarnInvalidInvestment  WarningCode = "invalid_investment"
	WarnMissingPrice       WarningCode = "missing_price"
	WarnNegativePrice      WarningCode = "negative_price"
	WarnParticipationRange WarningCode = "participation_out_of_range"
	WarnEfficiencyRange    WarningCode = "efficiency_out_of_range"
	WarnInvalidSize        WarningCode = "invalid_size"
	WarnInvalidPower       WarningCode = "invalid_power"
	WarnInvalidCycles      WarningCode = "invalid_cycles"
	WarnPowerUnitCorrected WarningCode = "power_unit_corrected"
	WarnSizeUnitCorrected  WarningCode = "size_unit_corrected"
	WarnEmptyCatalog       WarningCode = "empty_catalog"
	WarnUnknownScenario    WarningCode = "unknown_scenario"
	WarnDuplicateUseCase   WarningCode = "duplicate_use_case"
)

// Warning is a substitution or correction the engine applied instead of failing.
type Warning struct {
	Code    WarningCode `json:"code"`
	UseCase string      `json:"use_case,omitempty"`
	Message string      `json:"message"`
}

func NewWarning(code WarningCode, useCase string, format string, args ...any) Warning {
	return Warning{Code: code, UseCase: useCase, Message: fmt.Sprintf(format, args...)}
}

func (w Warning) String() string {
	if w.UseCase == "" {
		return fmt.Sprintf("[%s] %s", w.Code, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Code, w.UseCase, w.Message)
}
