package catalog

import (
	"fmt"

	"github.com/HSchlagi/bess-simulation-sub000/internal/model"

	"github.com/rs/zerolog"
)

// Project carries the battery parameters of a project as the project source
// stores them (kWh, kW, cycles per day).
type Project struct {
	ID              int64   `json:"id,omitempty" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	SizeKWh         float64 `json:"bess_size_kwh" yaml:"bess_size_kwh"`
	PowerKW         float64 `json:"bess_power_kw" yaml:"bess_power_kw"`
	DailyCycles     float64 `json:"daily_cycles" yaml:"daily_cycles"`
	TotalInvestment float64 `json:"total_investment" yaml:"total_investment"`
}

func (p Project) SizeMWh() float64 { return p.SizeKWh / 1000 }
func (p Project) PowerMW() float64 { return p.PowerKW / 1000 }

// AnnualCycles is DailyCycles over a 365-day year; 0 when unset.
func (p Project) AnnualCycles() float64 { return p.DailyCycles * 365 }

// Record is a persisted use-case definition. Zero-valued fields fall back to
// the project (size, power) or to the scenario template (everything else).
type Record struct {
	ID                  int64               `json:"id,omitempty" yaml:"id"`
	ProjectID           int64               `json:"project_id,omitempty" yaml:"project_id"`
	Name                string              `json:"name" yaml:"name"`
	Description         string              `json:"description,omitempty" yaml:"description"`
	ScenarioType        model.ScenarioType  `json:"scenario_type" yaml:"scenario_type"`
	SizeMWh             float64             `json:"bess_size_mwh,omitempty" yaml:"bess_size_mwh"`
	PowerMW             float64             `json:"bess_power_mw,omitempty" yaml:"bess_power_mw"`
	AnnualCycles        float64             `json:"annual_cycles,omitempty" yaml:"annual_cycles"`
	Efficiency          float64             `json:"efficiency,omitempty" yaml:"efficiency"`
	MarketParticipation model.Participation `json:"market_participation,omitempty" yaml:"market_participation"`
}

// FromRecord resolves a persisted record against its scenario template and
// the project's battery parameters.
func FromRecord(rec Record, project Project) (model.UseCase, []model.Warning) {
	var warnings []model.Warning
	defaults, ok := ScenarioDefaults(rec.ScenarioType)
	if !ok {
		warnings = append(warnings, model.NewWarning(model.WarnUnknownScenario, rec.Name,
			"scenario type %q is not canonical, using balanced template", rec.ScenarioType))
	}

	uc := model.UseCase{
		Name:                rec.Name,
		Description:         rec.Description,
		ScenarioType:        rec.ScenarioType,
		Focus:               defaults.Focus,
		SizeMWh:             project.SizeMWh(),
		PowerMW:             project.PowerMW(),
		AnnualCycles:        defaults.AnnualCycles,
		Efficiency:          defaults.Efficiency,
		MarketParticipation: defaults.MarketParticipation.Clone(),
	}
	if uc.Description == "" {
		uc.Description = fmt.Sprintf("Use Case: %s", rec.Name)
	}
	if rec.SizeMWh > 0 {
		uc.SizeMWh = rec.SizeMWh
	}
	if rec.PowerMW > 0 {
		uc.PowerMW = rec.PowerMW
	}
	if rec.AnnualCycles > 0 {
		uc.AnnualCycles = rec.AnnualCycles
	}
	if rec.Efficiency != 0 {
		uc.Efficiency = rec.Efficiency
	}
	for s, rate := range rec.MarketParticipation {
		uc.MarketParticipation[s] = rate
	}
	return uc, warnings
}

// FromFocus builds a use case from a market-focus template. The project's
// daily cycle count, when set, replaces the template's annual cycles.
func FromFocus(name string, project Project, focus model.MarketFocus) model.UseCase {
	d := FocusDefaults(focus)
	cycles := d.AnnualCycles
	if project.AnnualCycles() > 0 {
		cycles = project.AnnualCycles()
	}
	return model.UseCase{
		Name:                name,
		Description:         fmt.Sprintf("BESS Use Case: %s (%s focus)", name, d.Focus),
		Focus:               d.Focus,
		SizeMWh:             project.SizeMWh(),
		PowerMW:             project.PowerMW(),
		AnnualCycles:        cycles,
		Efficiency:          d.Efficiency,
		MarketParticipation: d.MarketParticipation.Clone(),
	}
}

// DefaultUseCases is the fallback catalog used when no use cases are supplied.
func DefaultUseCases(project Project) []model.UseCase {
	return []model.UseCase{
		FromFocus("UC1 - Nur Verbrauch", project, model.FocusSRL),
		FromFocus("UC2 - PV + Verbrauch", project, model.FocusBalanced),
		FromFocus("UC3 - PV + Hydro + Verbrauch", project, model.FocusArbitrage),
	}
}

// Builder turns persisted records into the use cases of one comparison run.
type Builder struct {
	log zerolog.Logger
}

func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{log: log.With().Str("component", "catalog").Logger()}
}

// Build resolves every record. Duplicate names are made unique because a
// comparison keys its results by use-case name. An empty record list yields
// the default catalog.
func (b *Builder) Build(records []Record, project Project) ([]model.UseCase, []model.Warning) {
	if len(records) == 0 {
		b.log.Warn().Str("project", project.Name).Msg("no use cases defined, using default catalog")
		return DefaultUseCases(project), []model.Warning{
			model.NewWarning(model.WarnEmptyCatalog, "", "no use cases supplied, using default catalog"),
		}
	}

	var warnings []model.Warning
	out := make([]model.UseCase, 0, len(records))
	for _, rec := range records {
		uc, w := FromRecord(rec, project)
		warnings = append(warnings, w...)
		out = append(out, uc)
	}
	out, w := UniqueNames(out)
	warnings = append(warnings, w...)
	for _, w := range warnings {
		b.log.Warn().Str("code", string(w.Code)).Str("use_case", w.UseCase).Msg(w.Message)
	}
	return out, warnings
}

// UniqueNames renames repeated use-case names to "name (n)". The input slice
// is not modified.
func UniqueNames(useCases []model.UseCase) ([]model.UseCase, []model.Warning) {
	var warnings []model.Warning
	out := make([]model.UseCase, 0, len(useCases))
	seen := make(map[string]int, len(useCases))
	for _, uc := range useCases {
		seen[uc.Name]++
		if n := seen[uc.Name]; n > 1 {
			renamed := fmt.Sprintf("%s (%d)", uc.Name, n)
			warnings = append(warnings, model.NewWarning(model.WarnDuplicateUseCase, uc.Name,
				"duplicate use case name renamed to %q", renamed))
			uc.Name = renamed
		}
		out = append(out, uc)
	}
	return out, warnings
}
