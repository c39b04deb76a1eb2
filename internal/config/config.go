package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/data"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
	"github.com/HSchlagi/bess-simulation-sub000/internal/projection"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk analysis configuration (YAML).
type Config struct {
	Project catalog.Project `yaml:"project"`

	// Optional: load prices from a separate file. Entries in Prices override
	// entries from PricesFile.
	PricesFile string                 `yaml:"prices_file"`
	Prices     model.MarketPriceTable `yaml:"prices"`

	HorizonYears    int      `yaml:"horizon_years"`
	AnnualDecayRate *float64 `yaml:"annual_decay_rate"`

	// UseCaseDefaults is overlaid by every entry of UseCases.
	UseCaseDefaults catalog.Record   `yaml:"use_case_defaults"`
	UseCases        []catalog.Record `yaml:"use_cases"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.PricesFile != "" {
		pricesPath := c.PricesFile
		if !filepath.IsAbs(pricesPath) {
			// Relative to the config file first, then to the working directory.
			cand := filepath.Join(filepath.Dir(path), pricesPath)
			if _, err := os.Stat(cand); err == nil {
				pricesPath = cand
			}
		}
		loaded, err := data.LoadPriceFile(pricesPath)
		if err != nil {
			return nil, err
		}
		c.Prices = loaded.Merge(c.Prices)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Project.Name == "" {
		return errors.New("project.name is required")
	}
	if c.Project.SizeKWh <= 0 {
		return errors.New("project.bess_size_kwh must be > 0")
	}
	if c.Project.PowerKW <= 0 {
		return errors.New("project.bess_power_kw must be > 0")
	}
	if c.Project.DailyCycles < 0 {
		return errors.New("project.daily_cycles must be >= 0")
	}
	if c.HorizonYears < 0 {
		return errors.New("horizon_years must be >= 0")
	}
	if r := c.AnnualDecayRate; r != nil && (*r < 0 || *r >= 1) {
		return errors.New("annual_decay_rate must be in [0, 1)")
	}
	if err := c.Prices.Validate(); err != nil {
		return fmt.Errorf("prices invalid: %w", err)
	}
	for i, uc := range c.UseCases {
		if uc.Name == "" {
			return fmt.Errorf("use_cases[%d].name is required", i)
		}
	}
	return nil
}

// EngineOptions maps the horizon settings onto projection options. Unset
// fields keep the engine defaults.
func (c *Config) EngineOptions() []projection.Option {
	var opts []projection.Option
	if c.HorizonYears > 0 {
		opts = append(opts, projection.WithHorizon(c.HorizonYears))
	}
	if c.AnnualDecayRate != nil {
		opts = append(opts, projection.WithAnnualDecayRate(*c.AnnualDecayRate))
	}
	return opts
}

// Records returns the configured use cases with UseCaseDefaults applied.
func (c *Config) Records() []catalog.Record {
	out := make([]catalog.Record, 0, len(c.UseCases))
	for _, uc := range c.UseCases {
		out = append(out, MergeUseCase(c.UseCaseDefaults, uc))
	}
	return out
}

// MergeUseCase overlays non-zero fields from override onto base.
// Participation rates are merged per stream.
func MergeUseCase(base, override catalog.Record) catalog.Record {
	out := base
	if override.ID != 0 {
		out.ID = override.ID
	}
	if override.ProjectID != 0 {
		out.ProjectID = override.ProjectID
	}
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	if override.ScenarioType != "" {
		out.ScenarioType = override.ScenarioType
	}
	if override.SizeMWh != 0 {
		out.SizeMWh = override.SizeMWh
	}
	if override.PowerMW != 0 {
		out.PowerMW = override.PowerMW
	}
	if override.AnnualCycles != 0 {
		out.AnnualCycles = override.AnnualCycles
	}
	if override.Efficiency != 0 {
		out.Efficiency = override.Efficiency
	}
	if len(base.MarketParticipation) > 0 || len(override.MarketParticipation) > 0 {
		merged := base.MarketParticipation.Clone()
		if merged == nil {
			merged = model.Participation{}
		}
		for s, rate := range override.MarketParticipation {
			merged[s] = rate
		}
		out.MarketParticipation = merged
	}
	return out
}
