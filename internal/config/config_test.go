package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
	"github.com/HSchlagi/bess-simulation-sub000/internal/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisYAML = `
project:
  name: Hinterstoder
  bess_size_kwh: 8000
  bess_power_kw: 2000
  daily_cycles: 2.4
  total_investment: 6130000
prices_file: prices.yaml
prices:
  srl_positive: 21
horizon_years: 5
annual_decay_rate: 0
use_case_defaults:
  efficiency: 0.9
  market_participation:
    srl_positive: 0.3
use_cases:
  - name: UC1
    scenario_type: consumption_only
  - name: UC2
    scenario_type: pv_consumption
    efficiency: 0.8
    market_participation:
      srl_negative: 0.2
`

func writeConfig(t *testing.T, cfg, prices string) string {
	t.Helper()
	dir := t.TempDir()
	if prices != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "prices.yaml"), []byte(prices), 0o644))
	}
	path := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func TestLoad_MergesPricesFile(t *testing.T) {
	path := writeConfig(t, analysisYAML, "srl_positive: 19\nsre_positive: 75\n")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Hinterstoder", c.Project.Name)
	assert.Equal(t, 21.0, c.Prices[model.PriceSRLPositive], "inline price wins")
	assert.Equal(t, 75.0, c.Prices[model.PriceSREPositive])
	assert.Equal(t, 5, c.HorizonYears)
	require.NotNil(t, c.AnnualDecayRate)
	assert.Equal(t, 0.0, *c.AnnualDecayRate)
}

func TestLoad_MissingPricesFile(t *testing.T) {
	_, err := Load(writeConfig(t, analysisYAML, ""))
	assert.Error(t, err)
}

func TestConfig_Records(t *testing.T) {
	c, err := Load(writeConfig(t, analysisYAML, "sre_positive: 75\n"))
	require.NoError(t, err)

	recs := c.Records()
	require.Len(t, recs, 2)

	assert.Equal(t, 0.9, recs[0].Efficiency)
	assert.Equal(t, model.Participation{model.StreamSRLPositive: 0.3}, recs[0].MarketParticipation)

	assert.Equal(t, 0.8, recs[1].Efficiency)
	assert.Equal(t, model.Participation{
		model.StreamSRLPositive: 0.3,
		model.StreamSRLNegative: 0.2,
	}, recs[1].MarketParticipation)

	// defaults are not mutated by the merge
	assert.Len(t, c.UseCaseDefaults.MarketParticipation, 1)
}

func TestConfig_EngineOptions(t *testing.T) {
	c, err := Load(writeConfig(t, analysisYAML, "sre_positive: 75\n"))
	require.NoError(t, err)

	e := projection.New(c.EngineOptions()...)
	assert.Equal(t, 5, e.Horizon())
	assert.Equal(t, 0.0, e.AnnualDecayRate())

	e = projection.New((&Config{}).EngineOptions()...)
	assert.Equal(t, projection.DefaultHorizonYears, e.Horizon())
	assert.Equal(t, projection.DefaultAnnualDecayRate, e.AnnualDecayRate())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{Project: catalog.Project{Name: "p", SizeKWh: 1000, PowerKW: 500}}
	}
	rate := 1.5

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing name", func(c *Config) { c.Project.Name = "" }},
		{"zero size", func(c *Config) { c.Project.SizeKWh = 0 }},
		{"zero power", func(c *Config) { c.Project.PowerKW = 0 }},
		{"negative cycles", func(c *Config) { c.Project.DailyCycles = -1 }},
		{"negative horizon", func(c *Config) { c.HorizonYears = -1 }},
		{"decay out of range", func(c *Config) { c.AnnualDecayRate = &rate }},
		{"negative price", func(c *Config) { c.Prices = model.MarketPriceTable{model.PriceSRLPositive: -1} }},
		{"unnamed use case", func(c *Config) { c.UseCases = []catalog.Record{{}} }},
	}

	require.NoError(t, valid().Validate())
	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestMergeUseCase(t *testing.T) {
	base := catalog.Record{Name: "base", Efficiency: 0.85, AnnualCycles: 300}
	out := MergeUseCase(base, catalog.Record{Name: "x", AnnualCycles: 500})
	assert.Equal(t, "x", out.Name)
	assert.Equal(t, 0.85, out.Efficiency)
	assert.Equal(t, 500.0, out.AnnualCycles)
	assert.Nil(t, out.MarketParticipation)
}
