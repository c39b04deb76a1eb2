package models

import (
	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
)

// AnalysisRequest is the body of POST /api/v1/analysis and
// POST /api/v1/analysis/export. Either ProjectID or Project must be set;
// non-zero Project fields override the stored project.
type AnalysisRequest struct {
	ProjectID  int64                  `json:"project_id,omitempty"`
	Project    catalog.Project        `json:"project,omitempty"`
	Investment float64                `json:"investment,omitempty"` // overrides the project's total investment
	Prices     model.MarketPriceTable `json:"prices,omitempty"`     // overlaid on the resolved prices
	UseCases   []catalog.Record       `json:"use_cases,omitempty"`  // replaces the stored use cases
	Options    AnalysisOptions        `json:"options,omitempty"`
}

// AnalysisOptions contains optional projection parameters
type AnalysisOptions struct {
	HorizonYears        int      `json:"horizon_years,omitempty"`     // default: 11
	AnnualDecayRate     *float64 `json:"annual_decay_rate,omitempty"` // default: 0.02
	IncludeTrajectories bool     `json:"include_trajectories,omitempty"`
}

// PricesQuery is the query of GET /api/v1/prices
type PricesQuery struct {
	ProjectID int64 `form:"project_id"`
}

// ExportQuery is the query of POST /api/v1/analysis/export
type ExportQuery struct {
	Kind string `form:"kind"` // "summary" (default) or "trajectory"
}
