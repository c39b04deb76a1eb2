package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HSchlagi/bess-simulation-sub000/internal/api/models"
	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/compare"
	"github.com/HSchlagi/bess-simulation-sub000/internal/data"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
	"github.com/HSchlagi/bess-simulation-sub000/internal/observability"
	"github.com/HSchlagi/bess-simulation-sub000/internal/projection"
	"github.com/HSchlagi/bess-simulation-sub000/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProjectStore is the read side of the project repository.
type ProjectStore interface {
	Project(ctx context.Context, id int64) (catalog.Project, error)
	UseCaseRecords(ctx context.Context, projectID int64) ([]catalog.Record, error)
}

// AnalysisHandler handles analysis requests
type AnalysisHandler struct {
	prices  compare.PriceResolver
	store   ProjectStore // optional
	builder *catalog.Builder
	metrics *observability.Metrics
	root    zerolog.Logger
	log     zerolog.Logger
}

// NewAnalysisHandler creates a new analysis handler. store may be nil, in
// which case requests must carry their project inline.
func NewAnalysisHandler(prices compare.PriceResolver, store ProjectStore, metrics *observability.Metrics, log zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		prices:  prices,
		store:   store,
		builder: catalog.NewBuilder(log),
		metrics: metrics,
		root:    log,
		log:     log.With().Str("component", "analysis_handler").Logger(),
	}
}

// requestError carries the HTTP status and error code of a rejected request.
type requestError struct {
	status int
	code   string
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }

func badRequest(code string, err error) *requestError {
	return &requestError{status: http.StatusBadRequest, code: code, err: err}
}

// RunAnalysis handles POST /api/v1/analysis
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	result, ok := h.analyze(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.AnalysisResponse{
		ID:     uuid.New().String(),
		Status: "completed",
		Result: result,
	})
}

// ExportAnalysis handles POST /api/v1/analysis/export?kind=summary|trajectory
func (h *AnalysisHandler) ExportAnalysis(c *gin.Context) {
	var q models.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeError(c, badRequest("INVALID_REQUEST", err))
		return
	}
	if q.Kind == "" {
		q.Kind = "summary"
	}
	if q.Kind != "summary" && q.Kind != "trajectory" {
		h.writeError(c, badRequest("INVALID_EXPORT_KIND",
			fmt.Errorf("kind must be summary or trajectory, got %q", q.Kind)))
		return
	}

	result, ok := h.analyze(c, q.Kind == "trajectory")
	if !ok {
		return
	}

	filename := fmt.Sprintf("bess_%s_%s.csv", q.Kind, uuid.New().String()[:8])
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	var err error
	if q.Kind == "trajectory" {
		err = report.WriteTrajectoryCSV(c.Writer, report.TrajectoryRows(result.UseCases))
	} else {
		err = report.WriteSummaryCSV(c.Writer, result)
	}
	if err != nil {
		h.log.Error().Err(err).Str("kind", q.Kind).Msg("csv export failed")
	}
}

// analyze binds the request, runs the comparison and records metrics. On
// failure the error response has already been written. withTrajectories
// forces the yearly results into the output.
func (h *AnalysisHandler) analyze(c *gin.Context, withTrajectories bool) (*compare.AnalysisResult, bool) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, badRequest("INVALID_REQUEST", err))
		return nil, false
	}
	if withTrajectories {
		req.Options.IncludeTrajectories = true
	}

	start := time.Now()
	result, err := h.run(c.Request.Context(), req)
	if err != nil {
		h.metrics.AnalysisFailed()
		h.writeError(c, err)
		return nil, false
	}
	h.metrics.ObserveAnalysis(time.Since(start), len(result.UseCases), result.Comparison.BestROI, result.Warnings)
	return result, true
}

func (h *AnalysisHandler) run(ctx context.Context, req models.AnalysisRequest) (*compare.AnalysisResult, error) {
	if r := req.Options.AnnualDecayRate; r != nil && (*r < 0 || *r >= 1) {
		return nil, badRequest("INVALID_OPTIONS", errors.New("annual_decay_rate must be in [0, 1)"))
	}
	if req.Options.HorizonYears < 0 {
		return nil, badRequest("INVALID_OPTIONS", errors.New("horizon_years must be >= 0"))
	}

	project, err := h.project(ctx, req)
	if err != nil {
		return nil, err
	}

	prices, err := h.prices.ResolvePrices(ctx, project.ID)
	if err != nil {
		return nil, &requestError{status: http.StatusBadGateway, code: "PRICE_RESOLUTION_ERROR", err: err}
	}
	prices = prices.Merge(req.Prices)

	records := req.UseCases
	if len(records) == 0 && h.store != nil && project.ID > 0 {
		records, err = h.store.UseCaseRecords(ctx, project.ID)
		if err != nil {
			return nil, &requestError{status: http.StatusInternalServerError, code: "STORE_ERROR", err: err}
		}
	}

	in := compare.Input{
		Project:             project,
		Investment:          req.Investment,
		IncludeTrajectories: req.Options.IncludeTrajectories,
	}
	var catalogWarnings []model.Warning
	if len(records) > 0 {
		in.UseCases, catalogWarnings = h.builder.Build(records, project)
	}

	var opts []projection.Option
	if req.Options.HorizonYears > 0 {
		opts = append(opts, projection.WithHorizon(req.Options.HorizonYears))
	}
	if req.Options.AnnualDecayRate != nil {
		opts = append(opts, projection.WithAnnualDecayRate(*req.Options.AnnualDecayRate))
	}

	result := compare.New(projection.New(opts...), h.root).Compare(in, prices)
	result.Warnings = append(catalogWarnings, result.Warnings...)
	return result, nil
}

// project resolves the stored project (if any) and overlays the request's
// non-zero fields.
func (h *AnalysisHandler) project(ctx context.Context, req models.AnalysisRequest) (catalog.Project, error) {
	p := req.Project
	if req.ProjectID > 0 {
		if h.store == nil {
			return catalog.Project{}, badRequest("NO_STORE", errors.New("project_id given but no project store is configured"))
		}
		stored, err := h.store.Project(ctx, req.ProjectID)
		if errors.Is(err, data.ErrNotFound) {
			return catalog.Project{}, &requestError{status: http.StatusNotFound, code: "PROJECT_NOT_FOUND", err: err}
		}
		if err != nil {
			return catalog.Project{}, &requestError{status: http.StatusInternalServerError, code: "STORE_ERROR", err: err}
		}
		p = mergeProject(stored, req.Project)
	}
	if p.SizeKWh <= 0 || p.PowerKW <= 0 {
		return catalog.Project{}, badRequest("INVALID_PROJECT", errors.New("project.bess_size_kwh and project.bess_power_kw must be > 0"))
	}
	return p, nil
}

func mergeProject(base, override catalog.Project) catalog.Project {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.SizeKWh != 0 {
		out.SizeKWh = override.SizeKWh
	}
	if override.PowerKW != 0 {
		out.PowerKW = override.PowerKW
	}
	if override.DailyCycles != 0 {
		out.DailyCycles = override.DailyCycles
	}
	if override.TotalInvestment != 0 {
		out.TotalInvestment = override.TotalInvestment
	}
	return out
}

func (h *AnalysisHandler) writeError(c *gin.Context, err error) {
	var reqErr *requestError
	if !errors.As(err, &reqErr) {
		reqErr = &requestError{status: http.StatusInternalServerError, code: "ANALYSIS_ERROR", err: err}
	}
	if reqErr.status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("code", reqErr.code).Msg("analysis request failed")
	}
	c.JSON(reqErr.status, models.NewError(reqErr.code, reqErr.Error()))
}
