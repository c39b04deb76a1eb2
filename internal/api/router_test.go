package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HSchlagi/bess-simulation-sub000/internal/api/models"
	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/data"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
	"github.com/HSchlagi/bess-simulation-sub000/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *gin.Engine
	store     *data.Store
	projectID int64
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store, err := data.OpenStore(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	id, err := store.CreateProject(ctx, catalog.Project{
		Name:        "Hinterstoder",
		SizeKWh:     8000,
		PowerKW:     2000,
		DailyCycles: 2.4,
	})
	require.NoError(t, err)
	_, err = store.AddInvestmentCost(ctx, data.InvestmentCost{ProjectID: id, ComponentType: "bess", CostEUR: 6_130_000})
	require.NoError(t, err)
	require.NoError(t, store.SavePrices(ctx, id, model.MarketPriceTable{model.PriceSRLPositive: 20}))

	router := NewRouter(Deps{
		Prices:         store,
		Store:          store,
		Metrics:        observability.NewMetrics(),
		Log:            zerolog.Nop(),
		AllowedOrigins: []string{"https://app.example"},
	})
	return &testServer{router: router, store: store, projectID: id}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := setupServer(t)
	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListScenarios(t *testing.T) {
	s := setupServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ScenariosResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Scenarios, 8)
}

func TestGetPrices(t *testing.T) {
	s := setupServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/prices", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var global models.PricesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &global))
	assert.Equal(t, 18.0, global.Prices[model.PriceSRLPositive])

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/prices?project_id=%d", s.projectID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var project models.PricesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	assert.Equal(t, 20.0, project.Prices[model.PriceSRLPositive])

	rec = s.do(t, http.MethodGet, "/api/v1/prices?project_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunAnalysis_StoredProject(t *testing.T) {
	s := setupServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/analysis", models.AnalysisRequest{ProjectID: s.projectID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Result)

	r := resp.Result
	assert.Equal(t, 6_130_000.0, r.Investment)
	assert.Equal(t, 20.0, r.Prices[model.PriceSRLPositive])
	assert.Len(t, r.UseCases, 3, "no stored use cases: default catalog")
	assert.NotEmpty(t, r.Warnings)
	assert.Equal(t, model.WarnEmptyCatalog, r.Warnings[0].Code)
	assert.Nil(t, r.UseCases[0].Trajectory)
}

func TestRunAnalysis_StoredUseCases(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()
	for _, rec := range []catalog.Record{
		{ProjectID: s.projectID, Name: "Industrie", ScenarioType: model.ScenarioIndustrial},
		{ProjectID: s.projectID, Name: "Mixed", ScenarioType: model.ScenarioMixedRenewables},
	} {
		_, err := s.store.SaveUseCase(ctx, rec)
		require.NoError(t, err)
	}

	rec := s.do(t, http.MethodPost, "/api/v1/analysis", models.AnalysisRequest{
		ProjectID: s.projectID,
		Options:   models.AnalysisOptions{HorizonYears: 3, IncludeTrajectories: true},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	r := resp.Result
	require.Len(t, r.UseCases, 2)
	assert.Equal(t, "Industrie", r.UseCases[0].UseCase.Name)
	assert.Equal(t, 3, r.HorizonYears)
	assert.Len(t, r.UseCases[0].Trajectory, 3)
	assert.Equal(t, r.Comparison.BestUseCase, r.Recommendations.RecommendedUseCase)
}

func TestRunAnalysis_InlineProject(t *testing.T) {
	s := setupServer(t)
	rec := s.do(t, http.MethodPost, "/api/v1/analysis", models.AnalysisRequest{
		Project: catalog.Project{Name: "inline", SizeKWh: 8000, PowerKW: 2000, DailyCycles: 2.4},
		Investment: 6_130_000,
		Prices:     model.MarketPriceTable{model.PriceSREPositive: 90},
		UseCases: []catalog.Record{
			{Name: "UC1", ScenarioType: model.ScenarioConsumptionOnly},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 90.0, resp.Result.Prices[model.PriceSREPositive])
	assert.Equal(t, "UC1", resp.Result.Comparison.BestUseCase)
}

func TestRunAnalysis_Errors(t *testing.T) {
	s := setupServer(t)
	badRate := 2.0

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"malformed", "not an object", http.StatusBadRequest, "INVALID_REQUEST"},
		{"no project", models.AnalysisRequest{}, http.StatusBadRequest, "INVALID_PROJECT"},
		{"unknown project", models.AnalysisRequest{ProjectID: 999}, http.StatusNotFound, "PROJECT_NOT_FOUND"},
		{"bad decay", models.AnalysisRequest{ProjectID: s.projectID, Options: models.AnalysisOptions{AnnualDecayRate: &badRate}},
			http.StatusBadRequest, "INVALID_OPTIONS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/analysis", tt.body)
			require.Equal(t, tt.status, rec.Code)
			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestExportAnalysis(t *testing.T) {
	s := setupServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/analysis/export?kind=trajectory", models.AnalysisRequest{
		ProjectID: s.projectID,
		Options:   models.AnalysisOptions{HorizonYears: 2},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1+3*2)

	rec = s.do(t, http.MethodPost, "/api/v1/analysis/export", models.AnalysisRequest{ProjectID: s.projectID})
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err = csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1+3)

	rec = s.do(t, http.MethodPost, "/api/v1/analysis/export?kind=pdf", models.AnalysisRequest{ProjectID: s.projectID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupServer(t)
	s.do(t, http.MethodPost, "/api/v1/analysis", models.AnalysisRequest{ProjectID: s.projectID})

	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bess_analyses_total{outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/analysis"`)
}

func TestCORS(t *testing.T) {
	s := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analysis", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	s := setupServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
