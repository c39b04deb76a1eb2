package models

import (
	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"
	"github.com/HSchlagi/bess-simulation-sub000/internal/compare"
	"github.com/HSchlagi/bess-simulation-sub000/internal/model"
)

// AnalysisResponse represents the response from an analysis run
type AnalysisResponse struct {
	ID     string                  `json:"id"`
	Status string                  `json:"status"`
	Result *compare.AnalysisResult `json:"result"`
}

// PricesResponse is the resolved price table of a project
type PricesResponse struct {
	ProjectID int64                  `json:"project_id"`
	Prices    model.MarketPriceTable `json:"prices"`
}

// ScenariosResponse lists the scenario templates
type ScenariosResponse struct {
	Scenarios []catalog.ScenarioInfo `json:"scenarios"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewError builds an error envelope.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
