package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/HSchlagi/bess-simulation-sub000/internal/model"

	"github.com/rs/zerolog"
)

// RemoteResolver fetches price tables from another instance of the analysis
// API (GET /api/v1/prices).
type RemoteResolver struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	log     zerolog.Logger
}

func NewRemoteResolver(baseURL, apiKey string, log zerolog.Logger) *RemoteResolver {
	return &RemoteResolver{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("component", "remote_prices").Logger(),
	}
}

// RemoteError is a non-200 answer of the price service.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

type remotePricesResponse struct {
	ProjectID int64                  `json:"project_id"`
	Prices    model.MarketPriceTable `json:"prices"`
}

func (r *RemoteResolver) ResolvePrices(ctx context.Context, projectID int64) (model.MarketPriceTable, error) {
	if r.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(r.BaseURL + "/api/v1/prices")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if projectID > 0 {
		q := u.Query()
		q.Set("project_id", strconv.FormatInt(projectID, 10))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if r.APIKey != "" {
		req.Header.Set("x-api-key", r.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.Client.Do(req)
	if err != nil {
		r.log.Error().Err(err).Str("url", u.String()).Msg("price request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	r.log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int64("project_id", projectID).
		Msg("price response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "price service rejected the API key",
		}
	case http.StatusNotFound:
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    fmt.Sprintf("project %d not found", projectID),
		}
	default:
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("price service returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var body remotePricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return model.ReferencePrices().Merge(body.Prices), nil
}
