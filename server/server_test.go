package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/config"
	"trip-planner/models"
	"trip-planner/services"
	"trip-planner/utils"
)

type fakePlanner struct {
	result *models.PipelineResult
	err    error

	query     string
	requestID string
}

func (p *fakePlanner) Plan(ctx context.Context, query string) (*models.PipelineResult, error) {
	p.query = query
	p.requestID = utils.RequestID(ctx)
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func newTestServer(p TripPlanner) *Server {
	return New(config.ServerConfig{
		Addr:           ":0",
		AllowedOrigins: []string{"http://localhost:5173"},
		GinMode:        "test",
	}, p, utils.NopLogger())
}

func do(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(&fakePlanner{}), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestPlanTrip_Informational(t *testing.T) {
	p := &fakePlanner{result: &models.PipelineResult{
		RequestID: "req-1",
		Intent:    models.IntentInformational,
		Response:  "Visit between November and March.",
	}}
	rec := do(newTestServer(p), http.MethodPost, "/plan-trip",
		`{"query":"When should I visit Dubai?"}`, map[string]string{requestIDHeader: "req-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "When should I visit Dubai?", p.query)
	assert.Equal(t, "req-1", p.requestID)
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "informational", body["intent"])
	assert.Equal(t, "Visit between November and March.", body["response"])
	assert.NotContains(t, body, "optimized_plan")
}

func TestPlanTrip_Planning(t *testing.T) {
	p := &fakePlanner{result: &models.PipelineResult{
		RequestID: "req-2",
		Intent:    models.IntentPlanning,
		Itinerary: "## Day 1",
	}}
	rec := do(newTestServer(p), http.MethodPost, "/plan-trip", `{"query":"Plan Dubai"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "planning", body["intent"])
	assert.Equal(t, "## Day 1", body["optimized_plan"])
	assert.NotEmpty(t, p.requestID)
}

func TestPlanTrip_ValidationError(t *testing.T) {
	p := &fakePlanner{err: &services.ValidationError{Violations: []services.Violation{
		{Kind: services.InvalidDateFormat, Field: "check_in", Value: "June 1st"},
		{Kind: services.BudgetRangeInverted, Field: "budget", Value: 5000.0, Max: 3000.0},
	}}}
	rec := do(newTestServer(p), http.MethodPost, "/plan-trip", `{"query":"Plan Dubai"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)
	require.Len(t, body.Violations, 2)
	assert.Equal(t, services.InvalidDateFormat, body.Violations[0].Kind)
	assert.Equal(t, services.BudgetRangeInverted, body.Violations[1].Kind)
	assert.Contains(t, body.Error, "min_budget 5000 cannot exceed max_budget 3000")
}

func TestPlanTrip_InternalError(t *testing.T) {
	p := &fakePlanner{err: errors.New("plan trip: itinerary generation failed")}
	rec := do(newTestServer(p), http.MethodPost, "/plan-trip", `{"query":"Plan Dubai"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "itinerary generation failed")
}

func TestPlanTrip_BadBody(t *testing.T) {
	p := &fakePlanner{}
	for _, body := range []string{`not json`, `{}`, `{"query":"   "}`} {
		rec := do(newTestServer(p), http.MethodPost, "/plan-trip", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Empty(t, p.query)
}

func TestCORS(t *testing.T) {
	s := newTestServer(&fakePlanner{})
	req := httptest.NewRequest(http.MethodOptions, "/plan-trip", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginsConfigured(t *testing.T) {
	cfg := corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig([]string{"http://localhost:3000"})
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
}
