package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PlannerClient talks to the remote trip planning service.
type PlannerClient struct {
	url        string
	httpClient *http.Client
}

// NewPlannerClient builds a client for the given endpoint. A zero timeout
// leaves requests unbounded except by the caller's context.
func NewPlannerClient(url string, timeout time.Duration) *PlannerClient {
	return &PlannerClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// PlanTrip POSTs req as JSON and decodes the response as a TravelPlan. Any
// non-2xx status is an error.
func (c *PlannerClient) PlanTrip(ctx context.Context, req TripRequest) (*TravelPlan, error) {
	if req.Interests == nil {
		req.Interests = []string{}
	}
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode trip request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("build plan request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("plan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("planner error (%d): %s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read plan response: %w", err)
	}

	plan, err := DecodeTravelPlan(body)
	if err != nil {
		return nil, fmt.Errorf("decode plan response: %w", err)
	}
	return plan, nil
}
