package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/complexity-sim/complexity-sim/api"
	"github.com/complexity-sim/complexity-sim/sim"
)

// APIClient submits analyses to a running `serve` instance.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the server at baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Analyze posts one analysis and decodes the report.
func (c *APIClient) Analyze(ctx context.Context, code string, settings sim.AnalysisSettings) (*sim.Report, error) {
	var rep sim.Report
	if err := c.post(ctx, "/v1/analyses", api.AnalysisRequest{Code: code, Settings: settings}, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Compare posts a comparison across every assumption.
func (c *APIClient) Compare(ctx context.Context, code string, settings sim.AnalysisSettings) (*sim.Comparison, error) {
	var cmp sim.Comparison
	if err := c.post(ctx, "/v1/compare", api.AnalysisRequest{Code: code, Settings: settings}, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}

// Health returns nil when the server answers /health with 200.
func (c *APIClient) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("HTTP error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: HTTP %d", resp.StatusCode)
	}
	return nil
}

func (c *APIClient) post(ctx context.Context, path string, body, out any) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("HTTP error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	logrus.Debugf("POST %s: HTTP %d in %v", path, resp.StatusCode, time.Since(start))

	bodyData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return remoteError(resp.StatusCode, bodyData)
	}
	if err := json.Unmarshal(bodyData, out); err != nil {
		return fmt.Errorf("JSON parse error: %w", err)
	}
	return nil
}

// remoteError restores the sentinel named by a 400 response's reason so
// callers can still branch with errors.Is.
func remoteError(status int, body []byte) error {
	var payload struct {
		Error  string `json:"error"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == "" {
		return fmt.Errorf("HTTP %d: %s", status, string(body))
	}
	switch payload.Reason {
	case "invalid_range":
		return fmt.Errorf("%w (remote: %s)", sim.ErrInvalidRange, payload.Error)
	case "invalid_runs":
		return fmt.Errorf("%w (remote: %s)", sim.ErrInvalidRuns, payload.Error)
	case "unknown_assumption":
		return fmt.Errorf("%w (remote: %s)", sim.ErrUnknownAssumption, payload.Error)
	}
	return fmt.Errorf("HTTP %d: %s", status, payload.Error)
}
