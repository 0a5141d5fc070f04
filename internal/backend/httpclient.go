// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// API endpoint paths, fixed by the backend contract.
const (
	pathLogin    = "/api/auth/login"
	pathInsights = "/api/patient_insights"
	pathHealth   = "/api/health"
)

// HTTP implements API over REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:5000")
	baseURL string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// New creates an HTTP backend client for the given base URL.
// A non-positive timeout falls back to 10 seconds.
func New(baseURL string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Health calls GET /api/health and returns the reported status string.
// No authentication required. This can be used to check connectivity to the
// backend service.
func (h *HTTP) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+pathHealth, nil)
	if err != nil {
		return "", err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Status: resp.StatusCode}
	}
	var out struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &MalformedResponseError{Detail: "health payload is not JSON"}
	}
	if out.Status == "" {
		return "unknown", nil
	}
	return out.Status, nil
}
