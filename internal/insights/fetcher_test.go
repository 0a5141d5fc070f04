// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package insights

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"copilot/cli/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticToken is a fixed TokenSource.
type staticToken string

func (s staticToken) Token() string { return string(s) }

// fakeAPI serves insight pages through a pluggable function so tests can
// control completion order.
type fakeAPI struct {
	mu        sync.Mutex
	lastToken string
	fn        func(ctx context.Context, token string, page, perPage int) (*backend.InsightsPage, error)
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	return "", errors.New("not scripted")
}

func (f *fakeAPI) Health(ctx context.Context) (string, error) { return "healthy", nil }

func (f *fakeAPI) PatientInsights(ctx context.Context, token string, page, perPage int) (*backend.InsightsPage, error) {
	f.mu.Lock()
	f.lastToken = token
	fn := f.fn
	f.mu.Unlock()
	return fn(ctx, token, page, perPage)
}

func pageResult(page, perPage, totalItems int) *backend.InsightsPage {
	return &backend.InsightsPage{
		Records:    []backend.InsightRecord{{PatientID: "10026", RiskScore: 42}},
		Pagination: backend.Pagination{Page: page, PerPage: perPage, TotalItems: totalItems},
	}
}

func TestFetchPage_Success(t *testing.T) {
	api := &fakeAPI{fn: func(ctx context.Context, token string, page, perPage int) (*backend.InsightsPage, error) {
		return pageResult(page, perPage, 37), nil
	}}
	f := NewFetcher(api, staticToken("tok-1"))

	page, err := f.FetchPage(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, "tok-1", api.lastToken, "current session token attached")
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PerPage)
	assert.Equal(t, 37, page.TotalItems)
	assert.Equal(t, 4, page.TotalPages, "37 items at 10 per page is 4 pages")
	require.Len(t, page.Records, 1)
}

func TestFetchPage_Unauthorized(t *testing.T) {
	api := &fakeAPI{fn: func(ctx context.Context, token string, page, perPage int) (*backend.InsightsPage, error) {
		return nil, &backend.StatusError{Status: http.StatusUnauthorized, Message: "Invalid token"}
	}}
	f := NewFetcher(api, staticToken("stale"))

	_, err := f.FetchPage(context.Background(), 1, 10)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusUnauthorized, fe.Status)
	assert.True(t, backend.IsUnauthorized(err),
		"callers detect the 401 through the wrapped error")
}

func TestFetchPage_MalformedResponse(t *testing.T) {
	api := &fakeAPI{fn: func(ctx context.Context, token string, page, perPage int) (*backend.InsightsPage, error) {
		return nil, &backend.MalformedResponseError{Detail: "missing pagination block"}
	}}
	f := NewFetcher(api, staticToken(""))

	_, err := f.FetchPage(context.Background(), 1, 10)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.Status)
	assert.False(t, backend.IsUnauthorized(err))
}

func TestFetchPage_StaleResponseDiscarded(t *testing.T) {
	// The first request blocks until the second has completed, simulating
	// out-of-order completion of overlapping fetches.
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	api := &fakeAPI{}
	api.fn = func(ctx context.Context, token string, page, perPage int) (*backend.InsightsPage, error) {
		if page == 1 {
			close(firstStarted)
			<-release
		}
		return pageResult(page, perPage, 37), nil
	}
	f := NewFetcher(api, staticToken("tok"))

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.FetchPage(context.Background(), 1, 10)
	}()

	<-firstStarted
	page, err := f.FetchPage(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)

	close(release)
	wg.Wait()

	assert.ErrorIs(t, firstErr, ErrStale,
		"a completion older than the latest applied page is discarded")
}

func TestFetchPage_FailureDoesNotAdvanceSequence(t *testing.T) {
	fail := true
	api := &fakeAPI{}
	api.fn = func(ctx context.Context, token string, page, perPage int) (*backend.InsightsPage, error) {
		if fail {
			return nil, &backend.StatusError{Status: http.StatusInternalServerError}
		}
		return pageResult(page, perPage, 37), nil
	}
	f := NewFetcher(api, staticToken("tok"))

	_, err := f.FetchPage(context.Background(), 1, 10)
	require.Error(t, err)

	fail = false
	_, err = f.FetchPage(context.Background(), 1, 10)
	require.NoError(t, err, "a retry after a failure applies normally")
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		perPage    int
		want       int
	}{
		{name: "partial last page", totalItems: 37, perPage: 10, want: 4},
		{name: "exact multiple", totalItems: 40, perPage: 10, want: 4},
		{name: "single page", totalItems: 3, perPage: 10, want: 1},
		{name: "empty", totalItems: 0, perPage: 10, want: 0},
		{name: "zero per page", totalItems: 37, perPage: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.totalItems, tt.perPage); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.totalItems, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 100, want: "High"},
		{score: 75, want: "High"},
		{score: 74.9, want: "Medium"},
		{score: 50, want: "Medium"},
		{score: 49.9, want: "Low"},
		{score: 0, want: "Low"},
	}

	for _, tt := range tests {
		if got := RiskLevel(tt.score); got != tt.want {
			t.Errorf("RiskLevel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
