// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package insights fetches paginated patient-insight pages for display.
// The fetcher reads the session token through a read-only TokenSource and
// never touches session state itself: callers map a 401 FetchError to a
// session invalidation. Each fetch carries a monotonically increasing
// sequence number; a completion that would land behind an already-applied
// newer page is discarded instead of overwriting fresher data.
package insights

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"copilot/cli/internal/backend"
	"copilot/cli/internal/logging"
)

// TokenSource supplies the current bearer token, or "" when unauthenticated.
type TokenSource interface {
	Token() string
}

// ErrStale marks a fetch whose response arrived after a newer one was applied.
var ErrStale = errors.New("stale insights response discarded")

// FetchError reports a failed page fetch. Status is the HTTP status code, or
// 0 for transport-level failures. Message is intended for direct display.
type FetchError struct {
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("fetching insights failed (status %d)", e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Page is one transient page of insight records. Never cached: every page
// change or manual refresh re-fetches.
type Page struct {
	Records    []backend.InsightRecord
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// Fetcher issues authenticated paginated requests for insight pages.
type Fetcher struct {
	api    backend.API
	tokens TokenSource

	mu      sync.Mutex
	seq     uint64
	applied uint64
}

// NewFetcher returns a fetcher backed by the given API and token source.
func NewFetcher(api backend.API, tokens TokenSource) *Fetcher {
	return &Fetcher{api: api, tokens: tokens}
}

// FetchPage fetches one page of records. Overlapping calls are allowed; when
// completions arrive out of order, the one belonging to an older request
// returns ErrStale and must be ignored by the caller.
func (f *Fetcher) FetchPage(ctx context.Context, page, perPage int) (*Page, error) {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	result, err := f.api.PatientInsights(ctx, f.tokens.Token(), page, perPage)
	if err != nil {
		// Failures do not advance the applied sequence; a retry or an older
		// in-flight success can still land.
		return nil, asFetchError(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq < f.applied {
		logging.L.Debug().Uint64("seq", seq).Uint64("applied", f.applied).Msg("discarding stale page")
		return nil, ErrStale
	}
	f.applied = seq

	p := result.Pagination
	return &Page{
		Records:    result.Records,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: p.TotalItems,
		TotalPages: TotalPages(p.TotalItems, p.PerPage),
	}, nil
}

// asFetchError wraps backend errors into the display-oriented FetchError.
func asFetchError(err error) *FetchError {
	var se *backend.StatusError
	if errors.As(err, &se) {
		return &FetchError{Status: se.Status, Message: se.Message, Err: err}
	}
	var me *backend.MalformedResponseError
	if errors.As(err, &me) {
		return &FetchError{Message: "the service returned an unexpected response", Err: err}
	}
	return &FetchError{Message: "cannot reach the Doctors Copilot service", Err: err}
}

// TotalPages computes the page count for a total item count at a page size.
func TotalPages(totalItems, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + perPage - 1) / perPage
}

// RiskLevel maps a risk score to its display level: >=75 High, >=50 Medium,
// else Low.
func RiskLevel(score float64) string {
	switch {
	case score >= 75:
		return "High"
	case score >= 50:
		return "Medium"
	default:
		return "Low"
	}
}
