// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides interfaces and implementations for communicating
// with the Doctors Copilot API. It defines the client contract for
// authentication, patient insights and health checking, and includes an
// HTTP-based implementation. Payloads are decoded into explicit struct types
// and validated at the boundary; malformed responses fail fast.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Login exchanges credentials for a bearer token. A rejected credential
	// pair or transport failure is reported as *AuthError. Single attempt,
	// no retries; the caller decides whether to retry.
	Login(ctx context.Context, username, password string) (accessToken string, err error)
	// PatientInsights fetches one page of insight records, attaching the
	// bearer token when non-empty. Non-2xx responses are reported as
	// *StatusError carrying the HTTP status code.
	PatientInsights(ctx context.Context, accessToken string, page, perPage int) (*InsightsPage, error)
	// Health checks backend reachability. No authentication required.
	Health(ctx context.Context) (status string, err error)
}
