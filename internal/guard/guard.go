// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package guard gates protected commands behind the session controller.
// It is the CLI analog of a protected route: an unresolved session is
// resolved first (never running the protected body while the state is
// unknown), an unauthenticated user is sent through the login flow with the
// pending command as the return destination, and a session expiring mid-run
// re-enters login exactly once before re-running the command.
package guard

import (
	"context"

	"copilot/cli/internal/backend"
	"copilot/cli/internal/session"
)

// LoginFunc runs the interactive login flow. It returns nil once the
// controller has reached the authenticated state.
type LoginFunc func(ctx context.Context) error

// Guard wraps protected command bodies.
type Guard struct {
	ctrl  *session.Controller
	login LoginFunc
}

// New returns a guard over the given controller and login flow.
func New(ctrl *session.Controller, login LoginFunc) *Guard {
	return &Guard{ctrl: ctrl, login: login}
}

// Run executes fn as a protected body. The body never runs while the session
// state is unknown or unauthenticated. When fn fails with an HTTP 401 the
// session is invalidated, the login flow runs once, and fn is retried once;
// a second 401 is returned as-is. All other errors pass through untouched
// and leave session state alone.
func (g *Guard) Run(ctx context.Context, fn func(context.Context) error) error {
	if g.ctrl.State() == session.StateUnknown {
		g.ctrl.Resume()
	}
	if !g.ctrl.IsAuthenticated() {
		if err := g.login(ctx); err != nil {
			return err
		}
	}

	err := fn(ctx)
	if err == nil || !backend.IsUnauthorized(err) {
		return err
	}

	// The server rejected the token: the first authenticated call's 401 is
	// authoritative. End the session, re-authenticate, and return the user to
	// where they were headed.
	g.ctrl.Invalidate()
	if err := g.login(ctx); err != nil {
		return err
	}
	return fn(ctx)
}
