// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the client's belief about whether the current user is
// authenticated. The Controller is the single writer of session state; every
// other component observes it read-only. The persisted token store and the
// in-memory token are updated together under one lock so they never diverge.
package session

import (
	"context"
	"sync"

	"copilot/cli/internal/backend"
	"copilot/cli/internal/logging"
	"copilot/cli/internal/store"
)

// State is the session lifecycle state.
type State int

const (
	// StateUnknown is the initial state, before the startup store check.
	StateUnknown State = iota
	// StateUnauthenticated means no usable token exists.
	StateUnauthenticated
	// StateAuthenticated means a token is held. The token is trusted without a
	// server round-trip; the first authenticated call's 401 is authoritative
	// proof of invalidity.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Notice tells observers why a session ended.
type Notice int

const (
	// NoticeLoggedOut reports a user-initiated logout.
	NoticeLoggedOut Notice = iota
	// NoticeSessionExpired reports a 401-triggered invalidation.
	NoticeSessionExpired
)

// NoticeFunc receives session-ending notices. It is invoked exactly once per
// invalidation event, outside the controller lock.
type NoticeFunc func(Notice)

// Controller orchestrates login/logout and is the one authoritative writer of
// session state.
type Controller struct {
	mu     sync.Mutex
	state  State
	token  string
	store  store.Store
	api    backend.API
	notify NoticeFunc
}

// NewController returns a controller in StateUnknown. notify may be nil.
func NewController(st store.Store, api backend.API, notify NoticeFunc) *Controller {
	return &Controller{state: StateUnknown, store: st, api: api, notify: notify}
}

// Resume performs the startup store check. A persisted token moves the state
// directly to Authenticated without a network call; absence (or a store read
// failure) resolves to Unauthenticated. Calling Resume after the state has
// resolved is a no-op.
func (c *Controller) Resume() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateUnknown {
		return c.state
	}
	token, err := c.store.Load()
	if err != nil {
		logging.L.Warn().Err(err).Msg("token store unreadable, starting unauthenticated")
		token = ""
	}
	if token != "" {
		c.token = token
		c.state = StateAuthenticated
	} else {
		c.state = StateUnauthenticated
	}
	logging.L.Debug().Stringer("state", c.state).Msg("session resumed")
	return c.state
}

// Login exchanges credentials for a token. On success the token is persisted
// and the state becomes Authenticated; on failure the state stays as it was
// and the returned error message is suitable for inline display. Credentials
// are not retained.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	token, err := c.api.Login(ctx, username, password)
	if err != nil {
		logging.L.Debug().Str("err", logging.Mask(err.Error())).Msg("login rejected")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Save(token); err != nil {
		// Keep store and memory in agreement: a token we could not persist is
		// not adopted in memory either.
		return &backend.AuthError{Message: "could not save session token", Err: err}
	}
	c.token = token
	c.state = StateAuthenticated
	logging.L.Info().Msg("login succeeded")
	return nil
}

// Logout ends the session with a "logged out" notice. Calling Logout when
// already unauthenticated is a no-op: no error, no duplicate notice.
func (c *Controller) Logout() {
	c.endSession(NoticeLoggedOut)
}

// Invalidate ends the session with a "session expired" notice. Used when an
// authenticated call observed a 401. Exactly one notice fires per
// invalidation event, even under concurrent triggers.
func (c *Controller) Invalidate() {
	c.endSession(NoticeSessionExpired)
}

func (c *Controller) endSession(n Notice) {
	c.mu.Lock()
	if c.state == StateUnauthenticated {
		c.mu.Unlock()
		return
	}
	if err := c.store.Clear(); err != nil {
		logging.L.Warn().Err(err).Msg("token store clear failed")
	}
	c.token = ""
	c.state = StateUnauthenticated
	notify := c.notify
	c.mu.Unlock()

	logging.L.Info().Int("notice", int(n)).Msg("session ended")
	if notify != nil {
		notify(n)
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsAuthenticated reports whether a token is currently held.
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// Token returns the current bearer token, or "" when unauthenticated.
// Satisfies insights.TokenSource.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
