// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthError reports a rejected login or a transport failure during login.
// Message is safe for direct display on the login prompt; when the server
// supplied a message it is used verbatim.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx backend response outside the login flow.
// A 401 status is the session-expiry signal.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// MalformedResponseError reports a payload that failed boundary validation.
type MalformedResponseError struct {
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed backend response: %s", e.Detail)
}

// IsUnauthorized reports whether err carries an HTTP 401, in which case the
// session must be invalidated and the user re-authenticated.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}
