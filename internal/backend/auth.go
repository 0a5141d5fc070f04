// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// loginRequest is the POST /api/auth/login body. Credentials exist only for
// the duration of this call and are never persisted or logged.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse covers both the success and failure shapes of the login
// endpoint. On failure the server sets message (and sometimes error) instead
// of access_token.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Message     string `json:"message"`
	Error       string `json:"error"`
}

// Login calls POST /api/auth/login with {username, password}.
// On a non-2xx response the server-provided message is surfaced verbatim when
// present, else a generic failure message. One attempt per call.
func (h *HTTP) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", &AuthError{Message: "login failed", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+pathLogin, bytes.NewReader(body))
	if err != nil {
		return "", &AuthError{Message: "login failed", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", &AuthError{Message: "cannot reach the Doctors Copilot service", Err: err}
	}
	defer resp.Body.Close()

	var out loginResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "login failed"
		if decodeErr == nil {
			if m := strings.TrimSpace(out.Message); m != "" {
				msg = m
			} else if m := strings.TrimSpace(out.Error); m != "" {
				msg = m
			}
		}
		return "", &AuthError{Message: msg}
	}

	if decodeErr != nil {
		return "", &AuthError{Message: "login failed", Err: &MalformedResponseError{Detail: "login payload is not JSON"}}
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return "", &AuthError{Message: "login failed", Err: &MalformedResponseError{Detail: "missing access_token"}}
	}
	return out.AccessToken, nil
}
