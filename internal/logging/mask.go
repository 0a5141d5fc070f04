// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in log messages and
// formatting errors for user-friendly display while protecting credentials.
//
// The package also owns the debug logger, a zerolog instance writing to a file
// in the XDG state dir so terminal output stays clean.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password["=:\s]+)([^\s";,}]+)`)
	reToken    = regexp.MustCompile(`(?i)(token["=:\s]+|bearer\s+)([A-Za-z0-9._=-]+)`)
)

// Mask replaces sensitive values in the input string with "***".
// Passwords and bearer tokens are covered.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	return out
}
