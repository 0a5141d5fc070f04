// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"copilot/cli/internal/xdg"
)

// L is the debug logger. It discards everything until Init succeeds, so
// packages can log unconditionally without caring whether a log file exists.
var L = zerolog.Nop()

// Init opens the debug log file in the XDG state dir and configures L with the
// given level ("debug", "info", "warn", "error"). An unknown level falls back
// to info. Init failures are returned but callers generally ignore them: a CLI
// that cannot open its log file should still work.
func Init(level string) error {
	dir, err := xdg.StateDir()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "copilot.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	L = zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return nil
}
