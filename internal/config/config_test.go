package config

import (
	"os"
	"path/filepath"
	"testing"
)

// useTempConfigDir points the XDG config dir at a temp dir so tests never
// touch the real user config.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "copilot")
}

func clearOverrides(t *testing.T) {
	t.Helper()
	for _, k := range []string{"COPILOT_API_URL", "COPILOT_PER_PAGE", "COPILOT_TIMEOUT_SECONDS", "COPILOT_LOG_LEVEL"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	useTempConfigDir(t)
	clearOverrides(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.PerPage != DefaultPerPage {
		t.Errorf("PerPage = %d, want %d", cfg.PerPage, DefaultPerPage)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoad_FileValues(t *testing.T) {
	dir := useTempConfigDir(t)
	clearOverrides(t)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	data := `{"api_base_url": "https://copilot.example.com", "per_page": 25}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "https://copilot.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.PerPage != 25 {
		t.Errorf("PerPage = %d, want 25", cfg.PerPage)
	}
	// Unset fields in the file still get defaults.
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := useTempConfigDir(t)
	clearOverrides(t)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	data := `{"api_base_url": "https://from-file.example.com"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("COPILOT_API_URL", "https://from-env.example.com")
	t.Setenv("COPILOT_PER_PAGE", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "https://from-env.example.com" {
		t.Errorf("APIBaseURL = %q, env must win over file", cfg.APIBaseURL)
	}
	if cfg.PerPage != 5 {
		t.Errorf("PerPage = %d, want 5", cfg.PerPage)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	useTempConfigDir(t)
	clearOverrides(t)

	want := Config{
		APIBaseURL:     "https://copilot.example.com",
		PerPage:        20,
		TimeoutSeconds: 30,
		LogLevel:       "debug",
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}
