package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"general", ModeGeneral, false},
		{"QUADRATIC", ModeQuadratic, false},
		{" quadratic ", ModeQuadratic, false},
		{"", ModeGeneral, false}, // Default
		{"linear", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestModeRequiresQuadratic(t *testing.T) {
	if ModeGeneral.RequiresQuadratic() {
		t.Error("general mode should accept a = 0")
	}
	if !ModeQuadratic.RequiresQuadratic() {
		t.Error("quadratic mode should reject a = 0")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"msgpack", FormatMsgpack, false},
		{"", FormatText, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Mode != ModeGeneral {
		t.Errorf("Mode = %s, want %s", cfg.Mode, ModeGeneral)
	}
	if cfg.Locale != DefaultLocale {
		t.Errorf("Locale = %s, want %s", cfg.Locale, DefaultLocale)
	}
	if cfg.Output.Precision != 2 {
		t.Errorf("Output.Precision = %d, want 2", cfg.Output.Precision)
	}
	if cfg.History.Enabled {
		t.Error("History should be disabled by default")
	}
	if cfg.Publish.Enabled {
		t.Error("Publish should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Mode = "cubic" }},
		{"bad format", func(c *Config) { c.Output.Format = "csv" }},
		{"negative precision", func(c *Config) { c.Output.Precision = -1 }},
		{"huge precision", func(c *Config) { c.Output.Precision = MaxPrecision + 1 }},
		{"blank locale", func(c *Config) { c.Locale = " " }},
		{"history without path", func(c *Config) { c.History = HistoryConfig{Enabled: true} }},
		{"publish without addr", func(c *Config) { c.Publish = PublishConfig{Enabled: true} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateNormalizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = " Quadratic "
	cfg.Output.Format = "JSON"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Mode != ModeQuadratic || !cfg.Mode.RequiresQuadratic() {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeQuadratic)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, FormatJSON)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `version: 1
locale: ru-RU
mode: quadratic
output:
  format: json
history:
  enabled: true
  path: /tmp/history.db
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if cfg.Locale != "ru-RU" {
		t.Errorf("Locale = %s, want ru-RU", cfg.Locale)
	}
	if cfg.Mode != ModeQuadratic {
		t.Errorf("Mode = %s, want %s", cfg.Mode, ModeQuadratic)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
	// Missing precision should be defaulted
	if cfg.Output.Precision != DefaultPrecision {
		t.Errorf("Output.Precision = %d, want %d", cfg.Output.Precision, DefaultPrecision)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/history.db" {
		t.Errorf("History = %+v", cfg.History)
	}
	if cfg.Publish.Channel != DefaultPublishChannel {
		t.Errorf("Publish.Channel = %s, want %s", cfg.Publish.Channel, DefaultPublishChannel)
	}
}

func TestLoadFromPathKeepsExplicitZeroPrecision(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  precision: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Output.Precision != 0 {
		t.Errorf("Output.Precision = %d, want 0", cfg.Output.Precision)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %s, want %s", cfg.Output.Format, FormatText)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvConfigPath, "")

	configPath := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := os.WriteFile(configPath, []byte("mode: quadratic\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, path, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if cfg.Mode != ModeQuadratic {
		t.Errorf("Mode = %s, want %s", cfg.Mode, ModeQuadratic)
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing explicit path")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QUADSOLVE_MODE", "quadratic")

	cfg, _, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode != ModeQuadratic {
		t.Errorf("Mode = %s, want env override %s", cfg.Mode, ModeQuadratic)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil || !strings.Contains(err.Error(), "read config") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("output: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		_, _, err := LoadFromPath(path)
		if err == nil || !strings.Contains(err.Error(), "parse config") {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Mode = ModeQuadratic
	cfg.Output.Precision = 4

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if loaded.Mode != ModeQuadratic {
		t.Errorf("Mode = %s, want %s", loaded.Mode, ModeQuadratic)
	}
	if loaded.Output.Precision != 4 {
		t.Errorf("Output.Precision = %d, want 4", loaded.Output.Precision)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("QUADSOLVE_MODE", "quadratic")
	t.Setenv("QUADSOLVE_LOCALE", "ru-RU")
	t.Setenv("QUADSOLVE_OUTPUT_PRECISION", "3")
	t.Setenv("QUADSOLVE_HISTORY_ENABLED", "true")
	t.Setenv("QUADSOLVE_PUBLISH_CHANNEL", "roots")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Mode != ModeQuadratic {
		t.Errorf("Mode = %s, want quadratic", cfg.Mode)
	}
	if cfg.Locale != "ru-RU" {
		t.Errorf("Locale = %s, want ru-RU", cfg.Locale)
	}
	if cfg.Output.Precision != 3 {
		t.Errorf("Output.Precision = %d, want 3", cfg.Output.Precision)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled should be set from env")
	}
	if cfg.Publish.Channel != "roots" {
		t.Errorf("Publish.Channel = %s, want roots", cfg.Publish.Channel)
	}
	// Untouched fields keep their values
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %s, want text", cfg.Output.Format)
	}
	if cfg.History.Path != DefaultHistoryPath {
		t.Errorf("History.Path = %s, want %s", cfg.History.Path, DefaultHistoryPath)
	}
}

func TestApplyEnvInvalidValue(t *testing.T) {
	t.Setenv("QUADSOLVE_OUTPUT_PRECISION", "two")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for non-numeric precision")
	}
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")
	content := "QUADSOLVE_TEST_DOTENV_A=from-file\nQUADSOLVE_TEST_DOTENV_B=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// Existing variables are not overridden
	t.Setenv("QUADSOLVE_TEST_DOTENV_B", "from-env")
	// Registers cleanup for the variable the file sets
	t.Setenv("QUADSOLVE_TEST_DOTENV_A", "")
	os.Unsetenv("QUADSOLVE_TEST_DOTENV_A")

	if err := LoadDotEnv(filepath.Join(tmpDir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv("QUADSOLVE_TEST_DOTENV_A"); got != "from-file" {
		t.Errorf("A = %q, want from-file", got)
	}
	if got := os.Getenv("QUADSOLVE_TEST_DOTENV_B"); got != "from-env" {
		t.Errorf("B = %q, want from-env", got)
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := os.WriteFile(explicit, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("explicit env path wins", func(t *testing.T) {
		t.Setenv(EnvConfigPath, explicit)
		if got := FindConfigPath(); got != explicit {
			t.Errorf("FindConfigPath() = %s, want %s", got, explicit)
		}
	})

	t.Run("xdg config home", func(t *testing.T) {
		xdg := t.TempDir()
		path := filepath.Join(xdg, ConfigDirName, "config.yaml")
		if err := EnsureConfigDir(path); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}

		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", xdg)
		chdir(t, t.TempDir())

		if got := FindConfigPath(); got != path {
			t.Errorf("FindConfigPath() = %s, want %s", got, path)
		}
	})
}

func TestSearchPathsOrder(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(EnvConfigPath, "/explicit.yaml")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/tester")

	want := []string{
		"/explicit.yaml",
		filepath.Join(dir, ConfigFileName),
		filepath.Join("/xdg", ConfigDirName, "config.yaml"),
		filepath.Join("/home/tester", ".config", ConfigDirName, "config.yaml"),
		filepath.Join("/etc", ConfigDirName, "config.yaml"),
	}
	got := SearchPaths()
	if len(got) != len(want) {
		t.Fatalf("SearchPaths() = %v, want %v", got, want)
	}
	for i := range want {
		// the working directory may be reached through a symlink
		if i == 1 {
			if filepath.Base(got[i]) != ConfigFileName {
				t.Errorf("SearchPaths()[1] = %s", got[i])
			}
			continue
		}
		if got[i] != want[i] {
			t.Errorf("SearchPaths()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	if got := SearchPaths(); len(got) != 3 {
		t.Errorf("SearchPaths() without env = %v, want 3 entries", got)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/xdg", ConfigDirName, "config.yaml") {
		t.Errorf("DefaultConfigPath() = %s", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")
	if got := DefaultConfigPath(); got != filepath.Join("/home/tester", ".config", ConfigDirName, "config.yaml") {
		t.Errorf("DefaultConfigPath() = %s", got)
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	summary := cfg.Summary()

	for _, want := range []string{"Mode: general", "Locale: en-US", "History: disabled", "Publish: disabled"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() missing %q:\n%s", want, summary)
		}
	}

	cfg.History.Enabled = true
	cfg.Publish.Enabled = true
	summary = cfg.Summary()
	if !strings.Contains(summary, DefaultHistoryPath) || !strings.Contains(summary, DefaultPublishChannel) {
		t.Errorf("Summary() should show enabled sinks:\n%s", summary)
	}
}
