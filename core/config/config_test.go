// File: config_test.go
// Title: Configuration Management Unit Tests
// Description: Unit tests for configuration loading and typed access.
//              Tests cover TOML and YAML parsing, format detection, dot
//              notation lookup, defaults, and environment overrides.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial test suite

package config

import (
	"os"
	"path/filepath"
	"testing"

	cerror "github.com/msto63/cliscript/core/error"
)

const tomlContent = `
[log]
level = "debug"
format = "json"
max_size_mb = 25

[engine]
modules = ["files", "net"]
strict = true
`

const yamlContent = `
log:
  level: warn
  format: text
engine:
  strict: false
`

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, "app.toml", tomlContent))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.GetString("log.level"); got != "debug" {
		t.Errorf("log.level = %q, want debug", got)
	}
	if got := cfg.GetInt("log.max_size_mb"); got != 25 {
		t.Errorf("log.max_size_mb = %d, want 25", got)
	}
	if !cfg.GetBool("engine.strict") {
		t.Error("engine.strict = false, want true")
	}

	modules := cfg.GetStringSlice("engine.modules")
	if len(modules) != 2 || modules[0] != "files" || modules[1] != "net" {
		t.Errorf("engine.modules = %v", modules)
	}
}

func TestLoad_YAMLDetectedByExtension(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, "app.yaml", yamlContent))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.GetString("log.level"); got != "warn" {
		t.Errorf("log.level = %q, want warn", got)
	}
	if cfg.GetBool("engine.strict") {
		t.Error("engine.strict = true, want false")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !cerror.HasCode(err, cerror.CodeConfigError) {
		t.Errorf("error code = %s, want CONFIG_ERROR", cerror.GetCode(err))
	}
}

func TestLoadFromString_ParseError(t *testing.T) {
	_, err := LoadFromString("log: [unclosed", FormatYAML)
	if err == nil {
		t.Fatal("LoadFromString() expected parse error")
	}
	if !cerror.HasCode(err, cerror.CodeConfigError) {
		t.Errorf("error code = %s, want CONFIG_ERROR", cerror.GetCode(err))
	}
}

func TestLoadWithOptions_Defaults(t *testing.T) {
	path := writeTempConfig(t, "app.toml", "explicit = \"from-file\"\n")

	cfg, err := LoadWithOptions(path, LoadOptions{
		Format: FormatAuto,
		Defaults: map[string]interface{}{
			"explicit": "from-defaults",
			"fallback": "kept",
		},
	})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}

	if got := cfg.GetString("explicit"); got != "from-file" {
		t.Errorf("explicit = %q, want file value", got)
	}
	if got := cfg.GetString("fallback"); got != "kept" {
		t.Errorf("fallback = %q, want default value", got)
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	t.Setenv("CLISCRIPT_LOG_LEVEL", "trace")

	cfg := NewEmpty().WithEnvPrefix("CLISCRIPT")
	if got := cfg.GetString("log.level", "info"); got != "trace" {
		t.Errorf("log.level = %q, want env override", got)
	}
	if !cfg.Has("log.level") {
		t.Error("Has(log.level) = false with env override set")
	}
}

func TestConfig_TypedDefaults(t *testing.T) {
	cfg := NewEmpty()

	if got := cfg.GetString("missing", "fallback"); got != "fallback" {
		t.Errorf("GetString default = %q", got)
	}
	if got := cfg.GetInt("missing", 7); got != 7 {
		t.Errorf("GetInt default = %d", got)
	}
	if got := cfg.GetBool("missing", true); !got {
		t.Error("GetBool default = false")
	}
	if cfg.Has("missing") {
		t.Error("Has(missing) = true")
	}
}
