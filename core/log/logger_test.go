// File: logger_test.go
// Title: Logger Unit Tests
// Description: Unit tests for the structured logger. Tests cover level
//              filtering, context fields, formatter output, severity
//              mapping for cliscript errors, and level parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial test suite

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	cerror "github.com/msto63/cliscript/core/error"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithLevel(LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")
	logger.Error("also visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("output contains filtered messages: %q", output)
	}
	if !strings.Contains(output, "visible") {
		t.Errorf("output = %q, want warn message", output)
	}
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithField("component", "lexer")

	logger.Info("scanning", Fields{"line": 3})

	output := buf.String()
	if !strings.Contains(output, "component=lexer") {
		t.Errorf("output = %q, want context field", output)
	}
	if !strings.Contains(output, "line=3") {
		t.Errorf("output = %q, want call field", output)
	}
}

func TestLogger_DerivedLoggersAreIndependent(t *testing.T) {
	var buf bytes.Buffer
	parent := New().WithOutput(&buf)
	child := parent.WithField("component", "parser")

	parent.Info("from parent")
	if strings.Contains(buf.String(), "component=parser") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}

	buf.Reset()
	child.Info("from child")
	if !strings.Contains(buf.String(), "component=parser") {
		t.Errorf("child lost its field: %q", buf.String())
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithFormat(FormatJSON).WithName("engine")

	logger.Info("compiled", Fields{"commands": 2})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["message"] != "compiled" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["logger"] != "engine" {
		t.Errorf("logger = %v", entry["logger"])
	}
	if entry["commands"] != float64(2) {
		t.Errorf("commands = %v", entry["commands"])
	}
}

func TestLogger_LogErrorSeverityMapping(t *testing.T) {
	tests := []struct {
		name      string
		severity  cerror.Severity
		level     Level
		wantShown bool
	}{
		{"low maps to warn", cerror.SeverityLow, LevelError, false},
		{"high maps to error", cerror.SeverityHigh, LevelError, true},
		{"critical maps to fatal", cerror.SeverityCritical, LevelFatal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New().WithOutput(&buf).WithLevel(tt.level)

			err := cerror.New("boom").WithSeverity(tt.severity)
			logger.LogError(err)

			shown := strings.Contains(buf.String(), "boom")
			if shown != tt.wantShown {
				t.Errorf("shown = %v, want %v (output: %q)", shown, tt.wantShown, buf.String())
			}
		})
	}
}

func TestLogger_LogErrorFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf)

	err := cerror.New("bad token").
		WithCode(cerror.CodeLexError).
		WithPosition(2, 14).
		WithOperation("lexer.Tokenize")
	logger.LogError(err)

	output := buf.String()
	for _, want := range []string{"code=LEX_ERROR", "category=compile", "line=2", "column=14", "operation=lexer.Tokenize"} {
		if !strings.Contains(output, want) {
			t.Errorf("output = %q, missing %q", output, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"fatal", LevelFatal, false},
		{"loud", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{
		"text":    FormatText,
		"console": FormatText,
		"json":    FormatJSON,
	} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v", input, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) expected error")
	}
}
