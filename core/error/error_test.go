// File: error_test.go
// Title: Core Error Unit Tests
// Description: Unit tests for the structured error type. Tests cover
//              creation, wrapping, code classification, position details,
//              and root cause extraction.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial test suite

package error

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("something failed")

	if err.Error() != "something failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %s, want UNKNOWN", err.Code())
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %s, want medium", err.Severity())
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, "writing output").WithCode(CodeActionExecution)

	if !strings.Contains(err.Error(), "writing output") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, want wrapped cause", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() lost the cause")
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrap_PreservesClassification(t *testing.T) {
	inner := New("bad token").WithCode(CodeLexError).WithPosition(3, 7)
	err := Wrap(inner, "compiling script")

	if err.Code() != CodeLexError {
		t.Errorf("Code() = %s, want LEX_ERROR", err.Code())
	}
	line, column, ok := err.Position()
	if !ok || line != 3 || column != 7 {
		t.Errorf("Position() = %d:%d (%v), want 3:7", line, column, ok)
	}
}

func TestPosition(t *testing.T) {
	err := New("x")
	if _, _, ok := err.Position(); ok {
		t.Error("Position() reported without one recorded")
	}

	err.WithPosition(2, 14)
	line, column, ok := err.Position()
	if !ok || line != 2 || column != 14 {
		t.Errorf("Position() = %d:%d (%v), want 2:14", line, column, ok)
	}
}

func TestRootCause(t *testing.T) {
	root := errors.New("root")
	middle := Wrap(root, "middle")
	top := Wrap(middle, "top")

	if top.RootCause() != root {
		t.Errorf("RootCause() = %v, want root", top.RootCause())
	}
}

func TestHasCode(t *testing.T) {
	err := New("x").WithCode(CodeSchemaError)

	if !HasCode(err, CodeSchemaError) {
		t.Error("HasCode() = false, want true")
	}
	if HasCode(err, CodeLexError) {
		t.Error("HasCode() matched wrong code")
	}
	if HasCode(errors.New("plain"), CodeSchemaError) {
		t.Error("HasCode() matched plain error")
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode(plain) != UNKNOWN")
	}
}

func TestCode_Classification(t *testing.T) {
	tests := []struct {
		code     Code
		category string
		compile  bool
	}{
		{CodeLexError, "compile", true},
		{CodeSyntaxError, "compile", true},
		{CodeSchemaError, "compile", true},
		{CodeModuleLoad, "binding", false},
		{CodeActionExecution, "dispatch", false},
		{CodeConfigError, "configuration", false},
		{CodeUnknown, "generic", false},
	}

	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.category {
			t.Errorf("%s.Category() = %q, want %q", tt.code, got, tt.category)
		}
		if got := tt.code.IsCompileError(); got != tt.compile {
			t.Errorf("%s.IsCompileError() = %v, want %v", tt.code, got, tt.compile)
		}
		if !tt.code.IsValid() {
			t.Errorf("%s.IsValid() = false", tt.code)
		}
	}

	if Code("BOGUS").IsValid() {
		t.Error("unknown code reported valid")
	}
}
