// File: argv_test.go
// Title: Argument Parsing Facility Unit Tests
// Description: Unit tests for the argument parsing facility. Tests cover
//              single- and multi-command parsing, toggle polarity, typed
//              values, choice validation, positional cardinality, required
//              options, and help/usage error classification.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial test suite

package argv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/cliscript/core/log"
	"github.com/msto63/cliscript/schema"
)

func newTestFacility(t *testing.T, tree *schema.CommandTree) *Facility {
	t.Helper()
	f, err := New(tree, Options{Logger: log.New().WithOutput(&bytes.Buffer{})})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

func copyTree() *schema.CommandTree {
	return &schema.CommandTree{
		AppName: "File Tools",
		RootOptions: []*schema.OptionSpec{
			{
				Flags: []string{"--version"}, Dest: "version",
				Type: schema.TypeBool, Toggle: true, Pressed: true,
				HasDefault: true, Default: false,
			},
		},
		RootActions: map[string]*schema.ActionSpec{
			"version": {Function: "show_version"},
		},
		Commands: []*schema.CommandSpec{
			{
				Name: "copy",
				Options: []*schema.OptionSpec{
					{
						Flags: []string{"-f", "--force"}, Dest: "force",
						Type: schema.TypeBool, Toggle: true, Pressed: true,
						HasDefault: true, Default: false,
					},
					{
						Flags: []string{"--mode"}, Dest: "mode",
						Type: schema.TypeChoice, Choices: []string{"fast", "safe"},
						HasDefault: true, Default: "safe",
					},
				},
				Args: []*schema.ArgSpec{
					{Name: "src", Type: schema.TypeString, Cardinality: schema.ExactlyOne},
					{Name: "dst", Type: schema.TypeString, Cardinality: schema.ExactlyOne},
				},
				Action: &schema.ActionSpec{Function: "copy", Params: []string{"src", "dst", "force"}},
			},
			{
				Name: "remove",
				Args: []*schema.ArgSpec{
					{Name: "paths", Type: schema.TypeString, Cardinality: schema.OneOrMore},
				},
				Action: &schema.ActionSpec{Function: "remove", Params: []string{"paths"}},
			},
		},
	}
}

func greetTree() *schema.CommandTree {
	return &schema.CommandTree{
		AppName: "Greeter",
		Default: &schema.CommandSpec{
			Description: "greet someone",
			Options: []*schema.OptionSpec{
				{
					Flags: []string{"-n", "--name"}, Dest: "name",
					Type: schema.TypeString, HasDefault: true, Default: "world",
				},
				{
					Flags: []string{"--count"}, Dest: "count",
					Type: schema.TypeInt, HasDefault: true, Default: 1,
				},
			},
			Action: &schema.ActionSpec{Function: "greet", Params: []string{"name", "count"}},
		},
	}
}

func TestFacility_ParseSingle(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantValues map[string]interface{}
	}{
		{
			name: "defaults apply",
			args: nil,
			wantValues: map[string]interface{}{
				"version": false,
				"name":    "world",
				"count":   1,
			},
		},
		{
			name: "explicit values",
			args: []string{"--name", "gopher", "--count", "3"},
			wantValues: map[string]interface{}{
				"version": false,
				"name":    "gopher",
				"count":   3,
			},
		},
		{
			name: "shorthand",
			args: []string{"-n", "gopher"},
			wantValues: map[string]interface{}{
				"version": false,
				"name":    "gopher",
				"count":   1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := greetTree()
			tree.RootOptions = copyTree().RootOptions
			f := newTestFacility(t, tree)

			result, err := f.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tt.args, err)
			}
			if result.Command != "" {
				t.Errorf("Command = %q, want empty", result.Command)
			}
			if diff := cmp.Diff(tt.wantValues, result.Values); diff != "" {
				t.Errorf("Values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFacility_ParseMulti(t *testing.T) {
	f := newTestFacility(t, copyTree())

	result, err := f.Parse([]string{"copy", "--force", "a.txt", "b.txt"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if result.Command != "copy" {
		t.Errorf("Command = %q, want copy", result.Command)
	}
	want := map[string]interface{}{
		"version": false,
		"force":   true,
		"mode":    "safe",
		"src":     "a.txt",
		"dst":     "b.txt",
	}
	if diff := cmp.Diff(want, result.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
	if !result.Changed["force"] {
		t.Error("Changed[force] = false, want true")
	}
	if result.Changed["mode"] {
		t.Error("Changed[mode] = true, want false")
	}
}

func TestFacility_TogglePolarity(t *testing.T) {
	// Declared default true means pressing the flag stores false
	tree := &schema.CommandTree{
		AppName: "Tool",
		Default: &schema.CommandSpec{
			Options: []*schema.OptionSpec{
				{
					Flags: []string{"--color"}, Dest: "color",
					Type: schema.TypeBool, Toggle: true, Pressed: false,
					HasDefault: true, Default: true,
				},
			},
		},
	}
	f := newTestFacility(t, tree)

	result, err := f.Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.Values["color"] != true {
		t.Errorf("unpressed value = %v, want true", result.Values["color"])
	}

	result, err = f.Parse([]string{"--color"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.Values["color"] != false {
		t.Errorf("pressed value = %v, want false", result.Values["color"])
	}
}

func TestFacility_NoSubcommandSelectsNothing(t *testing.T) {
	f := newTestFacility(t, copyTree())

	result, err := f.Parse([]string{"--version"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.Command != "" {
		t.Errorf("Command = %q, want empty", result.Command)
	}
	if result.Values["version"] != true {
		t.Errorf("version = %v, want true", result.Values["version"])
	}
}

func TestFacility_UnknownCommand(t *testing.T) {
	f := newTestFacility(t, copyTree())

	_, err := f.Parse([]string{"move", "a", "b"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	if !strings.Contains(usageErr.Message, `unknown command "move"`) {
		t.Errorf("message = %q", usageErr.Message)
	}
	if usageErr.Usage == "" {
		t.Error("usage text is empty")
	}
}

func TestFacility_HelpRequest(t *testing.T) {
	f := newTestFacility(t, copyTree())

	for _, args := range [][]string{{"--help"}, {"copy", "--help"}} {
		_, err := f.Parse(args)
		var helpErr *HelpError
		if !errors.As(err, &helpErr) {
			t.Fatalf("Parse(%v) error = %v, want HelpError", args, err)
		}
		if helpErr.Usage == "" {
			t.Errorf("Parse(%v): usage text is empty", args)
		}
	}
}

func TestFacility_InvalidChoice(t *testing.T) {
	f := newTestFacility(t, copyTree())

	_, err := f.Parse([]string{"copy", "--mode", "reckless", "a", "b"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	if !strings.Contains(usageErr.Message, `invalid choice "reckless"`) {
		t.Errorf("message = %q", usageErr.Message)
	}
	if !strings.Contains(usageErr.Message, "fast, safe") {
		t.Errorf("message = %q, want choice list", usageErr.Message)
	}
}

func TestFacility_RequiredOption(t *testing.T) {
	tree := &schema.CommandTree{
		AppName: "Tool",
		Default: &schema.CommandSpec{
			Options: []*schema.OptionSpec{
				{
					Flags: []string{"--out"}, Dest: "out",
					Type: schema.TypeString, Required: true,
				},
			},
		},
	}
	f := newTestFacility(t, tree)

	_, err := f.Parse(nil)
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	if !strings.Contains(usageErr.Message, "option --out is required") {
		t.Errorf("message = %q", usageErr.Message)
	}
}

func TestFacility_Positionals(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		want    map[string]interface{}
	}{
		{
			name:    "missing required",
			args:    []string{"copy", "only.txt"},
			wantErr: "missing required argument <dst>",
		},
		{
			name:    "surplus rejected",
			args:    []string{"copy", "a", "b", "c"},
			wantErr: "unrecognized arguments: c",
		},
		{
			name:    "variadic needs one",
			args:    []string{"remove"},
			wantErr: "missing required argument <paths...>",
		},
		{
			name: "variadic consumes rest",
			args: []string{"remove", "a", "b", "c"},
			want: map[string]interface{}{
				"version": false,
				"paths":   []interface{}{"a", "b", "c"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFacility(t, copyTree())

			result, err := f.Parse(tt.args)
			if tt.wantErr != "" {
				var usageErr *UsageError
				if !errors.As(err, &usageErr) {
					t.Fatalf("error = %v, want UsageError", err)
				}
				if !strings.Contains(usageErr.Message, tt.wantErr) {
					t.Errorf("message = %q, want %q", usageErr.Message, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, result.Values); diff != "" {
				t.Errorf("Values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFacility_OptionalYieldsToRequired(t *testing.T) {
	// A single value must reach the trailing required argument even when
	// an optional one precedes it
	tree := &schema.CommandTree{
		AppName: "Tool",
		Default: &schema.CommandSpec{
			Args: []*schema.ArgSpec{
				{Name: "format", Cardinality: schema.ZeroOrOne,
					HasDefault: true, Default: "text"},
				{Name: "file", Cardinality: schema.ExactlyOne},
			},
		},
	}

	tests := []struct {
		name string
		args []string
		want map[string]interface{}
	}{
		{
			name: "one value feeds the required argument",
			args: []string{"report.csv"},
			want: map[string]interface{}{"format": "text", "file": "report.csv"},
		},
		{
			name: "two values fill both",
			args: []string{"json", "report.csv"},
			want: map[string]interface{}{"format": "json", "file": "report.csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newTestFacility(t, tree).Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, result.Values); diff != "" {
				t.Errorf("Values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFacility_VariadicYieldsToRequired(t *testing.T) {
	tree := &schema.CommandTree{
		AppName: "Tool",
		Default: &schema.CommandSpec{
			Args: []*schema.ArgSpec{
				{Name: "sources", Cardinality: schema.ZeroOrMore},
				{Name: "target", Cardinality: schema.ExactlyOne},
			},
		},
	}

	result, err := newTestFacility(t, tree).Parse([]string{"a", "b", "dest"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]interface{}{
		"sources": []interface{}{"a", "b"},
		"target":  "dest",
	}
	if diff := cmp.Diff(want, result.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}

	result, err = newTestFacility(t, tree).Parse([]string{"dest"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want = map[string]interface{}{
		"sources": []interface{}{},
		"target":  "dest",
	}
	if diff := cmp.Diff(want, result.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestFacility_TypedPositionals(t *testing.T) {
	tree := &schema.CommandTree{
		AppName: "Tool",
		Default: &schema.CommandSpec{
			Args: []*schema.ArgSpec{
				{Name: "port", Type: schema.TypeInt, Cardinality: schema.ExactlyOne},
				{Name: "host", Type: schema.TypeString, Cardinality: schema.ZeroOrOne,
					HasDefault: true, Default: "localhost"},
			},
		},
	}

	result, err := newTestFacility(t, tree).Parse([]string{"8080"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]interface{}{"port": 8080, "host": "localhost"}
	if diff := cmp.Diff(want, result.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}

	_, err = newTestFacility(t, tree).Parse([]string{"not-a-port"})
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	if !strings.Contains(usageErr.Message, "invalid int value") {
		t.Errorf("message = %q", usageErr.Message)
	}
}

func TestFacility_MultipleOption(t *testing.T) {
	tree := &schema.CommandTree{
		AppName: "Tool",
		Default: &schema.CommandSpec{
			Options: []*schema.OptionSpec{
				{
					Flags: []string{"-t", "--tag"}, Dest: "tag",
					Type: schema.TypeString, Multiple: true,
				},
			},
		},
	}
	f := newTestFacility(t, tree)

	result, err := f.Parse([]string{"-t", "a", "--tag", "b"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]interface{}{"tag": []interface{}{"a", "b"}}
	if diff := cmp.Diff(want, result.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestFacility_UsageText(t *testing.T) {
	f := newTestFacility(t, copyTree())

	usage := f.UsageText()
	for _, want := range []string{"File Tools", "copy", "remove"} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage %q missing %q", usage, want)
		}
	}
}
