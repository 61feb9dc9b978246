// File: nodes.go
// Title: CLIScript AST Node Definitions
// Description: Defines the AST node types produced by the parser: top-level
//              declarations (appname, use, root, cmd, default) and the
//              option, argument, and action constructs inside them. Nodes
//              provide string representations and validation methods.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/msto63/cliscript/utils/stringx"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns a string representation of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the source position of the node
	Position() Position

	// Validate performs basic validation of the node
	Validate() error
}

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// Script represents a complete parsed CLIScript definition
type Script struct {
	AppName  *AppName       // Optional application name declaration
	Uses     []*UseModule   // Module imports in declaration order
	Root     *RootOptionSet // Optional root-level options
	Commands []*Command     // Named subcommands (multi-command mode)
	Default  *DefaultCommand // Default command (single-command mode)
	Pos      Position
}

// AppName represents an `appname "..."` declaration
type AppName struct {
	Name string
	Pos  Position
}

// UseModule represents a `use "module"` declaration
type UseModule struct {
	Module string
	Pos    Position
}

// RootOptionSet represents the options declared under `root`
type RootOptionSet struct {
	Options []*OptionDef
	Pos     Position
}

// Command represents a named `cmd` declaration with its body
type Command struct {
	Name        string
	Description string
	Body        *Body
	Pos         Position
}

// DefaultCommand represents a `default` declaration with its body
type DefaultCommand struct {
	Description string
	Body        *Body
	Pos         Position
}

// Body holds the contents of a command block: options, positional
// arguments, and at most one command-level action binding
type Body struct {
	Options   []*OptionDef
	Arguments []*ArgumentDef
	Action    *ActionBinding
}

// OptionDef represents a single option definition
type OptionDef struct {
	Flags       []string       // Flag spellings in declaration order (e.g. "-v", "--verbose")
	Param       string         // Parameter name without angle brackets, "" for bool options
	Type        string         // Declared type tag ("bool", "string", "int", "float", "choice:a,b"), "" if absent
	Attributes  Attributes     // Parsed attribute tags
	Description string         // Help text
	Action      *ActionBinding // Optional per-option action (root options)
	Pos         Position
}

// ArgumentDef represents a positional argument definition
type ArgumentDef struct {
	Name        string     // Argument name without angle brackets or ellipsis
	Variadic    bool       // True when declared with a trailing "..."
	Type        string     // Declared type tag, "" if absent
	Attributes  Attributes // Parsed attribute tags
	Description string     // Help text
	Pos         Position
}

// ActionBinding represents an `-> module.fn($a, $b)` binding
type ActionBinding struct {
	Function string   // Dotted function path (e.g. "files.copy")
	Params   []string // Parameter names without the leading "$"
	Pos      Position
}

// Attributes maps attribute names to their values. Bare attributes
// ("required", "multiple") map to the empty string; valued attributes
// ("default:V", "if(expr)") map to their payload.
type Attributes map[string]string

// Has reports whether the attribute is present
func (a Attributes) Has(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a[name]
	return ok
}

// Get returns the attribute value and whether it is present
func (a Attributes) Get(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a[name]
	return v, ok
}

// Position / Accept / Validate / String implementations

// Position returns the source position of the script
func (s *Script) Position() Position { return s.Pos }

// Accept implements the visitor pattern
func (s *Script) Accept(visitor Visitor) interface{} { return visitor.VisitScript(s) }

// Validate performs basic validation of the script
func (s *Script) Validate() error {
	if s.Default != nil && len(s.Commands) > 0 {
		return fmt.Errorf("script cannot mix 'default' and 'cmd' declarations")
	}
	for _, use := range s.Uses {
		if err := use.Validate(); err != nil {
			return err
		}
	}
	if s.Root != nil {
		if err := s.Root.Validate(); err != nil {
			return err
		}
	}
	for _, cmd := range s.Commands {
		if err := cmd.Validate(); err != nil {
			return err
		}
	}
	if s.Default != nil {
		if err := s.Default.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// String returns a source-like representation of the script
func (s *Script) String() string {
	var parts []string
	if s.AppName != nil {
		parts = append(parts, s.AppName.String())
	}
	for _, use := range s.Uses {
		parts = append(parts, use.String())
	}
	if s.Root != nil {
		parts = append(parts, s.Root.String())
	}
	for _, cmd := range s.Commands {
		parts = append(parts, cmd.String())
	}
	if s.Default != nil {
		parts = append(parts, s.Default.String())
	}
	return strings.Join(parts, "\n")
}

// Position returns the source position of the declaration
func (a *AppName) Position() Position { return a.Pos }

// Accept implements the visitor pattern
func (a *AppName) Accept(visitor Visitor) interface{} { return visitor.VisitAppName(a) }

// Validate performs basic validation of the declaration
func (a *AppName) Validate() error {
	if stringx.IsBlank(a.Name) {
		return fmt.Errorf("appname cannot be empty at line %d", a.Pos.Line)
	}
	return nil
}

// String returns a source-like representation
func (a *AppName) String() string {
	return fmt.Sprintf("appname %q", a.Name)
}

// Position returns the source position of the declaration
func (u *UseModule) Position() Position { return u.Pos }

// Accept implements the visitor pattern
func (u *UseModule) Accept(visitor Visitor) interface{} { return visitor.VisitUseModule(u) }

// Validate performs basic validation of the declaration
func (u *UseModule) Validate() error {
	if stringx.IsBlank(u.Module) {
		return fmt.Errorf("use module name cannot be empty at line %d", u.Pos.Line)
	}
	return nil
}

// String returns a source-like representation
func (u *UseModule) String() string {
	return fmt.Sprintf("use %q", u.Module)
}

// Position returns the source position of the declaration
func (r *RootOptionSet) Position() Position { return r.Pos }

// Accept implements the visitor pattern
func (r *RootOptionSet) Accept(visitor Visitor) interface{} { return visitor.VisitRootOptionSet(r) }

// Validate performs basic validation of the declaration
func (r *RootOptionSet) Validate() error {
	if len(r.Options) == 0 {
		return fmt.Errorf("root declaration has no options at line %d", r.Pos.Line)
	}
	for _, opt := range r.Options {
		if err := opt.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// String returns a source-like representation
func (r *RootOptionSet) String() string {
	var b strings.Builder
	b.WriteString("root")
	for _, opt := range r.Options {
		b.WriteString("\n  ")
		b.WriteString(opt.String())
	}
	return b.String()
}

// Position returns the source position of the declaration
func (c *Command) Position() Position { return c.Pos }

// Accept implements the visitor pattern
func (c *Command) Accept(visitor Visitor) interface{} { return visitor.VisitCommand(c) }

// Validate performs basic validation of the declaration
func (c *Command) Validate() error {
	if stringx.IsBlank(c.Name) {
		return fmt.Errorf("command name cannot be empty at line %d", c.Pos.Line)
	}
	if c.Body == nil {
		return fmt.Errorf("command %q has no body at line %d", c.Name, c.Pos.Line)
	}
	return c.Body.Validate()
}

// String returns a source-like representation
func (c *Command) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cmd %s %q", c.Name, c.Description)
	if c.Body != nil {
		b.WriteString(c.Body.String())
	}
	return b.String()
}

// Position returns the source position of the declaration
func (d *DefaultCommand) Position() Position { return d.Pos }

// Accept implements the visitor pattern
func (d *DefaultCommand) Accept(visitor Visitor) interface{} { return visitor.VisitDefaultCommand(d) }

// Validate performs basic validation of the declaration
func (d *DefaultCommand) Validate() error {
	if d.Body == nil {
		return fmt.Errorf("default command has no body at line %d", d.Pos.Line)
	}
	return d.Body.Validate()
}

// String returns a source-like representation
func (d *DefaultCommand) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "default %q", d.Description)
	if d.Body != nil {
		b.WriteString(d.Body.String())
	}
	return b.String()
}

// Validate performs basic validation of the body
func (b *Body) Validate() error {
	for _, opt := range b.Options {
		if err := opt.Validate(); err != nil {
			return err
		}
	}
	for _, arg := range b.Arguments {
		if err := arg.Validate(); err != nil {
			return err
		}
	}
	if b.Action != nil {
		return b.Action.Validate()
	}
	return nil
}

// String returns a source-like representation of the body contents
func (b *Body) String() string {
	var sb strings.Builder
	for _, opt := range b.Options {
		sb.WriteString("\n  ")
		sb.WriteString(opt.String())
	}
	for _, arg := range b.Arguments {
		sb.WriteString("\n  ")
		sb.WriteString(arg.String())
	}
	if b.Action != nil {
		sb.WriteString("\n  ")
		sb.WriteString(b.Action.String())
	}
	return sb.String()
}

// Position returns the source position of the definition
func (o *OptionDef) Position() Position { return o.Pos }

// Accept implements the visitor pattern
func (o *OptionDef) Accept(visitor Visitor) interface{} { return visitor.VisitOptionDef(o) }

// Validate performs basic validation of the definition
func (o *OptionDef) Validate() error {
	if len(o.Flags) == 0 {
		return fmt.Errorf("option has no flags at line %d", o.Pos.Line)
	}
	for _, flag := range o.Flags {
		if !strings.HasPrefix(flag, "-") {
			return fmt.Errorf("invalid flag %q at line %d", flag, o.Pos.Line)
		}
	}
	if o.Action != nil {
		return o.Action.Validate()
	}
	return nil
}

// String returns a source-like representation
func (o *OptionDef) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(o.Flags, ", "))
	if o.Param != "" {
		fmt.Fprintf(&b, " <%s>", o.Param)
	}
	if o.Type != "" {
		fmt.Fprintf(&b, " [%s]", o.Type)
	}
	writeAttributes(&b, o.Attributes)
	if o.Description != "" {
		fmt.Fprintf(&b, " %q", o.Description)
	}
	if o.Action != nil {
		b.WriteString(" ")
		b.WriteString(o.Action.String())
	}
	return b.String()
}

// Position returns the source position of the definition
func (a *ArgumentDef) Position() Position { return a.Pos }

// Accept implements the visitor pattern
func (a *ArgumentDef) Accept(visitor Visitor) interface{} { return visitor.VisitArgumentDef(a) }

// Validate performs basic validation of the definition
func (a *ArgumentDef) Validate() error {
	if stringx.IsBlank(a.Name) {
		return fmt.Errorf("argument name cannot be empty at line %d", a.Pos.Line)
	}
	return nil
}

// String returns a source-like representation
func (a *ArgumentDef) String() string {
	var b strings.Builder
	if a.Variadic {
		fmt.Fprintf(&b, "<%s...>", a.Name)
	} else {
		fmt.Fprintf(&b, "<%s>", a.Name)
	}
	if a.Type != "" {
		fmt.Fprintf(&b, " [%s]", a.Type)
	}
	writeAttributes(&b, a.Attributes)
	if a.Description != "" {
		fmt.Fprintf(&b, " %q", a.Description)
	}
	return b.String()
}

// writeAttributes appends attribute tags in sorted order
func writeAttributes(b *strings.Builder, attrs Attributes) {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := attrs[name]
		if value == "" {
			fmt.Fprintf(b, " [%s]", name)
		} else if name == "if" {
			fmt.Fprintf(b, " [if(%s)]", value)
		} else {
			fmt.Fprintf(b, " [%s:%s]", name, value)
		}
	}
}

// Position returns the source position of the binding
func (ab *ActionBinding) Position() Position { return ab.Pos }

// Accept implements the visitor pattern
func (ab *ActionBinding) Accept(visitor Visitor) interface{} { return visitor.VisitActionBinding(ab) }

// Validate performs basic validation of the binding
func (ab *ActionBinding) Validate() error {
	if stringx.IsBlank(ab.Function) {
		return fmt.Errorf("action function cannot be empty at line %d", ab.Pos.Line)
	}
	return nil
}

// String returns a source-like representation
func (ab *ActionBinding) String() string {
	params := make([]string, len(ab.Params))
	for i, p := range ab.Params {
		params[i] = "$" + p
	}
	return fmt.Sprintf("-> %s(%s)", ab.Function, strings.Join(params, ", "))
}
