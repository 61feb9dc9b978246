// File: schema.go
// Title: Command Schema Definitions
// Description: Defines the compiled command schema produced from the AST:
//              the command tree with its root options, subcommands, typed
//              option and argument specs, and action bindings. The schema
//              is the contract between the builder and the argv facility
//              and dispatcher.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial schema definitions

package schema

import (
	"fmt"
)

// DefaultAppName is used when a script declares no appname
const DefaultAppName = "CLI Tool"

// ValueType represents the declared type of an option or argument value
type ValueType int

const (
	// TypeString is the default value type
	TypeString ValueType = iota

	// TypeBool marks a toggle option
	TypeBool

	// TypeInt marks an integer-valued option or argument
	TypeInt

	// TypeFloat marks a float-valued option or argument
	TypeFloat

	// TypeChoice restricts the value to an enumerated set
	TypeChoice
)

// String returns the string representation of the value type
func (vt ValueType) String() string {
	switch vt {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Cardinality describes how many values a positional argument accepts
type Cardinality int

const (
	// ZeroOrOne marks an optional single-valued argument
	ZeroOrOne Cardinality = iota

	// ExactlyOne marks a required single-valued argument
	ExactlyOne

	// ZeroOrMore marks an optional variadic argument
	ZeroOrMore

	// OneOrMore marks a required variadic argument
	OneOrMore
)

// String returns the string representation of the cardinality
func (c Cardinality) String() string {
	switch c {
	case ZeroOrOne:
		return "zero-or-one"
	case ExactlyOne:
		return "exactly-one"
	case ZeroOrMore:
		return "zero-or-more"
	case OneOrMore:
		return "one-or-more"
	default:
		return "unknown"
	}
}

// Variadic reports whether the cardinality accepts multiple values
func (c Cardinality) Variadic() bool {
	return c == ZeroOrMore || c == OneOrMore
}

// ActionSpec describes a resolved action binding
type ActionSpec struct {
	Function string   // Dotted function path
	Params   []string // Parameter names to marshal, without "$"
	Line     int      // Declaring source line
}

// OptionSpec describes one compiled option
type OptionSpec struct {
	Flags       []string    // Flag spellings in declaration order
	Dest        string      // Derived destination name
	Type        ValueType   // Value type
	Choices     []string    // Permitted values for TypeChoice
	Toggle      bool        // True for bool options
	Pressed     bool        // Value a toggle takes when the flag is given
	HasDefault  bool        // True when a default is declared (always for toggles)
	Default     interface{} // Coerced default value
	Required    bool        // [required] attribute
	Multiple    bool        // [multiple] attribute
	Condition   string      // [if(...)] condition expression, "" if absent
	Description string      // Help text
	Action      *ActionSpec // Root-option action, nil otherwise
	Line        int         // Declaring source line
}

// LongFlag returns the first long flag spelling, or "" if none
func (o *OptionSpec) LongFlag() string {
	for _, flag := range o.Flags {
		if len(flag) > 2 && flag[0] == '-' && flag[1] == '-' {
			return flag
		}
	}
	return ""
}

// ShortFlag returns the first short flag spelling, or "" if none
func (o *OptionSpec) ShortFlag() string {
	for _, flag := range o.Flags {
		if len(flag) == 2 && flag[0] == '-' && flag[1] != '-' {
			return flag
		}
	}
	return ""
}

// ArgSpec describes one compiled positional argument
type ArgSpec struct {
	Name        string      // Destination name
	Type        ValueType   // Value type
	Choices     []string    // Permitted values for TypeChoice
	Cardinality Cardinality // Arity policy
	HasDefault  bool        // True when a default is declared
	Default     interface{} // Coerced default value
	Description string      // Help text
	Line        int         // Declaring source line
}

// CommandSpec describes one compiled command scope. In single-command
// mode the default command has an empty name and attaches to the root.
type CommandSpec struct {
	Name        string
	Description string
	Options     []*OptionSpec
	Args        []*ArgSpec
	Action      *ActionSpec
}

// Option returns the option with the given destination name, or nil
func (c *CommandSpec) Option(dest string) *OptionSpec {
	for _, opt := range c.Options {
		if opt.Dest == dest {
			return opt
		}
	}
	return nil
}

// Arg returns the argument with the given name, or nil
func (c *CommandSpec) Arg(name string) *ArgSpec {
	for _, arg := range c.Args {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

// CommandTree is the compiled schema of a whole script
type CommandTree struct {
	AppName     string
	RootOptions []*OptionSpec
	RootActions map[string]*ActionSpec // Keyed by derived destination name
	Commands    []*CommandSpec         // Multi-command mode, declaration order
	Default     *CommandSpec           // Single-command mode
}

// MultiCommand reports whether the tree uses named subcommands
func (t *CommandTree) MultiCommand() bool {
	return t.Default == nil && len(t.Commands) > 0
}

// Command returns the named subcommand, or nil
func (t *CommandTree) Command(name string) *CommandSpec {
	for _, cmd := range t.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

// String returns a short description of the tree for logging
func (t *CommandTree) String() string {
	if t.Default != nil {
		return fmt.Sprintf("%s (default command)", t.AppName)
	}
	return fmt.Sprintf("%s (%d commands)", t.AppName, len(t.Commands))
}
