// File: argv.go
// Title: Argument Parsing Facility
// Description: Parses process arguments against a compiled command tree
//              using pflag flag sets. Handles subcommand selection, toggle
//              polarity, typed value coercion, choice validation, and
//              positional cardinality. Help requests and usage diagnostics
//              are reported as distinct error types so the dispatcher can
//              map them to their exit codes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial implementation

package argv

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/msto63/cliscript/core/log"
	"github.com/msto63/cliscript/schema"
)

// HelpError reports that the user asked for help. It carries the usage
// text to print; the conventional exit code is 0.
type HelpError struct {
	Usage string
}

func (e *HelpError) Error() string {
	return "help requested"
}

// UsageError reports invalid command-line input. The conventional exit
// code is 2.
type UsageError struct {
	Message string
	Usage   string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Result holds the outcome of a successful parse
type Result struct {
	Command string                 // Selected subcommand name, "" in single-command mode
	Values  map[string]interface{} // Destination name → value (nil when absent)
	Changed map[string]bool        // Destination name → explicitly provided
}

// Value returns the value for a destination name, nil when absent
func (r *Result) Value(dest string) interface{} {
	return r.Values[dest]
}

// Facility parses argument vectors against one command tree
type Facility struct {
	tree   *schema.CommandTree
	logger *log.Logger
}

// Options configures facility behavior
type Options struct {
	Logger *log.Logger
}

// New creates a parsing facility for the given command tree
func New(tree *schema.CommandTree, opts Options) (*Facility, error) {
	if tree == nil {
		return nil, errors.New("command tree cannot be nil")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Facility{
		tree:   tree,
		logger: opts.Logger.WithField("component", "cliscript-argv"),
	}, nil
}

// Parse parses an argument vector (without the program name)
func (f *Facility) Parse(args []string) (*Result, error) {
	if f.tree.MultiCommand() {
		return f.parseMulti(args)
	}
	return f.parseSingle(args)
}

// parseSingle handles single-command mode: root options and the default
// body share one flag set, positionals bind to the default body
func (f *Facility) parseSingle(args []string) (*Result, error) {
	fs := newFlagSet(f.tree.AppName)

	var bindings []*binding
	bindings = append(bindings, bindOptions(fs, f.tree.RootOptions)...)

	var argSpecs []*schema.ArgSpec
	if f.tree.Default != nil {
		bindings = append(bindings, bindOptions(fs, f.tree.Default.Options)...)
		argSpecs = f.tree.Default.Args
	}

	usage := f.usageSingle(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, &HelpError{Usage: usage}
		}
		return nil, &UsageError{Message: err.Error(), Usage: usage}
	}

	result := &Result{
		Values:  make(map[string]interface{}),
		Changed: make(map[string]bool),
	}

	if err := collectOptions(fs, bindings, result, usage); err != nil {
		return nil, err
	}
	if err := bindPositionals(argSpecs, fs.Args(), result, usage); err != nil {
		return nil, err
	}

	return result, nil
}

// parseMulti handles multi-command mode: root options are parsed up to
// the first positional, which selects the subcommand scope
func (f *Facility) parseMulti(args []string) (*Result, error) {
	rootFs := newFlagSet(f.tree.AppName)
	rootFs.SetInterspersed(false)
	rootBindings := bindOptions(rootFs, f.tree.RootOptions)

	usage := f.usageMulti(rootFs)

	if err := rootFs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, &HelpError{Usage: usage}
		}
		return nil, &UsageError{Message: err.Error(), Usage: usage}
	}

	result := &Result{
		Values:  make(map[string]interface{}),
		Changed: make(map[string]bool),
	}
	if err := collectOptions(rootFs, rootBindings, result, usage); err != nil {
		return nil, err
	}

	rest := rootFs.Args()
	if len(rest) == 0 {
		// No subcommand; the dispatcher decides between root actions
		// and help display
		return result, nil
	}

	name := rest[0]
	cmd := f.tree.Command(name)
	if cmd == nil {
		return nil, &UsageError{
			Message: fmt.Sprintf("unknown command %q", name),
			Usage:   usage,
		}
	}

	cmdFs := newFlagSet(name)
	cmdBindings := bindOptions(cmdFs, cmd.Options)
	cmdUsage := f.usageCommand(cmd, cmdFs)

	if err := cmdFs.Parse(rest[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, &HelpError{Usage: cmdUsage}
		}
		return nil, &UsageError{Message: err.Error(), Usage: cmdUsage}
	}

	result.Command = name
	if err := collectOptions(cmdFs, cmdBindings, result, cmdUsage); err != nil {
		return nil, err
	}
	if err := bindPositionals(cmd.Args, cmdFs.Args(), result, cmdUsage); err != nil {
		return nil, err
	}

	return result, nil
}

// binding ties an option spec to its registered pflag name
type binding struct {
	spec *schema.OptionSpec
	name string
}

// newFlagSet creates a flag set that reports errors instead of exiting
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	fs.Usage = func() {}
	return fs
}

// bindOptions registers option specs on a flag set. The first long flag
// names the pflag entry; a single-character short flag becomes its
// shorthand. Additional alias spellings are not representable in pflag
// and are ignored.
func bindOptions(fs *pflag.FlagSet, opts []*schema.OptionSpec) []*binding {
	bindings := make([]*binding, 0, len(opts))

	for _, opt := range opts {
		name, shorthand := flagNames(opt)
		if name == "" {
			continue
		}

		switch {
		case opt.Toggle:
			declared, _ := opt.Default.(bool)
			fs.BoolP(name, shorthand, declared, opt.Description)

		case opt.Multiple:
			switch opt.Type {
			case schema.TypeInt:
				fs.IntSliceP(name, shorthand, nil, opt.Description)
			case schema.TypeFloat:
				fs.Float64SliceP(name, shorthand, nil, opt.Description)
			default:
				fs.StringSliceP(name, shorthand, nil, opt.Description)
			}

		case opt.Type == schema.TypeInt:
			value, _ := opt.Default.(int)
			fs.IntP(name, shorthand, value, opt.Description)

		case opt.Type == schema.TypeFloat:
			value, _ := opt.Default.(float64)
			fs.Float64P(name, shorthand, value, opt.Description)

		default:
			value, _ := opt.Default.(string)
			fs.StringP(name, shorthand, value, opt.Description)
		}

		bindings = append(bindings, &binding{spec: opt, name: name})
	}

	return bindings
}

// flagNames derives the pflag name and shorthand from the declared flags
func flagNames(opt *schema.OptionSpec) (name, shorthand string) {
	for _, flag := range opt.Flags {
		if strings.HasPrefix(flag, "--") {
			if name == "" {
				name = strings.TrimPrefix(flag, "--")
			}
			continue
		}
		spelling := strings.TrimPrefix(flag, "-")
		if len(spelling) == 1 && shorthand == "" {
			shorthand = spelling
		} else if name == "" {
			name = spelling
		}
	}
	if name == "" {
		name = shorthand
	}
	return name, shorthand
}

// collectOptions extracts parsed option values into the result. A toggle
// that was pressed takes the inverse of its declared default; an absent
// option without a default stays nil.
func collectOptions(fs *pflag.FlagSet, bindings []*binding, result *Result, usage string) error {
	for _, b := range bindings {
		changed := fs.Changed(b.name)
		result.Changed[b.spec.Dest] = changed

		if b.spec.Required && !changed {
			return &UsageError{
				Message: fmt.Sprintf("option %s is required", displayFlag(b.spec)),
				Usage:   usage,
			}
		}

		value, err := readOption(fs, b, changed)
		if err != nil {
			return &UsageError{Message: err.Error(), Usage: usage}
		}
		result.Values[b.spec.Dest] = value
	}
	return nil
}

// readOption reads one option's final value from the flag set
func readOption(fs *pflag.FlagSet, b *binding, changed bool) (interface{}, error) {
	spec := b.spec

	if spec.Toggle {
		declared, _ := spec.Default.(bool)
		if changed {
			return spec.Pressed, nil
		}
		return declared, nil
	}

	if !changed {
		if spec.HasDefault {
			return spec.Default, nil
		}
		return nil, nil
	}

	if spec.Multiple {
		switch spec.Type {
		case schema.TypeInt:
			values, err := fs.GetIntSlice(b.name)
			if err != nil {
				return nil, err
			}
			return toInterfaceSlice(values), nil
		case schema.TypeFloat:
			values, err := fs.GetFloat64Slice(b.name)
			if err != nil {
				return nil, err
			}
			return toInterfaceSlice(values), nil
		default:
			values, err := fs.GetStringSlice(b.name)
			if err != nil {
				return nil, err
			}
			if err := checkChoices(spec, values); err != nil {
				return nil, err
			}
			return toInterfaceSlice(values), nil
		}
	}

	switch spec.Type {
	case schema.TypeInt:
		return fs.GetInt(b.name)
	case schema.TypeFloat:
		return fs.GetFloat64(b.name)
	default:
		value, err := fs.GetString(b.name)
		if err != nil {
			return nil, err
		}
		if err := checkChoices(spec, []string{value}); err != nil {
			return nil, err
		}
		return value, nil
	}
}

// checkChoices validates values against a choice option's permitted set
func checkChoices(spec *schema.OptionSpec, values []string) error {
	if spec.Type != schema.TypeChoice {
		return nil
	}
	for _, value := range values {
		if !contains(spec.Choices, value) {
			return fmt.Errorf("invalid choice %q for %s (choose from %s)",
				value, displayFlag(spec), strings.Join(spec.Choices, ", "))
		}
	}
	return nil
}

// bindPositionals allocates the remaining positionals to argument specs
// according to their cardinality. Optional and variadic arguments only
// consume values beyond what the later required specs still need, so a
// trailing required argument is never starved by an earlier optional
// one. Surplus positionals after the last spec are a usage error.
func bindPositionals(specs []*schema.ArgSpec, positionals []string, result *Result, usage string) error {
	remaining := positionals

	for i, spec := range specs {
		reserved := minimumRequired(specs[i+1:])

		switch spec.Cardinality {
		case schema.ExactlyOne:
			if len(remaining) == 0 {
				return &UsageError{
					Message: fmt.Sprintf("missing required argument <%s>", spec.Name),
					Usage:   usage,
				}
			}
			value, err := coerceValue(remaining[0], spec, usage)
			if err != nil {
				return err
			}
			result.Values[spec.Name] = value
			result.Changed[spec.Name] = true
			remaining = remaining[1:]

		case schema.ZeroOrOne:
			if len(remaining) > reserved {
				value, err := coerceValue(remaining[0], spec, usage)
				if err != nil {
					return err
				}
				result.Values[spec.Name] = value
				result.Changed[spec.Name] = true
				remaining = remaining[1:]
			} else if spec.HasDefault {
				result.Values[spec.Name] = spec.Default
				result.Changed[spec.Name] = false
			} else {
				result.Values[spec.Name] = nil
				result.Changed[spec.Name] = false
			}

		case schema.OneOrMore:
			if len(remaining) <= reserved {
				return &UsageError{
					Message: fmt.Sprintf("missing required argument <%s...>", spec.Name),
					Usage:   usage,
				}
			}
			take := len(remaining) - reserved
			values, err := coerceAll(remaining[:take], spec, usage)
			if err != nil {
				return err
			}
			result.Values[spec.Name] = values
			result.Changed[spec.Name] = true
			remaining = remaining[take:]

		case schema.ZeroOrMore:
			if len(remaining) > reserved {
				take := len(remaining) - reserved
				values, err := coerceAll(remaining[:take], spec, usage)
				if err != nil {
					return err
				}
				result.Values[spec.Name] = values
				result.Changed[spec.Name] = true
				remaining = remaining[take:]
			} else if spec.HasDefault {
				result.Values[spec.Name] = spec.Default
				result.Changed[spec.Name] = false
			} else {
				result.Values[spec.Name] = []interface{}{}
				result.Changed[spec.Name] = false
			}
		}
	}

	if len(remaining) > 0 {
		return &UsageError{
			Message: fmt.Sprintf("unrecognized arguments: %s", strings.Join(remaining, " ")),
			Usage:   usage,
		}
	}
	return nil
}

// minimumRequired counts the values the given specs cannot do without
func minimumRequired(specs []*schema.ArgSpec) int {
	n := 0
	for _, spec := range specs {
		switch spec.Cardinality {
		case schema.ExactlyOne, schema.OneOrMore:
			n++
		}
	}
	return n
}

// coerceValue converts one raw positional to its declared type
func coerceValue(raw string, spec *schema.ArgSpec, usage string) (interface{}, error) {
	switch spec.Type {
	case schema.TypeInt:
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &UsageError{
				Message: fmt.Sprintf("argument <%s>: invalid int value %q", spec.Name, raw),
				Usage:   usage,
			}
		}
		return value, nil
	case schema.TypeFloat:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &UsageError{
				Message: fmt.Sprintf("argument <%s>: invalid float value %q", spec.Name, raw),
				Usage:   usage,
			}
		}
		return value, nil
	case schema.TypeBool:
		return strings.EqualFold(raw, "true"), nil
	case schema.TypeChoice:
		if !contains(spec.Choices, raw) {
			return nil, &UsageError{
				Message: fmt.Sprintf("argument <%s>: invalid choice %q (choose from %s)",
					spec.Name, raw, strings.Join(spec.Choices, ", ")),
				Usage: usage,
			}
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// coerceAll converts a run of raw positionals for a variadic argument
func coerceAll(raw []string, spec *schema.ArgSpec, usage string) ([]interface{}, error) {
	values := make([]interface{}, 0, len(raw))
	for _, r := range raw {
		value, err := coerceValue(r, spec, usage)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// displayFlag returns the preferred flag spelling for diagnostics
func displayFlag(spec *schema.OptionSpec) string {
	if long := spec.LongFlag(); long != "" {
		return long
	}
	if len(spec.Flags) > 0 {
		return spec.Flags[0]
	}
	return spec.Dest
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func toInterfaceSlice[T any](values []T) []interface{} {
	result := make([]interface{}, len(values))
	for i, v := range values {
		result[i] = v
	}
	return result
}
