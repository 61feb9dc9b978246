// File: builder.go
// Title: Command Schema Builder
// Description: Compiles the parsed declaration AST into the command tree:
//              destination names are derived, defaults coerced, toggle
//              polarity fixed, argument cardinality resolved, and use
//              declarations activated against the registry. Module load
//              failures degrade to unresolvable callables instead of
//              failing the compile.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial builder implementation

package schema

import (
	"strconv"
	"strings"

	"github.com/msto63/cliscript/ast"
	cerror "github.com/msto63/cliscript/core/error"
	"github.com/msto63/cliscript/core/log"
	"github.com/msto63/cliscript/registry"
)

// Builder compiles AST scripts into command trees
type Builder struct {
	registry *registry.Registry
	logger   *log.Logger
	options  Options
}

// Options configures builder behavior
type Options struct {
	Logger   *log.Logger
	Registry *registry.Registry
}

// NewBuilder creates a new schema builder with the given options
func NewBuilder(opts Options) (*Builder, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Builder{
		registry: opts.Registry,
		logger:   opts.Logger.WithField("component", "cliscript-schema"),
		options:  opts,
	}, nil
}

// Build compiles a script into its command tree
func (b *Builder) Build(script *ast.Script) (*CommandTree, error) {
	tree := &CommandTree{
		AppName:     DefaultAppName,
		RootActions: make(map[string]*ActionSpec),
	}

	if script.AppName != nil {
		tree.AppName = script.AppName.Name
	}

	b.loadModules(script)

	if script.Root != nil {
		seen := make(map[string]int)
		for _, opt := range script.Root.Options {
			spec, err := b.buildOption(opt)
			if err != nil {
				return nil, err
			}
			if err := checkDest(seen, spec.Dest, opt.Pos); err != nil {
				return nil, err
			}
			tree.RootOptions = append(tree.RootOptions, spec)
			if spec.Action != nil {
				tree.RootActions[spec.Dest] = spec.Action
			}
		}
	}

	names := make(map[string]int)
	for _, cmd := range script.Commands {
		if line, exists := names[cmd.Name]; exists {
			return nil, cerror.Newf("command %q already defined at line %d", cmd.Name, line).
				WithCode(cerror.CodeSchemaError).
				WithOperation("schema.Build").
				WithPosition(cmd.Pos.Line, cmd.Pos.Column)
		}
		names[cmd.Name] = cmd.Pos.Line

		spec, err := b.buildCommand(cmd.Name, cmd.Description, cmd.Body, nil)
		if err != nil {
			return nil, err
		}
		tree.Commands = append(tree.Commands, spec)
	}

	if script.Default != nil {
		// The default body shares the root scope, so its destination
		// names must not collide with the root options either
		rootDests := make(map[string]int)
		for _, opt := range tree.RootOptions {
			rootDests[opt.Dest] = opt.Line
		}
		spec, err := b.buildCommand("", script.Default.Description, script.Default.Body, rootDests)
		if err != nil {
			return nil, err
		}
		tree.Default = spec
	}

	b.logger.Debug("schema built", log.Fields{
		"appName":     tree.AppName,
		"commands":    len(tree.Commands),
		"rootOptions": len(tree.RootOptions),
	})

	return tree, nil
}

// loadModules activates the script's use declarations. A module that
// cannot be loaded is logged and skipped; its functions simply stay
// unresolvable at dispatch time.
func (b *Builder) loadModules(script *ast.Script) {
	if b.registry == nil {
		return
	}
	for _, use := range script.Uses {
		if err := b.registry.Load(use.Module); err != nil {
			b.logger.LogError(err, log.Fields{"line": use.Pos.Line})
		}
	}
}

// buildCommand compiles one command body into a command spec
func (b *Builder) buildCommand(name, description string, body *ast.Body, reserved map[string]int) (*CommandSpec, error) {
	spec := &CommandSpec{
		Name:        name,
		Description: description,
	}

	seen := make(map[string]int)
	for dest, line := range reserved {
		seen[dest] = line
	}

	for _, opt := range body.Options {
		optSpec, err := b.buildOption(opt)
		if err != nil {
			return nil, err
		}
		if err := checkDest(seen, optSpec.Dest, opt.Pos); err != nil {
			return nil, err
		}
		spec.Options = append(spec.Options, optSpec)
	}

	for _, arg := range body.Arguments {
		argSpec, err := b.buildArg(arg)
		if err != nil {
			return nil, err
		}
		if err := checkDest(seen, argSpec.Name, arg.Pos); err != nil {
			return nil, err
		}
		spec.Args = append(spec.Args, argSpec)
	}

	if body.Action != nil {
		spec.Action = buildAction(body.Action)
	}

	return spec, nil
}

// buildOption compiles one option definition
func (b *Builder) buildOption(opt *ast.OptionDef) (*OptionSpec, error) {
	vt, choices, err := parseValueType(opt.Type, opt.Pos)
	if err != nil {
		return nil, err
	}

	spec := &OptionSpec{
		Flags:       opt.Flags,
		Dest:        deriveDest(opt.Flags, opt.Param, vt == TypeBool),
		Type:        vt,
		Choices:     choices,
		Description: opt.Description,
		Required:    opt.Attributes.Has("required"),
		Multiple:    opt.Attributes.Has("multiple"),
		Line:        opt.Pos.Line,
	}
	spec.Condition, _ = opt.Attributes.Get("if")

	if raw, ok := opt.Attributes.Get("default"); ok {
		value, err := coerceDefault(raw, vt, opt.Pos)
		if err != nil {
			return nil, err
		}
		spec.HasDefault = true
		spec.Default = value
	}

	if vt == TypeBool {
		// Pressing a toggle yields the inverse of its declared default
		spec.Toggle = true
		declared := false
		if spec.HasDefault {
			declared = spec.Default.(bool)
		} else {
			spec.HasDefault = true
			spec.Default = false
		}
		spec.Pressed = !declared
	}

	if opt.Action != nil {
		spec.Action = buildAction(opt.Action)
	}

	return spec, nil
}

// buildArg compiles one positional argument definition
func (b *Builder) buildArg(arg *ast.ArgumentDef) (*ArgSpec, error) {
	vt, choices, err := parseValueType(arg.Type, arg.Pos)
	if err != nil {
		return nil, err
	}

	spec := &ArgSpec{
		Name:        arg.Name,
		Type:        vt,
		Choices:     choices,
		Description: arg.Description,
		Line:        arg.Pos.Line,
	}

	if raw, ok := arg.Attributes.Get("default"); ok {
		value, err := coerceDefault(raw, vt, arg.Pos)
		if err != nil {
			return nil, err
		}
		spec.HasDefault = true
		spec.Default = value
	}

	switch {
	case arg.Variadic && spec.HasDefault:
		spec.Cardinality = ZeroOrMore
	case arg.Variadic:
		spec.Cardinality = OneOrMore
	case spec.HasDefault:
		spec.Cardinality = ZeroOrOne
	case arg.Attributes.Has("required"):
		spec.Cardinality = ExactlyOne
	default:
		spec.Cardinality = ZeroOrOne
	}

	return spec, nil
}

// buildAction compiles one action binding
func buildAction(action *ast.ActionBinding) *ActionSpec {
	return &ActionSpec{
		Function: action.Function,
		Params:   action.Params,
		Line:     action.Pos.Line,
	}
}

// parseValueType parses a raw type tag into a value type and choice list
func parseValueType(raw string, pos ast.Position) (ValueType, []string, error) {
	switch {
	case raw == "":
		return TypeString, nil, nil
	case raw == "string":
		return TypeString, nil, nil
	case raw == "bool":
		return TypeBool, nil, nil
	case raw == "int":
		return TypeInt, nil, nil
	case raw == "float":
		return TypeFloat, nil, nil
	case strings.HasPrefix(raw, "choice:"):
		parts := strings.Split(strings.TrimPrefix(raw, "choice:"), ",")
		choices := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				choices = append(choices, trimmed)
			}
		}
		if len(choices) == 0 {
			return TypeChoice, nil, cerror.New("choice type declares no values").
				WithCode(cerror.CodeSchemaError).
				WithOperation("schema.Build").
				WithPosition(pos.Line, pos.Column)
		}
		return TypeChoice, choices, nil
	default:
		return TypeString, nil, cerror.Newf("unknown type %q", raw).
			WithCode(cerror.CodeSchemaError).
			WithOperation("schema.Build").
			WithPosition(pos.Line, pos.Column)
	}
}

// deriveDest derives the destination name for an option: the first long
// flag wins, then the first short flag, then (for parameterized non-bool
// options only) the declared parameter name. Dashes inside the flag body
// become underscores.
func deriveDest(flags []string, param string, isBool bool) string {
	for _, flag := range flags {
		if strings.HasPrefix(flag, "--") {
			return underscore(strings.TrimPrefix(flag, "--"))
		}
	}
	for _, flag := range flags {
		if strings.HasPrefix(flag, "-") {
			return underscore(strings.TrimPrefix(flag, "-"))
		}
	}
	if !isBool && param != "" {
		return param
	}
	if len(flags) > 0 {
		return underscore(strings.TrimLeft(flags[0], "-"))
	}
	return param
}

func underscore(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// coerceDefault converts a raw default attribute into its typed value.
// A malformed numeric default fails the compile.
func coerceDefault(raw string, vt ValueType, pos ast.Position) (interface{}, error) {
	switch vt {
	case TypeBool:
		return strings.EqualFold(raw, "true"), nil
	case TypeInt:
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, cerror.Newf("invalid int default %q", raw).
				WithCode(cerror.CodeSchemaError).
				WithOperation("schema.Build").
				WithPosition(pos.Line, pos.Column)
		}
		return value, nil
	case TypeFloat:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, cerror.Newf("invalid float default %q", raw).
				WithCode(cerror.CodeSchemaError).
				WithOperation("schema.Build").
				WithPosition(pos.Line, pos.Column)
		}
		return value, nil
	default:
		return raw, nil
	}
}

// checkDest records a destination name and fails on a duplicate
func checkDest(seen map[string]int, dest string, pos ast.Position) error {
	if first, exists := seen[dest]; exists {
		return cerror.Newf("duplicate destination name %q (first defined at line %d)", dest, first).
			WithCode(cerror.CodeSchemaError).
			WithOperation("schema.Build").
			WithPosition(pos.Line, pos.Column)
	}
	seen[dest] = pos.Line
	return nil
}
