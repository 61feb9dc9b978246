// File: cliscript.go
// Title: CLIScript Main Interface and Engine
// Description: Provides the main CLIScript engine API: compiling a script
//              source through the lexer, parser, and schema builder into a
//              runnable engine, and dispatching argument vectors against
//              it. Integrates parser, schema, registry, and dispatcher
//              components.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial engine implementation

package cliscript

import (
	"io"

	"github.com/msto63/cliscript/ast"
	cerror "github.com/msto63/cliscript/core/error"
	"github.com/msto63/cliscript/core/log"
	"github.com/msto63/cliscript/dispatch"
	"github.com/msto63/cliscript/parser"
	"github.com/msto63/cliscript/registry"
	"github.com/msto63/cliscript/schema"
	"github.com/msto63/cliscript/utils/stringx"
)

// Outcome is the result of dispatching one invocation
type Outcome = dispatch.Outcome

// Engine is a compiled CLIScript definition ready for dispatch
type Engine struct {
	script     *ast.Script
	tree       *schema.CommandTree
	registry   *registry.Registry
	dispatcher *dispatch.Dispatcher
	logger     *log.Logger
	options    Options
}

// Options configures compilation and dispatch behavior
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *log.Logger

	// Registry of host modules referenced by use declarations (optional,
	// defaults to an empty registry)
	Registry *registry.Registry

	// Stdout and Stderr receive action results and diagnostics
	// (optional, default to the process streams)
	Stdout io.Writer
	Stderr io.Writer

	// MaxSourceLength limits script source length (default: 1 MiB)
	MaxSourceLength int
}

// Compile parses a CLIScript source and builds its command tree. Lexer,
// parser, and schema failures are fatal; a use declaration naming an
// unknown module only degrades function resolution at dispatch time.
func Compile(source string, opts Options) (*Engine, error) {
	if stringx.IsBlank(source) {
		return nil, cerror.New("script source cannot be empty").
			WithCode(cerror.CodeSyntaxError).
			WithOperation("cliscript.Compile")
	}

	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	logger := opts.Logger.WithField("component", "cliscript-engine")

	if opts.Registry == nil {
		reg, err := registry.New(registry.Options{Logger: opts.Logger})
		if err != nil {
			return nil, err
		}
		opts.Registry = reg
	}

	p, err := parser.New(parser.Options{
		Logger:          opts.Logger,
		MaxSourceLength: opts.MaxSourceLength,
	})
	if err != nil {
		return nil, err
	}

	script, err := p.Parse(source)
	if err != nil {
		return nil, err
	}

	builder, err := schema.NewBuilder(schema.Options{
		Logger:   opts.Logger,
		Registry: opts.Registry,
	})
	if err != nil {
		return nil, err
	}

	tree, err := builder.Build(script)
	if err != nil {
		return nil, err
	}

	dispatcher, err := dispatch.New(tree, opts.Registry, dispatch.Options{
		Logger: opts.Logger,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("script compiled", log.Fields{
		"appName":  tree.AppName,
		"commands": len(tree.Commands),
		"modules":  len(opts.Registry.Loaded()),
	})

	return &Engine{
		script:     script,
		tree:       tree,
		registry:   opts.Registry,
		dispatcher: dispatcher,
		logger:     logger,
		options:    opts,
	}, nil
}

// Run dispatches an argument vector (without the program name) against
// the compiled tree and returns the outcome with its exit code
func (e *Engine) Run(args []string) Outcome {
	return e.dispatcher.Dispatch(args)
}

// Script returns the parsed declaration AST
func (e *Engine) Script() *ast.Script {
	return e.script
}

// Tree returns the compiled command tree
func (e *Engine) Tree() *schema.CommandTree {
	return e.tree
}

// Registry returns the registry the engine resolves actions against
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Usage returns the top-level usage text
func (e *Engine) Usage() string {
	return e.dispatcher.Usage()
}

// Tokenize exposes the lexer for diagnostic token dumps
func Tokenize(source string) ([]parser.Token, error) {
	return parser.NewLexer(source).Tokenize()
}
