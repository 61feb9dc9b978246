// File: dispatch.go
// Title: Command Dispatcher
// Description: Executes a parsed invocation against the compiled command
//              tree: root options are checked in declaration order first
//              and short-circuit the run, then the selected command's
//              action is resolved and invoked with its marshalled
//              arguments. The dispatcher reports an Outcome with the
//              process exit code instead of terminating the process.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial dispatcher implementation

package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/google/uuid"

	"github.com/msto63/cliscript/argv"
	cerror "github.com/msto63/cliscript/core/error"
	"github.com/msto63/cliscript/core/log"
	"github.com/msto63/cliscript/registry"
	"github.com/msto63/cliscript/schema"
)

// Outcome is the result of dispatching one invocation
type Outcome struct {
	Code   int         // Process exit code to report
	Result interface{} // Action return value, nil if none
	Err    error       // Terminal error, nil on success and help display
}

// Dispatcher executes invocations against one command tree
type Dispatcher struct {
	tree     *schema.CommandTree
	registry *registry.Registry
	facility *argv.Facility
	logger   *log.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// Options configures dispatcher behavior
type Options struct {
	Logger *log.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a dispatcher for the given command tree and registry
func New(tree *schema.CommandTree, reg *registry.Registry, opts Options) (*Dispatcher, error) {
	if tree == nil {
		return nil, errors.New("command tree cannot be nil")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	facility, err := argv.New(tree, argv.Options{Logger: opts.Logger})
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		tree:     tree,
		registry: reg,
		facility: facility,
		logger:   opts.Logger.WithField("component", "cliscript-dispatch"),
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
	}, nil
}

// Dispatch parses the argument vector and executes the invocation
func (d *Dispatcher) Dispatch(args []string) Outcome {
	logger := d.logger.WithField("invocation", uuid.NewString())

	result, err := d.facility.Parse(args)
	if err != nil {
		var helpErr *argv.HelpError
		if errors.As(err, &helpErr) {
			fmt.Fprint(d.stdout, helpErr.Usage)
			return Outcome{Code: 0}
		}

		var usageErr *argv.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(d.stderr, "Error: %s\n", usageErr.Message)
			fmt.Fprint(d.stderr, usageErr.Usage)
			return Outcome{Code: 2, Err: err}
		}

		fmt.Fprintf(d.stderr, "Error: %s\n", err.Error())
		return Outcome{Code: 1, Err: err}
	}

	// Root options take precedence over command execution: the first
	// eligible option with an action runs and ends the invocation
	if outcome, handled := d.dispatchRoot(result, logger); handled {
		return outcome
	}

	return d.dispatchCommand(result, logger)
}

// dispatchRoot checks root options in declaration order. A toggle is
// eligible when its final value is true; a valued option when its value
// differs from the declared default.
func (d *Dispatcher) dispatchRoot(result *argv.Result, logger *log.Logger) (Outcome, bool) {
	for _, opt := range d.tree.RootOptions {
		value, exists := result.Values[opt.Dest]
		if !exists {
			continue
		}

		eligible := false
		if opt.Toggle {
			eligible = value == true
		} else {
			if value != nil && (!opt.HasDefault || !reflect.DeepEqual(value, opt.Default)) {
				eligible = true
			}
		}
		if !eligible {
			continue
		}

		action, ok := d.tree.RootActions[opt.Dest]
		if !ok {
			continue
		}

		logger.Debug("executing root option action", log.Fields{
			"option":   opt.Dest,
			"function": action.Function,
		})

		args := d.marshalArgs(action.Params, result, nil)
		return d.execute(action, args, logger), true
	}

	return Outcome{}, false
}

// dispatchCommand executes the selected command's action, or shows help
// when no command applies
func (d *Dispatcher) dispatchCommand(result *argv.Result, logger *log.Logger) Outcome {
	var cmd *schema.CommandSpec

	if d.tree.MultiCommand() {
		if result.Command == "" {
			// No subcommand given and no root action fired
			fmt.Fprint(d.stdout, d.Usage())
			return Outcome{Code: 0}
		}
		cmd = d.tree.Command(result.Command)
	} else {
		cmd = d.tree.Default
	}

	if cmd == nil || cmd.Action == nil {
		if cmd == nil || cmd.Name != "" {
			fmt.Fprint(d.stdout, d.Usage())
		}
		return Outcome{Code: 0}
	}

	logger.Debug("executing command action", log.Fields{
		"command":  cmd.Name,
		"function": cmd.Action.Function,
	})

	args := d.marshalArgs(cmd.Action.Params, result, cmd)
	return d.execute(cmd.Action, args, logger)
}

// execute resolves and invokes one action
func (d *Dispatcher) execute(action *schema.ActionSpec, args map[string]interface{}, logger *log.Logger) Outcome {
	if d.registry == nil {
		err := cerror.Newf("function %q not found: no registry configured", action.Function).
			WithCode(cerror.CodeFunctionResolution)
		fmt.Fprintf(d.stderr, "Error: %s\n", err.Error())
		return Outcome{Code: 1, Err: err}
	}

	fn, err := d.registry.Resolve(action.Function)
	if err != nil {
		logger.LogError(err)
		fmt.Fprintf(d.stderr, "Error: function %s not found\n", action.Function)
		return Outcome{Code: 1, Err: err}
	}

	result, err := fn(args)
	if err != nil {
		wrapped := cerror.Wrap(err, fmt.Sprintf("executing %s", action.Function)).
			WithCode(cerror.CodeActionExecution)
		logger.LogError(wrapped)
		fmt.Fprintf(d.stderr, "Error: %s\n", err.Error())
		return Outcome{Code: 1, Err: wrapped}
	}

	if result != nil {
		fmt.Fprintln(d.stdout, result)
	}
	return Outcome{Code: 0, Result: result}
}

// marshalArgs builds the argument map for an action from the parse
// result. A parameter bound to a variadic argument that carries a single
// value (its declared default) is wrapped into a slice so actions always
// see a list there. Absent values are passed as nil.
func (d *Dispatcher) marshalArgs(params []string, result *argv.Result, cmd *schema.CommandSpec) map[string]interface{} {
	args := make(map[string]interface{}, len(params))

	for _, param := range params {
		value := result.Values[param]

		if cmd != nil {
			if arg := cmd.Arg(param); arg != nil && arg.Cardinality.Variadic() {
				if value != nil {
					if _, isSlice := value.([]interface{}); !isSlice {
						value = []interface{}{value}
					}
				}
			}
		}

		args[param] = value
	}

	return args
}

// Usage returns the top-level usage text for the tree
func (d *Dispatcher) Usage() string {
	return d.facility.UsageText()
}
