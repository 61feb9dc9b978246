// File: doc.go
// Title: CLIScript Package Documentation
// Description: Documents the CLIScript engine: a declarative language for
//              defining command-line interfaces, compiled into a command
//              tree and dispatched against registered host functions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial implementation

/*
Package cliscript compiles declarative CLI definitions and dispatches
command-line invocations against them.

A CLIScript source declares an application name, the host modules it
uses, root-level options, and either named subcommands or a single
default command. Options carry flags, a typed parameter, attributes, and
a description; commands bind an action function that receives the parsed
values:

	appname "File Tools"
	use "files"

	root
	  --version [bool] "show version" -> show_version()

	cmd copy "copy files"
	  -f, --force [bool] "overwrite existing files"
	  <src>
	  <dst>
	  -> copy($src, $dst, $force)

Compilation runs the lexer, the recursive descent parser, and the schema
builder; the result is an Engine whose Run method parses an argument
vector and executes the bound action:

	reg, _ := registry.New(registry.Options{})
	reg.Register("files", registry.Namespace{
		"copy": copyFiles,
	})

	engine, err := cliscript.Compile(source, cliscript.Options{Registry: reg})
	if err != nil {
		return err
	}
	outcome := engine.Run(os.Args[1:])
	os.Exit(outcome.Code)

Root options take precedence over command execution: the first declared
option whose value was activated on the command line runs its action and
ends the invocation. Help requests exit with code 0, usage diagnostics
with code 2, and compile or dispatch failures with code 1.
*/
package cliscript
