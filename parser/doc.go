// File: doc.go
// Title: CLIScript Parser Package Documentation
// Description: Documents the lexical analyzer and recursive descent parser
//              that turn CLIScript definition text into the declaration AST.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial implementation

/*
Package parser implements lexical analysis and parsing for CLIScript
definition files.

The lexer converts source text into a token stream using an ordered rule
table: keywords (use, cmd, default, option, root, appname), the action
arrow, flag spellings, bracketed type and attribute tags, quoted strings,
angle-bracketed arguments, and identifiers. Whitespace and # comments are
discarded while newlines are significant and emitted as tokens. Every
token carries its 1-based line and column for error reporting.

The parser walks the token stream with a forward cursor and produces an
ast.Script. Top-level declarations are appname, use, root, cmd, and
default; cmd and default are mutually exclusive within one script.
Unrecognized top-level tokens are skipped with a logged warning so that a
stray token does not invalidate the rest of the definition.

Basic usage:

	p, err := parser.New(parser.Options{})
	if err != nil {
		return err
	}
	script, err := p.Parse(source)
	if err != nil {
		return err
	}
*/
package parser
