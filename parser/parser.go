// File: parser.go
// Title: CLIScript Recursive Descent Parser
// Description: Implements the parsing phase of CLIScript processing.
//              Converts token streams into the declaration AST using
//              recursive descent over a forward cursor. Unknown top-level
//              tokens are skipped with a logged warning so that a single
//              stray token does not invalidate an otherwise usable
//              definition.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial parser implementation

package parser

import (
	"strings"

	"github.com/msto63/cliscript/ast"
	cerror "github.com/msto63/cliscript/core/error"
	"github.com/msto63/cliscript/core/log"
)

// Parser implements recursive descent parsing for CLIScript
type Parser struct {
	tokens      []Token
	pos         int
	logger      *log.Logger
	options     Options
	hasDefault  bool
	hasCommands bool
}

// Options configures parser behavior
type Options struct {
	Logger          *log.Logger
	MaxSourceLength int
}

// New creates a new CLIScript parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxSourceLength == 0 {
		opts.MaxSourceLength = 1 << 20
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "cliscript-parser"),
		options: opts,
	}, nil
}

// Parse parses CLIScript source text and returns the declaration AST
func (p *Parser) Parse(source string) (*ast.Script, error) {
	if len(source) > p.options.MaxSourceLength {
		return nil, cerror.Newf("source exceeds maximum length: %d > %d",
			len(source), p.options.MaxSourceLength).
			WithCode(cerror.CodeSyntaxError).
			WithOperation("parser.Parse")
	}

	tokens, err := NewLexer(source).Tokenize()
	if err != nil {
		return nil, err
	}

	p.tokens = tokens
	p.pos = 0
	p.hasDefault = false
	p.hasCommands = false

	p.logger.Debug("starting parse", log.Fields{
		"length": len(source),
		"tokens": len(tokens),
	})

	script := &ast.Script{Pos: ast.Position{Line: 1, Column: 1}}

	for !p.isEOF() {
		switch p.current().Type {
		case TokenNewline:
			p.advance()

		case TokenAppName:
			appName, err := p.parseAppName()
			if err != nil {
				return nil, err
			}
			// First declaration wins; later ones are consumed and dropped
			if script.AppName == nil {
				script.AppName = appName
			}

		case TokenUse:
			use, err := p.parseUse()
			if err != nil {
				return nil, err
			}
			script.Uses = append(script.Uses, use)

		case TokenRoot:
			if err := p.parseRootOptions(script); err != nil {
				return nil, err
			}

		case TokenCmd:
			if p.hasDefault {
				return nil, p.syntaxError("cannot use 'cmd' after 'default' command")
			}
			p.hasCommands = true
			cmd, err := p.parseCommand()
			if err != nil {
				return nil, err
			}
			script.Commands = append(script.Commands, cmd)

		case TokenDefault:
			if p.hasCommands || p.hasDefault {
				return nil, p.syntaxError("cannot use 'default' together with other commands")
			}
			p.hasDefault = true
			def, err := p.parseDefaultCommand()
			if err != nil {
				return nil, err
			}
			script.Default = def

		default:
			tok := p.current()
			p.logger.Warn("skipping unexpected token", log.Fields{
				"token":  tok.String(),
				"line":   tok.Line,
				"column": tok.Column,
			})
			p.advance()
		}
	}

	if err := script.Validate(); err != nil {
		return nil, cerror.Wrap(err, "invalid script").
			WithCode(cerror.CodeSyntaxError).
			WithOperation("parser.Parse")
	}

	p.logger.Debug("parse completed", log.Fields{
		"commands": len(script.Commands),
		"uses":     len(script.Uses),
	})

	return script, nil
}

// parseAppName parses an `appname "..."` declaration
func (p *Parser) parseAppName() (*ast.AppName, error) {
	tok := p.advance()
	name, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	return &ast.AppName{
		Name: name.Value,
		Pos:  position(tok),
	}, nil
}

// parseUse parses a `use "module"` declaration
func (p *Parser) parseUse() (*ast.UseModule, error) {
	tok := p.advance()
	module, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	return &ast.UseModule{
		Module: module.Value,
		Pos:    position(tok),
	}, nil
}

// parseRootOptions parses a `root` declaration. The option definitions may
// follow on the same line or on subsequent lines; consecutive flag-initiated
// definitions all attach to the root set. Each option may carry a trailing
// action binding.
func (p *Parser) parseRootOptions(script *ast.Script) error {
	tok := p.advance()

	if script.Root == nil {
		script.Root = &ast.RootOptionSet{Pos: position(tok)}
	}

	parsed := 0
	for {
		for p.match(TokenNewline) {
			p.advance()
		}
		if !p.match(TokenFlag) {
			break
		}

		opt, err := p.parseOptionDef()
		if err != nil {
			return err
		}

		if p.match(TokenArrow) {
			action, err := p.parseAction()
			if err != nil {
				return err
			}
			opt.Action = action
		}

		script.Root.Options = append(script.Root.Options, opt)
		parsed++
	}

	if parsed == 0 {
		return p.syntaxError("'root' must be followed by at least one option definition")
	}
	return nil
}

// parseCommand parses a `cmd name "desc"` declaration and its body
func (p *Parser) parseCommand() (*ast.Command, error) {
	tok := p.advance()

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	description := ""
	if p.match(TokenString) {
		description = p.advance().Value
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &ast.Command{
		Name:        name.Value,
		Description: description,
		Body:        body,
		Pos:         position(tok),
	}, nil
}

// parseDefaultCommand parses a `default "desc"` declaration and its body
func (p *Parser) parseDefaultCommand() (*ast.DefaultCommand, error) {
	tok := p.advance()

	description, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &ast.DefaultCommand{
		Description: description.Value,
		Body:        body,
		Pos:         position(tok),
	}, nil
}

// parseBody parses a command body: options, positional arguments, and at
// most one action binding, in any order, until the next cmd, default, or
// use declaration or end of input
func (p *Parser) parseBody() (*ast.Body, error) {
	body := &ast.Body{}

	for !p.isEOF() && !p.atBodyTerminator() {
		switch p.current().Type {
		case TokenNewline:
			p.advance()

		case TokenFlag:
			opt, err := p.parseOptionDef()
			if err != nil {
				return nil, err
			}
			body.Options = append(body.Options, opt)

		case TokenArgument:
			arg, err := p.parseArgumentDef()
			if err != nil {
				return nil, err
			}
			body.Arguments = append(body.Arguments, arg)

		case TokenArrow:
			action, err := p.parseAction()
			if err != nil {
				return nil, err
			}
			// Last binding wins
			body.Action = action

		default:
			tok := p.current()
			p.logger.Warn("skipping unexpected token in command body", log.Fields{
				"token":  tok.String(),
				"line":   tok.Line,
				"column": tok.Column,
			})
			p.advance()
		}
	}

	return body, nil
}

// parseOptionDef parses a single option definition: one or more
// comma-separated flags, an optional parameter, an optional type tag,
// attribute tags, and an optional description. A trailing newline is
// consumed so that a following action binding can sit on the next line.
func (p *Parser) parseOptionDef() (*ast.OptionDef, error) {
	pos := position(p.current())
	opt := &ast.OptionDef{Pos: pos}

	for p.match(TokenFlag) {
		opt.Flags = append(opt.Flags, p.advance().Value)
		if p.match(TokenComma) {
			p.advance()
		}
	}

	if p.match(TokenArgument) {
		opt.Param = p.advance().Value
	}

	if p.match(TokenTypeTag) {
		opt.Type = p.advance().Value
	}

	opt.Attributes = p.parseAttributes()

	if p.match(TokenString) {
		opt.Description = p.advance().Value
	}

	if p.match(TokenNewline) {
		p.advance()
	}

	return opt, nil
}

// parseArgumentDef parses a positional argument definition with its
// optional type, attribute, and description tail
func (p *Parser) parseArgumentDef() (*ast.ArgumentDef, error) {
	tok := p.advance()
	arg := &ast.ArgumentDef{
		Name: tok.Value,
		Pos:  position(tok),
	}

	if strings.HasSuffix(arg.Name, "...") {
		arg.Variadic = true
		arg.Name = strings.TrimSuffix(arg.Name, "...")
	}

	if p.match(TokenTypeTag) {
		arg.Type = p.advance().Value
	}

	arg.Attributes = p.parseAttributes()

	if p.match(TokenString) {
		arg.Description = p.advance().Value
	}

	if p.match(TokenNewline) {
		p.advance()
	}

	return arg, nil
}

// parseAttributes parses consecutive attribute tags into a map. Valued
// attributes split on the first colon; `if(expr)` stores the condition
// expression under the "if" key. The lexer already validated the tag
// shapes, so this cannot fail.
func (p *Parser) parseAttributes() ast.Attributes {
	attrs := make(ast.Attributes)

	for p.match(TokenAttrTag) {
		value := p.advance().Value

		switch {
		case strings.HasPrefix(value, "if(") && strings.HasSuffix(value, ")"):
			attrs["if"] = value[3 : len(value)-1]
		case strings.Contains(value, ":"):
			parts := strings.SplitN(value, ":", 2)
			attrs[parts[0]] = parts[1]
		default:
			attrs[value] = ""
		}
	}

	return attrs
}

// parseAction parses an `-> fn($a, $b)` action binding. The parameter
// list is optional; parameter names are stored without the leading "$".
func (p *Parser) parseAction() (*ast.ActionBinding, error) {
	tok := p.advance()

	function, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	action := &ast.ActionBinding{
		Function: function.Value,
		Pos:      position(tok),
	}

	if p.match(TokenLParen) {
		p.advance()

		for !p.match(TokenRParen) && !p.isEOF() {
			if !p.match(TokenDollar) {
				break
			}
			p.advance()

			param, err := p.expect(TokenIdentifier)
			if err != nil {
				return nil, err
			}
			action.Params = append(action.Params, param.Value)

			if p.match(TokenComma) {
				p.advance()
			}
		}

		if p.match(TokenRParen) {
			p.advance()
		}
	}

	if p.match(TokenNewline) {
		p.advance()
	}

	return action, nil
}

// position converts a token's location into an AST position
func position(tok Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}

// Cursor helpers

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) match(typ TokenType) bool {
	return !p.isEOF() && p.current().Type == typ
}

func (p *Parser) isEOF() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Type == TokenEOF
}

// atBodyTerminator reports whether the current token starts the next
// top-level declaration. A body only ends at cmd, default, or use;
// other stray keywords inside a body are skipped with a warning.
func (p *Parser) atBodyTerminator() bool {
	switch p.current().Type {
	case TokenCmd, TokenDefault, TokenUse:
		return true
	default:
		return false
	}
}

// expect consumes and returns a token of the given type, or fails with a
// syntax error naming the expected and actual token kinds
func (p *Parser) expect(typ TokenType) (Token, error) {
	if p.match(typ) {
		return p.advance(), nil
	}
	tok := p.current()
	return Token{}, cerror.Newf("expected %s, got %s", typ, tok.Type).
		WithCode(cerror.CodeSyntaxError).
		WithOperation("parser.Parse").
		WithPosition(tok.Line, tok.Column).
		WithDetail("near", tok.Value)
}

// syntaxError creates a syntax error at the current token position
func (p *Parser) syntaxError(message string) error {
	tok := p.current()
	return cerror.New(message).
		WithCode(cerror.CodeSyntaxError).
		WithOperation("parser.Parse").
		WithPosition(tok.Line, tok.Column)
}
