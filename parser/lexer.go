// File: lexer.go
// Title: CLIScript Lexical Analyzer (Tokenizer)
// Description: Implements the lexical analysis phase of CLIScript parsing.
//              Converts CLIScript definition text into a token stream using
//              an ordered rule table. Handles keywords, flags, type and
//              attribute tags, strings, arguments, and significant newlines
//              with detailed position information for error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	cerror "github.com/msto63/cliscript/core/error"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Keywords
	TokenUse     // use
	TokenCmd     // cmd
	TokenDefault // default
	TokenOption  // option
	TokenRoot    // root
	TokenAppName // appname

	// Operators and tags
	TokenArrow   // ->
	TokenFlag    // -v, --verbose
	TokenTypeTag // [bool], [int], [choice:a,b]
	TokenAttrTag // [required], [default:x], [multiple], [if(...)]

	// Punctuation
	TokenComma  // ,
	TokenLParen // (
	TokenRParen // )
	TokenDollar // $

	// Literals
	TokenString     // "string literal"
	TokenArgument   // <name>, <files...>
	TokenIdentifier // module, files.copy

	// Layout
	TokenNewline // significant end of line
)

// Token represents a lexical token with position information
type Token struct {
	Type   TokenType // Token type
	Value  string    // Token text (decoded for strings, brackets stripped for tags)
	Line   int       // Line number (1-based)
	Column int       // Column number (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "NEWLINE"
	case TokenIllegal:
		return fmt.Sprintf("ILLEGAL(%s)", t.Value)
	default:
		return fmt.Sprintf("%s(%s)", t.Type.String(), t.Value)
	}
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenUse:
		return "USE"
	case TokenCmd:
		return "CMD"
	case TokenDefault:
		return "DEFAULT"
	case TokenOption:
		return "OPTION"
	case TokenRoot:
		return "ROOT"
	case TokenAppName:
		return "APPNAME"
	case TokenArrow:
		return "ARROW"
	case TokenFlag:
		return "FLAG"
	case TokenTypeTag:
		return "TYPE"
	case TokenAttrTag:
		return "ATTRIBUTE"
	case TokenComma:
		return "COMMA"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenDollar:
		return "DOLLAR"
	case TokenString:
		return "STRING"
	case TokenArgument:
		return "ARGUMENT"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenNewline:
		return "NEWLINE"
	default:
		return "UNKNOWN"
	}
}

// rule pairs a token type with the pattern that recognizes it. Rules are
// tried in order and the first match wins, so keywords precede the
// identifier rule and tags precede nothing that could swallow them.
type rule struct {
	typ     TokenType
	pattern *regexp.Regexp
	skip    bool
}

var lexRules = []rule{
	{typ: -1, pattern: regexp.MustCompile(`^[ \t\r]+`), skip: true},
	{typ: -1, pattern: regexp.MustCompile(`^#[^\n]*`), skip: true},
	{typ: TokenNewline, pattern: regexp.MustCompile(`^\n`)},
	{typ: TokenUse, pattern: regexp.MustCompile(`^use\b`)},
	{typ: TokenCmd, pattern: regexp.MustCompile(`^cmd\b`)},
	{typ: TokenDefault, pattern: regexp.MustCompile(`^default\b`)},
	{typ: TokenOption, pattern: regexp.MustCompile(`^option\b`)},
	{typ: TokenRoot, pattern: regexp.MustCompile(`^root\b`)},
	{typ: TokenAppName, pattern: regexp.MustCompile(`^appname\b`)},
	{typ: TokenArrow, pattern: regexp.MustCompile(`^->`)},
	{typ: TokenComma, pattern: regexp.MustCompile(`^,`)},
	{typ: TokenLParen, pattern: regexp.MustCompile(`^\(`)},
	{typ: TokenRParen, pattern: regexp.MustCompile(`^\)`)},
	{typ: TokenDollar, pattern: regexp.MustCompile(`^\$`)},
	{typ: TokenFlag, pattern: regexp.MustCompile(`^--?[a-zA-Z0-9\-]+`)},
	{typ: TokenTypeTag, pattern: regexp.MustCompile(`^\[(?:bool|string|int|float|choice:[^\]]+)\]`)},
	{typ: TokenAttrTag, pattern: regexp.MustCompile(`^\[(?:required|multiple|default:[^\]]+|if\([^)]+\))\]`)},
	{typ: TokenString, pattern: regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)},
	{typ: TokenArgument, pattern: regexp.MustCompile(`^<[^>\n]+>`)},
	{typ: TokenIdentifier, pattern: regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_\-.]*`)},
}

// Lexer performs lexical analysis of CLIScript input
type Lexer struct {
	input  string // Input string
	pos    int    // Current byte position in input
	line   int    // Current line number (1-based)
	column int    // Current column number (1-based)
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
	}
}

// NextToken returns the next token from the input. Skipped input
// (whitespace, comments) is consumed transparently. At end of input an
// EOF token is returned; an unrecognized character yields an Illegal
// token carrying the offending character.
func (l *Lexer) NextToken() Token {
	for l.pos < len(l.input) {
		rest := l.input[l.pos:]
		matched := false

		for _, r := range lexRules {
			loc := r.pattern.FindStringIndex(rest)
			if loc == nil {
				continue
			}
			lexeme := rest[:loc[1]]
			line, column := l.line, l.column
			l.advance(lexeme)
			matched = true

			if r.skip {
				break
			}
			return Token{
				Type:   r.typ,
				Value:  tokenValue(r.typ, lexeme),
				Line:   line,
				Column: column,
			}
		}

		if !matched {
			r, _ := utf8.DecodeRuneInString(rest)
			return Token{
				Type:   TokenIllegal,
				Value:  string(r),
				Line:   l.line,
				Column: l.column,
			}
		}
	}

	return Token{Type: TokenEOF, Line: l.line, Column: l.column}
}

// Tokenize returns all tokens from the input as a slice. The slice always
// ends with an EOF token; on an illegal character the tokens collected so
// far are returned together with a lex error naming the character and its
// position.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)

		if tok.Type == TokenEOF {
			break
		}

		if tok.Type == TokenIllegal {
			return tokens, cerror.Newf("unexpected character %q", tok.Value).
				WithCode(cerror.CodeLexError).
				WithOperation("lexer.Tokenize").
				WithPosition(tok.Line, tok.Column)
		}
	}

	return tokens, nil
}

// advance consumes the lexeme and updates line and column tracking.
// Columns count runes, not bytes, so non-ASCII input keeps positions
// accurate.
func (l *Lexer) advance(lexeme string) {
	l.pos += len(lexeme)
	for _, r := range lexeme {
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
}

// tokenValue post-processes the raw lexeme into the token value: tags
// lose their brackets, arguments their angle brackets, and strings are
// unescaped. A string whose escapes cannot be decoded falls back to its
// raw inner text rather than failing the whole tokenization.
func tokenValue(typ TokenType, lexeme string) string {
	switch typ {
	case TokenTypeTag, TokenAttrTag:
		return lexeme[1 : len(lexeme)-1]
	case TokenArgument:
		return lexeme[1 : len(lexeme)-1]
	case TokenString:
		decoded, err := strconv.Unquote(lexeme)
		if err != nil {
			return strings.TrimSuffix(strings.TrimPrefix(lexeme, `"`), `"`)
		}
		return decoded
	default:
		return lexeme
	}
}
