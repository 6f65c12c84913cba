package syntax

import (
	"strconv"
	"strings"
	"unicode"

	"wabbitc/report"
)

// Lexer is responsible for tokenizing a source text.
type Lexer struct {
	src []rune
	pos int

	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:     []rune(src),
		tokBuff: &strings.Builder{},
	}
}

// NextToken retrieves the next token from the source text.  If the text has
// ended, this will be an EOF token.  Lexical errors are returned as syntax
// diagnostics.
func (l *Lexer) NextToken() (*Token, *report.Diagnostic) {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			tok, diag := l.lexCommentOrDiv()
			if tok != nil || diag != nil {
				return tok, diag
			}
		case '\'':
			return l.lexCharLit()
		default:
			if isDecimalDigit(c) || c == '.' {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.markStart()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a line comment, a block comment, or a `/` token.  Both
// return values are nil when a comment was consumed.
func (l *Lexer) lexCommentOrDiv() (*Token, *report.Diagnostic) {
	l.markStart()
	l.read()

	switch l.peek() {
	case '/':
		// Line comment: skip to end of line.
		for c := l.peek(); c != -1 && c != '\n'; c = l.peek() {
			l.skip()
		}

		l.discard()
		return nil, nil
	case '*':
		// Block comment: skip to the closing `*/` (no nesting).
		l.skip()

		for {
			c := l.peek()
			if c == -1 {
				return nil, l.error("unterminated block comment")
			}

			l.skip()
			if c == '*' && l.peek() == '/' {
				l.skip()
				break
			}
		}

		l.discard()
		return nil, nil
	default:
		return l.makeToken(TOK_SLASH), nil
	}
}

// lexCharLit lexes a character literal.
func (l *Lexer) lexCharLit() (*Token, *report.Diagnostic) {
	l.markStart()
	l.skip() // leading quote

	c := l.peek()
	switch c {
	case -1, '\n':
		return nil, l.error("unterminated character constant")
	case '\\':
		l.read()
		escape := l.peek()
		switch escape {
		case 'n', 't', 'r', '0', '\\', '\'':
			l.read()
		case 'x':
			l.read()
			for i := 0; i < 2; i++ {
				if !isHexDigit(l.peek()) {
					return nil, l.error("expected two hex digits in `\\x` escape")
				}
				l.read()
			}
		default:
			return nil, l.error("unknown escape sequence")
		}
	default:
		l.read()
	}

	if l.peek() != '\'' {
		return nil, l.error("unterminated character constant")
	}

	l.skip() // closing quote
	return l.makeToken(TOK_CHARLIT), nil
}

// lexNumericLit lexes an integer or float literal.  Floats may be written with
// a leading or trailing dot: `1.234`, `.1234`, and `1234.` are all valid.
func (l *Lexer) lexNumericLit() (*Token, *report.Diagnostic) {
	l.markStart()

	isFloat := false
	for {
		c := l.peek()
		if isDecimalDigit(c) {
			l.read()
		} else if c == '.' && !isFloat {
			isFloat = true
			l.read()
		} else {
			break
		}
	}

	if isFloat {
		if l.tokBuff.String() == "." {
			return nil, l.error("expected digits in float literal")
		}

		return l.makeToken(TOK_FLOATLIT), nil
	}

	return l.makeToken(TOK_INTLIT), nil
}

// lexIdentOrKeyword lexes an identifier or a reserved keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, *report.Diagnostic) {
	l.markStart()
	l.read()

	for c := l.peek(); isIdentChar(c); c = l.peek() {
		l.read()
	}

	if kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kind), nil
	}

	return l.makeToken(TOK_IDENT), nil
}

// symbolPatterns maps symbol strings to their punctuation/operator token kind.
// The division operator is handled with the comment logic.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,

	"==": TOK_EQ,
	"!=": TOK_NE,
	"<":  TOK_LT,
	"<=": TOK_LE,
	">":  TOK_GT,
	">=": TOK_GE,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,
	"^":  TOK_GROW,

	"=": TOK_ASSIGN,
	";": TOK_SEMI,
	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	",": TOK_COMMA,
	"`": TOK_DEREF,
}

// lexPunctOrOper lexes a punctuation or operator symbol, preferring the
// longest match.
func (l *Lexer) lexPunctOrOper() (*Token, *report.Diagnostic) {
	l.markStart()

	c := l.read()
	symbol := string(c)

	// Try the two-character symbol first.  `&` and `|` only exist doubled, so
	// this lookup must run before the single character is rejected.
	if next := l.peek(); next != -1 {
		if longerKind, ok := symbolPatterns[symbol+string(next)]; ok {
			l.read()
			return l.makeToken(longerKind), nil
		}
	}

	kind, ok := symbolPatterns[symbol]
	if !ok {
		return nil, l.error("illegal character %q", c)
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// peek returns the next character without consuming it, or -1 at end of input.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return -1
	}

	return l.src[l.pos]
}

// read consumes the next character into the token buffer.
func (l *Lexer) read() rune {
	c := l.src[l.pos]
	l.tokBuff.WriteRune(c)
	l.advance(c)
	return c
}

// skip consumes the next character without adding it to the token buffer.
func (l *Lexer) skip() {
	l.advance(l.src[l.pos])
}

// advance moves the lexer position over c, updating line and column counters.
func (l *Lexer) advance(c rune) {
	l.pos++

	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// markStart records the current position as the start of the next token.
func (l *Lexer) markStart() {
	l.startLine = l.line
	l.startCol = l.col
}

// discard clears the token buffer without producing a token.
func (l *Lexer) discard() {
	l.tokBuff.Reset()
}

// makeToken produces a token of the given kind from the token buffer.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.currentSpan(),
	}
}

// error produces a syntax diagnostic at the current token position and resets
// the token buffer.
func (l *Lexer) error(msg string, args ...interface{}) *report.Diagnostic {
	l.tokBuff.Reset()
	return report.Errorf(report.KindSyntax, l.currentSpan(), msg, args...)
}

func (l *Lexer) currentSpan() *report.TextSpan {
	endCol := l.col - 1
	if endCol < l.startCol {
		endCol = l.startCol
	}

	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    endCol,
	}
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentChar(c rune) bool {
	return isFirstIdentChar(c) || isDecimalDigit(c)
}

// CharValue decodes the code point of a lexed character literal, including its
// escape sequences.
func CharValue(text string) int64 {
	body := []rune(text)

	if len(body) == 0 {
		return 0
	}

	if body[0] != '\\' {
		return int64(body[0])
	}

	switch body[1] {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case 'x':
		v, _ := strconv.ParseInt(string(body[2:]), 16, 64)
		return v
	default:
		return int64(body[1])
	}
}
