package syntax

import (
	"wabbitc/ast"
	"wabbitc/report"
)

// Parser is the recursive descent parser for a Wabbit source text.  All
// parsing functions assume that they begin with the parser centered on the
// first token of their production and consume all tokens of their production,
// leaving the parser on the next token.  Syntax errors are accumulated as
// diagnostics; the parser recovers at statement boundaries so that one run
// reports more than the first error.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source text.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// diags is the ordered list of syntax diagnostics found so far.
	diags []*report.Diagnostic
}

// Parse parses a Wabbit source text into a program AST.  The returned
// diagnostic list is empty exactly when the text is syntactically well formed.
// A non-nil program is returned even when diagnostics exist, but such a
// program must not be fed to later passes.
func Parse(src string) (*ast.Program, []*report.Diagnostic) {
	p := &Parser{lexer: NewLexer(src)}
	p.next()

	prog := p.parseProgram()
	return prog, p.diags
}

// parseProgram parses `program <- statement* EOF`.
func (p *Parser) parseProgram() *ast.Program {
	start := p.tok.Span

	var stmts []ast.ASTNode
	for !p.got(TOK_EOF) {
		if stmt, ok := p.parseStmt(); ok {
			stmts = append(stmts, stmt)
		} else {
			p.synchronize()

			// synchronize stops on a closing brace for the enclosing block's
			// sake, but the top level has no enclosing block.  Consume it so
			// recovery always makes progress.
			if p.got(TOK_RBRACE) {
				p.next()
			}
		}
	}

	return &ast.Program{
		ASTBase: ast.NewASTBaseOver(start, p.tok.Span),
		Stmts:   stmts,
	}
}

// parseBlock parses `'{' statement* '}'`.
func (p *Parser) parseBlock() (*ast.Block, bool) {
	start, ok := p.want(TOK_LBRACE)
	if !ok {
		return nil, false
	}

	var stmts []ast.ASTNode
	for !p.got(TOK_RBRACE) {
		if p.got(TOK_EOF) {
			p.reject(TOK_RBRACE)
			return nil, false
		}

		if stmt, ok := p.parseStmt(); ok {
			stmts = append(stmts, stmt)
		} else {
			p.synchronize()
		}
	}

	end := p.tok
	p.next()

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(start.Span, end.Span),
		Stmts:   stmts,
	}, true
}

// parseStmt parses a single statement, dispatching on the leading token.
func (p *Parser) parseStmt() (ast.ASTNode, bool) {
	switch p.tok.Kind {
	case TOK_VAR, TOK_CONST:
		return p.parseVarDecl()
	case TOK_FUNC:
		return p.parseFuncDef()
	case TOK_IMPORT:
		return p.parseImportDecl()
	case TOK_PRINT:
		return p.parsePrintStmt()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileStmt()
	case TOK_BREAK, TOK_CONTINUE:
		return p.parseLoopCtrlStmt()
	case TOK_RETURN:
		return p.parseReturnStmt()
	case TOK_IDENT, TOK_DEREF:
		return p.parseAssignment()
	default:
		p.error(p.tok.Span, "expected a statement, found %s", tokenKindName(p.tok.Kind))
		return nil, false
	}
}

// synchronize skips tokens until the parser is positioned just past the next
// statement terminator (or on a closing brace or EOF), discarding the
// remainder of a malformed statement.
func (p *Parser) synchronize() {
	for {
		switch p.tok.Kind {
		case TOK_SEMI:
			p.next()
			return
		case TOK_RBRACE, TOK_EOF:
			return
		default:
			p.next()
		}
	}
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  Lexical errors are recorded as
// diagnostics and lexing continues past them.
func (p *Parser) next() {
	for {
		tok, diag := p.lexer.NextToken()
		if diag != nil {
			p.diags = append(p.diags, diag)
			continue
		}

		p.tok = tok
		return
	}
}

// got returns true if the parser is on a token of the given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind and consumes
// it, returning the consumed token.
func (p *Parser) want(kind int) (*Token, bool) {
	if !p.got(kind) {
		p.reject(kind)
		return nil, false
	}

	tok := p.tok
	p.next()
	return tok, true
}

// reject records a syntax diagnostic for an unexpected token.
func (p *Parser) reject(wanted int) {
	p.error(p.tok.Span, "expected %s, found %s", tokenKindName(wanted), tokenKindName(p.tok.Kind))
}

// error records a syntax diagnostic.
func (p *Parser) error(span *report.TextSpan, msg string, args ...interface{}) {
	p.diags = append(p.diags, report.Errorf(report.KindSyntax, span, msg, args...))
}
