package syntax

import (
	"strconv"

	"wabbitc/ast"
	"wabbitc/types"
)

// parseExpr parses a full expression.
//
//	expression <- orterm ('||' orterm)*
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinOpChain(p.parseOrTerm, TOK_LOR)
}

// parseOrTerm parses `orterm <- andterm ('&&' andterm)*`.
func (p *Parser) parseOrTerm() (ast.Expr, bool) {
	return p.parseBinOpChain(p.parseAndTerm, TOK_LAND)
}

// parseAndTerm parses the comparison level.
//
//	andterm <- relterm (('<' / '>' / '<=' / '>=' / '==' / '!=') relterm)*
func (p *Parser) parseAndTerm() (ast.Expr, bool) {
	return p.parseBinOpChain(p.parseRelTerm, TOK_LT, TOK_GT, TOK_LE, TOK_GE, TOK_EQ, TOK_NE)
}

// parseRelTerm parses the additive level.
//
//	relterm <- addterm (('+' / '-') addterm)*
func (p *Parser) parseRelTerm() (ast.Expr, bool) {
	return p.parseBinOpChain(p.parseAddTerm, TOK_PLUS, TOK_MINUS)
}

// parseAddTerm parses the multiplicative level.
//
//	addterm <- factor (('*' / '/') factor)*
func (p *Parser) parseAddTerm() (ast.Expr, bool) {
	return p.parseBinOpChain(p.parseFactor, TOK_STAR, TOK_SLASH)
}

// parseBinOpChain parses a left-associative chain of binary operators drawn
// from kinds, with operands parsed by sub.
func (p *Parser) parseBinOpChain(sub func() (ast.Expr, bool), kinds ...int) (ast.Expr, bool) {
	lhs, ok := sub()
	if !ok {
		return nil, false
	}

	for p.gotOneOf(kinds...) {
		opTok := p.tok
		p.next()

		rhs, ok := sub()
		if !ok {
			return nil, false
		}

		lhs = &ast.BinOp{
			ExprBase: ast.NewExprBase(ast.NewASTBaseOver(lhs.Span(), rhs.Span())),
			Op:       opTok.Value,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs, true
}

// gotOneOf returns whether the parser's current token kind is one of kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// parseFactor parses an expression factor.
//
//	factor <- literal
//	       / ('+' / '-' / '!' / '^') factor
//	       / '(' expression ')'
//	       / type '(' expression ')'
//	       / ID '(' arguments ')'
//	       / location
func (p *Parser) parseFactor() (ast.Expr, bool) {
	switch p.tok.Kind {
	case TOK_INTLIT, TOK_FLOATLIT, TOK_CHARLIT, TOK_TRUE, TOK_FALSE:
		return p.parseLiteral()

	case TOK_PLUS, TOK_MINUS, TOK_NOT, TOK_GROW:
		opTok := p.tok
		p.next()

		operand, ok := p.parseFactor()
		if !ok {
			return nil, false
		}

		return &ast.UnOp{
			ExprBase: ast.NewExprBase(ast.NewASTBaseOver(opTok.Span, operand.Span())),
			Op:       opTok.Value,
			Operand:  operand,
		}, true

	case TOK_LPAREN:
		p.next()

		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}

		if _, ok := p.want(TOK_RPAREN); !ok {
			return nil, false
		}

		return expr, true

	case TOK_IDENT:
		return p.parseNameOrCall()

	case TOK_DEREF:
		return p.parseLocation()

	default:
		p.error(p.tok.Span, "expected an expression, found %s", tokenKindName(p.tok.Kind))
		return nil, false
	}
}

// parseLiteral parses an integer, float, bool, or char literal.
func (p *Parser) parseLiteral() (ast.Expr, bool) {
	tok := p.tok
	p.next()

	lit := &ast.Literal{
		ExprBase: ast.NewExprBase(ast.NewASTBaseOn(tok.Span)),
		Text:     tok.Value,
	}

	switch tok.Kind {
	case TOK_INTLIT:
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			p.error(tok.Span, "integer literal out of range")
			return nil, false
		}

		lit.Kind = ast.LitInt
		lit.IntVal = v
	case TOK_FLOATLIT:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.error(tok.Span, "invalid float literal")
			return nil, false
		}

		lit.Kind = ast.LitFloat
		lit.FloatVal = v
	case TOK_TRUE, TOK_FALSE:
		lit.Kind = ast.LitBool
		if tok.Kind == TOK_TRUE {
			lit.IntVal = 1
		}
	case TOK_CHARLIT:
		lit.Kind = ast.LitChar
		lit.IntVal = CharValue(tok.Value)
	}

	return lit, true
}

// parseNameOrCall parses a name reference, a function call, or a type cast.
// Casts are calls whose callee names a primitive type.
func (p *Parser) parseNameOrCall() (ast.Expr, bool) {
	nameTok := p.tok
	p.next()

	if !p.got(TOK_LPAREN) {
		return &ast.Name{
			ExprBase: ast.NewExprBase(ast.NewASTBaseOn(nameTok.Span)),
			Name:     nameTok.Value,
		}, true
	}

	if target, ok := types.Named(nameTok.Value); ok {
		p.next()

		src, ok := p.parseExpr()
		if !ok {
			return nil, false
		}

		end, ok := p.want(TOK_RPAREN)
		if !ok {
			return nil, false
		}

		return &ast.Cast{
			ExprBase: ast.NewExprBase(ast.NewASTBaseOver(nameTok.Span, end.Span)),
			Target:   target,
			Src:      src,
		}, true
	}

	p.next()

	var args []ast.Expr
	for !p.got(TOK_RPAREN) {
		if len(args) > 0 {
			if _, ok := p.want(TOK_COMMA); !ok {
				return nil, false
			}
		}

		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}

		args = append(args, arg)
	}

	end := p.tok
	p.next()

	return &ast.Call{
		ExprBase: ast.NewExprBase(ast.NewASTBaseOver(nameTok.Span, end.Span)),
		Name:     nameTok.Value,
		Args:     args,
	}, true
}

// parseLocation parses `location <- ID / '`' factor`.  The backtick binds like
// a unary operator: in `` `addr + 10 `` the addition applies to the loaded
// value, not the address.
func (p *Parser) parseLocation() (ast.Expr, bool) {
	if p.got(TOK_IDENT) {
		nameTok := p.tok
		p.next()

		return &ast.Name{
			ExprBase: ast.NewExprBase(ast.NewASTBaseOn(nameTok.Span)),
			Name:     nameTok.Value,
		}, true
	}

	tick, ok := p.want(TOK_DEREF)
	if !ok {
		return nil, false
	}

	addr, ok := p.parseFactor()
	if !ok {
		return nil, false
	}

	return &ast.Location{
		ExprBase: ast.NewExprBase(ast.NewASTBaseOver(tick.Span, addr.Span())),
		Addr:     addr,
	}, true
}
