package syntax

import (
	"wabbitc/ast"
	"wabbitc/types"
)

// parseVarDecl parses a variable or constant declaration.
//
//	vardecl <- ('var' / 'const') ID type? ('=' expression)? ';'
//
// At least one of the type label and the initializer must be present; `const`
// declarations always require an initializer.
func (p *Parser) parseVarDecl() (ast.ASTNode, bool) {
	kw := p.tok
	p.next()

	nameTok, ok := p.want(TOK_IDENT)
	if !ok {
		return nil, false
	}

	declType := types.Undef
	if p.got(TOK_IDENT) {
		t, ok := types.Named(p.tok.Value)
		if !ok {
			p.error(p.tok.Span, "unknown type name `%s`", p.tok.Value)
			return nil, false
		}

		declType = t
		p.next()
	}

	var initializer ast.Expr
	if p.got(TOK_ASSIGN) {
		p.next()

		initializer, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
	}

	isConst := kw.Kind == TOK_CONST
	if initializer == nil {
		if isConst {
			p.error(nameTok.Span, "constant declaration requires an initializer")
			return nil, false
		}

		if declType == types.Undef {
			p.error(nameTok.Span, "variable declaration requires a type or an initializer")
			return nil, false
		}
	}

	end, ok := p.want(TOK_SEMI)
	if !ok {
		return nil, false
	}

	return &ast.VarDecl{
		ASTBase:     ast.NewASTBaseOver(kw.Span, end.Span),
		Name:        nameTok.Value,
		DeclType:    declType,
		Initializer: initializer,
		Const:       isConst,
	}, true
}

// parseAssignment parses an assignment statement.
//
//	assignment <- location '=' expression ';'
func (p *Parser) parseAssignment() (ast.ASTNode, bool) {
	target, ok := p.parseLocation()
	if !ok {
		return nil, false
	}

	if _, ok := p.want(TOK_ASSIGN); !ok {
		return nil, false
	}

	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	end, ok := p.want(TOK_SEMI)
	if !ok {
		return nil, false
	}

	return &ast.Assignment{
		ASTBase: ast.NewASTBaseOver(target.Span(), end.Span),
		Target:  target,
		Value:   value,
	}, true
}

// parsePrintStmt parses `print_stmt <- 'print' expression ';'`.
func (p *Parser) parsePrintStmt() (ast.ASTNode, bool) {
	kw := p.tok
	p.next()

	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	end, ok := p.want(TOK_SEMI)
	if !ok {
		return nil, false
	}

	return &ast.PrintStmt{
		ASTBase: ast.NewASTBaseOver(kw.Span, end.Span),
		Value:   value,
	}, true
}

// parseIfStmt parses a conditional statement.
//
//	if_stmt <- 'if' expression block ('else' block)?
func (p *Parser) parseIfStmt() (ast.ASTNode, bool) {
	kw := p.tok
	p.next()

	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	consequence, ok := p.parseBlock()
	if !ok {
		return nil, false
	}

	var alternative *ast.Block
	end := consequence.Span()

	if p.got(TOK_ELSE) {
		p.next()

		alternative, ok = p.parseBlock()
		if !ok {
			return nil, false
		}

		end = alternative.Span()
	}

	return &ast.IfStmt{
		ASTBase:     ast.NewASTBaseOver(kw.Span, end),
		Cond:        cond,
		Consequence: consequence,
		Alternative: alternative,
	}, true
}

// parseWhileStmt parses `while_stmt <- 'while' expression block`.
func (p *Parser) parseWhileStmt() (ast.ASTNode, bool) {
	kw := p.tok
	p.next()

	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}

	return &ast.WhileStmt{
		ASTBase: ast.NewASTBaseOver(kw.Span, body.Span()),
		Cond:    cond,
		Body:    body,
	}, true
}

// parseLoopCtrlStmt parses a break or continue statement.
func (p *Parser) parseLoopCtrlStmt() (ast.ASTNode, bool) {
	kw := p.tok
	p.next()

	end, ok := p.want(TOK_SEMI)
	if !ok {
		return nil, false
	}

	base := ast.NewASTBaseOver(kw.Span, end.Span)
	if kw.Kind == TOK_BREAK {
		return &ast.BreakStmt{ASTBase: base}, true
	}

	return &ast.ContinueStmt{ASTBase: base}, true
}

// parseReturnStmt parses `return_stmt <- 'return' expression ';'`.
func (p *Parser) parseReturnStmt() (ast.ASTNode, bool) {
	kw := p.tok
	p.next()

	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	end, ok := p.want(TOK_SEMI)
	if !ok {
		return nil, false
	}

	return &ast.ReturnStmt{
		ASTBase: ast.NewASTBaseOver(kw.Span, end.Span),
		Value:   value,
	}, true
}

// -----------------------------------------------------------------------------

// parseFuncDef parses a function definition.
//
//	funcdef <- 'func' ID '(' parameters ')' type block
func (p *Parser) parseFuncDef() (ast.ASTNode, bool) {
	kw := p.tok
	p.next()

	name, params, returnType, ok := p.parseFuncHeader()
	if !ok {
		return nil, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}

	return &ast.FuncDef{
		ASTBase:    ast.NewASTBaseOver(kw.Span, body.Span()),
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}, true
}

// parseImportDecl parses an external function declaration.
//
//	importdecl <- 'import' 'func' ID '(' parameters ')' type ';'
func (p *Parser) parseImportDecl() (ast.ASTNode, bool) {
	kw := p.tok
	p.next()

	if _, ok := p.want(TOK_FUNC); !ok {
		return nil, false
	}

	name, params, returnType, ok := p.parseFuncHeader()
	if !ok {
		return nil, false
	}

	end, ok := p.want(TOK_SEMI)
	if !ok {
		return nil, false
	}

	return &ast.ImportDecl{
		ASTBase:    ast.NewASTBaseOver(kw.Span, end.Span),
		Name:       name,
		Params:     params,
		ReturnType: returnType,
	}, true
}

// parseFuncHeader parses `ID '(' parameters ')' type`, shared between function
// definitions and imports.
func (p *Parser) parseFuncHeader() (string, []ast.Param, types.Type, bool) {
	nameTok, ok := p.want(TOK_IDENT)
	if !ok {
		return "", nil, types.Undef, false
	}

	if _, ok := p.want(TOK_LPAREN); !ok {
		return "", nil, types.Undef, false
	}

	var params []ast.Param
	for !p.got(TOK_RPAREN) {
		if len(params) > 0 {
			if _, ok := p.want(TOK_COMMA); !ok {
				return "", nil, types.Undef, false
			}
		}

		paramTok, ok := p.want(TOK_IDENT)
		if !ok {
			return "", nil, types.Undef, false
		}

		paramType, ok := p.parseTypeName()
		if !ok {
			return "", nil, types.Undef, false
		}

		params = append(params, ast.Param{
			Name:     paramTok.Value,
			Type:     paramType,
			NameSpan: paramTok.Span,
		})
	}

	p.next() // closing paren

	returnType, ok := p.parseTypeName()
	if !ok {
		return "", nil, types.Undef, false
	}

	return nameTok.Value, params, returnType, true
}

// parseTypeName parses `type <- 'int' / 'float' / 'char' / 'bool'`.
func (p *Parser) parseTypeName() (types.Type, bool) {
	tok, ok := p.want(TOK_IDENT)
	if !ok {
		return types.Undef, false
	}

	t, ok := types.Named(tok.Value)
	if !ok {
		p.error(tok.Span, "unknown type name `%s`", tok.Value)
		return types.Undef, false
	}

	return t, true
}
