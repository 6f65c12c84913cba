package walk

import (
	"fmt"

	"wabbitc/ast"
	"wabbitc/common"
	"wabbitc/report"
	"wabbitc/types"
)

// walkStmt walks a single statement.
func (w *Walker) walkStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		w.walkVarDecl(v)
	case *ast.Assignment:
		w.walkAssignment(v)
	case *ast.PrintStmt:
		w.walkExpr(v.Value)
	case *ast.IfStmt:
		w.walkIfStmt(v)
	case *ast.WhileStmt:
		w.walkWhileStmt(v)
	case *ast.BreakStmt:
		if w.loopDepth == 0 {
			w.error(report.KindScope, v.Span(), "`break` used outside of a loop")
		}
	case *ast.ContinueStmt:
		if w.loopDepth == 0 {
			w.error(report.KindScope, v.Span(), "`continue` used outside of a loop")
		}
	case *ast.ReturnStmt:
		w.walkReturnStmt(v)
	case *ast.FuncDef:
		w.walkFuncDef(v)
	case *ast.ImportDecl:
		w.walkImportDecl(v)
	case ast.Expr:
		w.walkExpr(v)
	default:
		panic(fmt.Sprintf("cannot check statement of type %T", stmt))
	}
}

// walkBlock walks a block's statements in a fresh child scope.
func (w *Walker) walkBlock(block *ast.Block) {
	w.pushScope()

	for _, stmt := range block.Stmts {
		w.walkStmt(stmt)
	}

	w.popScope()
}

// -----------------------------------------------------------------------------

// walkVarDecl walks a variable or constant declaration, reconciling the
// declared type with the initializer's inferred type.  The name is bound even
// when the declaration is ill typed so that later uses resolve.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) {
	declaredType := vd.DeclType

	if vd.Initializer != nil {
		w.walkExpr(vd.Initializer)
		initType := vd.Initializer.Type()

		if declaredType == types.Undef {
			declaredType = initType
		} else if initType != types.Undef && initType != declaredType {
			w.error(report.KindTypeMismatch, vd.Initializer.Span(),
				"`%s` is declared as `%s` but initialized with `%s`",
				vd.Name, declaredType, initType)
		}
	}

	sym := &common.Symbol{
		Name:     vd.Name,
		DefSpan:  vd.Span(),
		Type:     declaredType,
		DefKind:  common.DefKindValue,
		Constant: vd.Const,
	}

	w.define(sym)
	vd.Sym = sym
}

// walkAssignment walks an assignment statement.  The target and the value are
// both walked even when one is ill typed so neither side's diagnostics are
// lost.
func (w *Walker) walkAssignment(as *ast.Assignment) {
	w.walkLHSExpr(as.Target)
	w.walkExpr(as.Value)

	targetType, valueType := as.Target.Type(), as.Value.Type()
	if targetType == types.Undef || valueType == types.Undef {
		return
	}

	if targetType != valueType {
		w.error(report.KindTypeMismatch, as.Value.Span(),
			"cannot assign `%s` to a location of type `%s`", valueType, targetType)
	}
}

// walkIfStmt walks a conditional statement.  Both branches are walked even
// when the condition is ill typed.
func (w *Walker) walkIfStmt(ifStmt *ast.IfStmt) {
	w.walkCond(ifStmt.Cond)
	w.walkBlock(ifStmt.Consequence)

	if ifStmt.Alternative != nil {
		w.walkBlock(ifStmt.Alternative)
	}
}

// walkWhileStmt walks a loop statement, tracking the loop depth so that break
// and continue validate.
func (w *Walker) walkWhileStmt(whileStmt *ast.WhileStmt) {
	w.walkCond(whileStmt.Cond)

	w.loopDepth++
	w.walkBlock(whileStmt.Body)
	w.loopDepth--
}

// walkCond walks a control-flow test expression, which must be a bool.
func (w *Walker) walkCond(cond ast.Expr) {
	w.walkExpr(cond)

	if condType := cond.Type(); condType != types.Undef && condType != types.Bool {
		w.error(report.KindTypeMismatch, cond.Span(),
			"condition must be a `bool`, not `%s`", condType)
	}
}

// walkReturnStmt walks a return statement, checking the value against the
// enclosing function's return type.
func (w *Walker) walkReturnStmt(ret *ast.ReturnStmt) {
	w.walkExpr(ret.Value)

	if w.enclosingReturnType == types.Undef {
		w.error(report.KindScope, ret.Span(), "`return` used outside of a function")
		return
	}

	if valueType := ret.Value.Type(); valueType != types.Undef && valueType != w.enclosingReturnType {
		w.error(report.KindTypeMismatch, ret.Value.Span(),
			"function returns `%s`, not `%s`", w.enclosingReturnType, valueType)
	}
}

// -----------------------------------------------------------------------------

// walkFuncDef walks a function definition.  The function is bound in the
// enclosing scope before its body so that it may call itself; parameters live
// in a child scope of their own.  Definitions are only valid at the top level,
// but nested definitions are still fully walked after being diagnosed.
func (w *Walker) walkFuncDef(fd *ast.FuncDef) {
	if !w.atGlobalScope() {
		w.error(report.KindScope, fd.Span(), "function `%s` defined inside another function", fd.Name)
	}

	sym := w.defineFuncSymbol(fd.Name, fd.Span(), fd.Params, fd.ReturnType, false)
	fd.Sym = sym

	outerReturnType, outerLoopDepth := w.enclosingReturnType, w.loopDepth
	w.enclosingReturnType, w.loopDepth = fd.ReturnType, 0

	w.pushScope()

	for i := range fd.Params {
		param := &fd.Params[i]

		sym := &common.Symbol{
			Name:    param.Name,
			DefSpan: param.NameSpan,
			Type:    param.Type,
			DefKind: common.DefKindValue,
		}

		w.define(sym)
		param.Sym = sym
	}

	w.walkBlock(fd.Body)

	w.popScope()

	w.enclosingReturnType, w.loopDepth = outerReturnType, outerLoopDepth
}

// walkImportDecl walks an external function declaration.
func (w *Walker) walkImportDecl(id *ast.ImportDecl) {
	if !w.atGlobalScope() {
		w.error(report.KindScope, id.Span(), "imported function `%s` declared inside a function", id.Name)
	}

	id.Sym = w.defineFuncSymbol(id.Name, id.Span(), id.Params, id.ReturnType, true)
}

// defineFuncSymbol builds and binds the symbol for a function definition or
// import.
func (w *Walker) defineFuncSymbol(
	name string,
	span *report.TextSpan,
	params []ast.Param,
	returnType types.Type,
	imported bool,
) *common.Symbol {
	paramTypes := make([]types.Type, len(params))
	for i, param := range params {
		paramTypes[i] = param.Type
	}

	sym := &common.Symbol{
		Name:       name,
		DefSpan:    span,
		Type:       returnType,
		DefKind:    common.DefKindFunc,
		ParamTypes: paramTypes,
		Imported:   imported,
	}

	w.define(sym)
	return sym
}
