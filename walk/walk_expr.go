package walk

import (
	"fmt"

	"wabbitc/ast"
	"wabbitc/common"
	"wabbitc/report"
	"wabbitc/types"
)

// walkExpr walks an expression in a read context, annotating it and all of its
// children with resolved types.  On failure the expression is annotated with
// types.Undef and walking continues.
func (w *Walker) walkExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Literal:
		w.walkLiteral(v)
	case *ast.Name:
		if sym := w.lookup(v.Name, v.Span()); sym != nil {
			v.Sym = sym
			v.SetType(sym.Type)
		} else {
			v.Sym = nil
			v.SetType(types.Undef)
		}
	case *ast.BinOp:
		w.walkBinOp(v)
	case *ast.UnOp:
		w.walkUnOp(v)
	case *ast.Location:
		w.walkLocation(v)
	case *ast.Cast:
		w.walkCast(v)
	case *ast.Call:
		w.walkCall(v)
	default:
		panic(fmt.Sprintf("cannot check expression of type %T", expr))
	}
}

// walkLiteral annotates a literal with its intrinsic type.
func (w *Walker) walkLiteral(lit *ast.Literal) {
	switch lit.Kind {
	case ast.LitInt:
		lit.SetType(types.Int)
	case ast.LitFloat:
		lit.SetType(types.Float)
	case ast.LitBool:
		lit.SetType(types.Bool)
	case ast.LitChar:
		lit.SetType(types.Char)
	}
}

// walkBinOp walks a binary operator application and resolves its result type
// from the operator rule table.
func (w *Walker) walkBinOp(bop *ast.BinOp) {
	w.walkExpr(bop.Lhs)
	w.walkExpr(bop.Rhs)

	lhsType, rhsType := bop.Lhs.Type(), bop.Rhs.Type()

	// An undef operand was already diagnosed; don't cascade.
	if lhsType == types.Undef || rhsType == types.Undef {
		bop.SetType(types.Undef)
		return
	}

	if result, ok := resolveBinOp(bop.Op, lhsType, rhsType); ok {
		bop.SetType(result)
	} else {
		w.error(report.KindTypeResolve, bop.Span(),
			"operator `%s` is not defined for `%s` and `%s`", bop.Op, lhsType, rhsType)
		bop.SetType(types.Undef)
	}
}

// walkUnOp walks a unary operator application.  Sign operators pass the
// operand type through; `!` requires bool; the memory-grow operator `^` takes
// an int size and always yields int.
func (w *Walker) walkUnOp(uop *ast.UnOp) {
	w.walkExpr(uop.Operand)
	operandType := uop.Operand.Type()

	switch uop.Op {
	case "-", "+":
		if operandType == types.Undef || types.IsNumeric(operandType) {
			uop.SetType(operandType)
		} else {
			w.error(report.KindTypeResolve, uop.Span(),
				"operator `%s` is not defined for `%s`", uop.Op, operandType)
			uop.SetType(types.Undef)
		}
	case "!":
		if operandType == types.Undef || operandType == types.Bool {
			uop.SetType(operandType)
		} else {
			w.error(report.KindTypeResolve, uop.Span(),
				"operator `!` is not defined for `%s`", operandType)
			uop.SetType(types.Undef)
		}
	case "^":
		if operandType != types.Undef && operandType != types.Int {
			w.error(report.KindTypeResolve, uop.Span(),
				"memory grow requires an `int` size, not `%s`", operandType)
		}

		// Grow always yields the new memory size.
		uop.SetType(types.Int)
	}
}

// walkLocation walks a raw memory location.  The address must be an int;
// locations read and write single bytes presented as ints.
func (w *Walker) walkLocation(loc *ast.Location) {
	w.walkExpr(loc.Addr)

	if addrType := loc.Addr.Type(); addrType != types.Undef && addrType != types.Int {
		w.error(report.KindTypeResolve, loc.Addr.Span(),
			"memory address must be an `int`, not `%s`", addrType)
	}

	loc.SetType(types.Int)
}

// walkCast walks an explicit type cast.  Only numeric types may be cast.
func (w *Walker) walkCast(cast *ast.Cast) {
	w.walkExpr(cast.Src)

	if !types.IsNumeric(cast.Target) {
		w.error(report.KindTypeResolve, cast.Span(), "cannot cast to `%s`", cast.Target)
	} else if srcType := cast.Src.Type(); srcType != types.Undef && !types.IsNumeric(srcType) {
		w.error(report.KindTypeResolve, cast.Span(), "cannot cast `%s` to `%s`", srcType, cast.Target)
	}

	// The cast's type is definite even when its operand is not: this bounds
	// error cascades to one diagnostic per actual mistake.
	cast.SetType(cast.Target)
}

// walkCall walks a function call, validating argument arity and per-position
// type equality against the callee's declared parameters.
func (w *Walker) walkCall(call *ast.Call) {
	for _, arg := range call.Args {
		w.walkExpr(arg)
	}

	sym := w.lookup(call.Name, call.Span())
	if sym == nil {
		call.Sym = nil
		call.SetType(types.Undef)
		return
	}

	if sym.DefKind != common.DefKindFunc {
		w.error(report.KindTypeResolve, call.Span(), "`%s` is not a function", call.Name)
		call.Sym = nil
		call.SetType(types.Undef)
		return
	}

	call.Sym = sym
	call.SetType(sym.Type)

	if len(call.Args) != len(sym.ParamTypes) {
		w.error(report.KindArity, call.Span(),
			"`%s` takes %d argument(s) but %d were given",
			call.Name, len(sym.ParamTypes), len(call.Args))
		return
	}

	for i, arg := range call.Args {
		argType := arg.Type()
		if argType != types.Undef && argType != sym.ParamTypes[i] {
			w.error(report.KindTypeMismatch, arg.Span(),
				"argument %d of `%s` must be `%s`, not `%s`",
				i+1, call.Name, sym.ParamTypes[i], argType)
		}
	}
}

// walkLHSExpr walks an expression used as an assignment target.  The target is
// marked as a write use before resolution so that mutability can be validated.
func (w *Walker) walkLHSExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Name:
		sym := w.lookup(v.Name, v.Span())
		if sym == nil {
			v.Sym = nil
			v.SetType(types.Undef)
			return
		}

		v.Sym = sym
		v.SetType(sym.Type)

		if sym.DefKind == common.DefKindFunc {
			w.error(report.KindTypeResolve, v.Span(), "cannot assign to function `%s`", v.Name)
		} else if sym.Constant {
			w.error(report.KindConstAssignment, v.Span(), "cannot assign to constant `%s`", v.Name)
		}
	case *ast.Location:
		w.walkLocation(v)
	default:
		// The parser only produces names and locations as targets.
		w.walkExpr(expr)
	}
}
