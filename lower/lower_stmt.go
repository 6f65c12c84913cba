package lower

import (
	"wabbitc/ast"
	"wabbitc/common"
	"wabbitc/ir"
)

// lowerStmt lowers a single statement.  Statements have no net stack effect:
// every value an expression pushes is consumed by the statement that contains
// it.
func (l *Lowerer) lowerStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		l.lowerVarDecl(v)
	case *ast.Assignment:
		l.lowerAssignment(v)
	case *ast.PrintStmt:
		l.lowerPrintStmt(v)
	case *ast.IfStmt:
		l.lowerIfStmt(v)
	case *ast.WhileStmt:
		l.lowerWhileStmt(v)
	case *ast.BreakStmt:
		// Exit the enclosing loop unconditionally: a conditional break whose
		// test is already zero.
		l.emit(ir.ConstInt(0), ir.Inst(ir.OpCBREAK))
	case *ast.ContinueStmt:
		l.emit(ir.Inst(ir.OpCONTINUE))
	case *ast.ReturnStmt:
		l.lowerExpr(v.Value)
		l.emit(ir.Inst(ir.OpRET))
	default:
		panic(ice("cannot lower statement of type %T", stmt))
	}
}

// lowerBlock lowers a block's statements in order.
func (l *Lowerer) lowerBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		l.lowerStmt(stmt)
	}
}

// -----------------------------------------------------------------------------

// lowerVarDecl lowers a declaration: a slot on the module or current function
// plus, when there is an initializer, a store.
func (l *Lowerer) lowerVarDecl(vd *ast.VarDecl) {
	if vd.Sym == nil {
		panic(ice("declaration of `%s` has no symbol", vd.Name))
	}

	kind := kindOf(vd.Sym.Type)

	if vd.Sym.Global {
		l.mod.DefineGlobal(vd.Name, kind)
	} else {
		l.fn.DefineLocal(l.defineSlot(vd.Sym), kind)
	}

	if vd.Initializer != nil {
		l.lowerExpr(vd.Initializer)
		l.emitVarSet(vd.Sym)
	}
}

// lowerAssignment lowers a store through a named variable or a raw memory
// location.
func (l *Lowerer) lowerAssignment(as *ast.Assignment) {
	switch target := as.Target.(type) {
	case *ast.Name:
		l.lowerExpr(as.Value)

		if target.Sym == nil {
			panic(ice("assignment target `%s` has no symbol", target.Name))
		}

		l.emitVarSet(target.Sym)

	case *ast.Location:
		// POKE pops the value then the address, so the address goes first.
		l.lowerExpr(target.Addr)
		l.lowerExpr(as.Value)
		l.emit(ir.Inst(ir.OpPOKEB))

	default:
		panic(ice("cannot lower assignment target of type %T", as.Target))
	}
}

// emitVarSet emits the store instruction for a named variable.
func (l *Lowerer) emitVarSet(sym *common.Symbol) {
	if sym.Global {
		l.emit(ir.NameInst(ir.OpGLOBAL_SET, sym.Name))
	} else {
		l.emit(ir.NameInst(ir.OpLOCAL_SET, l.localSlot(sym)))
	}
}

// lowerPrintStmt lowers a print statement, selecting the print instruction
// from the value's source type: floats print as floats, chars as bytes, and
// ints and bools as integers.
func (l *Lowerer) lowerPrintStmt(ps *ast.PrintStmt) {
	l.lowerExpr(ps.Value)
	l.emit(ir.Inst(printOpcode(ps.Value.Type())))
}

// lowerIfStmt lowers a conditional into a structured IF region.
func (l *Lowerer) lowerIfStmt(ifStmt *ast.IfStmt) {
	l.lowerExpr(ifStmt.Cond)
	l.emit(ir.Inst(ir.OpIF))

	l.lowerBlock(ifStmt.Consequence)

	if ifStmt.Alternative != nil {
		l.emit(ir.Inst(ir.OpELSE))
		l.lowerBlock(ifStmt.Alternative)
	}

	l.emit(ir.Inst(ir.OpENDIF))
}

// lowerWhileStmt lowers a loop into a structured LOOP region.  The test runs
// at the top of every iteration and breaks the loop when it fails; the
// trailing CONTINUE branches back to the top.
func (l *Lowerer) lowerWhileStmt(whileStmt *ast.WhileStmt) {
	l.emit(ir.Inst(ir.OpLOOP))

	l.lowerExpr(whileStmt.Cond)
	l.emit(ir.Inst(ir.OpCBREAK))

	l.lowerBlock(whileStmt.Body)

	l.emit(ir.Inst(ir.OpCONTINUE), ir.Inst(ir.OpENDLOOP))
}
