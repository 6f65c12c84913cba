package lower

import (
	"wabbitc/ast"
	"wabbitc/ir"
	"wabbitc/types"
)

// lowerExpr lowers an expression.  Every expression leaves exactly one value
// on the stack.
func (l *Lowerer) lowerExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Literal:
		l.lowerLiteral(v)
	case *ast.Name:
		l.lowerName(v)
	case *ast.BinOp:
		l.lowerBinOp(v)
	case *ast.UnOp:
		l.lowerUnOp(v)
	case *ast.Location:
		l.lowerExpr(v.Addr)
		l.emit(ir.Inst(ir.OpPEEKB))
	case *ast.Cast:
		l.lowerCast(v)
	case *ast.Call:
		for _, arg := range v.Args {
			l.lowerExpr(arg)
		}
		l.emit(ir.NameInst(ir.OpCALL, v.Name))
	default:
		panic(ice("cannot lower expression of type %T", expr))
	}
}

// lowerLiteral lowers a literal to a constant push.  Bools and chars push
// their integer representation.
func (l *Lowerer) lowerLiteral(lit *ast.Literal) {
	if lit.Kind == ast.LitFloat {
		l.emit(ir.ConstFloat(lit.FloatVal))
	} else {
		l.emit(ir.ConstInt(lit.IntVal))
	}
}

// lowerName lowers a variable read.
func (l *Lowerer) lowerName(name *ast.Name) {
	if name.Sym == nil {
		panic(ice("name `%s` has no symbol", name.Name))
	}

	if name.Sym.Global {
		l.emit(ir.NameInst(ir.OpGLOBAL_GET, name.Sym.Name))
	} else {
		l.emit(ir.NameInst(ir.OpLOCAL_GET, l.localSlot(name.Sym)))
	}
}

// lowerBinOp lowers a binary operator: both operands pushed left to right,
// then the type-specialized instruction.  Logical && and || lower to the
// integer bitwise instructions, which coincide with them on {0, 1}.
func (l *Lowerer) lowerBinOp(bop *ast.BinOp) {
	l.lowerExpr(bop.Lhs)
	l.lowerExpr(bop.Rhs)
	l.emit(ir.Inst(binOpcode(bop.Op, bop.Lhs.Type())))
}

// lowerUnOp lowers a unary operator application.
func (l *Lowerer) lowerUnOp(uop *ast.UnOp) {
	switch uop.Op {
	case "+":
		// Unary plus is the identity.
		l.lowerExpr(uop.Operand)

	case "-":
		// Negation is subtraction from zero.
		if kindOf(uop.Operand.Type()) == ir.KindFloat {
			l.emit(ir.ConstFloat(0))
			l.lowerExpr(uop.Operand)
			l.emit(ir.Inst(ir.OpSUBF))
		} else {
			l.emit(ir.ConstInt(0))
			l.lowerExpr(uop.Operand)
			l.emit(ir.Inst(ir.OpSUBI))
		}

	case "!":
		l.lowerExpr(uop.Operand)
		l.emit(ir.ConstInt(0), ir.Inst(ir.OpEQI))

	case "^":
		l.lowerExpr(uop.Operand)
		l.emit(ir.Inst(ir.OpGROW))

	default:
		panic(ice("cannot lower unary operator `%s`", uop.Op))
	}
}

// lowerCast lowers an explicit numeric cast.  Casts between same-kind types
// are representation no-ops.
func (l *Lowerer) lowerCast(cast *ast.Cast) {
	l.lowerExpr(cast.Src)

	srcKind, dstKind := kindOf(cast.Src.Type()), kindOf(cast.Target)
	switch {
	case srcKind == ir.KindInt && dstKind == ir.KindFloat:
		l.emit(ir.Inst(ir.OpITOF))
	case srcKind == ir.KindFloat && dstKind == ir.KindInt:
		l.emit(ir.Inst(ir.OpFTOI))
	}
}

// -----------------------------------------------------------------------------

// intBinOpcodes and floatBinOpcodes map operator lexemes to their
// type-specialized instructions.
var intBinOpcodes = map[string]ir.Opcode{
	"+":  ir.OpADDI,
	"-":  ir.OpSUBI,
	"*":  ir.OpMULI,
	"/":  ir.OpDIVI,
	"<":  ir.OpLTI,
	"<=": ir.OpLEI,
	">":  ir.OpGTI,
	">=": ir.OpGEI,
	"==": ir.OpEQI,
	"!=": ir.OpNEI,
	"&&": ir.OpANDI,
	"||": ir.OpORI,
}

var floatBinOpcodes = map[string]ir.Opcode{
	"+":  ir.OpADDF,
	"-":  ir.OpSUBF,
	"*":  ir.OpMULF,
	"/":  ir.OpDIVF,
	"<":  ir.OpLTF,
	"<=": ir.OpLEF,
	">":  ir.OpGTF,
	">=": ir.OpGEF,
	"==": ir.OpEQF,
	"!=": ir.OpNEF,
}

// binOpcode selects the instruction for a binary operator applied to operands
// of the given source type.
func binOpcode(op string, operandType types.Type) ir.Opcode {
	var opcode ir.Opcode
	var ok bool

	if kindOf(operandType) == ir.KindFloat {
		opcode, ok = floatBinOpcodes[op]
	} else {
		opcode, ok = intBinOpcodes[op]
	}

	if !ok {
		panic(ice("no instruction for operator `%s` on `%s`", op, operandType))
	}

	return opcode
}

// printOpcode selects the print instruction for a value of the given source
// type.
func printOpcode(t types.Type) ir.Opcode {
	switch t {
	case types.Float:
		return ir.OpPRINTF
	case types.Char:
		return ir.OpPRINTB
	case types.Int, types.Bool:
		return ir.OpPRINTI
	}

	panic(ice("cannot print a value of type `%s`", t))
}
