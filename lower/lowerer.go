package lower

import (
	"fmt"

	"wabbitc/ast"
	"wabbitc/common"
	"wabbitc/ir"
	"wabbitc/types"
)

// EntryFunctionName is the name of the synthesized function that holds the
// program's top level statements.
const EntryFunctionName = "main"

// InternalError reports a defect in the compiler itself: lowering was handed a
// tree that violates the checker's postconditions.  It is never produced by a
// mistake in user source.
type InternalError struct {
	Msg string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Msg
}

// Lowerer translates a checked, annotated AST into a flat stack IR module.  It
// assumes a well formed input: every expression annotated with a definite
// type, every name bound to a symbol.  Any violation is an internal error.
type Lowerer struct {
	// The module being built.
	mod *ir.Module

	// The function whose body is currently being emitted.
	fn *ir.Function

	// The IR slot name of each local symbol in the current function.  Shadowed
	// locals share a source name but are distinct symbols, so each gets a slot
	// of its own.
	slotNames map[*common.Symbol]string

	// The slot names already taken in the current function.
	usedSlots map[string]bool
}

// Generate lowers a checked program to an IR module.  It must only be called
// on a tree whose check produced zero diagnostics; handing it anything else
// returns an *InternalError.
func Generate(prog *ast.Program) (mod *ir.Module, err error) {
	defer func() {
		if p := recover(); p != nil {
			if ie, ok := p.(*InternalError); ok {
				mod, err = nil, ie
				return
			}

			panic(p)
		}
	}()

	l := &Lowerer{mod: ir.NewModule()}

	// The entry function comes first in the module.  Top level statements are
	// lowered into its body; function definitions are lowered into functions
	// of their own.
	entry := l.mod.AddFunction(ir.NewFunction(EntryFunctionName, ir.KindInt))
	l.enterFunction(entry)

	var funcDefs []*ast.FuncDef
	for _, stmt := range prog.Stmts {
		switch v := stmt.(type) {
		case *ast.FuncDef:
			funcDefs = append(funcDefs, v)
		case *ast.ImportDecl:
			l.lowerImportDecl(v)
		default:
			l.lowerStmt(stmt)
		}
	}

	entry.Emit(ir.ConstInt(0), ir.Inst(ir.OpRET))

	for _, fd := range funcDefs {
		l.lowerFuncDef(fd)
	}

	return l.mod, nil
}

// -----------------------------------------------------------------------------

// lowerFuncDef lowers a function definition into a new IR function.
func (l *Lowerer) lowerFuncDef(fd *ast.FuncDef) {
	fn := l.mod.AddFunction(ir.NewFunction(fd.Name, kindOf(fd.ReturnType)))

	outer := l.fn
	l.enterFunction(fn)

	// Parameters register first, so they always keep their source names.
	for i := range fd.Params {
		param := &fd.Params[i]
		if param.Sym == nil {
			panic(ice("parameter `%s` has no symbol", param.Name))
		}

		fn.DefineParam(l.defineSlot(param.Sym), kindOf(param.Type))
	}

	l.lowerBlock(fd.Body)

	// Backends require every function to end at a return.  A body whose final
	// statement already returns needs nothing more; otherwise the function
	// falls off the end and returns the zero value of its kind.
	if n := len(fn.Code); n == 0 || fn.Code[n-1].Op != ir.OpRET {
		if fn.ReturnKind == ir.KindFloat {
			fn.Emit(ir.ConstFloat(0))
		} else {
			fn.Emit(ir.ConstInt(0))
		}
		fn.Emit(ir.Inst(ir.OpRET))
	}

	l.fn = outer
}

// lowerImportDecl records an external function's signature on the module.
func (l *Lowerer) lowerImportDecl(id *ast.ImportDecl) {
	fn := ir.NewFunction(id.Name, kindOf(id.ReturnType))

	for _, param := range id.Params {
		fn.DefineParam(param.Name, kindOf(param.Type))
	}

	l.mod.Imports = append(l.mod.Imports, fn)
}

// -----------------------------------------------------------------------------

// kindOf maps a source type to its low-level representation kind.
func kindOf(t types.Type) ir.Kind {
	switch t {
	case types.Int, types.Bool, types.Char:
		return ir.KindInt
	case types.Float:
		return ir.KindFloat
	}

	panic(ice("no representation kind for type `%s`", t))
}

// emit appends instructions to the current function.
func (l *Lowerer) emit(instrs ...ir.Instruction) {
	l.fn.Emit(instrs...)
}

// enterFunction makes fn the emission target and resets the per-function
// local slot state.
func (l *Lowerer) enterFunction(fn *ir.Function) {
	l.fn = fn
	l.slotNames = make(map[*common.Symbol]string)
	l.usedSlots = make(map[string]bool)
}

// defineSlot assigns a local symbol its IR slot name.  The first symbol with a
// given source name keeps it; shadowing symbols get a numeric suffix.
func (l *Lowerer) defineSlot(sym *common.Symbol) string {
	name := sym.Name
	for n := 1; l.usedSlots[name]; n++ {
		name = fmt.Sprintf("%s.%d", sym.Name, n)
	}

	l.usedSlots[name] = true
	l.slotNames[sym] = name
	return name
}

// localSlot looks up the slot name assigned to a local symbol.
func (l *Lowerer) localSlot(sym *common.Symbol) string {
	name, ok := l.slotNames[sym]
	if !ok {
		panic(ice("local `%s` has no slot", sym.Name))
	}

	return name
}

// ice builds the internal error payload thrown on a checker postcondition
// violation.
func ice(format string, args ...interface{}) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
