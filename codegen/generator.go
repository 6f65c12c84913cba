package codegen

import (
	"fmt"

	"wabbitc/ir"

	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
)

// Runtime function names.  The runtime provides printing, byte-addressed
// memory, and growth; everything else is generated inline.
const (
	rtPrintInt   = "_print_int"
	rtPrintFloat = "_print_float"
	rtPrintByte  = "_print_byte"
	rtGrowMemory = "_grow_memory"
	rtPeekInt    = "_peek_int"
	rtPokeInt    = "_poke_int"
	rtPeekFloat  = "_peek_float"
	rtPokeFloat  = "_poke_float"
	rtPeekByte   = "_peek_byte"
	rtPokeByte   = "_poke_byte"
)

// Generator translates a stack IR module into an LLVM module.  Integer-kind
// values are uniformly i32 on the evaluation stack; comparisons widen their i1
// result back to i32 and branch points narrow it again.  Float-kind values are
// double.
type Generator struct {
	// The stack IR module being translated.
	mod *ir.Module

	// The LLVM module being built.
	llMod *llir.Module

	// The LLVM functions of the module by name, runtime and imports included.
	llFuncs map[string]*llir.Func

	// The LLVM globals of the module by name.
	llGlobals map[string]*llir.Global

	// The runtime functions, declared once per module.
	rtFuncs map[string]*llir.Func
}

// Generate translates a stack IR module into LLVM IR.  Any failure is a
// defect in the IR generator, not in user source.
func Generate(mod *ir.Module) (llMod *llir.Module, err error) {
	defer func() {
		if p := recover(); p != nil {
			if ge, ok := p.(*generateError); ok {
				llMod, err = nil, ge
				return
			}

			panic(p)
		}
	}()

	g := &Generator{
		mod:       mod,
		llMod:     llir.NewModule(),
		llFuncs:   make(map[string]*llir.Func),
		llGlobals: make(map[string]*llir.Global),
		rtFuncs:   make(map[string]*llir.Func),
	}

	g.declareRuntime()
	g.declareGlobals()
	g.declareFunctions()

	for _, fn := range mod.Functions {
		g.generateFunction(fn)
	}

	return g.llMod, nil
}

// generateError reports a defect in the code generator or its input.
type generateError struct {
	Msg string
}

func (ge *generateError) Error() string {
	return "internal compiler error: " + ge.Msg
}

// fail aborts generation with an internal error.
func fail(format string, args ...interface{}) {
	panic(&generateError{Msg: fmt.Sprintf(format, args...)})
}

// -----------------------------------------------------------------------------

// declareRuntime declares the external runtime functions.
func (g *Generator) declareRuntime() {
	declare := func(name string, ret lltypes.Type, params ...*llir.Param) {
		g.rtFuncs[name] = g.llMod.NewFunc(name, ret, params...)
	}

	declare(rtPrintInt, lltypes.Void, llir.NewParam("v", lltypes.I32))
	declare(rtPrintFloat, lltypes.Void, llir.NewParam("v", lltypes.Double))
	declare(rtPrintByte, lltypes.Void, llir.NewParam("v", lltypes.I32))
	declare(rtGrowMemory, lltypes.I32, llir.NewParam("size", lltypes.I32))

	// Program memory is a runtime-owned linear block indexed by plain integer
	// addresses, so all loads and stores go through the runtime.
	declare(rtPeekInt, lltypes.I32, llir.NewParam("addr", lltypes.I32))
	declare(rtPokeInt, lltypes.Void, llir.NewParam("addr", lltypes.I32), llir.NewParam("v", lltypes.I32))
	declare(rtPeekFloat, lltypes.Double, llir.NewParam("addr", lltypes.I32))
	declare(rtPokeFloat, lltypes.Void, llir.NewParam("addr", lltypes.I32), llir.NewParam("v", lltypes.Double))
	declare(rtPeekByte, lltypes.I32, llir.NewParam("addr", lltypes.I32))
	declare(rtPokeByte, lltypes.Void, llir.NewParam("addr", lltypes.I32), llir.NewParam("v", lltypes.I32))
}

// declareGlobals defines the module's global variable slots, zero initialized.
func (g *Generator) declareGlobals() {
	for _, gv := range g.mod.Globals {
		llGlobal := g.llMod.NewGlobalDef(gv.Name, zeroValue(gv.Kind))
		g.llGlobals[gv.Name] = llGlobal
	}
}

// declareFunctions declares every defined and imported function up front so
// that bodies can reference callees regardless of order.
func (g *Generator) declareFunctions() {
	for _, fn := range g.mod.Imports {
		g.llFuncs[fn.Name] = g.llMod.NewFunc(fn.Name, llKind(fn.ReturnKind), llParams(fn.Params)...)
	}

	for _, fn := range g.mod.Functions {
		g.llFuncs[fn.Name] = g.llMod.NewFunc(fn.Name, llKind(fn.ReturnKind), llParams(fn.Params)...)
	}
}

// -----------------------------------------------------------------------------

// llKind maps a representation kind to its LLVM type.
func llKind(kind ir.Kind) lltypes.Type {
	if kind == ir.KindFloat {
		return lltypes.Double
	}

	return lltypes.I32
}

// llParams converts a parameter list to LLVM parameters.
func llParams(params []ir.Var) []*llir.Param {
	llps := make([]*llir.Param, len(params))
	for i, param := range params {
		llps[i] = llir.NewParam(param.Name, llKind(param.Kind))
	}

	return llps
}

// zeroValue returns the zero constant of a kind.
func zeroValue(kind ir.Kind) constant.Constant {
	if kind == ir.KindFloat {
		return constant.NewFloat(lltypes.Double, 0)
	}

	return constant.NewInt(lltypes.I32, 0)
}

