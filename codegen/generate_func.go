package codegen

import (
	"wabbitc/ir"

	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// funcGenerator translates one IR function body.  It simulates the IR's
// evaluation stack with a stack of LLVM values and reconstructs a basic block
// CFG from the structured region markers.
type funcGenerator struct {
	*Generator

	// The LLVM function being built.
	llFn *llir.Func

	// The block instructions are currently emitted into.
	block *llir.Block

	// The simulated evaluation stack.
	stack []value.Value

	// The named variable slots of the function: parameters and locals, each
	// backed by an entry-block alloca.
	slots map[string]*llir.InstAlloca

	// The open structured regions, innermost last.
	frames []frame
}

// frame is one open IF or LOOP region.
type frame struct {
	isLoop bool

	// The loop header block (branch target of CONTINUE) or the block the ELSE
	// marker switches to.
	header *llir.Block

	// The block control flow continues in after the region ends.
	exit *llir.Block

	// Whether an ELSE marker was seen (IF regions only).
	sawElse bool
}

// generateFunction translates one function.
func (g *Generator) generateFunction(fn *ir.Function) {
	fg := &funcGenerator{
		Generator: g,
		llFn:      g.llFuncs[fn.Name],
		slots:     make(map[string]*llir.InstAlloca),
	}

	fg.block = fg.llFn.NewBlock("entry")

	// Every parameter and local gets a stack slot so that LOCAL_GET/LOCAL_SET
	// translate to plain loads and stores.  LLVM's mem2reg promotes them.
	for i, param := range fn.Params {
		slot := fg.block.NewAlloca(llKind(param.Kind))
		fg.block.NewStore(fg.llFn.Params[i], slot)
		fg.slots[param.Name] = slot
	}

	for _, local := range fn.Locals {
		slot := fg.block.NewAlloca(llKind(local.Kind))
		fg.block.NewStore(zeroValue(local.Kind), slot)
		fg.slots[local.Name] = slot
	}

	for _, inst := range fn.Code {
		fg.generateInstr(inst)
	}

	if len(fg.frames) != 0 {
		fail("%s: %d unclosed control regions", fn.Name, len(fg.frames))
	}

	// Statements net zero values and the trailing RET consumes the last one,
	// so a balanced function ends with an empty evaluation stack.
	if len(fg.stack) != 0 {
		fail("%s: %d values left on the evaluation stack", fn.Name, len(fg.stack))
	}

	// The generator guarantees a trailing RET, so the only unterminated block
	// left is an unreachable continuation.
	if fg.block.Term == nil {
		fg.block.NewUnreachable()
	}
}

// -----------------------------------------------------------------------------

// push pushes a value onto the simulated evaluation stack.
func (fg *funcGenerator) push(v value.Value) {
	fg.stack = append(fg.stack, v)
}

// pop pops the top value off the simulated evaluation stack.
func (fg *funcGenerator) pop() value.Value {
	if len(fg.stack) == 0 {
		fail("%s: evaluation stack underflow", fg.llFn.Name())
	}

	v := fg.stack[len(fg.stack)-1]
	fg.stack = fg.stack[:len(fg.stack)-1]
	return v
}

// slot looks up the alloca backing a named local slot.
func (fg *funcGenerator) slot(name string) *llir.InstAlloca {
	s, ok := fg.slots[name]
	if !ok {
		fail("%s: no slot for local `%s`", fg.llFn.Name(), name)
	}

	return s
}

// global looks up a module global by name.
func (fg *funcGenerator) global(name string) *llir.Global {
	gv, ok := fg.llGlobals[name]
	if !ok {
		fail("%s: no global named `%s`", fg.llFn.Name(), name)
	}

	return gv
}

// truthTest pops an i32 test value and narrows it to an i1.
func (fg *funcGenerator) truthTest() value.Value {
	return fg.block.NewTrunc(fg.pop(), lltypes.I1)
}

// widen pushes a comparison's i1 result widened back to i32.
func (fg *funcGenerator) widen(v value.Value) {
	fg.push(fg.block.NewZExt(v, lltypes.I32))
}

// -----------------------------------------------------------------------------

// generateInstr translates one instruction.
func (fg *funcGenerator) generateInstr(inst ir.Instruction) {
	b := fg.block

	switch inst.Op {
	case ir.OpCONSTI:
		fg.push(constant.NewInt(lltypes.I32, inst.IntVal))
	case ir.OpCONSTF:
		fg.push(constant.NewFloat(lltypes.Double, inst.FloatVal))

	case ir.OpADDI, ir.OpSUBI, ir.OpMULI, ir.OpDIVI, ir.OpANDI, ir.OpORI,
		ir.OpADDF, ir.OpSUBF, ir.OpMULF, ir.OpDIVF:
		rhs, lhs := fg.pop(), fg.pop()
		fg.push(fg.arith(inst.Op, lhs, rhs))

	case ir.OpLTI, ir.OpLEI, ir.OpGTI, ir.OpGEI, ir.OpEQI, ir.OpNEI:
		rhs, lhs := fg.pop(), fg.pop()
		fg.widen(b.NewICmp(icmpPred(inst.Op), lhs, rhs))

	case ir.OpLTF, ir.OpLEF, ir.OpGTF, ir.OpGEF, ir.OpEQF, ir.OpNEF:
		rhs, lhs := fg.pop(), fg.pop()
		fg.widen(b.NewFCmp(fcmpPred(inst.Op), lhs, rhs))

	case ir.OpITOF:
		fg.push(b.NewSIToFP(fg.pop(), lltypes.Double))
	case ir.OpFTOI:
		fg.push(b.NewFPToSI(fg.pop(), lltypes.I32))

	case ir.OpPRINTI:
		b.NewCall(fg.rtFuncs[rtPrintInt], fg.pop())
	case ir.OpPRINTF:
		b.NewCall(fg.rtFuncs[rtPrintFloat], fg.pop())
	case ir.OpPRINTB:
		b.NewCall(fg.rtFuncs[rtPrintByte], fg.pop())

	case ir.OpPEEKI:
		fg.push(b.NewCall(fg.rtFuncs[rtPeekInt], fg.pop()))
	case ir.OpPEEKF:
		fg.push(b.NewCall(fg.rtFuncs[rtPeekFloat], fg.pop()))
	case ir.OpPEEKB:
		fg.push(b.NewCall(fg.rtFuncs[rtPeekByte], fg.pop()))

	case ir.OpPOKEI:
		v := fg.pop()
		b.NewCall(fg.rtFuncs[rtPokeInt], fg.pop(), v)
	case ir.OpPOKEF:
		v := fg.pop()
		b.NewCall(fg.rtFuncs[rtPokeFloat], fg.pop(), v)
	case ir.OpPOKEB:
		v := fg.pop()
		b.NewCall(fg.rtFuncs[rtPokeByte], fg.pop(), v)

	case ir.OpGROW:
		fg.push(b.NewCall(fg.rtFuncs[rtGrowMemory], fg.pop()))

	case ir.OpLOCAL_GET:
		slot := fg.slot(inst.Name)
		fg.push(b.NewLoad(slot.ElemType, slot))
	case ir.OpLOCAL_SET:
		b.NewStore(fg.pop(), fg.slot(inst.Name))
	case ir.OpGLOBAL_GET:
		gv := fg.global(inst.Name)
		fg.push(b.NewLoad(gv.ContentType, gv))
	case ir.OpGLOBAL_SET:
		b.NewStore(fg.pop(), fg.global(inst.Name))

	case ir.OpCALL:
		callee, ok := fg.llFuncs[inst.Name]
		if !ok {
			fail("%s: call to unknown function `%s`", fg.llFn.Name(), inst.Name)
		}

		args := make([]value.Value, len(callee.Params))
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = fg.pop()
		}

		fg.push(b.NewCall(callee, args...))

	case ir.OpRET:
		b.NewRet(fg.pop())
		fg.block = fg.llFn.NewBlock("")

	case ir.OpIF:
		fg.generateIf()
	case ir.OpELSE:
		fg.generateElse()
	case ir.OpENDIF:
		fg.generateEndIf()
	case ir.OpLOOP:
		fg.generateLoop()
	case ir.OpCBREAK:
		fg.generateCondBreak()
	case ir.OpCONTINUE:
		fg.generateContinue()
	case ir.OpENDLOOP:
		fg.generateEndLoop()

	default:
		fail("%s: cannot generate instruction %s", fg.llFn.Name(), inst)
	}
}

// arith emits an arithmetic or bitwise instruction.
func (fg *funcGenerator) arith(op ir.Opcode, lhs, rhs value.Value) value.Value {
	b := fg.block

	switch op {
	case ir.OpADDI:
		return b.NewAdd(lhs, rhs)
	case ir.OpSUBI:
		return b.NewSub(lhs, rhs)
	case ir.OpMULI:
		return b.NewMul(lhs, rhs)
	case ir.OpDIVI:
		return b.NewSDiv(lhs, rhs)
	case ir.OpANDI:
		return b.NewAnd(lhs, rhs)
	case ir.OpORI:
		return b.NewOr(lhs, rhs)
	case ir.OpADDF:
		return b.NewFAdd(lhs, rhs)
	case ir.OpSUBF:
		return b.NewFSub(lhs, rhs)
	case ir.OpMULF:
		return b.NewFMul(lhs, rhs)
	case ir.OpDIVF:
		return b.NewFDiv(lhs, rhs)
	}

	fail("%s: no arithmetic lowering for %s", fg.llFn.Name(), op)
	return nil
}

// icmpPred maps an integer comparison opcode to its signed LLVM predicate.
func icmpPred(op ir.Opcode) enum.IPred {
	switch op {
	case ir.OpLTI:
		return enum.IPredSLT
	case ir.OpLEI:
		return enum.IPredSLE
	case ir.OpGTI:
		return enum.IPredSGT
	case ir.OpGEI:
		return enum.IPredSGE
	case ir.OpEQI:
		return enum.IPredEQ
	default:
		return enum.IPredNE
	}
}

// fcmpPred maps a float comparison opcode to its ordered LLVM predicate.
func fcmpPred(op ir.Opcode) enum.FPred {
	switch op {
	case ir.OpLTF:
		return enum.FPredOLT
	case ir.OpLEF:
		return enum.FPredOLE
	case ir.OpGTF:
		return enum.FPredOGT
	case ir.OpGEF:
		return enum.FPredOGE
	case ir.OpEQF:
		return enum.FPredOEQ
	default:
		return enum.FPredONE
	}
}

// -----------------------------------------------------------------------------

// generateIf opens a conditional region: the test on the stack selects between
// the consequence block and the alternative (which doubles as the join point
// when no ELSE follows).
func (fg *funcGenerator) generateIf() {
	test := fg.truthTest()

	thenBlock := fg.llFn.NewBlock("")
	elseBlock := fg.llFn.NewBlock("")
	exitBlock := fg.llFn.NewBlock("")

	fg.block.NewCondBr(test, thenBlock, elseBlock)
	fg.block = thenBlock

	fg.frames = append(fg.frames, frame{header: elseBlock, exit: exitBlock})
}

// generateElse switches emission from the consequence to the alternative.
func (fg *funcGenerator) generateElse() {
	fr := fg.topFrame(false)
	fr.sawElse = true

	if fg.block.Term == nil {
		fg.block.NewBr(fr.exit)
	}

	fg.block = fr.header
}

// generateEndIf closes a conditional region.
func (fg *funcGenerator) generateEndIf() {
	fr := fg.popFrame(false)

	if fg.block.Term == nil {
		fg.block.NewBr(fr.exit)
	}

	// Without an ELSE the alternative block is empty and just falls through.
	if !fr.sawElse {
		fr.header.NewBr(fr.exit)
	}

	fg.block = fr.exit
}

// generateLoop opens a loop region and enters its header.
func (fg *funcGenerator) generateLoop() {
	header := fg.llFn.NewBlock("")
	exit := fg.llFn.NewBlock("")

	fg.block.NewBr(header)
	fg.block = header

	fg.frames = append(fg.frames, frame{isLoop: true, header: header, exit: exit})
}

// generateCondBreak exits the innermost loop when the test on the stack is
// zero.
func (fg *funcGenerator) generateCondBreak() {
	fr := fg.loopFrame()
	test := fg.truthTest()

	stay := fg.llFn.NewBlock("")
	fg.block.NewCondBr(test, stay, fr.exit)
	fg.block = stay
}

// generateContinue branches back to the innermost loop header.
func (fg *funcGenerator) generateContinue() {
	fr := fg.loopFrame()
	fg.block.NewBr(fr.header)

	// Anything emitted after an unconditional backward branch is unreachable.
	fg.block = fg.llFn.NewBlock("")
}

// generateEndLoop closes a loop region.
func (fg *funcGenerator) generateEndLoop() {
	fr := fg.popFrame(true)

	if fg.block.Term == nil {
		fg.block.NewBr(fr.exit)
	}

	fg.block = fr.exit
}

// topFrame returns the innermost open region, which must match isLoop.
func (fg *funcGenerator) topFrame(isLoop bool) *frame {
	if len(fg.frames) == 0 {
		fail("%s: control marker outside any region", fg.llFn.Name())
	}

	fr := &fg.frames[len(fg.frames)-1]
	if fr.isLoop != isLoop {
		fail("%s: mismatched control markers", fg.llFn.Name())
	}

	return fr
}

// popFrame closes the innermost open region, which must match isLoop.
func (fg *funcGenerator) popFrame(isLoop bool) frame {
	fr := *fg.topFrame(isLoop)
	fg.frames = fg.frames[:len(fg.frames)-1]
	return fr
}

// loopFrame returns the innermost open loop region, skipping conditionals.
func (fg *funcGenerator) loopFrame() *frame {
	for i := len(fg.frames) - 1; i >= 0; i-- {
		if fg.frames[i].isLoop {
			return &fg.frames[i]
		}
	}

	fail("%s: loop marker outside any loop", fg.llFn.Name())
	return nil
}
