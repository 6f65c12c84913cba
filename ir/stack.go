package ir

// StackEffect returns the net number of values an instruction leaves on the
// evaluation stack.  arity resolves a callee name to its parameter count; it
// is only consulted for CALL.  Every Wabbit function returns a value, so a
// call nets 1 minus its argument count.
//
// The generator maintains stack balance by construction; this function exists
// so that tests and backends can verify the invariant instead of trusting it.
func StackEffect(inst Instruction, arity func(name string) int) int {
	switch inst.Op {
	case OpCONSTI, OpCONSTF, OpLOCAL_GET, OpGLOBAL_GET:
		return 1

	case OpADDI, OpSUBI, OpMULI, OpDIVI, OpANDI, OpORI,
		OpLTI, OpLEI, OpGTI, OpGEI, OpEQI, OpNEI,
		OpADDF, OpSUBF, OpMULF, OpDIVF,
		OpLTF, OpLEF, OpGTF, OpGEF, OpEQF, OpNEF:
		return -1

	case OpPRINTI, OpPRINTF, OpPRINTB,
		OpLOCAL_SET, OpGLOBAL_SET,
		OpRET, OpIF, OpCBREAK:
		return -1

	case OpPOKEI, OpPOKEF, OpPOKEB:
		return -2

	case OpPEEKI, OpPEEKF, OpPEEKB, OpITOF, OpFTOI, OpGROW:
		return 0

	case OpCALL:
		return 1 - arity(inst.Name)

	default:
		// ELSE, ENDIF, LOOP, CONTINUE, ENDLOOP are pure markers.
		return 0
	}
}
