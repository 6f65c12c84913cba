package ir

// Opcode identifies a single IR instruction.  The IR models a stack machine:
// operands are pushed left to right and consumed by the instructions that
// follow them.  There are two instruction families for each arithmetic,
// comparison, print, and memory operation: an integer family (`I` suffix) and
// a floating-point family (`F` suffix).  Bools and chars are represented as
// integers at this level.
type Opcode int

const (
	// Integer operations.
	OpCONSTI Opcode = iota // Push an integer constant.
	OpADDI
	OpSUBI
	OpMULI
	OpDIVI
	OpANDI // Bitwise AND (logical AND on {0, 1}).
	OpORI  // Bitwise OR (logical OR on {0, 1}).
	OpLTI
	OpLEI
	OpGTI
	OpGEI
	OpEQI
	OpNEI
	OpPRINTI
	OpPEEKI // Pop an address; push the integer stored there.
	OpPOKEI // Pop a value then an address; store the integer.
	OpITOF  // Convert integer to float.

	// Floating-point operations.
	OpCONSTF // Push a float constant.
	OpADDF
	OpSUBF
	OpMULF
	OpDIVF
	OpLTF
	OpLEF
	OpGTF
	OpGEF
	OpEQF
	OpNEF
	OpPRINTF
	OpPEEKF
	OpPOKEF
	OpFTOI // Convert float to integer.

	// Byte-oriented operations (values are presented as integers).
	OpPRINTB
	OpPEEKB
	OpPOKEB

	// Variable access.  Variables are referenced by name; their declarations
	// are data attached to the owning function or module, not instructions.
	OpLOCAL_GET
	OpLOCAL_SET
	OpGLOBAL_GET
	OpGLOBAL_SET

	// Function call and return.
	OpCALL // Call a function by name.  All arguments must be on the stack.
	OpRET  // Return from a function.  The value must be on the stack.

	// Structured control flow.  Begin/end pairs delimit well-nested regions;
	// a backend reconstructs branches from them without reverse-engineering
	// jump targets.
	OpIF     // Start the consequence of a conditional.  Test on stack.
	OpELSE   // Start the alternative of a conditional.
	OpENDIF  // End of a conditional.
	OpLOOP   // Start of a loop.
	OpCBREAK // Pop the test; exit the enclosing loop when it is zero.
	OpCONTINUE
	OpENDLOOP

	// Memory.
	OpGROW // Pop the requested size; grow memory and push the new size.
)

var opcodeNames = [...]string{
	OpCONSTI: "CONSTI",
	OpADDI:   "ADDI",
	OpSUBI:   "SUBI",
	OpMULI:   "MULI",
	OpDIVI:   "DIVI",
	OpANDI:   "ANDI",
	OpORI:    "ORI",
	OpLTI:    "LTI",
	OpLEI:    "LEI",
	OpGTI:    "GTI",
	OpGEI:    "GEI",
	OpEQI:    "EQI",
	OpNEI:    "NEI",
	OpPRINTI: "PRINTI",
	OpPEEKI:  "PEEKI",
	OpPOKEI:  "POKEI",
	OpITOF:   "ITOF",

	OpCONSTF: "CONSTF",
	OpADDF:   "ADDF",
	OpSUBF:   "SUBF",
	OpMULF:   "MULF",
	OpDIVF:   "DIVF",
	OpLTF:    "LTF",
	OpLEF:    "LEF",
	OpGTF:    "GTF",
	OpGEF:    "GEF",
	OpEQF:    "EQF",
	OpNEF:    "NEF",
	OpPRINTF: "PRINTF",
	OpPEEKF:  "PEEKF",
	OpPOKEF:  "POKEF",
	OpFTOI:   "FTOI",

	OpPRINTB: "PRINTB",
	OpPEEKB:  "PEEKB",
	OpPOKEB:  "POKEB",

	OpLOCAL_GET:  "LOCAL_GET",
	OpLOCAL_SET:  "LOCAL_SET",
	OpGLOBAL_GET: "GLOBAL_GET",
	OpGLOBAL_SET: "GLOBAL_SET",

	OpCALL: "CALL",
	OpRET:  "RET",

	OpIF:       "IF",
	OpELSE:     "ELSE",
	OpENDIF:    "ENDIF",
	OpLOOP:     "LOOP",
	OpCBREAK:   "CBREAK",
	OpCONTINUE: "CONTINUE",
	OpENDLOOP:  "ENDLOOP",

	OpGROW: "GROW",
}

func (op Opcode) String() string {
	return opcodeNames[op]
}

// Instruction is a single flat IR instruction: an opcode plus its operands.
// No instruction holds an AST reference; the tree is fully consumed by the
// time instructions exist.
type Instruction struct {
	// The opcode of the instruction.
	Op Opcode

	// The variable or function name operand of LOCAL_*/GLOBAL_*/CALL.
	Name string

	// The constant operand of CONSTI.
	IntVal int64

	// The constant operand of CONSTF.
	FloatVal float64
}

// Inst creates an operand-less instruction.
func Inst(op Opcode) Instruction {
	return Instruction{Op: op}
}

// NameInst creates an instruction with a name operand.
func NameInst(op Opcode, name string) Instruction {
	return Instruction{Op: op, Name: name}
}

// ConstInt creates a CONSTI instruction.
func ConstInt(v int64) Instruction {
	return Instruction{Op: OpCONSTI, IntVal: v}
}

// ConstFloat creates a CONSTF instruction.
func ConstFloat(v float64) Instruction {
	return Instruction{Op: OpCONSTF, FloatVal: v}
}
