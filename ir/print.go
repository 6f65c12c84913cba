package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the module in a flat textual form.  The format is intended
// for tests and for the `--emit ir` output of the compiler driver, not as a
// stable serialization.
func (m *Module) String() string {
	sb := &strings.Builder{}

	for _, g := range m.Globals {
		fmt.Fprintf(sb, "global %s %s\n", g.Name, g.Kind)
	}

	if len(m.Globals) > 0 {
		sb.WriteRune('\n')
	}

	for _, fn := range m.Imports {
		fmt.Fprintf(sb, "import func %s(%s) %s\n\n", fn.Name, formatVars(fn.Params), fn.ReturnKind)
	}

	for _, fn := range m.Functions {
		sb.WriteString(fn.String())
		sb.WriteRune('\n')
	}

	return sb.String()
}

// String renders the function header, declarations, and instruction list.
func (f *Function) String() string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "func %s(%s) %s {\n", f.Name, formatVars(f.Params), f.ReturnKind)

	for _, local := range f.Locals {
		fmt.Fprintf(sb, "    local %s %s\n", local.Name, local.Kind)
	}

	indent := 1
	for _, inst := range f.Code {
		switch inst.Op {
		case OpELSE, OpENDIF, OpENDLOOP:
			indent--
		}

		sb.WriteString(strings.Repeat("    ", indent))
		sb.WriteString(inst.String())
		sb.WriteRune('\n')

		switch inst.Op {
		case OpIF, OpELSE, OpLOOP:
			indent++
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// String renders one instruction as its opcode followed by its operands.
func (i Instruction) String() string {
	switch i.Op {
	case OpCONSTI:
		return fmt.Sprintf("%s %d", i.Op, i.IntVal)
	case OpCONSTF:
		return fmt.Sprintf("%s %s", i.Op, strconv.FormatFloat(i.FloatVal, 'g', -1, 64))
	case OpLOCAL_GET, OpLOCAL_SET, OpGLOBAL_GET, OpGLOBAL_SET, OpCALL:
		return fmt.Sprintf("%s %s", i.Op, i.Name)
	default:
		return i.Op.String()
	}
}

func formatVars(vars []Var) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = fmt.Sprintf("%s %s", v.Name, v.Kind)
	}

	return strings.Join(parts, ", ")
}
