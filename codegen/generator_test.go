package codegen

import (
	"strings"
	"testing"

	"wabbitc/ir"
	"wabbitc/lower"
	"wabbitc/syntax"
	"wabbitc/walk"
)

// generateLLVM runs the full pipeline on src and returns the rendered LLVM
// assembly.
func generateLLVM(t *testing.T, src string) string {
	t.Helper()

	prog, parseDiags := syntax.Parse(src)
	if len(parseDiags) > 0 {
		t.Fatalf("unexpected syntax errors: %v", parseDiags)
	}

	if diags := walk.Check(prog); len(diags) > 0 {
		t.Fatalf("unexpected check errors: %v", diags)
	}

	mod, err := lower.Generate(prog)
	if err != nil {
		t.Fatalf("unexpected lowering error: %v", err)
	}

	llMod, err := Generate(mod)
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}

	return llMod.String()
}

// expectContains asserts that the assembly contains every fragment.
func expectContains(t *testing.T, asm string, fragments ...string) {
	t.Helper()

	for _, fragment := range fragments {
		if !strings.Contains(asm, fragment) {
			t.Errorf("assembly missing %q:\n%s", fragment, asm)
		}
	}
}

func TestGenerateArithmeticAndPrint(t *testing.T) {
	asm := generateLLVM(t, `print 2 + 3 * 4;`)

	expectContains(t, asm,
		"declare void @_print_int(i32 %v)",
		"define i32 @main()",
		"mul i32 3, 4",
		"call void @_print_int",
		"ret i32 0",
	)
}

func TestGenerateFloats(t *testing.T) {
	asm := generateLLVM(t, `print 2.0 / 0.5;`)

	expectContains(t, asm,
		"declare void @_print_float(double %v)",
		"fdiv double",
		"call void @_print_float",
	)
}

func TestGenerateGlobalsZeroInitialized(t *testing.T) {
	asm := generateLLVM(t, `
		var x = 10;
		var y float;
		print x;
	`)

	expectContains(t, asm,
		"@x = global i32 0",
		"@y = global double 0.0",
		"store i32 10, i32* @x",
		"load i32, i32* @x",
	)
}

func TestGenerateComparisonWidening(t *testing.T) {
	asm := generateLLVM(t, `
		var x = 1;
		if x < 10 {
			print x;
		}
	`)

	expectContains(t, asm,
		"icmp slt i32",
		"zext i1",
		"trunc i32",
		"br i1",
	)
}

func TestGenerateLoopShape(t *testing.T) {
	asm := generateLLVM(t, `
		var n = 0;
		while n < 3 {
			n = n + 1;
		}
	`)

	expectContains(t, asm,
		"icmp slt i32",
		"br i1",
		"add i32",
	)
}

func TestGenerateFunctionAndCall(t *testing.T) {
	asm := generateLLVM(t, `
		func add(x int, y int) int {
			return x + y;
		}
		print add(3, 4);
	`)

	expectContains(t, asm,
		"define i32 @add(i32 %x, i32 %y)",
		"call i32 @add(i32 3, i32 4)",
	)
}

func TestGenerateImportDeclaration(t *testing.T) {
	asm := generateLLVM(t, `
		import func sin(x float) float;
		print sin(1.0);
	`)

	expectContains(t, asm,
		"declare double @sin(double %x)",
		"call double @sin",
	)
}

func TestGenerateMemoryOperations(t *testing.T) {
	asm := generateLLVM(t, `
		var base = ^1024;
		` + "`base = 65;" + `
		print ` + "`base;" + `
	`)

	expectContains(t, asm,
		"declare i32 @_grow_memory(i32 %size)",
		"call i32 @_grow_memory(i32 1024)",
		"call void @_poke_byte",
		"call i32 @_peek_byte",
		"call void @_print_byte",
	)
}

func TestGenerateRejectsMalformedIR(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.AddFunction(ir.NewFunction("main", ir.KindInt))

	// ADDI with an empty stack must fail as an internal error, not panic.
	fn.Emit(ir.Inst(ir.OpADDI), ir.ConstInt(0), ir.Inst(ir.OpRET))

	llMod, err := Generate(mod)
	if err == nil {
		t.Fatal("expected an error for malformed IR")
	}
	if llMod != nil {
		t.Error("expected nil module on error")
	}
}

func TestGenerateShadowedLocals(t *testing.T) {
	asm := generateLLVM(t, `
		func g(flag bool) int {
			if flag {
				var x = 1;
				print x;
			} else {
				var x = 2.5;
				print x;
			}
			return 0;
		}
		print g(true);
	`)

	// The two same-named locals must land in slots of their own kinds.
	expectContains(t, asm,
		"alloca i32",
		"alloca double",
		"store i32 1, i32*",
		"store double 2.5, double*",
	)
}
