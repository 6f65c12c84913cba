package lower

import (
	"testing"

	"wabbitc/ir"
	"wabbitc/syntax"
	"wabbitc/walk"
)

// generate parses, checks, and lowers src, failing the test on any diagnostic
// or lowering error.
func generate(t *testing.T, src string) *ir.Module {
	t.Helper()

	prog, parseDiags := syntax.Parse(src)
	if len(parseDiags) > 0 {
		t.Fatalf("unexpected syntax errors: %v", parseDiags)
	}

	if diags := walk.Check(prog); len(diags) > 0 {
		t.Fatalf("unexpected check errors: %v", diags)
	}

	mod, err := Generate(prog)
	if err != nil {
		t.Fatalf("unexpected lowering error: %v", err)
	}

	return mod
}

// expectCode asserts that a function's instruction list renders to the
// expected sequence.
func expectCode(t *testing.T, fn *ir.Function, expected ...string) {
	t.Helper()

	if len(fn.Code) != len(expected) {
		t.Fatalf("%s: expected %d instructions, got %d:\n%s",
			fn.Name, len(expected), len(fn.Code), fn)
	}

	for i, want := range expected {
		if got := fn.Code[i].String(); got != want {
			t.Errorf("%s: instruction %d: expected %q, got %q", fn.Name, i, want, got)
		}
	}
}

func TestGenerateArithmetic(t *testing.T) {
	mod := generate(t, `print 2 + 3 * 4;`)

	// Operands push left to right; precedence is already in the tree shape.
	expectCode(t, mod.Functions[0],
		"CONSTI 2",
		"CONSTI 3",
		"CONSTI 4",
		"MULI",
		"ADDI",
		"PRINTI",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateFloatArithmetic(t *testing.T) {
	mod := generate(t, `print 2.0 * 3.5;`)

	expectCode(t, mod.Functions[0],
		"CONSTF 2",
		"CONSTF 3.5",
		"MULF",
		"PRINTF",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateEntryFunction(t *testing.T) {
	mod := generate(t, `print 1;`)

	entry := mod.Functions[0]
	if entry.Name != EntryFunctionName {
		t.Errorf("expected entry function %q, got %q", EntryFunctionName, entry.Name)
	}
	if entry.ReturnKind != ir.KindInt {
		t.Errorf("expected int entry return kind, got %s", entry.ReturnKind)
	}
}

func TestGenerateGlobals(t *testing.T) {
	mod := generate(t, `
		var x = 10;
		var y float;
		print x;
	`)

	if len(mod.Globals) != 2 {
		t.Fatalf("expected 2 globals, got %d", len(mod.Globals))
	}
	if mod.Globals[0].Name != "x" || mod.Globals[0].Kind != ir.KindInt {
		t.Errorf("unexpected global 0: %+v", mod.Globals[0])
	}
	if mod.Globals[1].Name != "y" || mod.Globals[1].Kind != ir.KindFloat {
		t.Errorf("unexpected global 1: %+v", mod.Globals[1])
	}

	expectCode(t, mod.Functions[0],
		"CONSTI 10",
		"GLOBAL_SET x",
		"GLOBAL_GET x",
		"PRINTI",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateLocals(t *testing.T) {
	mod := generate(t, `
		func f(a int) int {
			var b = a + 1;
			return b;
		}
	`)

	fn := mod.FindFunction("f")
	if fn == nil {
		t.Fatal("function f not generated")
	}

	if len(fn.Params) != 1 || fn.Params[0].Name != "a" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	if len(fn.Locals) != 1 || fn.Locals[0].Name != "b" {
		t.Fatalf("unexpected locals: %+v", fn.Locals)
	}

	expectCode(t, fn,
		"LOCAL_GET a",
		"CONSTI 1",
		"ADDI",
		"LOCAL_SET b",
		"LOCAL_GET b",
		"RET",
	)
}

func TestGenerateConditional(t *testing.T) {
	mod := generate(t, `
		var x = 1;
		if x < 10 {
			print 1;
		} else {
			print 2;
		}
	`)

	expectCode(t, mod.Functions[0],
		"CONSTI 1",
		"GLOBAL_SET x",
		"GLOBAL_GET x",
		"CONSTI 10",
		"LTI",
		"IF",
		"CONSTI 1",
		"PRINTI",
		"ELSE",
		"CONSTI 2",
		"PRINTI",
		"ENDIF",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateLoop(t *testing.T) {
	mod := generate(t, `
		var n = 0;
		while n < 3 {
			n = n + 1;
			if n == 2 {
				break;
			}
			if n == 1 {
				continue;
			}
			print n;
		}
	`)

	expectCode(t, mod.Functions[0],
		"CONSTI 0",
		"GLOBAL_SET n",
		"LOOP",
		"GLOBAL_GET n",
		"CONSTI 3",
		"LTI",
		"CBREAK",
		"GLOBAL_GET n",
		"CONSTI 1",
		"ADDI",
		"GLOBAL_SET n",
		"GLOBAL_GET n",
		"CONSTI 2",
		"EQI",
		"IF",
		"CONSTI 0",
		"CBREAK",
		"ENDIF",
		"GLOBAL_GET n",
		"CONSTI 1",
		"EQI",
		"IF",
		"CONTINUE",
		"ENDIF",
		"GLOBAL_GET n",
		"PRINTI",
		"CONTINUE",
		"ENDLOOP",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateUnaryOps(t *testing.T) {
	mod := generate(t, `
		print -5;
		print !true;
	`)

	expectCode(t, mod.Functions[0],
		"CONSTI 0",
		"CONSTI 5",
		"SUBI",
		"PRINTI",
		"CONSTI 1",
		"CONSTI 0",
		"EQI",
		"PRINTI",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateCasts(t *testing.T) {
	mod := generate(t, `
		print float(2) + 0.5;
		print int(3.7);
	`)

	expectCode(t, mod.Functions[0],
		"CONSTI 2",
		"ITOF",
		"CONSTF 0.5",
		"ADDF",
		"PRINTF",
		"CONSTF 3.7",
		"FTOI",
		"PRINTI",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateMemoryOperations(t *testing.T) {
	mod := generate(t, `
		var base = ^1024;
		` + "`base = 65;" + `
		print ` + "`base;" + `
	`)

	expectCode(t, mod.Functions[0],
		"CONSTI 1024",
		"GROW",
		"GLOBAL_SET base",
		"GLOBAL_GET base",
		"CONSTI 65",
		"POKEB",
		"GLOBAL_GET base",
		"PEEKB",
		"PRINTI",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateCharPrint(t *testing.T) {
	mod := generate(t, `print 'A';`)

	expectCode(t, mod.Functions[0],
		"CONSTI 65",
		"PRINTB",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateCall(t *testing.T) {
	mod := generate(t, `
		func add(x int, y int) int {
			return x + y;
		}
		print add(3, 4);
	`)

	expectCode(t, mod.Functions[0],
		"CONSTI 3",
		"CONSTI 4",
		"CALL add",
		"PRINTI",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateImport(t *testing.T) {
	mod := generate(t, `
		import func sin(x float) float;
		print sin(1.0);
	`)

	if len(mod.Imports) != 1 || mod.Imports[0].Name != "sin" {
		t.Fatalf("unexpected imports: %+v", mod.Imports)
	}
	if mod.Imports[0].ReturnKind != ir.KindFloat {
		t.Errorf("expected float import return kind, got %s", mod.Imports[0].ReturnKind)
	}

	expectCode(t, mod.Functions[0],
		"CONSTF 1",
		"CALL sin",
		"PRINTF",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateDefaultReturn(t *testing.T) {
	// A function body that falls off the end returns the zero value of its
	// kind.
	mod := generate(t, `
		func f(x int) int {
			print x;
		}
	`)

	expectCode(t, mod.FindFunction("f"),
		"LOCAL_GET x",
		"PRINTI",
		"CONSTI 0",
		"RET",
	)
}

func TestGenerateStackBalance(t *testing.T) {
	mod := generate(t, `
		import func put(c int) int;

		func gcd(a int, b int) int {
			while b != 0 {
				var t = b;
				b = a - a / b * b;
				a = t;
			}
			return a;
		}

		var base = ^64;
		` + "`base = 12;" + `
		print gcd(` + "`base" + `, 18);
		print put(10);
	`)

	arity := func(name string) int {
		fn := mod.FindFunction(name)
		if fn == nil {
			t.Fatalf("arity of unknown function %s", name)
		}
		return len(fn.Params)
	}

	for _, fn := range mod.Functions {
		depth := 0
		for i, inst := range fn.Code {
			depth += ir.StackEffect(inst, arity)
			if depth < 0 {
				t.Fatalf("%s: stack underflow at instruction %d (%s)", fn.Name, i, inst)
			}
		}

		// RET consumes the final value, so a function body nets zero.
		if depth != 0 {
			t.Errorf("%s: function body nets %d values, expected 0", fn.Name, depth)
		}
	}
}

func TestGenerateRejectsUncheckedTree(t *testing.T) {
	prog, parseDiags := syntax.Parse(`print missing;`)
	if len(parseDiags) > 0 {
		t.Fatalf("unexpected syntax errors: %v", parseDiags)
	}

	// The tree was never checked, so the name has no symbol.
	mod, err := Generate(prog)
	if err == nil {
		t.Fatal("expected an internal error for an unchecked tree")
	}
	if mod != nil {
		t.Error("expected nil module on error")
	}
	if _, ok := err.(*InternalError); !ok {
		t.Errorf("expected *InternalError, got %T", err)
	}
}

func TestGenerateShadowedParam(t *testing.T) {
	mod := generate(t, `
		func f(a int) int {
			if a > 0 {
				var a = 99;
				print a;
			}
			return a;
		}
		print f(1);
	`)

	fn := mod.FindFunction("f")
	if fn == nil {
		t.Fatal("function f not lowered")
	}

	// The block-local shadows the parameter, so it needs a slot of its own.
	if len(fn.Locals) != 1 || fn.Locals[0].Name != "a.1" {
		t.Fatalf("expected one local slot `a.1`, got %+v", fn.Locals)
	}

	expectCode(t, fn,
		"LOCAL_GET a",
		"CONSTI 0",
		"GTI",
		"IF",
		"CONSTI 99",
		"LOCAL_SET a.1",
		"LOCAL_GET a.1",
		"PRINTI",
		"ENDIF",
		"LOCAL_GET a",
		"RET",
	)
}

func TestGenerateSiblingLocalsGetDistinctSlots(t *testing.T) {
	mod := generate(t, `
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

	fn := mod.FindFunction("g")
	if fn == nil {
		t.Fatal("function g not lowered")
	}

	if len(fn.Locals) != 2 {
		t.Fatalf("expected 2 local slots, got %+v", fn.Locals)
	}
	if fn.Locals[0].Name != "x" || fn.Locals[0].Kind != ir.KindInt {
		t.Errorf("unexpected local 0: %+v", fn.Locals[0])
	}
	if fn.Locals[1].Name != "x.1" || fn.Locals[1].Kind != ir.KindFloat {
		t.Errorf("unexpected local 1: %+v", fn.Locals[1])
	}
}
