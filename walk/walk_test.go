package walk

import (
	"testing"

	"wabbitc/ast"
	"wabbitc/report"
	"wabbitc/syntax"
	"wabbitc/types"
)

// checkSource parses and checks src, failing the test on any syntax error.
func checkSource(t *testing.T, src string) (*ast.Program, []*report.Diagnostic) {
	t.Helper()

	prog, parseDiags := syntax.Parse(src)
	if len(parseDiags) > 0 {
		t.Fatalf("unexpected syntax errors: %v", parseDiags)
	}

	return prog, Check(prog)
}

// expectDiags asserts that the diagnostics have exactly the expected kinds, in
// order.
func expectDiags(t *testing.T, diags []*report.Diagnostic, kinds ...report.DiagKind) {
	t.Helper()

	if len(diags) != len(kinds) {
		t.Fatalf("expected %d diagnostic(s), got %d: %v", len(kinds), len(diags), diags)
	}

	for i, kind := range kinds {
		if diags[i].Kind != kind {
			t.Errorf("diagnostic %d: expected kind %d, got %d (%s)", i, kind, diags[i].Kind, diags[i].Message)
		}
	}
}

func TestCheckWellTypedProgram(t *testing.T) {
	prog, diags := checkSource(t, `
		const pi = 3.14159;
		var radius float = 2.0;
		var area = pi * radius * radius;
		print area;

		func square(x int) int {
			return x * x;
		}

		print square(6);
	`)

	expectDiags(t, diags)

	// Every expression must carry a definite type annotation.
	assertNoUndef(t, prog.Stmts)
}

// assertNoUndef walks an annotated statement list and fails on any expression
// still typed undef.
func assertNoUndef(t *testing.T, stmts []ast.ASTNode) {
	t.Helper()

	var visitExpr func(expr ast.Expr)
	visitExpr = func(expr ast.Expr) {
		if expr.Type() == types.Undef {
			t.Errorf("expression at %v has no type annotation", expr.Span())
		}

		switch v := expr.(type) {
		case *ast.BinOp:
			visitExpr(v.Lhs)
			visitExpr(v.Rhs)
		case *ast.UnOp:
			visitExpr(v.Operand)
		case *ast.Location:
			visitExpr(v.Addr)
		case *ast.Cast:
			visitExpr(v.Src)
		case *ast.Call:
			for _, arg := range v.Args {
				visitExpr(arg)
			}
		}
	}

	var visitStmt func(stmt ast.ASTNode)
	visitStmt = func(stmt ast.ASTNode) {
		switch v := stmt.(type) {
		case *ast.VarDecl:
			if v.Initializer != nil {
				visitExpr(v.Initializer)
			}
		case *ast.Assignment:
			visitExpr(v.Target)
			visitExpr(v.Value)
		case *ast.PrintStmt:
			visitExpr(v.Value)
		case *ast.IfStmt:
			visitExpr(v.Cond)
			for _, s := range v.Consequence.Stmts {
				visitStmt(s)
			}
			if v.Alternative != nil {
				for _, s := range v.Alternative.Stmts {
					visitStmt(s)
				}
			}
		case *ast.WhileStmt:
			visitExpr(v.Cond)
			for _, s := range v.Body.Stmts {
				visitStmt(s)
			}
		case *ast.ReturnStmt:
			visitExpr(v.Value)
		case *ast.FuncDef:
			for _, s := range v.Body.Stmts {
				visitStmt(s)
			}
		case ast.Expr:
			visitExpr(v)
		}
	}

	for _, stmt := range stmts {
		visitStmt(stmt)
	}
}

func TestCheckConstAssignment(t *testing.T) {
	// Types match, so only mutability fails.
	_, diags := checkSource(t, `
		const pi = 3.14159;
		pi = 1.0;
	`)

	expectDiags(t, diags, report.KindConstAssignment)
}

func TestCheckAssignmentTypeMismatch(t *testing.T) {
	_, diags := checkSource(t, `
		var tau float;
		tau = 2;
	`)

	expectDiags(t, diags, report.KindTypeMismatch)
}

func TestCheckConstAndTypeMismatchBothReported(t *testing.T) {
	// Mutability and type compatibility are independent checks; both fire.
	_, diags := checkSource(t, `
		const x = 1;
		x = 2.0;
	`)

	expectDiags(t, diags, report.KindConstAssignment, report.KindTypeMismatch)
}

func TestCheckDeclInitMismatch(t *testing.T) {
	_, diags := checkSource(t, `var tau float = 2;`)

	expectDiags(t, diags, report.KindTypeMismatch)
}

func TestCheckDeclBindsDespiteMismatch(t *testing.T) {
	// The ill typed declaration still binds `tau` at its declared type, so the
	// well typed use after it produces no further diagnostics.
	_, diags := checkSource(t, `
		var tau float = 2;
		print tau + 1.0;
	`)

	expectDiags(t, diags, report.KindTypeMismatch)
}

func TestCheckUnresolvedName(t *testing.T) {
	_, diags := checkSource(t, `print missing;`)

	expectDiags(t, diags, report.KindNameLookup)
}

func TestCheckUnresolvedNameNoCascade(t *testing.T) {
	// The undefined operand must be reported exactly once; the enclosing
	// addition must not produce a second diagnostic.
	_, diags := checkSource(t, `print missing + 1;`)

	expectDiags(t, diags, report.KindNameLookup)
}

func TestCheckMixedArithmetic(t *testing.T) {
	_, diags := checkSource(t, `print 1 + 1.0;`)

	expectDiags(t, diags, report.KindTypeResolve)
}

func TestCheckMixedArithmeticWithCast(t *testing.T) {
	_, diags := checkSource(t, `print float(1) + 1.0;`)

	expectDiags(t, diags)
}

func TestCheckConditionMustBeBool(t *testing.T) {
	_, diags := checkSource(t, `
		if 1 {
			print 2;
		}

		while 3.0 {
			print 4;
		}
	`)

	expectDiags(t, diags, report.KindTypeMismatch, report.KindTypeMismatch)
}

func TestCheckLoopControlOutsideLoop(t *testing.T) {
	_, diags := checkSource(t, `
		break;
		continue;
	`)

	expectDiags(t, diags, report.KindScope, report.KindScope)
}

func TestCheckLoopControlInsideLoop(t *testing.T) {
	_, diags := checkSource(t, `
		var n = 0;
		while n < 10 {
			n = n + 1;
			if n == 5 {
				continue;
			}
			if n == 8 {
				break;
			}
			print n;
		}
	`)

	expectDiags(t, diags)
}

func TestCheckReturnOutsideFunction(t *testing.T) {
	_, diags := checkSource(t, `return 1;`)

	expectDiags(t, diags, report.KindScope)
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	_, diags := checkSource(t, `
		func f(x int) int {
			return 1.5;
		}
	`)

	expectDiags(t, diags, report.KindTypeMismatch)
}

func TestCheckCallArity(t *testing.T) {
	_, diags := checkSource(t, `
		func add(x int, y int) int {
			return x + y;
		}

		print add(1);
	`)

	expectDiags(t, diags, report.KindArity)
}

func TestCheckCallArgumentType(t *testing.T) {
	_, diags := checkSource(t, `
		func add(x int, y int) int {
			return x + y;
		}

		print add(1, 2.0);
	`)

	expectDiags(t, diags, report.KindTypeMismatch)
}

func TestCheckCallNonFunction(t *testing.T) {
	_, diags := checkSource(t, `
		var x = 1;
		print x(2);
	`)

	expectDiags(t, diags, report.KindTypeResolve)
}

func TestCheckRecursiveFunction(t *testing.T) {
	_, diags := checkSource(t, `
		func fact(n int) int {
			if n < 2 {
				return 1;
			}
			return n * fact(n - 1);
		}

		print fact(5);
	`)

	expectDiags(t, diags)
}

func TestCheckNestedFunctionDef(t *testing.T) {
	_, diags := checkSource(t, `
		func outer(x int) int {
			func inner(y int) int {
				return y;
			}
			return inner(x);
		}
	`)

	expectDiags(t, diags, report.KindScope)
}

func TestCheckRedeclarationSameScope(t *testing.T) {
	_, diags := checkSource(t, `
		var x = 1;
		var x = 2;
	`)

	expectDiags(t, diags, report.KindScope)
}

func TestCheckShadowingInnerScope(t *testing.T) {
	_, diags := checkSource(t, `
		var x = 1;
		if x == 1 {
			var x = 2.0;
			print x + 0.5;
		}
		print x + 1;
	`)

	expectDiags(t, diags)
}

func TestCheckNoHoisting(t *testing.T) {
	// Names become visible in declaration order.
	_, diags := checkSource(t, `
		print later;
		var later = 1;
	`)

	expectDiags(t, diags, report.KindNameLookup)
}

func TestCheckMemoryOperations(t *testing.T) {
	prog, diags := checkSource(t, `
		var base = ^1024;
		` + "`base = 65;" + `
		print ` + "`base + 1;" + `
	`)

	expectDiags(t, diags)
	assertNoUndef(t, prog.Stmts)
}

func TestCheckMemoryAddressMustBeInt(t *testing.T) {
	_, diags := checkSource(t, "print `1.5;")

	expectDiags(t, diags, report.KindTypeResolve)
}

func TestCheckCastNonNumeric(t *testing.T) {
	_, diags := checkSource(t, `print int(true);`)

	expectDiags(t, diags, report.KindTypeResolve)
}

func TestCheckImportedFunction(t *testing.T) {
	_, diags := checkSource(t, `
		import func sin(x float) float;
		print sin(1.0);
	`)

	expectDiags(t, diags)
}

func TestCheckIdempotent(t *testing.T) {
	prog, diags := checkSource(t, `
		var x = 10;
		func twice(n int) int {
			return n * 2;
		}
		print twice(x);
	`)

	expectDiags(t, diags)

	// Checking an already annotated, diagnostic-free tree again must be a
	// no-op.
	expectDiags(t, Check(prog))
	assertNoUndef(t, prog.Stmts)
}
