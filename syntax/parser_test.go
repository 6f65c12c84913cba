package syntax

import (
	"testing"

	"wabbitc/ast"
	"wabbitc/types"
)

// parseOK parses src and fails the test on any syntax error.
func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, diags := Parse(src)
	if len(diags) > 0 {
		t.Fatalf("unexpected syntax errors: %v", diags)
	}

	return prog
}

func TestParseVarDecls(t *testing.T) {
	prog := parseOK(t, `
		var x int = 42;
		var y float;
		var z = 1.5;
		const pi = 3.14159;
	`)

	if len(prog.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(prog.Stmts))
	}

	x := prog.Stmts[0].(*ast.VarDecl)
	if x.Name != "x" || x.DeclType != types.Int || x.Initializer == nil || x.Const {
		t.Errorf("unexpected decl: %+v", x)
	}

	y := prog.Stmts[1].(*ast.VarDecl)
	if y.DeclType != types.Float || y.Initializer != nil {
		t.Errorf("unexpected decl: %+v", y)
	}

	z := prog.Stmts[2].(*ast.VarDecl)
	if z.DeclType != types.Undef || z.Initializer == nil {
		t.Errorf("unexpected decl: %+v", z)
	}

	pi := prog.Stmts[3].(*ast.VarDecl)
	if !pi.Const {
		t.Errorf("expected const decl: %+v", pi)
	}
}

func TestParseConstRequiresInitializer(t *testing.T) {
	_, diags := Parse(`const x int;`)
	if len(diags) == 0 {
		t.Fatal("expected a syntax error for a const without an initializer")
	}
}

func TestParseVarRequiresTypeOrInitializer(t *testing.T) {
	_, diags := Parse(`var x;`)
	if len(diags) == 0 {
		t.Fatal("expected a syntax error for an untyped var without an initializer")
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := parseOK(t, `print 2 + 3 * 4;`)

	value := prog.Stmts[0].(*ast.PrintStmt).Value

	add, ok := value.(*ast.BinOp)
	if !ok || add.Op != "+" {
		t.Fatalf("expected `+` at the root, got %#v", value)
	}

	mul, ok := add.Rhs.(*ast.BinOp)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected `*` on the right, got %#v", add.Rhs)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	prog := parseOK(t, `print 10 - 4 - 3;`)

	outer := prog.Stmts[0].(*ast.PrintStmt).Value.(*ast.BinOp)
	inner, ok := outer.Lhs.(*ast.BinOp)
	if !ok || inner.Op != "-" {
		t.Fatalf("expected left-nested `-`, got %#v", outer.Lhs)
	}
}

func TestParseComparisonAndLogical(t *testing.T) {
	prog := parseOK(t, `print 1 < 2 && 3 >= 4 || false;`)

	or := prog.Stmts[0].(*ast.PrintStmt).Value.(*ast.BinOp)
	if or.Op != "||" {
		t.Fatalf("expected `||` at the root, got %q", or.Op)
	}

	and := or.Lhs.(*ast.BinOp)
	if and.Op != "&&" {
		t.Fatalf("expected `&&` under `||`, got %q", and.Op)
	}
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	prog := parseOK(t, `print (2 + 3) * 4;`)

	mul := prog.Stmts[0].(*ast.PrintStmt).Value.(*ast.BinOp)
	if mul.Op != "*" {
		t.Fatalf("expected `*` at the root, got %q", mul.Op)
	}

	if add, ok := mul.Lhs.(*ast.BinOp); !ok || add.Op != "+" {
		t.Fatalf("expected parenthesized `+` on the left, got %#v", mul.Lhs)
	}
}

func TestParseCastVersusCall(t *testing.T) {
	prog := parseOK(t, `
		print int(x);
		print float(1);
		print f(1);
	`)

	if _, ok := prog.Stmts[0].(*ast.PrintStmt).Value.(*ast.Cast); !ok {
		t.Error("expected int(...) to parse as a cast")
	}

	cast := prog.Stmts[1].(*ast.PrintStmt).Value.(*ast.Cast)
	if cast.Target != types.Float {
		t.Errorf("expected float cast target, got %s", cast.Target)
	}

	call, ok := prog.Stmts[2].(*ast.PrintStmt).Value.(*ast.Call)
	if !ok || call.Name != "f" || len(call.Args) != 1 {
		t.Errorf("expected call to f, got %#v", prog.Stmts[2])
	}
}

func TestParseDerefBindsLikeUnary(t *testing.T) {
	// The addition applies to the loaded value, not the address.
	prog := parseOK(t, "print `addr + 10;")

	add := prog.Stmts[0].(*ast.PrintStmt).Value.(*ast.BinOp)
	if add.Op != "+" {
		t.Fatalf("expected `+` at the root, got %q", add.Op)
	}

	if _, ok := add.Lhs.(*ast.Location); !ok {
		t.Fatalf("expected a location on the left, got %#v", add.Lhs)
	}
}

func TestParseMemoryAssignment(t *testing.T) {
	// Address arithmetic in a target requires explicit grouping since the
	// backtick binds to a single factor.
	prog := parseOK(t, "`(base + 1) = 65;")

	as := prog.Stmts[0].(*ast.Assignment)
	loc, ok := as.Target.(*ast.Location)
	if !ok {
		t.Fatalf("expected a location target, got %#v", as.Target)
	}

	if add, ok := loc.Addr.(*ast.BinOp); !ok || add.Op != "+" {
		t.Errorf("expected grouped address arithmetic, got %#v", loc.Addr)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseOK(t, `
		if x < 10 {
			print 1;
		} else {
			print 2;
		}
	`)

	ifStmt := prog.Stmts[0].(*ast.IfStmt)
	if ifStmt.Alternative == nil {
		t.Error("expected an else branch")
	}
	if len(ifStmt.Consequence.Stmts) != 1 {
		t.Errorf("expected 1 consequence statement, got %d", len(ifStmt.Consequence.Stmts))
	}
}

func TestParseWhileWithControl(t *testing.T) {
	prog := parseOK(t, `
		while true {
			break;
			continue;
		}
	`)

	whileStmt := prog.Stmts[0].(*ast.WhileStmt)
	if len(whileStmt.Body.Stmts) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(whileStmt.Body.Stmts))
	}

	if _, ok := whileStmt.Body.Stmts[0].(*ast.BreakStmt); !ok {
		t.Error("expected a break statement")
	}
	if _, ok := whileStmt.Body.Stmts[1].(*ast.ContinueStmt); !ok {
		t.Error("expected a continue statement")
	}
}

func TestParseFuncDef(t *testing.T) {
	prog := parseOK(t, `
		func add(x int, y int) int {
			return x + y;
		}
	`)

	fd := prog.Stmts[0].(*ast.FuncDef)
	if fd.Name != "add" || len(fd.Params) != 2 || fd.ReturnType != types.Int {
		t.Fatalf("unexpected function: %+v", fd)
	}

	if fd.Params[0].Name != "x" || fd.Params[0].Type != types.Int {
		t.Errorf("unexpected param: %+v", fd.Params[0])
	}
}

func TestParseImportDecl(t *testing.T) {
	prog := parseOK(t, `import func sin(x float) float;`)

	id := prog.Stmts[0].(*ast.ImportDecl)
	if id.Name != "sin" || len(id.Params) != 1 || id.ReturnType != types.Float {
		t.Fatalf("unexpected import: %+v", id)
	}
}

func TestParseRecoversAtStatementBoundary(t *testing.T) {
	// The first statement is malformed; the second must still be parsed and a
	// single diagnostic produced for the first.
	prog, diags := Parse(`
		var = 10;
		print 42;
	`)

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}

	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 recovered statement, got %d", len(prog.Stmts))
	}

	if _, ok := prog.Stmts[0].(*ast.PrintStmt); !ok {
		t.Errorf("expected the print statement to survive, got %#v", prog.Stmts[0])
	}
}

func TestParseMultipleErrors(t *testing.T) {
	_, diags := Parse(`
		var = 1;
		const = 2;
		print 3;
	`)

	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diags), diags)
	}
}

func TestParseSpans(t *testing.T) {
	prog := parseOK(t, `print 1 + 2;`)

	span := prog.Stmts[0].Span()
	if span.StartLine != 0 || span.StartCol != 0 {
		t.Errorf("expected statement to start at 0:0, got %d:%d", span.StartLine, span.StartCol)
	}

	value := prog.Stmts[0].(*ast.PrintStmt).Value
	if value.Span().StartCol != 6 {
		t.Errorf("expected expression to start at col 6, got %d", value.Span().StartCol)
	}
}

func TestParseRecoversPastStrayClosingBrace(t *testing.T) {
	// An unmatched closing brace at the top level must be consumed, not
	// re-read forever; the following statement still parses.
	prog, diags := Parse("}\nprint 1;")

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}

	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 recovered statement, got %d", len(prog.Stmts))
	}

	if _, ok := prog.Stmts[0].(*ast.PrintStmt); !ok {
		t.Errorf("expected the print statement to survive, got %#v", prog.Stmts[0])
	}
}

func TestParseStrayClosingBraceAlone(t *testing.T) {
	prog, diags := Parse("}")

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}

	if len(prog.Stmts) != 0 {
		t.Errorf("expected no statements, got %d", len(prog.Stmts))
	}
}
