package walk

import (
	"wabbitc/ast"
	"wabbitc/common"
	"wabbitc/report"
	"wabbitc/types"
)

// Walker is responsible for walking a program and performing semantic
// analysis: resolving names against lexical scopes, annotating every
// expression with a concrete type, and validating assignments, calls, and
// control flow.  The walker never stops at a diagnostic: it recovers locally
// (substituting undef or a best-effort annotation) and keeps going so that one
// pass surfaces the maximal diagnostic set.
type Walker struct {
	// The global scope of the program.  Persists for the whole pass; names
	// become visible in declaration order (no hoisting).
	globalScope map[string]*common.Symbol

	// The stack of local scopes used to look up symbols.  A frame is pushed
	// for every function body and every block.
	localScopes []map[string]*common.Symbol

	// The return type of the enclosing function.  types.Undef when there is
	// no enclosing function, ie. return statements are not valid.
	enclosingReturnType types.Type

	// The number of loops enclosing the current statement.
	loopDepth int

	// The ordered list of diagnostics found so far.
	diags []*report.Diagnostic
}

// Check semantically analyzes the given program, annotating its expression
// nodes in place.  The returned diagnostic list is empty exactly when the
// program is well typed; only then may the tree be passed to IR generation.
// Checking an already annotated, diagnostic-free tree again produces the same
// annotations and no new diagnostics.
func Check(prog *ast.Program) []*report.Diagnostic {
	w := &Walker{globalScope: make(map[string]*common.Symbol)}

	for _, stmt := range prog.Stmts {
		w.walkStmt(stmt)
	}

	return w.diags
}

// -----------------------------------------------------------------------------

// lookup looks up a symbol by name in all visible scopes, nearest first.  If
// no symbol by the given name can be found, a diagnostic is recorded and nil
// is returned.
func (w *Walker) lookup(name string, span *report.TextSpan) *common.Symbol {
	// Traverse local scopes in reverse order to implement shadowing.
	for i := len(w.localScopes) - 1; i > -1; i-- {
		if sym, ok := w.localScopes[i][name]; ok {
			return sym
		}
	}

	if sym, ok := w.globalScope[name]; ok {
		return sym
	}

	w.error(report.KindNameLookup, span, "undefined name: `%s`", name)
	return nil
}

// define binds a symbol in the current scope.  Redeclaring a name already
// bound in the same frame is a diagnostic, but the binding is replaced anyway
// so that later statements check against a definite symbol.
func (w *Walker) define(sym *common.Symbol) {
	scope := w.globalScope
	if len(w.localScopes) > 0 {
		scope = w.localScopes[len(w.localScopes)-1]
	} else {
		sym.Global = true
	}

	if _, ok := scope[sym.Name]; ok {
		w.error(report.KindScope, sym.DefSpan, "redeclaration of `%s` in the same scope", sym.Name)
	}

	scope[sym.Name] = sym
}

// pushScope pushes a new local scope onto the scope stack.
func (w *Walker) pushScope() {
	w.localScopes = append(w.localScopes, make(map[string]*common.Symbol))
}

// popScope removes the top local scope from the scope stack.
func (w *Walker) popScope() {
	w.localScopes = w.localScopes[:len(w.localScopes)-1]
}

// atGlobalScope returns whether the walker is outside any function body.
func (w *Walker) atGlobalScope() bool {
	return len(w.localScopes) == 0
}

// error records a diagnostic.
func (w *Walker) error(kind report.DiagKind, span *report.TextSpan, msg string, args ...interface{}) {
	w.diags = append(w.diags, report.Errorf(kind, span, msg, args...))
}
