package ast

import (
	"wabbitc/common"
	"wabbitc/report"
	"wabbitc/types"
)

// VarDecl represents a variable or constant declaration:
//
//	var name type? (= expr)? ;
//	const name type? = expr ;
type VarDecl struct {
	ASTBase

	// The declared name.
	Name string

	// The declared type, or types.Undef if the type is to be inferred from
	// the initializer.
	DeclType types.Type

	// The initializer expression, or nil if none was given.
	Initializer Expr

	// Whether the declaration is a constant.
	Const bool

	// The symbol created for the declaration.  Set by the checker.
	Sym *common.Symbol
}

// Assignment represents an assignment statement.  The target is either a
// *Name or a *Location.
type Assignment struct {
	ASTBase

	Target Expr
	Value  Expr
}

// PrintStmt represents a print statement.
type PrintStmt struct {
	ASTBase

	Value Expr
}

// -----------------------------------------------------------------------------

// IfStmt represents a conditional statement.
type IfStmt struct {
	ASTBase

	// The condition of the statement.  Must resolve to bool.
	Cond Expr

	// The block run when the condition holds.
	Consequence *Block

	// The optional else block.
	Alternative *Block
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	ASTBase

	// The loop condition.  Must resolve to bool.
	Cond Expr

	// The body of the loop.
	Body *Block
}

// BreakStmt represents a break statement.
type BreakStmt struct {
	ASTBase
}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	ASTBase
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	ASTBase

	// The returned expression.
	Value Expr
}

// -----------------------------------------------------------------------------

// Param represents a function parameter.
type Param struct {
	// The name of the parameter.
	Name string

	// The declared type of the parameter.
	Type types.Type

	// The span of the parameter in the function header.
	NameSpan *report.TextSpan

	// The symbol created for the parameter.  Set by the checker for function
	// definitions; nil for import declarations, which have no body.
	Sym *common.Symbol
}

// FuncDef represents a function definition.
type FuncDef struct {
	ASTBase

	// The name of the function.
	Name string

	// The parameters of the function, in order.
	Params []Param

	// The declared return type.
	ReturnType types.Type

	// The body of the function.
	Body *Block

	// The symbol created for the function.  Set by the checker.
	Sym *common.Symbol
}

// ImportDecl represents an imported (external) function declaration:
//
//	import func name(params) type ;
type ImportDecl struct {
	ASTBase

	// The name of the imported function.
	Name string

	// The parameters of the function, in order.
	Params []Param

	// The declared return type.
	ReturnType types.Type

	// The symbol created for the import.  Set by the checker.
	Sym *common.Symbol
}
