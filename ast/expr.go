package ast

import (
	"wabbitc/common"
	"wabbitc/types"
)

// Expr is the interface implemented by all expression nodes.  Expressions are
// annotated in place by the checker: after a clean checking pass every
// expression's type is concrete (non-undef).
type Expr interface {
	ASTNode

	// Type is the resolved type of the expression.
	Type() types.Type

	// SetType sets the resolved type of the expression.
	SetType(types.Type)
}

// ExprBase is the base struct embedded in all expressions.
type ExprBase struct {
	ASTBase

	typ types.Type
}

// NewExprBase creates a new expression base over the given span.  The type
// starts as undef until the checker resolves it.
func NewExprBase(base ASTBase) ExprBase {
	return ExprBase{ASTBase: base, typ: types.Undef}
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

// -----------------------------------------------------------------------------

// LitKind enumerates the kinds of literals.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitChar
)

// Literal represents a literal value.  Its type is intrinsic to its kind and
// is assigned by the parser.
type Literal struct {
	ExprBase

	// The kind of the literal.
	Kind LitKind

	// The source text of the literal.
	Text string

	// The literal's value.  IntVal holds int, bool (0 or 1), and char (code
	// point) values; FloatVal holds float values.
	IntVal   int64
	FloatVal float64
}

// Name represents an identifier reference.
type Name struct {
	ExprBase

	// The referenced identifier.
	Name string

	// The symbol the name resolved to.  Set by the checker; nil until then
	// and nil after an unresolved lookup.
	Sym *common.Symbol
}

// BinOp represents a binary operator application.
type BinOp struct {
	ExprBase

	// The operator lexeme, eg. "+" or "<=".
	Op string

	Lhs, Rhs Expr
}

// UnOp represents a unary operator application.
type UnOp struct {
	ExprBase

	// The operator lexeme: "-", "+", "!", or "^" (memory grow).
	Op string

	Operand Expr
}

// Location represents a raw memory location expression: a backtick followed by
// an address expression.  Locations read and write memory at byte granularity.
type Location struct {
	ExprBase

	// The address expression.  Must resolve to int.
	Addr Expr
}

// Cast represents an explicit type cast such as `int(x)` or `float(n)`.
type Cast struct {
	ExprBase

	// The target type of the cast.
	Target types.Type

	// The expression being cast.
	Src Expr
}

// Call represents a function call.
type Call struct {
	ExprBase

	// The name of the callee.
	Name string

	// The argument expressions, in order.
	Args []Expr

	// The symbol of the callee.  Set by the checker.
	Sym *common.Symbol
}
