package common

import (
	"wabbitc/report"
	"wabbitc/types"
)

// Symbol represents a semantic symbol: a named variable, constant, or
// function.  Symbols are created by the checker when declarations are walked
// and shared with the AST nodes that reference them.
type Symbol struct {
	// The name of the symbol.
	Name string

	// Where the symbol was declared.
	DefSpan *report.TextSpan

	// The type of the value stored in the symbol.  For functions, this is the
	// return type; the full signature is given by ParamTypes and Type.
	Type types.Type

	// The symbol's kind.  This must be one of the enumerated definition kinds.
	DefKind int

	// Whether or not the symbol is immutable (declared with `const`).
	Constant bool

	// Whether the symbol lives in the global scope.  Global symbols lower to
	// GLOBAL_GET/GLOBAL_SET; all others to LOCAL_GET/LOCAL_SET.
	Global bool

	// The declared parameter types, in order.  Only set for functions.
	ParamTypes []types.Type

	// Whether the function is an imported (external) function.  Only
	// meaningful for functions.
	Imported bool
}

// Enumeration of definition kinds.
const (
	DefKindValue = iota // A variable or constant.
	DefKindFunc         // A function (defined or imported).
)
