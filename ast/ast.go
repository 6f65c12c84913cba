package ast

import "wabbitc/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST node.
	Span() *report.TextSpan
}

// A utility base struct embedded in all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Program is the root node of a parsed Wabbit source file: an ordered sequence
// of top level statements and definitions.
type Program struct {
	ASTBase

	// The top level statements of the program.
	Stmts []ASTNode
}

// Block represents a braced list of statements.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []ASTNode
}
