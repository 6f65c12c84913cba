package report

import "fmt"

// DiagKind enumerates the kinds of user-facing diagnostics the compiler can
// produce.  Diagnostics are values, not control flow: every pass accumulates
// them in order and keeps going so that one run surfaces the maximal set.
type DiagKind int

const (
	KindSyntax          DiagKind = iota // Malformed surface syntax.
	KindNameLookup                      // Unresolved identifier.
	KindTypeResolve                     // No rule for an operator/operand-type combination.
	KindTypeMismatch                    // Declared vs. actual, or target vs. expression.
	KindConstAssignment                 // Write to an immutable binding.
	KindScope                           // break/continue/return in an invalid position.
	KindArity                           // Call argument count mismatch.
)

var diagKindNames = map[DiagKind]string{
	KindSyntax:          "Syntax",
	KindNameLookup:      "Name",
	KindTypeResolve:     "Type",
	KindTypeMismatch:    "Type",
	KindConstAssignment: "Mutability",
	KindScope:           "Scope",
	KindArity:           "Argument",
}

func (k DiagKind) String() string {
	return diagKindNames[k]
}

// Diagnostic is a structured record describing one validation failure.  The
// span locates the offending node for position reporting; the kind tags the
// failure for tests and tooling.
type Diagnostic struct {
	// The kind of the diagnostic.
	Kind DiagKind

	// The user-facing message.
	Message string

	// The span of the offending source text.
	Span *TextSpan
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// Errorf creates a new diagnostic with a formatted message.
func Errorf(kind DiagKind, span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
	}
}
