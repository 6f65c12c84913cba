package walk

import "wabbitc/types"

// opKey keys the binary operator rule table by operator lexeme and the
// resolved types of both operands.
type opKey struct {
	Op       string
	Lhs, Rhs types.Type
}

// binOpRules is the fixed binary operator rule table.  There is deliberately
// no rule for mixed int/float operands: Wabbit has no implicit numeric
// promotion, so mixed arithmetic requires an explicit cast.
var binOpRules = map[opKey]types.Type{}

func init() {
	arithOps := []string{"+", "-", "*", "/"}
	cmpOps := []string{"<", "<=", ">", ">=", "==", "!="}

	for _, t := range []types.Type{types.Int, types.Float} {
		for _, op := range arithOps {
			binOpRules[opKey{op, t, t}] = t
		}
		for _, op := range cmpOps {
			binOpRules[opKey{op, t, t}] = types.Bool
		}
	}

	// Chars compare but have no arithmetic.
	for _, op := range cmpOps {
		binOpRules[opKey{op, types.Char, types.Char}] = types.Bool
	}

	// Bools support equality and the logical connectives.
	for _, op := range []string{"==", "!=", "&&", "||"} {
		binOpRules[opKey{op, types.Bool, types.Bool}] = types.Bool
	}
}

// resolveBinOp resolves the result type of a binary operator application.
// The boolean indicates whether a rule exists for the combination.
func resolveBinOp(op string, lhs, rhs types.Type) (types.Type, bool) {
	t, ok := binOpRules[opKey{op, lhs, rhs}]
	return t, ok
}
