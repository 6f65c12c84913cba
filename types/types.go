package types

// Type is the identity of a Wabbit primitive type.  Wabbit has no structural
// or compound types: the full set of types is the closed enumeration below.
// Types are plain values and compare with `==`.
type Type int

const (
	// Undef is the sentinel type of an expression whose type has not been
	// resolved yet or could not be resolved.  After a clean checking pass, no
	// expression is Undef; the IR generator treats encountering one as an
	// internal-consistency failure.
	Undef Type = iota

	Int
	Float
	Bool
	Char
)

var typeNames = map[Type]string{
	Undef: "undef",
	Int:   "int",
	Float: "float",
	Bool:  "bool",
	Char:  "char",
}

func (t Type) String() string {
	return typeNames[t]
}

// Named returns the primitive type with the given name.  The boolean indicates
// whether the name names a type.
func Named(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "bool":
		return Bool, true
	case "char":
		return Char, true
	default:
		return Undef, false
	}
}

// IsNumeric returns whether t supports arithmetic and type casts.
func IsNumeric(t Type) bool {
	return t == Int || t == Float
}
