package ir

// Kind is the low-level representation class of a value: integer or
// floating-point.  It is distinct from the high-level source types; bool and
// char both map down to KindInt.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
)

func (k Kind) String() string {
	if k == KindFloat {
		return "F"
	}
	return "I"
}

// Var is a named variable slot declaration attached to a module (globals) or
// function (parameters and locals).
type Var struct {
	Name string
	Kind Kind
}

// Module is the complete output of IR generation for one compilation: the
// global variable table plus every generated function.  It is the fixed
// contract consumed by backends.
type Module struct {
	// The global variables of the module, in declaration order.
	Globals []Var

	// The functions of the module.  The synthesized entry function comes
	// first, followed by user functions in declaration order.
	Functions []*Function

	// The imported (external) functions of the module, in declaration order.
	Imports []*Function
}

// NewModule creates a new empty IR module.
func NewModule() *Module {
	return &Module{}
}

// DefineGlobal registers a global variable slot.
func (m *Module) DefineGlobal(name string, kind Kind) {
	m.Globals = append(m.Globals, Var{Name: name, Kind: kind})
}

// AddFunction appends a function to the module and returns it.
func (m *Module) AddFunction(fn *Function) *Function {
	m.Functions = append(m.Functions, fn)
	return fn
}

// FindFunction looks up a defined or imported function by name.
func (m *Module) FindFunction(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}

	for _, fn := range m.Imports {
		if fn.Name == name {
			return fn
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Function is a single IR function: its signature in kind form plus a flat
// ordered instruction list.
type Function struct {
	// The name of the function.
	Name string

	// The low-level return kind of the function.
	ReturnKind Kind

	// The parameters of the function, in order.
	Params []Var

	// The local variables of the function, in declaration order.  Parameters
	// are not repeated here.
	Locals []Var

	// The flat instruction list of the function body.
	Code []Instruction
}

// NewFunction creates a new empty function.
func NewFunction(name string, returnKind Kind) *Function {
	return &Function{Name: name, ReturnKind: returnKind}
}

// DefineParam registers a parameter slot.
func (f *Function) DefineParam(name string, kind Kind) {
	f.Params = append(f.Params, Var{Name: name, Kind: kind})
}

// DefineLocal registers a local variable slot.
func (f *Function) DefineLocal(name string, kind Kind) {
	f.Locals = append(f.Locals, Var{Name: name, Kind: kind})
}

// Emit appends instructions to the function body.
func (f *Function) Emit(instrs ...Instruction) {
	f.Code = append(f.Code, instrs...)
}
