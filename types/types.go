package types

import "fmt"

// Type is a fully resolved, concrete type value. Values of this interface
// contain no unification variables; they are what the unifier hands back to
// the host once an expression tree has been checked.
type Type interface {
	fmt.Stringer
	typeValue()
}

// Named is a named atomic type (arity 0) or a type constructor that expects
// Arity type arguments. Identity is the pointer: two constructors that happen
// to share a name are still distinct types.
type Named struct {
	Name  string
	Arity int
}

func NewNamed(name string, arity int) *Named {
	return &Named{Name: name, Arity: arity}
}

func (t *Named) typeValue() {}

func (t *Named) String() string {
	return t.Name
}

// Applied is a type constructor applied to a full set of arguments, e.g.
// `Pair Int Float`.
type Applied struct {
	Constructor *Named
	Arguments   []Type
}

func NewApplied(constructor *Named, arguments []Type) *Applied {
	if len(arguments) != constructor.Arity {
		panic(fmt.Sprintf("type constructor %s expects %d arguments, got %d", constructor.Name, constructor.Arity, len(arguments)))
	}

	return &Applied{Constructor: constructor, Arguments: arguments}
}

func (t *Applied) typeValue() {}

func (t *Applied) String() string {
	s := t.Constructor.Name
	for _, argument := range t.Arguments {
		s += " " + displayArgument(argument)
	}

	return s
}

// Array is the native array type. Arrays are not ordinary applied
// constructors in the host type system, so they get their own shape here.
type Array struct {
	Element Type
}

func NewArray(element Type) *Array {
	return &Array{Element: element}
}

func (t *Array) typeValue() {}

func (t *Array) String() string {
	return "[" + t.Element.String() + "]"
}

func displayArgument(t Type) string {
	if applied, ok := t.(*Applied); ok {
		return "(" + applied.String() + ")"
	}

	return t.String()
}
