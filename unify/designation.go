package unify

import (
	"fmt"

	"concord/types"
)

// ArrayConstructor is the reserved stand-in for the native array type, so
// arrays can participate in unification like any other constructor. Resolve
// materializes it into a types.Array instead of a types.Applied.
var ArrayConstructor = types.NewNamed("Array", 1)

// MethodTag is the Dummy tag used for method signatures and converter
// invocation shapes.
const MethodTag = "method"

// Designation is a possibly partially unresolved description of a type.
// There are exactly three shapes: Known (a concrete type or a constructor
// applied to arguments), Dummy (an artificial grouping node, used to unify a
// whole method signature in one step), and Variable (an unresolved
// placeholder with identity-based equality).
type Designation interface {
	fmt.Stringer
	Arguments() []Designation
}

type Known struct {
	Type *types.Named
	Args []Designation
}

func NewKnown(ty *types.Named, args ...Designation) *Known {
	return &Known{Type: ty, Args: args}
}

func (d *Known) Arguments() []Designation {
	return d.Args
}

func (d *Known) String() string {
	s := d.Type.Name
	for _, arg := range d.Args {
		s += " " + displayArgument(arg)
	}

	return s
}

// Dummy groups designations under a tag. Its last argument is its effective
// return slot. Tags are compared for equality only; two Dummy designations
// with different tags never unify.
type Dummy struct {
	Tag  string
	Args []Designation
}

func NewDummy(tag string, args ...Designation) *Dummy {
	if len(args) == 0 {
		panic("a dummy designation needs at least a return slot")
	}

	return &Dummy{Tag: tag, Args: args}
}

// Signature builds the method-shaped designation `(param1, ..., paramN,
// returnType)` under the MethodTag.
func Signature(params []Designation, ret Designation) *Dummy {
	args := make([]Designation, 0, len(params)+1)
	args = append(args, params...)
	args = append(args, ret)

	return NewDummy(MethodTag, args...)
}

func (d *Dummy) Arguments() []Designation {
	return d.Args
}

// Parameters returns every argument except the return slot.
func (d *Dummy) Parameters() []Designation {
	return d.Args[:len(d.Args)-1]
}

// Return returns the return slot.
func (d *Dummy) Return() Designation {
	return d.Args[len(d.Args)-1]
}

func (d *Dummy) String() string {
	s := ""
	for i, param := range d.Parameters() {
		if i > 0 {
			s += ", "
		}

		s += param.String()
	}

	return "(" + s + ") -> " + d.Return().String()
}

// Variable is an unresolved placeholder. Variables are allocated by a Vars
// arena and compared by identity; the integer handle exists for display and
// for stable ordering in diagnostics.
type Variable struct {
	id    int
	label string
}

func (v *Variable) Arguments() []Designation {
	return nil
}

func (v *Variable) String() string {
	if v.label != "" {
		return fmt.Sprintf("?%s%d", v.label, v.id)
	}

	return fmt.Sprintf("?%d", v.id)
}

// Vars allocates unification variables for one run. The arena only grows;
// handles stay valid for the lifetime of the run.
type Vars struct {
	vars []*Variable
}

func NewVars() *Vars {
	return &Vars{}
}

func (vs *Vars) Fresh(label string) *Variable {
	v := &Variable{id: len(vs.vars), label: label}
	vs.vars = append(vs.vars, v)
	return v
}

// Rename rebuilds d with fresh variables from vars, reusing replacements for
// variables already seen so that repeated occurrences stay shared. Used to
// instantiate signature and converter templates per call site.
func Rename(d Designation, vars *Vars, replacements map[*Variable]*Variable) Designation {
	switch d := d.(type) {
	case *Variable:
		replacement, ok := replacements[d]
		if !ok {
			replacement = vars.Fresh(d.label)
			replacements[d] = replacement
		}

		return replacement
	case *Known:
		return NewKnown(d.Type, renameAll(d.Args, vars, replacements)...)
	case *Dummy:
		return NewDummy(d.Tag, renameAll(d.Args, vars, replacements)...)
	default:
		panic(fmt.Sprintf("invalid designation: %T", d))
	}
}

func renameAll(args []Designation, vars *Vars, replacements map[*Variable]*Variable) []Designation {
	renamed := make([]Designation, len(args))
	for i, arg := range args {
		renamed[i] = Rename(arg, vars, replacements)
	}

	return renamed
}

// IsResolved reports whether d and all of its arguments are free of
// variables, or only contain variables already bound in u.
func IsResolved(d Designation, u *Unifier) bool {
	if v, ok := d.(*Variable); ok {
		bound, ok := u.Lookup(v)
		if !ok {
			return false
		}

		return IsResolved(bound, u)
	}

	for _, arg := range d.Arguments() {
		if !IsResolved(arg, u) {
			return false
		}
	}

	return true
}

func displayArgument(d Designation) string {
	switch d := d.(type) {
	case *Known:
		if len(d.Args) > 0 {
			return "(" + d.String() + ")"
		}
	case *Dummy:
		return "(" + d.String() + ")"
	}

	return d.String()
}
