package unify

import (
	"fmt"

	"concord/types"
)

// Resolve materializes d into a concrete type under u. Dummy designations
// resolve through their return slot; the array constructor resolves into a
// native array type. A variable with no binding is a caller bug surfaced as
// UnboundRestriction rather than guessed at.
//
// A Known whose argument count disagrees with its constructor's arity is a
// malformed type description and panics.
func Resolve(d Designation, u *Unifier) (types.Type, *Error) {
	switch d := u.Dereference(d).(type) {
	case *Known:
		if len(d.Args) == 0 {
			if d.Type.Arity != 0 {
				panic(fmt.Sprintf("type constructor %s used without arguments", d.Type.Name))
			}

			return d.Type, nil
		}

		if d.Type == ArrayConstructor {
			element, err := Resolve(d.Args[0], u)
			if err != nil {
				return nil, err
			}

			return types.NewArray(element), nil
		}

		if len(d.Args) != d.Type.Arity {
			panic(fmt.Sprintf("type constructor %s expects %d arguments, got %d", d.Type.Name, d.Type.Arity, len(d.Args)))
		}

		arguments := make([]types.Type, len(d.Args))
		for i, arg := range d.Args {
			argument, err := Resolve(arg, u)
			if err != nil {
				return nil, err
			}

			arguments[i] = argument
		}

		return types.NewApplied(d.Type, arguments), nil
	case *Dummy:
		return Resolve(d.Return(), u)
	case *Variable:
		// Dereference stopped here, so the variable is unbound.
		return nil, errUnboundRestriction(d)
	default:
		panic(fmt.Sprintf("invalid designation: %T", d))
	}
}

// Simplify structurally rebuilds d, replacing every variable with its current
// binding and leaving unbound variables in place. It snapshots intermediate
// state: the result stays meaningful even if u gains more bindings later.
func Simplify(d Designation, u *Unifier) Designation {
	switch d := d.(type) {
	case *Variable:
		bound, ok := u.Lookup(d)
		if !ok {
			return d
		}

		return Simplify(bound, u)
	case *Known:
		return NewKnown(d.Type, simplifyAll(d.Args, u)...)
	case *Dummy:
		return NewDummy(d.Tag, simplifyAll(d.Args, u)...)
	default:
		panic(fmt.Sprintf("invalid designation: %T", d))
	}
}

func simplifyAll(args []Designation, u *Unifier) []Designation {
	simplified := make([]Designation, len(args))
	for i, arg := range args {
		simplified[i] = Simplify(arg, u)
	}

	return simplified
}
