package unify

import "fmt"

// Unify attempts to extend u so that left and right become equal. It returns
// the extended unifier, or a typed error describing the first clash.
//
// Unification is not a single recursive descent: unifyStep threads one shared
// unifier left-to-right through sibling arguments, so a variable bound while
// checking a later argument can change what an earlier one should have
// unified to. Re-running the whole comparison until the binding count stops
// growing is simpler than deferring constraints, and each extra pass can only
// add bindings, so the loop terminates.
func Unify(left Designation, right Designation, u *Unifier) (*Unifier, *Error) {
	for {
		next, err := unifyStep(left, right, u)
		if err != nil {
			return nil, err
		}

		if next.Len() == u.Len() {
			return next, nil
		}

		u = next
	}
}

func unifyStep(left Designation, right Designation, u *Unifier) (*Unifier, *Error) {
	if left == right {
		return u, nil
	}

	left = u.Dereference(left)
	right = u.Dereference(right)

	if left == right {
		return u, nil
	}

	if v, ok := left.(*Variable); ok {
		return bindChecked(v, right, u)
	}

	if v, ok := right.(*Variable); ok {
		return bindChecked(v, left, u)
	}

	// Both sides are non-variable; compare operators first.
	switch leftOp := left.(type) {
	case *Known:
		rightOp, ok := right.(*Known)
		if !ok {
			return nil, errNotEqual(left, right)
		}

		if leftOp.Type != rightOp.Type {
			return nil, errKnownNotEqual(leftOp, rightOp)
		}
	case *Dummy:
		rightOp, ok := right.(*Dummy)
		if !ok {
			return nil, errNotEqual(left, right)
		}

		if leftOp.Tag != rightOp.Tag {
			return nil, errNotEqual(left, right)
		}
	default:
		panic(fmt.Sprintf("invalid designation: %T", left))
	}

	leftArgs := left.Arguments()
	rightArgs := right.Arguments()

	if len(leftArgs) != len(rightArgs) {
		return nil, errArityNotEqual(left, right)
	}

	for i := range leftArgs {
		var err *Error
		u, err = unifyStep(leftArgs[i], rightArgs[i], u)
		if err != nil {
			return nil, err
		}
	}

	return u, nil
}

func bindChecked(v *Variable, target Designation, u *Unifier) (*Unifier, *Error) {
	// Dereference already skipped past bound variables, so v is unbound.
	if Occurs(Simplify(target, u), v) {
		return nil, errRecursionBinding(v, Simplify(target, u))
	}

	return u.Bind(v, target), nil
}

// Occurs reports whether v appears anywhere inside d. It must hold false
// before every binding so that resolved types stay finite; callers simplify d
// first so bindings hidden behind other variables are visible.
func Occurs(d Designation, v *Variable) bool {
	if d == Designation(v) {
		return true
	}

	for _, arg := range d.Arguments() {
		if Occurs(arg, v) {
			return true
		}
	}

	return false
}
