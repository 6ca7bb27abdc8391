package unify

import "strings"

// Unifier is an immutable substitution environment mapping variables to
// designations. Bind produces an extended copy; entries are never removed or
// overwritten, so snapshots taken at different points in a traversal remain
// valid. Entries are chained through parents, the same way the solver's
// scopes inherit from each other.
type Unifier struct {
	parent *Unifier
	v      *Variable
	d      Designation
	size   int
}

func NewUnifier() *Unifier {
	return &Unifier{}
}

// Len is the number of bindings. It only ever grows across one unification
// run.
func (u *Unifier) Len() int {
	return u.size
}

// Lookup returns the designation bound to v, if any.
func (u *Unifier) Lookup(v *Variable) (Designation, bool) {
	for entry := u; entry != nil; entry = entry.parent {
		if entry.v == v {
			return entry.d, true
		}
	}

	return nil, false
}

// Bound reports whether v has a binding.
func (u *Unifier) Bound(v *Variable) bool {
	_, ok := u.Lookup(v)
	return ok
}

// Bind returns a copy of u extended with v -> d. Binding a variable to itself
// or rebinding an already-bound variable is a caller bug, not a type error.
func (u *Unifier) Bind(v *Variable, d Designation) *Unifier {
	if target, ok := d.(*Variable); ok && target == v {
		panic("cannot bind a variable to itself")
	}

	if u.Bound(v) {
		panic("cannot rebind " + v.String())
	}

	return &Unifier{parent: u, v: v, d: d, size: u.size + 1}
}

// Dereference follows bindings while d is a bound variable, stopping at a
// non-variable or an unbound variable. Bind's self-binding check and the
// occurs check together guarantee the chain is finite.
func (u *Unifier) Dereference(d Designation) Designation {
	for {
		v, ok := d.(*Variable)
		if !ok {
			return d
		}

		bound, ok := u.Lookup(v)
		if !ok {
			return d
		}

		d = bound
	}
}

func (u *Unifier) String() string {
	var s strings.Builder
	s.WriteString("{")

	i := 0
	for entry := u; entry != nil; entry = entry.parent {
		if entry.v == nil {
			continue
		}

		if i > 0 {
			s.WriteString(", ")
		}

		s.WriteString(entry.v.String())
		s.WriteString(" = ")
		s.WriteString(entry.d.String())

		i++
	}

	s.WriteString("}")

	return s.String()
}
