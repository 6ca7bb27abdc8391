package unify

import (
	"fmt"
	"strings"
)

// ErrorKind is the closed set of type unification failures. Everything a
// user-facing diagnostic needs lives in the Error value; panics are reserved
// for malformed type descriptions.
type ErrorKind int

const (
	// KnownNotEqual: two Known designations with distinct root types.
	KnownNotEqual ErrorKind = iota

	// NotEqual: two designations with incompatible shapes or tags.
	NotEqual

	// ArityNotEqual: matching roots applied to different argument counts.
	ArityNotEqual

	// UnboundRestriction: a variable escaped unification with no binding.
	UnboundRestriction

	// RecursionBinding: the occurs check rejected an infinite type.
	RecursionBinding

	// NoOverload: no candidate signature matched.
	NoOverload

	// MultipleOverloads: more than one candidate signature matched.
	MultipleOverloads

	// MultipleImplicits: more than one implicit conversion matched.
	MultipleImplicits

	// TooManyPossibleTypes: an expression admits several result types and no
	// single one was demanded.
	TooManyPossibleTypes
)

func (kind ErrorKind) String() string {
	switch kind {
	case KnownNotEqual:
		return "KnownNotEqual"
	case NotEqual:
		return "NotEqual"
	case ArityNotEqual:
		return "ArityNotEqual"
	case UnboundRestriction:
		return "UnboundRestriction"
	case RecursionBinding:
		return "RecursionBinding"
	case NoOverload:
		return "NoOverload"
	case MultipleOverloads:
		return "MultipleOverloads"
	case MultipleImplicits:
		return "MultipleImplicits"
	case TooManyPossibleTypes:
		return "TooManyPossibleTypes"
	default:
		panic(fmt.Sprintf("invalid error kind: %d", kind))
	}
}

// Error is a typed unification failure. Left and Right are the designations
// that clashed, where that makes sense for the kind; Candidates carries the
// overloads, conversions, or possible types involved.
type Error struct {
	Kind       ErrorKind
	Left       Designation
	Right      Designation
	Candidates []Designation
}

func (e *Error) Error() string {
	switch e.Kind {
	case KnownNotEqual:
		return fmt.Sprintf("cannot unify %s with %s; the types are distinct", e.Left, e.Right)
	case NotEqual:
		return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
	case ArityNotEqual:
		return fmt.Sprintf("cannot unify %s with %s; the argument counts differ", e.Left, e.Right)
	case UnboundRestriction:
		return fmt.Sprintf("cannot resolve %s; the variable was never bound", e.Left)
	case RecursionBinding:
		return fmt.Sprintf("cannot bind %s to %s; the variable occurs in its own binding", e.Left, e.Right)
	case NoOverload:
		return fmt.Sprintf("no overload matches; tried %s", displayCandidates(e.Candidates))
	case MultipleOverloads:
		return fmt.Sprintf("multiple overloads match %s: %s", e.Right, displayCandidates(e.Candidates))
	case MultipleImplicits:
		return fmt.Sprintf("multiple implicit conversions produce %s: %s", e.Right, displayCandidates(e.Candidates))
	case TooManyPossibleTypes:
		return fmt.Sprintf("the expression admits multiple types: %s", displayCandidates(e.Candidates))
	default:
		panic(fmt.Sprintf("invalid error kind: %d", e.Kind))
	}
}

func displayCandidates(candidates []Designation) string {
	var s strings.Builder
	for i, candidate := range candidates {
		if i > 0 {
			s.WriteString(", ")
		}

		s.WriteString(candidate.String())
	}

	return s.String()
}

func errKnownNotEqual(left *Known, right *Known) *Error {
	return &Error{Kind: KnownNotEqual, Left: left, Right: right}
}

func errNotEqual(left Designation, right Designation) *Error {
	return &Error{Kind: NotEqual, Left: left, Right: right}
}

func errArityNotEqual(left Designation, right Designation) *Error {
	return &Error{Kind: ArityNotEqual, Left: left, Right: right}
}

func errUnboundRestriction(v *Variable) *Error {
	return &Error{Kind: UnboundRestriction, Left: v}
}

func errRecursionBinding(v *Variable, target Designation) *Error {
	return &Error{Kind: RecursionBinding, Left: v, Right: target}
}

// ErrNoOverload reports that none of the attempted candidates matched.
func ErrNoOverload(attempted []Designation) *Error {
	return &Error{Kind: NoOverload, Candidates: attempted}
}

// ErrMultipleOverloads reports that several candidates matched the demanded
// designation at once.
func ErrMultipleOverloads(demanded Designation, matched []Designation) *Error {
	return &Error{Kind: MultipleOverloads, Right: demanded, Candidates: matched}
}

// ErrMultipleImplicits reports that several implicit conversions produce the
// demanded designation at once.
func ErrMultipleImplicits(demanded Designation, matched []Designation) *Error {
	return &Error{Kind: MultipleImplicits, Right: demanded, Candidates: matched}
}

// ErrTooManyPossibleTypes reports that an expression admits several result
// types with no single demanded one to pick between them.
func ErrTooManyPossibleTypes(possible []Designation) *Error {
	return &Error{Kind: TooManyPossibleTypes, Candidates: possible}
}
