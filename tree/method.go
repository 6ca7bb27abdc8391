package tree

import (
	"fmt"

	"concord/unify"
)

// MethodNode is an overloaded operation applied to sub-expressions. Every
// overload is a method-shaped designation whose parameter count equals the
// number of children. Pass 1 caches the overloads that remain feasible; pass
// 2 fixes exactly one of them (and at most one implicit cast on the return
// slot) and recurses into the children with the overload's now-concrete
// parameter designations.
type MethodNode struct {
	label     string
	vars      *unify.Vars
	overloads []*unify.Dummy
	args      []Node

	realizable []*unify.Dummy
	selected   *unify.Dummy
	returnType unify.Designation
	cast       *unify.RealizedCast
}

func NewMethodNode(label string, vars *unify.Vars, overloads []*unify.Dummy, args ...Node) *MethodNode {
	if len(overloads) == 0 {
		panic("a method node needs at least one overload")
	}

	for _, overload := range overloads {
		if len(overload.Parameters()) != len(args) {
			panic(fmt.Sprintf("overload %s of %s expects %d arguments, got %d", overload, label, len(overload.Parameters()), len(args)))
		}
	}

	return &MethodNode{label: label, vars: vars, overloads: overloads, args: args}
}

func (n *MethodNode) Label() string {
	return n.label
}

func (n *MethodNode) Children() []Node {
	return n.args
}

// Overloads is the full candidate list the node was constructed with.
func (n *MethodNode) Overloads() []*unify.Dummy {
	return n.overloads
}

// RealizableOverloads is the subset of overloads that survived pass 1.
func (n *MethodNode) RealizableOverloads() []*unify.Dummy {
	return n.realizable
}

// SelectedOverload is the single overload fixed by pass 2.
func (n *MethodNode) SelectedOverload() *unify.Dummy {
	return n.selected
}

// SelectedOverloadReturnType is the selected overload's return designation,
// reflecting every binding known to the most recent pass.
func (n *MethodNode) SelectedOverloadReturnType() unify.Designation {
	return n.returnType
}

func (n *MethodNode) AppliedCast() *unify.RealizedCast {
	return n.cast
}

func (n *MethodNode) ResultType() unify.Designation {
	if n.cast != nil {
		return n.cast.Result
	}

	return n.returnType
}

func (n *MethodNode) PossibleUnifiers(resolver *unify.Resolver, u *unify.Unifier) ([]Possibility, *unify.Error) {
	argPossibilities := make([][]Possibility, len(n.args))
	for i, arg := range n.args {
		possibilities, err := arg.PossibleUnifiers(resolver, u)
		if err != nil {
			return nil, err
		}

		argPossibilities[i] = possibilities
	}

	// Strict search first; the overloads that succeed here become the
	// realizable set for pass 2.
	var results []Possibility
	n.realizable = nil
	for _, overload := range n.overloads {
		if n.checkUnifications(overload, argPossibilities, 0, u, nil, &results) {
			n.realizable = append(n.realizable, overload)
		}
	}

	// If nothing unified directly, retry allowing implicit casts per
	// argument position.
	if len(results) == 0 && resolver != nil {
		for _, overload := range n.overloads {
			if n.checkUnifications(overload, argPossibilities, 0, u, resolver, &results) {
				n.realizable = append(n.realizable, overload)
			}
		}
	}

	if len(results) == 0 {
		attempted := make([]unify.Designation, len(n.overloads))
		for i, overload := range n.overloads {
			attempted[i] = overload
		}

		return nil, unify.ErrNoOverload(attempted)
	}

	return results, nil
}

// checkUnifications searches depth-first over argument positions, unifying
// the overload's parameter at each position against one possibility of the
// corresponding child and threading the unifier forward. With a resolver it
// also splices converter invocation shapes in at positions where direct
// unification fails. Reports whether any complete combination succeeded.
func (n *MethodNode) checkUnifications(overload *unify.Dummy, argPossibilities [][]Possibility, position int, u *unify.Unifier, resolver *unify.Resolver, results *[]Possibility) bool {
	if position == len(argPossibilities) {
		*results = append(*results, Possibility{
			Type:    unify.Simplify(overload.Return(), u),
			Unifier: u,
		})

		return true
	}

	parameter := overload.Parameters()[position]

	found := false
	for _, possibility := range argPossibilities[position] {
		if next, err := unify.Unify(parameter, possibility.Type, u); err == nil {
			if n.checkUnifications(overload, argPossibilities, position+1, next, resolver, results) {
				found = true
			}

			continue
		}

		if resolver == nil {
			continue
		}

		for _, converter := range castCandidates(resolver, possibility.Type, parameter, u) {
			if _, next, err := converter.Realize(possibility.Type, parameter, n.vars, u); err == nil {
				if n.checkUnifications(overload, argPossibilities, position+1, next, resolver, results) {
					found = true
				}
			}
		}
	}

	return found
}

func (n *MethodNode) ResolveUnifiers(result unify.Designation, resolver *unify.Resolver, u *unify.Unifier) (*unify.Unifier, *unify.Error) {
	type match struct {
		overload *unify.Dummy
		cast     *unify.RealizedCast
		u        *unify.Unifier
	}

	var direct []match
	for _, overload := range n.realizable {
		if next, err := unify.Unify(overload.Return(), result, u); err == nil {
			direct = append(direct, match{overload: overload, u: next})
		}
	}

	var chosen match
	switch len(direct) {
	case 1:
		chosen = direct[0]
	case 0:
		var viaCast []match
		for _, overload := range n.realizable {
			for _, converter := range castCandidates(resolver, overload.Return(), result, u) {
				if cast, next, err := converter.Realize(overload.Return(), result, n.vars, u); err == nil {
					viaCast = append(viaCast, match{overload: overload, cast: cast, u: next})
				}
			}
		}

		switch len(viaCast) {
		case 0:
			attempted := make([]unify.Designation, len(n.realizable))
			for i, overload := range n.realizable {
				attempted[i] = overload
			}

			return nil, unify.ErrNoOverload(attempted)
		case 1:
			chosen = viaCast[0]
		default:
			shapes := make([]unify.Designation, len(viaCast))
			for i, m := range viaCast {
				shapes[i] = m.cast.Converter.Shape()
			}

			return nil, unify.ErrMultipleImplicits(unify.Simplify(result, u), shapes)
		}
	default:
		matched := make([]unify.Designation, len(direct))
		for i, m := range direct {
			matched[i] = m.overload
		}

		return nil, unify.ErrMultipleOverloads(unify.Simplify(result, u), matched)
	}

	u = chosen.u
	n.selected = chosen.overload
	n.cast = chosen.cast

	// Recurse with the overload's parameter designations, which the child
	// unifications above have made as concrete as they will get.
	for i, arg := range n.args {
		next, err := arg.ResolveUnifiers(chosen.overload.Parameters()[i], resolver, u)
		if err != nil {
			return nil, err
		}

		u = next
	}

	n.returnType = unify.Simplify(chosen.overload.Return(), u)

	return u, nil
}

func (n *MethodNode) FinalizeUnifiers(u *unify.Unifier) {
	if n.selected != nil {
		n.selected = unify.Simplify(n.selected, u).(*unify.Dummy)
	}

	if n.returnType != nil {
		n.returnType = unify.Simplify(n.returnType, u)
	}

	if n.cast != nil {
		n.cast.Resimplify(u)
	}

	for _, arg := range n.args {
		arg.FinalizeUnifiers(u)
	}
}
