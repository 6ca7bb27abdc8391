package tree

import "concord/unify"

// AtomicNode is a leaf with a small menu of possible types, e.g. an integer
// literal that could be Int or Float. Resolution picks exactly one entry,
// applying an implicit cast if no entry matches the demanded type directly.
type AtomicNode struct {
	label    string
	vars     *unify.Vars
	possible []unify.Designation

	selected unify.Designation
	cast     *unify.RealizedCast
}

func NewAtomicNode(label string, vars *unify.Vars, possible ...unify.Designation) *AtomicNode {
	if len(possible) == 0 {
		panic("an atomic node needs at least one possible type")
	}

	return &AtomicNode{label: label, vars: vars, possible: possible}
}

func (n *AtomicNode) Label() string {
	return n.label
}

func (n *AtomicNode) Children() []Node {
	return nil
}

// PossibleTypes is the node's type menu.
func (n *AtomicNode) PossibleTypes() []unify.Designation {
	return n.possible
}

// SelectedType is the menu entry fixed by resolution, before any cast.
func (n *AtomicNode) SelectedType() unify.Designation {
	return n.selected
}

func (n *AtomicNode) AppliedCast() *unify.RealizedCast {
	return n.cast
}

func (n *AtomicNode) ResultType() unify.Designation {
	if n.cast != nil {
		return n.cast.Result
	}

	return n.selected
}

func (n *AtomicNode) PossibleUnifiers(resolver *unify.Resolver, u *unify.Unifier) ([]Possibility, *unify.Error) {
	possibilities := make([]Possibility, len(n.possible))
	for i, ty := range n.possible {
		possibilities[i] = Possibility{Type: ty, Unifier: u}
	}

	return possibilities, nil
}

func (n *AtomicNode) ResolveUnifiers(result unify.Designation, resolver *unify.Resolver, u *unify.Unifier) (*unify.Unifier, *unify.Error) {
	type match struct {
		ty   unify.Designation
		cast *unify.RealizedCast
		u    *unify.Unifier
	}

	var direct []match
	for _, ty := range n.possible {
		if next, err := unify.Unify(ty, result, u); err == nil {
			direct = append(direct, match{ty: ty, u: next})
		}
	}

	var chosen match
	switch len(direct) {
	case 1:
		chosen = direct[0]
	case 0:
		// Prefer converters that produce the demanded type directly, then
		// scan casts reachable from each possible type.
		var viaCast []match
		for _, ty := range n.possible {
			if root, ok := unify.Root(result, u); ok {
				for _, converter := range resolver.ImplicitSources(root) {
					if cast, next, err := converter.Realize(ty, result, n.vars, u); err == nil {
						viaCast = append(viaCast, match{ty: ty, cast: cast, u: next})
					}
				}
			}
		}

		if len(viaCast) == 0 {
			for _, ty := range n.possible {
				root, ok := unify.Root(ty, u)
				if !ok {
					continue
				}

				for _, converter := range resolver.ImplicitCasts(root) {
					if cast, next, err := converter.Realize(ty, result, n.vars, u); err == nil {
						viaCast = append(viaCast, match{ty: ty, cast: cast, u: next})
					}
				}
			}
		}

		switch len(viaCast) {
		case 0:
			return nil, unify.ErrNoOverload(n.possible)
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
			matched[i] = m.ty
		}

		return nil, unify.ErrMultipleOverloads(unify.Simplify(result, u), matched)
	}

	n.selected = unify.Simplify(chosen.ty, chosen.u)
	n.cast = chosen.cast

	return chosen.u, nil
}

func (n *AtomicNode) FinalizeUnifiers(u *unify.Unifier) {
	if n.selected != nil {
		n.selected = unify.Simplify(n.selected, u)
	}

	if n.cast != nil {
		n.cast.Resimplify(u)
	}
}
