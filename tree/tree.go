package tree

import "concord/unify"

// Node is one expression-tree node participating in type checking. A tree is
// checked in three passes: PossibleUnifiers walks bottom-up collecting
// feasible types, ResolveUnifiers walks top-down fixing exactly one
// overload or type per node against a demanded result type, and
// FinalizeUnifiers resimplifies cached results against the final unifier.
//
// Each pass mutates a node's caches at most once; a node must not be reused
// across independent unification runs or shared between concurrent checks.
type Node interface {
	// PossibleUnifiers returns every feasible type for this node, each paired
	// with the unifier that makes it feasible.
	PossibleUnifiers(resolver *unify.Resolver, u *unify.Unifier) ([]Possibility, *unify.Error)

	// ResolveUnifiers fixes this node (and, recursively, its children) to
	// produce the demanded result designation, threading the unifier forward.
	ResolveUnifiers(result unify.Designation, resolver *unify.Resolver, u *unify.Unifier) (*unify.Unifier, *unify.Error)

	// FinalizeUnifiers resimplifies cached selections through the final
	// unifier. No new bindings occur.
	FinalizeUnifiers(u *unify.Unifier)

	// ResultType is the designation this node produces once resolved,
	// including the effect of an applied implicit cast.
	ResultType() unify.Designation

	// AppliedCast is the implicit cast selected during resolution, if any.
	AppliedCast() *unify.RealizedCast

	Label() string
	Children() []Node
}

// Possibility pairs one feasible type with the unifier under which it was
// discovered. The type is already simplified against that unifier, so callers
// that enumerate combinations of sibling possibilities can thread a single
// accumulating unifier instead of merging chains.
type Possibility struct {
	Type    unify.Designation
	Unifier *unify.Unifier
}

// castCandidates collects the converters worth attempting for turning a value
// of type have into a value of type want: converters whose target root
// matches want, then converters reachable from have's root. Lookup is by root
// identity only; Realize does the full matching.
func castCandidates(resolver *unify.Resolver, have unify.Designation, want unify.Designation, u *unify.Unifier) []*unify.Converter {
	var candidates []*unify.Converter

	if root, ok := unify.Root(want, u); ok {
		candidates = append(candidates, resolver.ImplicitSources(root)...)
	}

	if root, ok := unify.Root(have, u); ok {
		for _, converter := range resolver.ImplicitCasts(root) {
			if !containsConverter(candidates, converter) {
				candidates = append(candidates, converter)
			}
		}
	}

	return candidates
}

func containsConverter(converters []*unify.Converter, converter *unify.Converter) bool {
	for _, existing := range converters {
		if existing == converter {
			return true
		}
	}

	return false
}
