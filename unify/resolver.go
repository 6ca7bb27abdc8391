package unify

import (
	"fmt"

	"concord/types"
)

// Converter describes one implicit type conversion as a method-shaped
// designation `(source) -> target`. The source and target may carry generic
// variables of their own; they are instantiated fresh for every attempt.
type Converter struct {
	shape *Dummy
}

// NewConverter registers a conversion from source to target. Both roots must
// be Known designations so the resolver can index them by type identity.
func NewConverter(source Designation, target Designation) *Converter {
	if _, ok := source.(*Known); !ok {
		panic(fmt.Sprintf("converter source must be a known type, got %s", source))
	}

	if _, ok := target.(*Known); !ok {
		panic(fmt.Sprintf("converter target must be a known type, got %s", target))
	}

	return &Converter{shape: NewDummy(MethodTag, source, target)}
}

// Shape returns the converter's method-shaped designation.
func (c *Converter) Shape() *Dummy {
	return c.shape
}

func (c *Converter) SourceRoot() *types.Named {
	return c.shape.Parameters()[0].(*Known).Type
}

func (c *Converter) TargetRoot() *types.Named {
	return c.shape.Return().(*Known).Type
}

func (c *Converter) String() string {
	return fmt.Sprintf("%s -> %s", c.shape.Parameters()[0], c.shape.Return())
}

// Realize attempts to apply the converter to a value of type arg where a
// value of type want is required. The converter's invocation shape is unified
// against a fresh instantiation of its own shape; success yields a realized
// cast carrying the final result type, which can be resimplified as more
// bindings accrue.
func (c *Converter) Realize(arg Designation, want Designation, vars *Vars, u *Unifier) (*RealizedCast, *Unifier, *Error) {
	shape := Rename(c.shape, vars, map[*Variable]*Variable{}).(*Dummy)
	invocation := NewDummy(MethodTag, arg, want)

	next, err := Unify(invocation, shape, u)
	if err != nil {
		return nil, nil, err
	}

	cast := &RealizedCast{
		Converter: c,
		Input:     Simplify(shape.Parameters()[0], next),
		Result:    Simplify(shape.Return(), next),
	}

	return cast, next, nil
}

// RealizedCast is one applied implicit conversion: the converter it came
// from, plus its input and result designations with the converter's generic
// variables resolved as far as the unifier allows.
type RealizedCast struct {
	Converter *Converter
	Input     Designation
	Result    Designation
}

// Resimplify refreshes the cast's designations against a newer unifier.
// Bindings discovered after the cast was realized become visible without
// re-running unification.
func (cast *RealizedCast) Resimplify(u *Unifier) {
	cast.Input = Simplify(cast.Input, u)
	cast.Result = Simplify(cast.Result, u)
}

func (cast *RealizedCast) String() string {
	return fmt.Sprintf("%s -> %s", cast.Input, cast.Result)
}

// Resolver indexes implicit converters by the root type identity of their
// source (forward) and target (reverse). Lookups never inspect generic
// arguments; full matching happens by unifying the converter's shape against
// a candidate invocation. A Resolver is immutable after construction and may
// be shared between concurrent checks of independent trees.
type Resolver struct {
	bySource map[*types.Named][]*Converter
	byTarget map[*types.Named][]*Converter
}

func NewResolver(converters ...*Converter) *Resolver {
	resolver := &Resolver{
		bySource: map[*types.Named][]*Converter{},
		byTarget: map[*types.Named][]*Converter{},
	}

	for _, converter := range converters {
		source := converter.SourceRoot()
		target := converter.TargetRoot()
		resolver.bySource[source] = append(resolver.bySource[source], converter)
		resolver.byTarget[target] = append(resolver.byTarget[target], converter)
	}

	return resolver
}

// ImplicitCasts returns the converters registered under source, in
// registration order.
func (r *Resolver) ImplicitCasts(source *types.Named) []*Converter {
	if r == nil {
		return nil
	}

	return r.bySource[source]
}

// ImplicitSources returns the converters that produce target, in registration
// order.
func (r *Resolver) ImplicitSources(target *types.Named) []*Converter {
	if r == nil {
		return nil
	}

	return r.byTarget[target]
}

// Root returns the root type identity of d under u, if d dereferences to a
// Known designation.
func Root(d Designation, u *Unifier) (*types.Named, bool) {
	if known, ok := u.Dereference(d).(*Known); ok {
		return known.Type, true
	}

	return nil, false
}
