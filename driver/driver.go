package driver

import (
	"fmt"
	"io"
	"slices"

	"concord/colors"
	"concord/feedback"
	"concord/syntax"
	"concord/tree"
	"concord/types"
	"concord/unify"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("concord.driver")

// Diagnostic is one rendered problem, anchored at a source span.
type Diagnostic struct {
	Span    syntax.Span
	Message string
}

// NodeType records the concrete type resolved for one expression node.
type NodeType struct {
	Span syntax.Span
	Node tree.Node
	Type types.Type
}

// Result is the outcome of checking one program.
type Result struct {
	RunId       string
	Root        types.Type
	Nodes       []NodeType
	Diagnostics []Diagnostic
}

func (result *Result) Failed() bool {
	return len(result.Diagnostics) > 0
}

// Check parses source, lowers it into tree-protocol nodes against the builtin
// catalog, and runs the three unification passes. It never returns nil; all
// problems land in the result's diagnostics.
func Check(path string, source string) *Result {
	id, err := gonanoid.New()
	if err != nil {
		panic(err)
	}

	result := &Result{RunId: id}

	log.Debugf("check %s: %s", id, path)

	program, syntaxErr := syntax.Parse(path, source)
	if syntaxErr != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Span:    syntaxErr.Span,
			Message: feedback.RenderSyntaxError(syntaxErr),
		})

		return result
	}

	builder := newBuilder()
	for _, annotation := range program.Annotations {
		ty, diagnostic := builder.lowerType(annotation.Type)
		if diagnostic != nil {
			result.Diagnostics = append(result.Diagnostics, *diagnostic)
			return result
		}

		builder.names[annotation.Name] = ty
	}

	root, diagnostic := builder.lower(program.Expression)
	if diagnostic != nil {
		result.Diagnostics = append(result.Diagnostics, *diagnostic)
		return result
	}

	resolver := DefaultResolver()
	u := unify.NewUnifier()

	rootSpan := program.Expression.Span()

	possibilities, typeErr := root.PossibleUnifiers(resolver, u)
	if typeErr != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Span:    rootSpan,
			Message: feedback.RenderTypeError(typeErr),
		})

		return result
	}

	demand, seed, diagnostic := builder.demandedType(program, possibilities, u)
	if diagnostic != nil {
		result.Diagnostics = append(result.Diagnostics, *diagnostic)
		return result
	}

	final, typeErr := root.ResolveUnifiers(demand, resolver, seed)
	if typeErr != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Span:    rootSpan,
			Message: feedback.RenderTypeError(typeErr),
		})

		return result
	}

	root.FinalizeUnifiers(final)

	for _, entry := range builder.tracked {
		concrete, typeErr := unify.Resolve(entry.node.ResultType(), final)
		if typeErr != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Span:    entry.span,
				Message: feedback.RenderTypeError(typeErr),
			})

			return result
		}

		result.Nodes = append(result.Nodes, NodeType{
			Span: entry.span,
			Node: entry.node,
			Type: concrete,
		})

		if entry.node == root {
			result.Root = concrete
		}
	}

	slices.SortStableFunc(result.Nodes, func(left NodeType, right NodeType) int {
		return syntax.CompareSpans(left.Span, right.Span)
	})

	log.Debugf("check %s: %s is %s", id, path, result.Root)

	return result
}

// demandedType picks the result type pass 2 will demand of the root, along
// with the unifier pass 2 should start from: the program's trailing
// annotation if present, otherwise the single feasible type pass 1
// discovered. The unifier of the possibility that satisfies the demand
// carries the bindings pass 1 made while proving it (a generic call's
// element type, for example), so pass 2 resolves against those instead of
// rediscovering them as ambiguities. Several distinct feasible types with
// nothing to pick between them is an error, not a guess.
func (b *builder) demandedType(program *syntax.Program, possibilities []tree.Possibility, u *unify.Unifier) (unify.Designation, *unify.Unifier, *Diagnostic) {
	if program.Demand != nil {
		demand, diagnostic := b.lowerType(program.Demand)
		if diagnostic != nil {
			return nil, nil, diagnostic
		}

		var compatible []*unify.Unifier
		for _, possibility := range possibilities {
			if next, err := unify.Unify(possibility.Type, demand, possibility.Unifier); err == nil {
				compatible = append(compatible, next)
			}
		}

		// With several compatible possibilities (or none), start pass 2 from
		// a clean slate and let it report the ambiguity or the mismatch.
		if len(compatible) == 1 {
			return demand, compatible[0], nil
		}

		return demand, u, nil
	}

	var distinct []tree.Possibility
	for _, possibility := range possibilities {
		simplified := unify.Simplify(possibility.Type, possibility.Unifier)
		if !slices.ContainsFunc(distinct, func(existing tree.Possibility) bool {
			return existing.Type.String() == simplified.String()
		}) {
			distinct = append(distinct, tree.Possibility{Type: simplified, Unifier: possibility.Unifier})
		}
	}

	if len(distinct) == 1 {
		return distinct[0].Type, distinct[0].Unifier, nil
	}

	feasible := make([]unify.Designation, len(distinct))
	for i, possibility := range distinct {
		feasible[i] = possibility.Type
	}

	return nil, nil, &Diagnostic{
		Span:    program.Expression.Span(),
		Message: feedback.RenderTypeError(unify.ErrTooManyPossibleTypes(feasible)),
	}
}

// Write prints the result the way `concord check` reports it: diagnostics if
// any, otherwise every node's span, source, and resolved type.
func (result *Result) Write(w io.Writer) {
	for _, diagnostic := range result.Diagnostics {
		fmt.Fprintf(w, "%s %s\n", colors.Title(diagnostic.Span.String()+":"), diagnostic.Message)
	}

	if result.Failed() {
		return
	}

	for _, entry := range result.Nodes {
		fmt.Fprintf(w, "%s %s :: %s\n", entry.Span, colors.Code(entry.Span.Source), entry.Type)
	}
}

// TypeAt returns the resolved type of the innermost expression containing the
// byte offset.
func (result *Result) TypeAt(index int) (NodeType, bool) {
	var best NodeType
	found := false

	for _, entry := range result.Nodes {
		if !entry.Span.Contains(index) {
			continue
		}

		if !found || spanWidth(entry.Span) < spanWidth(best.Span) {
			best = entry
			found = true
		}
	}

	return best, found
}

func spanWidth(span syntax.Span) int {
	return span.End.Index - span.Start.Index
}
