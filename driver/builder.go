package driver

import (
	"fmt"

	"concord/colors"
	"concord/syntax"
	"concord/tree"
	"concord/unify"
)

// builder lowers parsed expressions into tree-protocol nodes. Builtin
// signature templates are instantiated with fresh variables per call site so
// two uses of the same generic function never share bindings.
type builder struct {
	vars     *unify.Vars
	names    map[string]unify.Designation
	typeVars map[string]*unify.Variable
	tracked  []trackedNode
}

type trackedNode struct {
	span syntax.Span
	node tree.Node
}

func newBuilder() *builder {
	return &builder{
		vars:     unify.NewVars(),
		names:    map[string]unify.Designation{},
		typeVars: map[string]*unify.Variable{},
	}
}

func (b *builder) track(span syntax.Span, node tree.Node) tree.Node {
	b.tracked = append(b.tracked, trackedNode{span: span, node: node})
	return node
}

func (b *builder) lower(e syntax.Expr) (tree.Node, *Diagnostic) {
	switch e := e.(type) {
	case *syntax.NumberExpr:
		possible := []unify.Designation{floatType}
		if e.IsInteger {
			possible = []unify.Designation{intType, floatType}
		}

		return b.track(e.Span(), tree.NewAtomicNode(e.Value, b.vars, possible...)), nil
	case *syntax.StringExpr:
		return b.track(e.Span(), tree.NewAtomicNode(e.Value, b.vars, stringType)), nil
	case *syntax.NameExpr:
		if e.Name == "true" || e.Name == "false" {
			return b.track(e.Span(), tree.NewAtomicNode(e.Name, b.vars, boolType)), nil
		}

		ty, ok := b.names[e.Name]
		if !ok {
			return nil, &Diagnostic{
				Span:    e.Span(),
				Message: fmt.Sprintf("Cannot find %s. Annotate it with %s first.", colors.Code(e.Name), colors.Code(e.Name+" :: Type")),
			}
		}

		return b.track(e.Span(), tree.NewAtomicNode(e.Name, b.vars, ty)), nil
	case *syntax.UnaryExpr:
		operand, diagnostic := b.lower(e.Operand)
		if diagnostic != nil {
			return nil, diagnostic
		}

		return b.track(e.Span(), tree.NewMethodNode(e.Operator, b.vars, b.instantiate(operatorOverloads["negate"]), operand)), nil
	case *syntax.BinaryExpr:
		left, diagnostic := b.lower(e.Left)
		if diagnostic != nil {
			return nil, diagnostic
		}

		right, diagnostic := b.lower(e.Right)
		if diagnostic != nil {
			return nil, diagnostic
		}

		overloads, ok := operatorOverloads[e.Operator]
		if !ok {
			panic(fmt.Sprintf("unknown operator: %s", e.Operator))
		}

		return b.track(e.Span(), tree.NewMethodNode(e.Operator, b.vars, b.instantiate(overloads), left, right)), nil
	case *syntax.CallExpr:
		overloads, ok := functionOverloads[e.Name]
		if !ok {
			return nil, &Diagnostic{
				Span:    e.NameSpan,
				Message: fmt.Sprintf("Cannot find the function %s.", colors.Code(e.Name)),
			}
		}

		expected := len(overloads[0].Parameters())
		if len(e.Args) != expected {
			return nil, &Diagnostic{
				Span:    e.Span(),
				Message: fmt.Sprintf("%s expects %d argument(s), but %d were provided.", colors.Code(e.Name), expected, len(e.Args)),
			}
		}

		args := make([]tree.Node, len(e.Args))
		for i, arg := range e.Args {
			node, diagnostic := b.lower(arg)
			if diagnostic != nil {
				return nil, diagnostic
			}

			args[i] = node
		}

		return b.track(e.Span(), tree.NewMethodNode(e.Name, b.vars, b.instantiate(overloads), args...)), nil
	case *syntax.ArrayExpr:
		elements := make([]tree.Node, len(e.Elements))
		for i, element := range e.Elements {
			node, diagnostic := b.lower(element)
			if diagnostic != nil {
				return nil, diagnostic
			}

			elements[i] = node
		}

		// One synthetic overload: every element unifies with the same fresh
		// element variable.
		element := b.vars.Fresh("element")
		params := make([]unify.Designation, len(elements))
		for i := range params {
			params[i] = element
		}

		overload := unify.Signature(params, arrayOf(element))

		return b.track(e.Span(), tree.NewMethodNode("array", b.vars, []*unify.Dummy{overload}, elements...)), nil
	default:
		panic(fmt.Sprintf("invalid expression: %T", e))
	}
}

func (b *builder) instantiate(overloads []*unify.Dummy) []*unify.Dummy {
	instantiated := make([]*unify.Dummy, len(overloads))
	for i, overload := range overloads {
		instantiated[i] = unify.Rename(overload, b.vars, map[*unify.Variable]*unify.Variable{}).(*unify.Dummy)
	}

	return instantiated
}

func (b *builder) lowerType(t syntax.TypeExpr) (unify.Designation, *Diagnostic) {
	switch t := t.(type) {
	case *syntax.ArrayTypeExpr:
		element, diagnostic := b.lowerType(t.Element)
		if diagnostic != nil {
			return nil, diagnostic
		}

		return arrayOf(element), nil
	case *syntax.NamedTypeExpr:
		if t.IsVariable {
			v, ok := b.typeVars[t.Name]
			if !ok {
				v = b.vars.Fresh(t.Name)
				b.typeVars[t.Name] = v
			}

			return v, nil
		}

		named, ok := typesByName[t.Name]
		if !ok {
			return nil, &Diagnostic{
				Span:    t.Span(),
				Message: fmt.Sprintf("Cannot find the type %s.", colors.Code(t.Name)),
			}
		}

		if len(t.Args) != named.Arity {
			return nil, &Diagnostic{
				Span:    t.Span(),
				Message: fmt.Sprintf("%s expects %d type argument(s), but %d were provided.", colors.Code(named.Name), named.Arity, len(t.Args)),
			}
		}

		args := make([]unify.Designation, len(t.Args))
		for i, arg := range t.Args {
			lowered, diagnostic := b.lowerType(arg)
			if diagnostic != nil {
				return nil, diagnostic
			}

			args[i] = lowered
		}

		return unify.NewKnown(named, args...), nil
	default:
		panic(fmt.Sprintf("invalid type: %T", t))
	}
}
