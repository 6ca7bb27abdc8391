package syntax_test

import (
	"testing"

	"concord/syntax"
)

func TestTokenize(t *testing.T) {
	tokens, err := syntax.Tokenize("test.concord", `x + 1.5 <= len("hi")`)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	kinds := make([]string, len(tokens))
	for i, token := range tokens {
		kinds[i] = token.Kind
	}

	expected := []string{"Name", "AddOperator", "Number", "LessThanOrEqualOperator", "Name", "LeftParenthesis", "String", "RightParenthesis"}
	if len(kinds) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(kinds), kinds)
	}

	for i := range expected {
		if kinds[i] != expected[i] {
			t.Fatalf("token %d: expected %s, got %s", i, expected[i], kinds[i])
		}
	}
}

func TestTokenizeTrimsStringQuotes(t *testing.T) {
	tokens, err := syntax.Tokenize("test.concord", `"hello"`)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	if len(tokens) != 1 || tokens[0].Value != "hello" {
		t.Fatalf("expected the unquoted value, got %v", tokens)
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	tokens, err := syntax.Tokenize("test.concord", "1 -- the answer\n")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	if len(tokens) != 2 || tokens[0].Kind != "Number" || tokens[1].Kind != "LineBreak" {
		t.Fatalf("expected a number and a line break, got %v", tokens)
	}
}

func TestTokenizeSpans(t *testing.T) {
	tokens, err := syntax.Tokenize("test.concord", "ab + cd")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	last := tokens[len(tokens)-1]
	if last.Span.Start.Line != 1 || last.Span.Start.Column != 6 {
		t.Fatalf("expected 1:6, got %s", last.Span)
	}

	if last.Span.Source != "cd" {
		t.Fatalf("expected the span to carry its source text, got %q", last.Span.Source)
	}
}

func TestTokenizeRejectsUnknownCharacters(t *testing.T) {
	_, err := syntax.Tokenize("test.concord", "1 @ 2")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	program, err := syntax.Parse("test.concord", "1 + 2 * 3 < 10")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	comparison, ok := program.Expression.(*syntax.BinaryExpr)
	if !ok || comparison.Operator != "<" {
		t.Fatalf("expected < at the root, got %#v", program.Expression)
	}

	sum, ok := comparison.Left.(*syntax.BinaryExpr)
	if !ok || sum.Operator != "+" {
		t.Fatalf("expected + below <, got %#v", comparison.Left)
	}

	product, ok := sum.Right.(*syntax.BinaryExpr)
	if !ok || product.Operator != "*" {
		t.Fatalf("expected * below +, got %#v", sum.Right)
	}
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	program, err := syntax.Parse("test.concord", "2.0 ^ 3.0 ^ 4.0")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	outer, ok := program.Expression.(*syntax.BinaryExpr)
	if !ok || outer.Operator != "^" {
		t.Fatalf("expected ^ at the root, got %#v", program.Expression)
	}

	if _, ok := outer.Left.(*syntax.NumberExpr); !ok {
		t.Fatalf("expected a number on the left, got %#v", outer.Left)
	}

	inner, ok := outer.Right.(*syntax.BinaryExpr)
	if !ok || inner.Operator != "^" {
		t.Fatalf("expected ^ on the right, got %#v", outer.Right)
	}
}

func TestParseNumberKinds(t *testing.T) {
	program, err := syntax.Parse("test.concord", "1 + 2.5")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	sum := program.Expression.(*syntax.BinaryExpr)

	if !sum.Left.(*syntax.NumberExpr).IsInteger {
		t.Fatal("1 is an integer literal")
	}

	if sum.Right.(*syntax.NumberExpr).IsInteger {
		t.Fatal("2.5 is not an integer literal")
	}
}

func TestParseCallAndArray(t *testing.T) {
	program, err := syntax.Parse("test.concord", "concat([1, 2], reverse([3]))")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	call, ok := program.Expression.(*syntax.CallExpr)
	if !ok || call.Name != "concat" {
		t.Fatalf("expected a call to concat, got %#v", program.Expression)
	}

	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}

	array, ok := call.Args[0].(*syntax.ArrayExpr)
	if !ok || len(array.Elements) != 2 {
		t.Fatalf("expected a two-element array, got %#v", call.Args[0])
	}

	nested, ok := call.Args[1].(*syntax.CallExpr)
	if !ok || nested.Name != "reverse" {
		t.Fatalf("expected a call to reverse, got %#v", call.Args[1])
	}
}

func TestParseUnaryMinus(t *testing.T) {
	program, err := syntax.Parse("test.concord", "-x")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	unary, ok := program.Expression.(*syntax.UnaryExpr)
	if !ok || unary.Operator != "-" {
		t.Fatalf("expected a unary minus, got %#v", program.Expression)
	}
}

func TestParseAnnotationsAndDemand(t *testing.T) {
	program, err := syntax.Parse("test.concord", "x :: Int\ny :: [Float]\nx + 1 :: Float\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(program.Annotations) != 2 {
		t.Fatalf("expected 2 annotations, got %d", len(program.Annotations))
	}

	if program.Annotations[0].Name != "x" {
		t.Fatalf("expected x, got %s", program.Annotations[0].Name)
	}

	if _, ok := program.Annotations[1].Type.(*syntax.ArrayTypeExpr); !ok {
		t.Fatalf("expected an array type, got %#v", program.Annotations[1].Type)
	}

	if program.Demand == nil {
		t.Fatal("expected a demanded type")
	}

	demand := program.Demand.(*syntax.NamedTypeExpr)
	if demand.Name != "Float" || demand.IsVariable {
		t.Fatalf("expected Float, got %#v", demand)
	}
}

// A final line shaped like an annotation is the program's expression, not an
// annotation with nothing after it.
func TestParseTrailingAnnotationIsTheExpression(t *testing.T) {
	program, err := syntax.Parse("test.concord", "x :: Int")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(program.Annotations) != 0 {
		t.Fatalf("expected no annotations, got %d", len(program.Annotations))
	}

	name, ok := program.Expression.(*syntax.NameExpr)
	if !ok || name.Name != "x" {
		t.Fatalf("expected the name x, got %#v", program.Expression)
	}

	if program.Demand == nil {
		t.Fatal("expected the demanded type Int")
	}
}

func TestParseAppliedType(t *testing.T) {
	program, err := syntax.Parse("test.concord", "pair(1, 2.5) :: Pair Int Float")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	demand := program.Demand.(*syntax.NamedTypeExpr)
	if demand.Name != "Pair" || len(demand.Args) != 2 {
		t.Fatalf("expected Pair with 2 arguments, got %#v", demand)
	}
}

func TestParseTypeVariables(t *testing.T) {
	program, err := syntax.Parse("test.concord", "xs :: [a]\nxs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	array := program.Annotations[0].Type.(*syntax.ArrayTypeExpr)
	element := array.Element.(*syntax.NamedTypeExpr)
	if !element.IsVariable || element.Name != "a" {
		t.Fatalf("expected the type variable a, got %#v", element)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"dangling operator", "1 +"},
		{"unclosed paren", "(1 + 2"},
		{"unclosed array", "[1, 2"},
		{"annotation missing its type", "x ::"},
		{"trailing junk", "1 2"},
		{"empty input", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := syntax.Parse("test.concord", c.source); err == nil {
				t.Fatalf("expected an error for %q", c.source)
			}
		})
	}
}

func TestParseErrorCarriesSpan(t *testing.T) {
	_, err := syntax.Parse("test.concord", "1 +\n")
	if err == nil {
		t.Fatal("expected an error")
	}

	if err.Span.Path != "test.concord" {
		t.Fatalf("expected the file's path, got %q", err.Span.Path)
	}
}
