package driver_test

import (
	"strings"
	"testing"

	"concord/colors"
	"concord/driver"
)

func check(t *testing.T, source string) *driver.Result {
	t.Helper()

	var result *driver.Result
	colors.WithoutColor(func() {
		result = driver.Check("test.concord", source)
	})

	return result
}

func checkRoot(t *testing.T, source string, expected string) *driver.Result {
	t.Helper()

	result := check(t, source)
	if result.Failed() {
		t.Fatalf("check failed: %s", result.Diagnostics[0].Message)
	}

	if result.Root.String() != expected {
		t.Fatalf("expected %s, got %s", expected, result.Root)
	}

	return result
}

func checkFails(t *testing.T, source string, fragment string) *driver.Result {
	t.Helper()

	result := check(t, source)
	if !result.Failed() {
		t.Fatalf("expected a diagnostic, got %s", result.Root)
	}

	if !strings.Contains(result.Diagnostics[0].Message, fragment) {
		t.Fatalf("expected the diagnostic to mention %q, got %q", fragment, result.Diagnostics[0].Message)
	}

	return result
}

func TestCheckIntegerArithmetic(t *testing.T) {
	checkRoot(t, "1 + 2 * 3 :: Int", "Int")
}

func TestCheckDemandPicksFloat(t *testing.T) {
	result := checkRoot(t, "1 :: Float", "Float")

	// Float is on the literal's menu, so no conversion applies.
	for _, entry := range result.Nodes {
		if entry.Node.AppliedCast() != nil {
			t.Fatalf("unexpected cast on %s", entry.Span.Source)
		}
	}
}

func TestCheckImplicitCast(t *testing.T) {
	result := checkRoot(t, "x :: Int\nx + 1.5", "Float")

	cast := false
	for _, entry := range result.Nodes {
		if entry.Span.Source == "x" && entry.Node.AppliedCast() != nil {
			cast = true

			if entry.Type.String() != "Float" {
				t.Fatalf("the cast argument resolves to Float, got %s", entry.Type)
			}
		}
	}

	if !cast {
		t.Fatal("expected an implicit cast on x")
	}
}

func TestCheckAnnotatedNames(t *testing.T) {
	checkRoot(t, "n :: Int\nm :: Float\nn + m :: Float", "Float")
}

func TestCheckGenericFunctions(t *testing.T) {
	checkRoot(t, "len(reverse([1, 2, 3]))", "Int")
	checkRoot(t, "concat([1.5], [2.5])", "[Float]")
	checkRoot(t, `snd(pair(true, "yes"))`, "String")
	checkRoot(t, "pair(1, 2.5) :: Pair Int Float", "Pair Int Float")
}

// Without any annotation, the literals inside a generic call still resolve
// against the element type discovered bottom-up, not against an undetermined
// variable.
func TestCheckGenericElementSelection(t *testing.T) {
	checkRoot(t, "len([1, 2, 3])", "Int")
	checkRoot(t, "first([1, 2]) :: Float", "Float")
}

func TestCheckStrings(t *testing.T) {
	checkRoot(t, `greeting :: String`+"\n"+`greeting + "!"`, "String")
	checkRoot(t, `str(true)`, "String")
}

// str accepts Int and Float alike, so an integer literal argument leaves two
// overloads producing String and nothing to pick between them.
func TestCheckAmbiguousStr(t *testing.T) {
	checkFails(t, `str(42) :: String`, "ambiguous")
}

func TestCheckUnaryAndPower(t *testing.T) {
	checkRoot(t, "-(2.0 ^ 3.0)", "Float")
	checkRoot(t, "-5 :: Int", "Int")
}

func TestCheckArrayAnnotation(t *testing.T) {
	checkRoot(t, "xs :: [Int]\nlen(xs)", "Int")
}

// A type-variable annotation leaves the array's element undetermined, and an
// undetermined type never resolves silently.
func TestCheckUnderdeterminedAnnotation(t *testing.T) {
	checkFails(t, "xs :: [a]\nlen(xs)", "Missing information")
}

func TestCheckNodesAreSortedAndTyped(t *testing.T) {
	result := checkRoot(t, "1 + 2 :: Int", "Int")

	if len(result.Nodes) != 3 {
		t.Fatalf("expected 3 typed nodes, got %d", len(result.Nodes))
	}

	for i := 1; i < len(result.Nodes); i++ {
		if result.Nodes[i-1].Span.Start.Index > result.Nodes[i].Span.Start.Index {
			t.Fatal("nodes are not sorted by span")
		}
	}

	if result.Nodes[0].Span.Source != "1" {
		t.Fatalf("expected the narrowest node at the shared start, got %q", result.Nodes[0].Span.Source)
	}
}

func TestCheckSyntaxError(t *testing.T) {
	checkFails(t, "1 +", "Expected an expression")
}

func TestCheckUnknownName(t *testing.T) {
	checkFails(t, "y + 1", "Cannot find")
}

func TestCheckUnknownFunction(t *testing.T) {
	checkFails(t, "frob(1)", "Cannot find the function")
}

func TestCheckWrongArgumentCount(t *testing.T) {
	checkFails(t, "len([1], [2])", "expects 1 argument(s)")
}

func TestCheckNoOverload(t *testing.T) {
	checkFails(t, `1 + "a"`, "No overload")
}

func TestCheckAmbiguousComparison(t *testing.T) {
	checkFails(t, "1 < 2", "ambiguous")
}

func TestCheckTooManyPossibleTypes(t *testing.T) {
	result := checkFails(t, "42", "could be")

	if !strings.Contains(result.Diagnostics[0].Message, "Int") || !strings.Contains(result.Diagnostics[0].Message, "Float") {
		t.Fatalf("expected both candidates in %q", result.Diagnostics[0].Message)
	}
}

func TestCheckUnknownType(t *testing.T) {
	checkFails(t, "x :: Quux\nx", "Cannot find the type")
}

func TestCheckTypeArity(t *testing.T) {
	checkFails(t, "p :: Pair Int\np", "expects 2 type argument(s)")
}

func TestCheckRunIdsAreUnique(t *testing.T) {
	first := check(t, "1 :: Int")
	second := check(t, "1 :: Int")

	if first.RunId == "" || first.RunId == second.RunId {
		t.Fatal("expected distinct run ids")
	}
}

func TestTypeAt(t *testing.T) {
	source := "1 + 2.5"
	result := check(t, source)
	if result.Failed() {
		t.Fatalf("check failed: %s", result.Diagnostics[0].Message)
	}

	// Offset 0 is inside both the literal and the sum; the innermost wins.
	entry, ok := result.TypeAt(0)
	if !ok {
		t.Fatal("expected a node at offset 0")
	}

	if entry.Span.Source != "1" {
		t.Fatalf("expected the literal, got %q", entry.Span.Source)
	}

	if entry.Type.String() != "Float" {
		t.Fatalf("expected Float, got %s", entry.Type)
	}

	entry, ok = result.TypeAt(2)
	if !ok {
		t.Fatal("expected a node at offset 2")
	}

	if entry.Span.Source != source {
		t.Fatalf("expected the whole sum, got %q", entry.Span.Source)
	}

	if _, ok := result.TypeAt(len(source) + 5); ok {
		t.Fatal("expected no node past the end")
	}
}

func TestWrite(t *testing.T) {
	var output strings.Builder
	colors.WithoutColor(func() {
		result := driver.Check("test.concord", "1 + 2 :: Int")
		result.Write(&output)
	})

	if !strings.Contains(output.String(), ":: Int") {
		t.Fatalf("expected resolved types in the report, got %q", output.String())
	}
}
