package unify_test

import (
	"testing"

	"concord/types"
	"concord/unify"
)

func TestResolverIndexesByRoot(t *testing.T) {
	intToFloat := unify.NewConverter(intType(), floatType())
	resolver := unify.NewResolver(intToFloat)

	casts := resolver.ImplicitCasts(intNamed)
	if len(casts) != 1 || casts[0] != intToFloat {
		t.Fatalf("expected the Int converter, got %v", casts)
	}

	sources := resolver.ImplicitSources(floatNamed)
	if len(sources) != 1 || sources[0] != intToFloat {
		t.Fatalf("expected the Float producer, got %v", sources)
	}

	if len(resolver.ImplicitCasts(floatNamed)) != 0 {
		t.Fatal("no converter starts at Float")
	}

	if len(resolver.ImplicitSources(intNamed)) != 0 {
		t.Fatal("no converter produces Int")
	}
}

func TestNilResolverHasNoConverters(t *testing.T) {
	var resolver *unify.Resolver

	if resolver.ImplicitCasts(intNamed) != nil {
		t.Fatal("expected no casts")
	}

	if resolver.ImplicitSources(intNamed) != nil {
		t.Fatal("expected no sources")
	}
}

func TestConverterRoots(t *testing.T) {
	converter := unify.NewConverter(intType(), floatType())

	if converter.SourceRoot() != intNamed {
		t.Fatalf("expected Int, got %s", converter.SourceRoot())
	}

	if converter.TargetRoot() != floatNamed {
		t.Fatalf("expected Float, got %s", converter.TargetRoot())
	}
}

func TestRealize(t *testing.T) {
	converter := unify.NewConverter(intType(), floatType())
	vars := unify.NewVars()

	cast, u, err := converter.Realize(intType(), floatType(), vars, unify.NewUnifier())
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}

	if cast.Input.String() != "Int" || cast.Result.String() != "Float" {
		t.Fatalf("expected Int -> Float, got %s", cast)
	}

	if u == nil {
		t.Fatal("expected an extended unifier")
	}
}

func TestRealizeBindsUnknownTarget(t *testing.T) {
	converter := unify.NewConverter(intType(), floatType())
	vars := unify.NewVars()
	want := vars.Fresh("want")

	cast, u, err := converter.Realize(intType(), want, vars, unify.NewUnifier())
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}

	if cast.Result.String() != "Float" {
		t.Fatalf("expected Float, got %s", cast.Result)
	}

	resolved, resolveErr := unify.Resolve(want, u)
	if resolveErr != nil {
		t.Fatalf("resolve failed: %v", resolveErr)
	}

	if resolved != floatNamed {
		t.Fatalf("expected the demanded variable to become Float, got %s", resolved)
	}
}

func TestRealizeRejectsWrongSource(t *testing.T) {
	converter := unify.NewConverter(intType(), floatType())
	vars := unify.NewVars()

	_, _, err := converter.Realize(floatType(), floatType(), vars, unify.NewUnifier())
	if err == nil {
		t.Fatal("expected an error; the converter starts at Int")
	}
}

func TestRealizeGenericConverter(t *testing.T) {
	template := unify.NewVars()
	element := template.Fresh("element")

	listNamed := types.NewNamed("List", 1)
	converter := unify.NewConverter(
		unify.NewKnown(unify.ArrayConstructor, element),
		unify.NewKnown(listNamed, element),
	)

	vars := unify.NewVars()
	cast, _, err := converter.Realize(arrayOf(intType()), vars.Fresh("want"), vars, unify.NewUnifier())
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}

	if cast.Result.String() != "List Int" {
		t.Fatalf("expected List Int, got %s", cast.Result)
	}

	// Each realization instantiates the template fresh; a second use with a
	// different element type must not see the first one's binding.
	cast, _, err = converter.Realize(arrayOf(floatType()), vars.Fresh("want"), vars, unify.NewUnifier())
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}

	if cast.Result.String() != "List Float" {
		t.Fatalf("expected List Float, got %s", cast.Result)
	}
}

func TestResimplify(t *testing.T) {
	template := unify.NewVars()
	element := template.Fresh("element")

	listNamed := types.NewNamed("List", 1)
	converter := unify.NewConverter(
		unify.NewKnown(unify.ArrayConstructor, element),
		unify.NewKnown(listNamed, element),
	)

	vars := unify.NewVars()
	inner := vars.Fresh("inner")

	cast, u, err := converter.Realize(arrayOf(inner), vars.Fresh("want"), vars, unify.NewUnifier())
	if err != nil {
		t.Fatalf("realize failed: %v", err)
	}

	u, unifyErr := unify.Unify(inner, intType(), u)
	if unifyErr != nil {
		t.Fatalf("unify failed: %v", unifyErr)
	}

	cast.Resimplify(u)

	if cast.Result.String() != "List Int" {
		t.Fatalf("expected List Int after resimplifying, got %s", cast.Result)
	}
}

func TestRoot(t *testing.T) {
	vars := unify.NewVars()
	v := vars.Fresh("t")

	if _, ok := unify.Root(v, unify.NewUnifier()); ok {
		t.Fatal("an unbound variable has no root")
	}

	u, err := unify.Unify(v, arrayOf(intType()), unify.NewUnifier())
	if err != nil {
		t.Fatalf("unify failed: %v", err)
	}

	root, ok := unify.Root(v, u)
	if !ok || root != unify.ArrayConstructor {
		t.Fatalf("expected the array constructor, got %v", root)
	}
}
