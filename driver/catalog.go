package driver

import (
	"concord/types"
	"concord/unify"
)

// Builtin concrete types. Arrays go through unify.ArrayConstructor.
var (
	Int    = types.NewNamed("Int", 0)
	Float  = types.NewNamed("Float", 0)
	Bool   = types.NewNamed("Bool", 0)
	String = types.NewNamed("String", 0)
	Pair   = types.NewNamed("Pair", 2)
)

var typesByName = map[string]*types.Named{
	"Int":    Int,
	"Float":  Float,
	"Bool":   Bool,
	"String": String,
	"Pair":   Pair,
}

var (
	intType    = unify.NewKnown(Int)
	floatType  = unify.NewKnown(Float)
	boolType   = unify.NewKnown(Bool)
	stringType = unify.NewKnown(String)
)

func arrayOf(element unify.Designation) unify.Designation {
	return unify.NewKnown(unify.ArrayConstructor, element)
}

func pairOf(left unify.Designation, right unify.Designation) unify.Designation {
	return unify.NewKnown(Pair, left, right)
}

func sig(params []unify.Designation, ret unify.Designation) *unify.Dummy {
	return unify.Signature(params, ret)
}

// templateVars holds the generic variables of the builtin signature
// templates. Templates are never unified against directly; every call site
// instantiates them with fresh variables.
var templateVars = unify.NewVars()

func comparisonOverloads() []*unify.Dummy {
	return []*unify.Dummy{
		sig([]unify.Designation{intType, intType}, boolType),
		sig([]unify.Designation{floatType, floatType}, boolType),
		sig([]unify.Designation{stringType, stringType}, boolType),
	}
}

func equalityOverloads() []*unify.Dummy {
	return append(comparisonOverloads(),
		sig([]unify.Designation{boolType, boolType}, boolType),
	)
}

var operatorOverloads = map[string][]*unify.Dummy{
	"+": {
		sig([]unify.Designation{intType, intType}, intType),
		sig([]unify.Designation{floatType, floatType}, floatType),
		sig([]unify.Designation{stringType, stringType}, stringType),
	},
	"-": {
		sig([]unify.Designation{intType, intType}, intType),
		sig([]unify.Designation{floatType, floatType}, floatType),
	},
	"*": {
		sig([]unify.Designation{intType, intType}, intType),
		sig([]unify.Designation{floatType, floatType}, floatType),
	},
	"/": {
		sig([]unify.Designation{intType, intType}, intType),
		sig([]unify.Designation{floatType, floatType}, floatType),
	},
	"%": {
		sig([]unify.Designation{intType, intType}, intType),
	},
	"^": {
		sig([]unify.Designation{floatType, floatType}, floatType),
	},
	"<":  comparisonOverloads(),
	"<=": comparisonOverloads(),
	">":  comparisonOverloads(),
	">=": comparisonOverloads(),
	"==": equalityOverloads(),
	"/=": equalityOverloads(),
	"negate": {
		sig([]unify.Designation{intType}, intType),
		sig([]unify.Designation{floatType}, floatType),
	},
}

var functionOverloads = map[string][]*unify.Dummy{
	"sqrt": {
		sig([]unify.Designation{floatType}, floatType),
	},
	"abs": {
		sig([]unify.Designation{intType}, intType),
		sig([]unify.Designation{floatType}, floatType),
	},
	"str": {
		sig([]unify.Designation{intType}, stringType),
		sig([]unify.Designation{floatType}, stringType),
		sig([]unify.Designation{boolType}, stringType),
	},
}

func init() {
	a := templateVars.Fresh("a")
	b := templateVars.Fresh("b")

	functionOverloads["len"] = []*unify.Dummy{
		sig([]unify.Designation{arrayOf(a)}, intType),
	}

	functionOverloads["first"] = []*unify.Dummy{
		sig([]unify.Designation{arrayOf(a)}, a),
	}

	functionOverloads["reverse"] = []*unify.Dummy{
		sig([]unify.Designation{arrayOf(a)}, arrayOf(a)),
	}

	functionOverloads["concat"] = []*unify.Dummy{
		sig([]unify.Designation{arrayOf(a), arrayOf(a)}, arrayOf(a)),
	}

	functionOverloads["pair"] = []*unify.Dummy{
		sig([]unify.Designation{a, b}, pairOf(a, b)),
	}

	functionOverloads["fst"] = []*unify.Dummy{
		sig([]unify.Designation{pairOf(a, b)}, a),
	}

	functionOverloads["snd"] = []*unify.Dummy{
		sig([]unify.Designation{pairOf(a, b)}, b),
	}
}

// defaultResolver carries the standard implicit conversions. It is read-only
// after construction, so one instance serves every check.
var defaultResolver = unify.NewResolver(
	unify.NewConverter(intType, floatType),
)

// DefaultResolver returns the implicit-cast resolver used for checks, with
// the builtin `Int -> Float` conversion registered.
func DefaultResolver() *unify.Resolver {
	return defaultResolver
}
